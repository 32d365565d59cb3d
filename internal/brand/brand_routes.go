package brand

import (
	"github.com/gin-gonic/gin"

	"go-storefront/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	brands := r.Group("/brands")
	{
		// brand strip on the home page, served from cache
		brands.GET("",
			middleware.RateLimitByIP(10, 20),
			handler.List,
		)
	}
}
