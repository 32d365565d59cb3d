package category

import (
	"github.com/gin-gonic/gin"

	"go-storefront/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	categories := r.Group("/categories")
	{
		// rarely changes and is cached; generous per IP
		categories.GET("",
			middleware.RateLimitByIP(10, 20),
			handler.List,
		)
	}
}
