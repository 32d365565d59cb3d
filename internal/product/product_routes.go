package product

import (
	"github.com/gin-gonic/gin"

	"go-storefront/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	products := r.Group("/products")
	{
		// browsing is the hot path; keep it generous per IP
		products.GET("",
			middleware.RateLimitByIP(10, 20),
			handler.List,
		)
		products.GET("/:id",
			middleware.RateLimitByIP(10, 20),
			handler.Detail,
		)
	}
}
