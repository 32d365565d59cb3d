package wishlist

import (
	"github.com/gin-gonic/gin"

	"go-storefront/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	wishlists := r.Group("/wishlists")
	wishlists.Use(middleware.AuthMiddleware())
	{
		wishlists.GET("/items",
			middleware.RateLimitByUser(5, 10),
			handler.List,
		)

		// heart toggles; absorb double clicks
		itemActionLimit := middleware.RateLimitByUser(1, 3)

		wishlists.POST("/items/:productId",
			itemActionLimit,
			handler.Create,
		)
		wishlists.DELETE("/items/:productId",
			itemActionLimit,
			handler.Delete,
		)
	}
}
