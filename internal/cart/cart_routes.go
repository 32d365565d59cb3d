package cart

import (
	"github.com/gin-gonic/gin"

	"go-storefront/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	cart := r.Group("/cart")
	cart.Use(middleware.AuthMiddleware())
	{
		cart.GET("",
			middleware.RateLimitByUser(5, 10),
			handler.Summary,
		)
		cart.GET("/count",
			middleware.RateLimitByUser(5, 10),
			handler.Count,
		)

		// quantity buttons get clicked in bursts
		itemLimit := middleware.RateLimitByUser(3, 6)

		cart.POST("/items", itemLimit, handler.AddItem)
		cart.PATCH("/items/:productId", itemLimit, handler.ChangeQuantity)
		cart.PUT("/items/:productId", itemLimit, handler.UpdateQty)
		cart.POST("/items/:productId/increment", itemLimit, handler.Increment)
		cart.POST("/items/:productId/decrement", itemLimit, handler.Decrement)
		cart.DELETE("/items/:productId", itemLimit, handler.Remove)

		cart.DELETE("",
			middleware.RateLimitByUser(0.5, 1),
			handler.Clear,
		)
	}
}
