package review

import (
	"github.com/gin-gonic/gin"

	"go-storefront/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	reviews := r.Group("/products/:id/reviews")
	{
		reviews.GET("",
			middleware.RateLimitByIP(5, 10),
			handler.List,
		)

		// writing a review takes time; 1 request per 20 seconds keeps bots out
		reviews.POST("",
			middleware.AuthMiddleware(),
			middleware.RateLimitByUser(0.05, 1),
			handler.Create,
		)
	}
}
