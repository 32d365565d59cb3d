package checkout

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"go-storefront/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb redis.UniversalClient) {
	checkout := r.Group("/checkout")
	checkout.Use(middleware.AuthMiddleware())
	{
		// one payment attempt per 10 seconds; retries must reuse the Idempotency-Key
		checkout.POST("",
			middleware.RateLimitByUser(0.1, 1),
			middleware.Idempotency(rdb),
			handler.Checkout,
		)
	}
}
