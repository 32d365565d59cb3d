package auth

import (
	"github.com/gin-gonic/gin"

	"go-storefront/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	auth := r.Group("/auth")
	{
		// 1 request per 20 seconds per IP keeps account farming out
		auth.POST("/register",
			middleware.RateLimitByIP(0.05, 1),
			handler.Register,
		)

		// brute force guard
		auth.POST("/login",
			middleware.RateLimitByIP(0.1, 3),
			handler.Login,
		)

		passwordLimit := middleware.RateLimitByIP(0.05, 2)
		auth.POST("/forgot-password", passwordLimit, handler.ForgotPassword)
		auth.PATCH("/reset-password", passwordLimit, handler.ResetPassword)

		authenticated := auth.Group("/")
		authenticated.Use(middleware.AuthMiddleware())
		{
			authenticated.GET("/profile",
				middleware.RateLimitByUser(5, 10),
				handler.Profile,
			)
			authenticated.POST("/logout",
				middleware.RateLimitByUser(1, 2),
				handler.Logout,
			)
		}
	}
}
