package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"go-storefront/internal/session"
)

const AccessTokenCookie = "access_token"

// AuthMiddleware builds the request session from the bearer header or the
// access_token cookie. The token is verified by the store API on every call;
// here only presence and expiry are checked.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			abortWith(c, ErrUnauthorized)
			return
		}

		s := session.FromToken(token)
		if s.Expired(time.Now()) {
			abortWith(c, ErrTokenExpired)
			return
		}

		session.Set(c, s)
		c.Next()
	}
}

func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			c.Next()
			return
		}

		// an expired token is treated as a guest
		if s := session.FromToken(token); !s.Expired(time.Now()) {
			session.Set(c, s)
		}
		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		if scheme, token, ok := strings.Cut(h, " "); ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}

	if cookie, err := c.Cookie(AccessTokenCookie); err == nil {
		return strings.TrimSpace(cookie)
	}
	return ""
}
