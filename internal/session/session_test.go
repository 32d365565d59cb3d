package session_test

import (
	"strings"
	"testing"
	"time"

	"go-storefront/internal/session"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	return signedWith(t, "test-secret", claims)
}

func signedWith(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestFromToken(t *testing.T) {
	t.Run("aspnet_nameidentifier_claim", func(t *testing.T) {
		exp := time.Now().Add(time.Hour).Truncate(time.Second)
		token := signed(t, jwt.MapClaims{
			"http://schemas.xmlsoap.org/ws/2005/05/identity/claims/nameidentifier": "user-42",
			"exp": exp.Unix(),
		})

		s := session.FromToken(token)
		assert.Equal(t, "user-42", s.UserID)
		assert.True(t, s.ExpiresAt.Equal(exp))
		assert.False(t, s.Expired(time.Now()))
		assert.True(t, strings.HasPrefix(s.Key(), "t:"))
		assert.NotContains(t, s.Key(), "user-42")
	})

	t.Run("expired_token", func(t *testing.T) {
		token := signed(t, jwt.MapClaims{
			"sub": "user-1",
			"exp": time.Now().Add(-time.Minute).Unix(),
		})

		s := session.FromToken(token)
		assert.True(t, s.Expired(time.Now()))
	})

	t.Run("opaque_token", func(t *testing.T) {
		s := session.FromToken("not-a-jwt")
		assert.Equal(t, "not-a-jwt", s.Token)
		assert.Empty(t, s.UserID)
		assert.False(t, s.Expired(time.Now()))
		assert.True(t, strings.HasPrefix(s.Key(), "t:"))
		assert.NotContains(t, s.Key(), "not-a-jwt")
	})

	t.Run("zero_session", func(t *testing.T) {
		assert.True(t, session.Session{}.IsZero())
		assert.False(t, session.FromToken("abc").IsZero())
	})
}

func TestSessionKey_SameUserDifferentTokens(t *testing.T) {
	claims := jwt.MapClaims{"sub": "user-7"}
	owner := session.FromToken(signedWith(t, "real-secret", claims))
	forged := session.FromToken(signedWith(t, "other-secret", claims))

	assert.Equal(t, owner.UserID, forged.UserID)
	assert.NotEqual(t, owner.Key(), forged.Key())
	assert.Equal(t, owner.Key(), session.FromToken(owner.Token).Key())
}
