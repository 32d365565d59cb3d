// Package session carries the caller's bearer token explicitly through the
// request instead of reading it from ambient storage.
package session

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claim names the identity API may use for the user id, in lookup order.
var userIDClaims = []string{
	"user_id",
	"sub",
	"nameid",
	"http://schemas.xmlsoap.org/ws/2005/05/identity/claims/nameidentifier",
}

type Session struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
}

// FromToken reads the token's claims without verifying the signature. The
// store API verifies it; the gateway only needs the identity and expiry.
// Opaque (non-JWT) tokens yield a session with no claims.
func FromToken(token string) Session {
	s := Session{Token: token}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return s
	}

	for _, name := range userIDClaims {
		if v, ok := claims[name].(string); ok && v != "" {
			s.UserID = v
			break
		}
	}

	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		s.ExpiresAt = exp.Time
	}

	return s
}

func (s Session) IsZero() bool {
	return s.Token == ""
}

func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Key identifies the session in cache keys and event payloads without
// exposing the token itself. It is derived from the whole token, never from
// the unverified claims, so two tokens naming the same user get separate keys.
func (s Session) Key() string {
	sum := sha256.Sum256([]byte(s.Token))
	return "t:" + hex.EncodeToString(sum[:16])
}
