package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-storefront/internal/middleware"
	"go-storefront/internal/pkg/response"
	"go-storefront/internal/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func signedToken(t *testing.T, userID string, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"exp": exp.Unix(),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func decode(t *testing.T, w *httptest.ResponseRecorder) response.APIResponse {
	t.Helper()
	var res response.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res
}

func sessionEcho(c *gin.Context) {
	s, ok := session.FromGin(c)
	c.JSON(http.StatusOK, gin.H{"ok": ok, "user": s.UserID})
}

func TestAuthMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/me", middleware.AuthMiddleware(), sessionEcho)

	t.Run("missing_token", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "UNAUTHORIZED", decode(t, w).Error.Code)
	})

	t.Run("bearer_header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+signedToken(t, "42", time.Now().Add(time.Hour)))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"ok":true,"user":"42"}`, w.Body.String())
	})

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: middleware.AccessTokenCookie, Value: signedToken(t, "7", time.Now().Add(time.Hour))})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"ok":true,"user":"7"}`, w.Body.String())
	})

	t.Run("opaque_token_is_accepted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("expired", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+signedToken(t, "42", time.Now().Add(-time.Minute)))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "TOKEN_EXPIRED", decode(t, w).Error.Code)
	})
}

func TestOptionalAuthMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/x", middleware.OptionalAuthMiddleware(), sessionEcho)

	t.Run("guest", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		assert.JSONEq(t, `{"ok":false,"user":""}`, w.Body.String())
	})

	t.Run("expired_token_is_guest", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Authorization", "Bearer "+signedToken(t, "42", time.Now().Add(-time.Minute)))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.JSONEq(t, `{"ok":false,"user":""}`, w.Body.String())
	})
}

func TestRateLimitByIP(t *testing.T) {
	r := gin.New()
	r.GET("/x", middleware.RateLimitByIP(0.001, 2), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)
}

func TestRateLimitByUser_SeparatesSessions(t *testing.T) {
	r := gin.New()
	r.GET("/x",
		middleware.AuthMiddleware(),
		middleware.RateLimitByUser(0.001, 1),
		func(c *gin.Context) { c.Status(http.StatusNoContent) },
	)

	call := func(token string) int {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	alice := signedToken(t, "alice", time.Now().Add(time.Hour))
	bob := signedToken(t, "bob", time.Now().Add(time.Hour))

	assert.Equal(t, http.StatusNoContent, call(alice))
	assert.Equal(t, http.StatusTooManyRequests, call(alice))
	assert.Equal(t, http.StatusNoContent, call(bob))
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/x", func(c *gin.Context) { response.Success(c, http.StatusOK, nil, nil) })

	t.Run("generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

		id := w.Header().Get(middleware.RequestIDHeader)
		assert.NotEmpty(t, id)
		assert.Equal(t, id, decode(t, w).RequestID)
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set(middleware.RequestIDHeader, "abc-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "abc-123", w.Header().Get(middleware.RequestIDHeader))
	})
}

func TestIdempotency(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	calls := 0
	r := gin.New()
	r.POST("/pay", middleware.Idempotency(rdb), func(c *gin.Context) {
		calls++
		lockKey := c.GetString(middleware.IdempotencyLockKey)
		cacheKey := c.GetString(middleware.IdempotencyCacheKey)
		if cacheKey != "" {
			require.NoError(t, middleware.SaveIdempotentResult(c.Request.Context(), rdb, cacheKey, http.StatusCreated, gin.H{"n": 1}))
		}
		if lockKey != "" {
			rdb.Del(c.Request.Context(), lockKey)
		}
		response.Success(c, http.StatusCreated, gin.H{"n": 1}, nil)
	})

	post := func(key string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/pay", nil)
		if key != "" {
			req.Header.Set(middleware.IdempotencyHeader, key)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("first_call_runs_handler", func(t *testing.T) {
		w := post("k1")
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
	})

	t.Run("repeat_is_replayed", func(t *testing.T) {
		w := post("k1")
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "true", w.Header().Get("Idempotent-Replayed"))
		assert.Equal(t, 1, calls)

		res := decode(t, w)
		assert.Equal(t, map[string]any{"n": float64(1)}, res.Data)
	})

	t.Run("in_flight_is_rejected", func(t *testing.T) {
		mr.Set("idempotency:/pay:guest:k2:lock", "1")
		w := post("k2")
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, 1, calls)
	})

	t.Run("no_header_passes_through", func(t *testing.T) {
		post("")
		post("")
		assert.Equal(t, 3, calls)
	})
}

func TestIdempotency_ScopedToToken(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	calls := 0
	r := gin.New()
	r.POST("/pay", middleware.AuthMiddleware(), middleware.Idempotency(rdb), func(c *gin.Context) {
		calls++
		if cacheKey := c.GetString(middleware.IdempotencyCacheKey); cacheKey != "" {
			require.NoError(t, middleware.SaveIdempotentResult(c.Request.Context(), rdb, cacheKey, http.StatusCreated, gin.H{"url": "https://pay.example/secret"}))
		}
		rdb.Del(c.Request.Context(), c.GetString(middleware.IdempotencyLockKey))
		response.Success(c, http.StatusCreated, gin.H{"url": "https://pay.example/secret"}, nil)
	})

	post := func(token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/pay", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set(middleware.IdempotencyHeader, "order-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	exp := time.Now().Add(time.Hour)
	owner := signedToken(t, "7", exp)
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "7", "exp": exp.Unix()}).
		SignedString([]byte("other-secret"))
	require.NoError(t, err)

	post(owner)
	w := post(forged)
	assert.Empty(t, w.Header().Get("Idempotent-Replayed"))
	assert.Equal(t, 2, calls)
}
