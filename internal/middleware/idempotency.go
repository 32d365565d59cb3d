package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"go-storefront/internal/pkg/response"
	"go-storefront/internal/session"
)

const (
	IdempotencyHeader     = "Idempotency-Key"
	IdempotencyLockKey    = "idempotency_lock_key"
	IdempotencyCacheKey   = "idempotency_cache_key"
	idempotencyLockTTL    = 30 * time.Second
	IdempotencyResultTTL  = 24 * time.Hour
	maxIdempotencyKeySize = 128
)

// idempotentResult is what a completed request leaves under its result key.
type idempotentResult struct {
	Status int             `json:"status"`
	Data   json.RawMessage `json:"data"`
}

// SaveIdempotentResult stores the response a replay should answer with.
func SaveIdempotentResult(ctx context.Context, rdb redis.UniversalClient, key string, status int, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(idempotentResult{Status: status, Data: raw})
	if err != nil {
		return err
	}
	return rdb.Set(ctx, key, payload, IdempotencyResultTTL).Err()
}

// Idempotency replays the stored result of a request already completed with
// the same Idempotency-Key and rejects one still in flight. The handler owns
// the rest: it stores its result under IdempotencyCacheKey and releases the
// lock under IdempotencyLockKey. Requests without the header pass through.
func Idempotency(rdb redis.UniversalClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" || rdb == nil {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeySize {
			abortWith(c, ErrInvalidIdempotencyKey)
			return
		}

		scope := "guest"
		if s, ok := session.FromGin(c); ok {
			scope = s.Key()
		}
		base := "idempotency:" + c.FullPath() + ":" + scope + ":" + key
		ctx := c.Request.Context()

		cached, err := rdb.Get(ctx, base+":result").Bytes()
		switch {
		case err == nil:
			var stored idempotentResult
			if jsonErr := json.Unmarshal(cached, &stored); jsonErr != nil || stored.Status == 0 {
				zap.L().Warn("idempotency result unreadable", zap.String("key", key), zap.Error(jsonErr))
				stored = idempotentResult{Status: http.StatusOK, Data: cached}
			}
			c.Header("Idempotent-Replayed", "true")
			response.Success(c, stored.Status, stored.Data, nil)
			c.Abort()
			return
		case !errors.Is(err, redis.Nil):
			zap.L().Warn("idempotency lookup failed", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}

		acquired, err := rdb.SetNX(ctx, base+":lock", "1", idempotencyLockTTL).Result()
		if err != nil {
			zap.L().Warn("idempotency lock failed", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}
		if !acquired {
			abortWith(c, ErrRequestInProgress)
			return
		}

		c.Set(IdempotencyLockKey, base+":lock")
		c.Set(IdempotencyCacheKey, base+":result")
		c.Next()
	}
}
