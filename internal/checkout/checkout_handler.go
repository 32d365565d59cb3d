package checkout

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"go-storefront/internal/middleware"
	"go-storefront/internal/pkg/apperror"
	"go-storefront/internal/pkg/response"
	"go-storefront/internal/session"
)

type Handler struct {
	service Service
	rdb     redis.UniversalClient
	logger  *zap.Logger
}

// NewHandler takes the redis client the idempotency middleware uses; nil
// disables result caching.
func NewHandler(svc Service, rdb redis.UniversalClient, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("checkout.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("checkout.handler")
	}
	return &Handler{service: svc, rdb: rdb, logger: l}
}

// POST /checkout
func (h *Handler) Checkout(c *gin.Context) {
	sess, _ := session.FromGin(c)

	lockKey, _ := c.Get(middleware.IdempotencyLockKey)
	defer func() {
		if lockKey != nil && h.rdb != nil {
			h.rdb.Del(c.Request.Context(), lockKey.(string))
		}
	}()

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http checkout validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, apperror.CodeValidation, "Invalid request body", err.Error())
		return
	}

	res, err := h.service.Checkout(c.Request.Context(), sess, req)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		if httpErr.Status >= http.StatusInternalServerError {
			h.logger.Error("http checkout service error", zap.String("session", sess.Key()), zap.Error(err))
		}
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	if cacheKey, exists := c.Get(middleware.IdempotencyCacheKey); exists && h.rdb != nil {
		if err := middleware.SaveIdempotentResult(c.Request.Context(), h.rdb, cacheKey.(string), http.StatusCreated, res); err != nil {
			h.logger.Warn("idempotency result not stored", zap.String("cache_key", cacheKey.(string)), zap.Error(err))
		} else {
			h.logger.Debug("idempotency response cached", zap.String("cache_key", cacheKey.(string)))
		}
	}

	response.Success(c, http.StatusCreated, res, nil)
}
