package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-storefront/internal/pkg/apperror"
	"go-storefront/internal/pkg/response"
)

var (
	ErrUnauthorized = apperror.New(
		apperror.CodeUnauthorized,
		"Unauthorized access",
		http.StatusUnauthorized,
	)

	ErrTokenExpired = apperror.New(
		"TOKEN_EXPIRED",
		"Authentication token expired, please login again",
		http.StatusUnauthorized,
	)

	ErrTooManyRequests = apperror.New(
		apperror.CodeTooManyRequests,
		"Too many requests, please slow down",
		http.StatusTooManyRequests,
	)

	ErrRequestInProgress = apperror.New(
		apperror.CodeConflict,
		"A request with this idempotency key is already being processed",
		http.StatusConflict,
	)

	ErrInvalidIdempotencyKey = apperror.New(
		apperror.CodeInvalidInput,
		"Idempotency-Key header is too long",
		http.StatusBadRequest,
	)
)

func abortWith(c *gin.Context, err *apperror.AppError) {
	response.Error(c, err.HTTPStatus, err.Code, err.Message, nil)
	c.Abort()
}
