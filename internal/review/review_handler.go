package review

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-storefront/internal/pkg/apperror"
	"go-storefront/internal/pkg/response"
	"go-storefront/internal/session"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(svc Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("review.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("review.handler")
	}
	return &Handler{service: svc, logger: l}
}

// GET /products/:id/reviews
func (h *Handler) List(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, ErrInvalidProductID.HTTPStatus, ErrInvalidProductID.Code, ErrInvalidProductID.Message, nil)
		return
	}

	res, err := h.service.List(c.Request.Context(), productID)
	if err != nil {
		h.logger.Error("http list reviews failed", zap.Int64("product_id", productID), zap.Error(err))
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, res, nil)
}

// POST /products/:id/reviews
func (h *Handler) Create(c *gin.Context) {
	sess, _ := session.FromGin(c)

	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, ErrInvalidProductID.HTTPStatus, ErrInvalidProductID.Code, ErrInvalidProductID.Message, nil)
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperror.Wrap(err, apperror.CodeInvalidInput, "Invalid request body", http.StatusBadRequest)
		httpErr := apperror.ToHTTP(appErr)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, err.Error())
		return
	}

	res, err := h.service.Create(c.Request.Context(), sess, productID, req)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, http.StatusCreated, res, nil)
}
