package cart

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
	l := zap.L().Named("cart.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("cart.handler")
	}
	return &Handler{service: svc, logger: l}
}

func (h *Handler) Summary(c *gin.Context) {
	sess, _ := session.FromGin(c)

	res, err := h.service.Summary(c.Request.Context(), sess)
	if err != nil {
		h.fail(c, "summary", err, nil)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) Count(c *gin.Context) {
	sess, _ := session.FromGin(c)

	n, err := h.service.Count(c.Request.Context(), sess)
	if err != nil {
		h.fail(c, "count", err, nil)
		return
	}
	response.Success(c, http.StatusOK, CountResponse{Count: n}, nil)
}

func (h *Handler) AddItem(c *gin.Context) {
	sess, _ := session.FromGin(c)

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Invalid request body", err.Error())
		return
	}

	res, err := h.service.AddItem(c.Request.Context(), sess, req)
	if err != nil {
		h.fail(c, "add item", err, &res)
		return
	}
	response.Success(c, http.StatusCreated, res, nil)
}

// PATCH /cart/items/:productId {count}
func (h *Handler) ChangeQuantity(c *gin.Context) {
	sess, _ := session.FromGin(c)

	productID, ok := productIDParam(c)
	if !ok {
		return
	}

	var req UpdateQtyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Invalid request body", err.Error())
		return
	}

	res, err := h.service.ChangeQuantity(c.Request.Context(), sess, productID, req.Count)
	if err != nil {
		h.fail(c, "change quantity", err, &res)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

// PUT /cart/items/:productId {count}
func (h *Handler) UpdateQty(c *gin.Context) {
	sess, _ := session.FromGin(c)

	productID, ok := productIDParam(c)
	if !ok {
		return
	}

	var req UpdateQtyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Invalid request body", err.Error())
		return
	}

	res, err := h.service.UpdateQty(c.Request.Context(), sess, productID, req)
	if err != nil {
		h.fail(c, "update quantity", err, &res)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) Increment(c *gin.Context) {
	sess, _ := session.FromGin(c)

	productID, ok := productIDParam(c)
	if !ok {
		return
	}

	res, err := h.service.Increment(c.Request.Context(), sess, productID)
	if err != nil {
		h.fail(c, "increment", err, &res)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) Decrement(c *gin.Context) {
	sess, _ := session.FromGin(c)

	productID, ok := productIDParam(c)
	if !ok {
		return
	}

	res, err := h.service.Decrement(c.Request.Context(), sess, productID)
	if err != nil {
		h.fail(c, "decrement", err, &res)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) Remove(c *gin.Context) {
	sess, _ := session.FromGin(c)

	productID, ok := productIDParam(c)
	if !ok {
		return
	}

	res, err := h.service.Remove(c.Request.Context(), sess, productID)
	if err != nil {
		h.fail(c, "remove", err, &res)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

// DELETE /cart?confirm=true
func (h *Handler) Clear(c *gin.Context) {
	sess, _ := session.FromGin(c)
	confirmed, _ := strconv.ParseBool(c.Query("confirm"))

	res, err := h.service.Clear(c.Request.Context(), sess, confirmed)
	if err != nil {
		h.fail(c, "clear", err, &res)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

// fail writes the error envelope. For mutations the pre-mutation cart rides
// along in details so the client can keep rendering it.
func (h *Handler) fail(c *gin.Context, op string, err error, last *SummaryResponse) {
	httpErr := apperror.ToHTTP(err)
	if httpErr.Status >= http.StatusInternalServerError {
		h.logger.Error("http cart "+op+" failed", zap.Error(err))
	}

	details := httpErr.Details
	if last != nil && last.Items != nil {
		details = ErrorDetails{Cart: *last}
	}
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, details)
}

func productIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, ErrInvalidProductID.HTTPStatus, ErrInvalidProductID.Code, ErrInvalidProductID.Message, nil)
		return 0, false
	}
	return id, true
}
