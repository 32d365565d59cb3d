package product

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"go-storefront/internal/pkg/apperror"
	"go-storefront/internal/pkg/response"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(svc Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("product.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("product.handler")
	}
	return &Handler{service: svc, logger: l}
}

// GET /products
func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeValidation, "Invalid query", err.Error())
		return
	}

	criteria, err := q.criteria()
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	res, err := h.service.List(c.Request.Context(), ListRequest{
		Criteria: criteria,
		Page:     q.Page,
		Limit:    q.Limit,
	})
	if err != nil {
		h.logger.Error("http list products failed", zap.Error(err))
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	var meta *response.PaginationMeta
	if q.Limit > 0 {
		page := max(q.Page, 1)
		meta = response.NewPaginationMeta(int64(res.Total), page, q.Limit)
	}

	response.Success(c, http.StatusOK, res, meta)
}

// GET /products/:id?qty=
func (h *Handler) Detail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, ErrInvalidProductID.HTTPStatus, ErrInvalidProductID.Code, ErrInvalidProductID.Message, nil)
		return
	}

	qty := 1
	if raw := c.Query("qty"); raw != "" {
		qty, err = strconv.Atoi(raw)
		if err != nil {
			response.Error(c, ErrInvalidQuantity.HTTPStatus, ErrInvalidQuantity.Code, ErrInvalidQuantity.Message, nil)
			return
		}
	}

	res, err := h.service.Detail(c.Request.Context(), id, qty)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, res, nil)
}

// criteria parses the numeric bounds. Empty values are left unset.
func (q ListQuery) criteria() (FilterCriteria, error) {
	c := FilterCriteria{
		Query:           q.Query,
		HasDiscountOnly: q.DiscountOnly,
		Sort:            SortOrder(strings.TrimSpace(q.Sort)),
	}

	var invalid []string
	parse := func(name, raw string) *decimal.Decimal {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil
		}
		d, err := decimal.NewFromString(raw)
		if err != nil || d.IsNegative() {
			invalid = append(invalid, name)
			return nil
		}
		return &d
	}

	c.MinPrice = parse("minPrice", q.MinPrice)
	c.MaxPrice = parse("maxPrice", q.MaxPrice)
	c.MinRate = parse("minRate", q.MinRate)

	if len(invalid) > 0 {
		return FilterCriteria{}, ErrInvalidFilter.WithDetails(invalid)
	}
	return c, nil
}
