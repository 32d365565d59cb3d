package cart_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-storefront/internal/cart"
	"go-storefront/internal/pkg/response"
	"go-storefront/internal/session"
)

type fakeCartService struct {
	SummaryFn        func(ctx context.Context, s session.Session) (cart.SummaryResponse, error)
	CountFn          func(ctx context.Context, s session.Session) (int, error)
	AddItemFn        func(ctx context.Context, s session.Session, req cart.AddItemRequest) (cart.SummaryResponse, error)
	UpdateQtyFn      func(ctx context.Context, s session.Session, productID int64, req cart.UpdateQtyRequest) (cart.SummaryResponse, error)
	ChangeQuantityFn func(ctx context.Context, s session.Session, productID int64, target int) (cart.SummaryResponse, error)
	IncrementFn      func(ctx context.Context, s session.Session, productID int64) (cart.SummaryResponse, error)
	DecrementFn      func(ctx context.Context, s session.Session, productID int64) (cart.SummaryResponse, error)
	RemoveFn         func(ctx context.Context, s session.Session, productID int64) (cart.SummaryResponse, error)
	ClearFn          func(ctx context.Context, s session.Session, confirmed bool) (cart.SummaryResponse, error)
}

func (f *fakeCartService) Summary(ctx context.Context, s session.Session) (cart.SummaryResponse, error) {
	return f.SummaryFn(ctx, s)
}

func (f *fakeCartService) Count(ctx context.Context, s session.Session) (int, error) {
	return f.CountFn(ctx, s)
}

func (f *fakeCartService) AddItem(ctx context.Context, s session.Session, req cart.AddItemRequest) (cart.SummaryResponse, error) {
	return f.AddItemFn(ctx, s, req)
}

func (f *fakeCartService) UpdateQty(ctx context.Context, s session.Session, productID int64, req cart.UpdateQtyRequest) (cart.SummaryResponse, error) {
	return f.UpdateQtyFn(ctx, s, productID, req)
}

func (f *fakeCartService) ChangeQuantity(ctx context.Context, s session.Session, productID int64, target int) (cart.SummaryResponse, error) {
	return f.ChangeQuantityFn(ctx, s, productID, target)
}

func (f *fakeCartService) Increment(ctx context.Context, s session.Session, productID int64) (cart.SummaryResponse, error) {
	return f.IncrementFn(ctx, s, productID)
}

func (f *fakeCartService) Decrement(ctx context.Context, s session.Session, productID int64) (cart.SummaryResponse, error) {
	return f.DecrementFn(ctx, s, productID)
}

func (f *fakeCartService) Remove(ctx context.Context, s session.Session, productID int64) (cart.SummaryResponse, error) {
	return f.RemoveFn(ctx, s, productID)
}

func (f *fakeCartService) Clear(ctx context.Context, s session.Session, confirmed bool) (cart.SummaryResponse, error) {
	return f.ClearFn(ctx, s, confirmed)
}

func (f *fakeCartService) Invalidate(context.Context, session.Session) {}

func setupRouter(svc cart.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		session.Set(c, sess)
		c.Next()
	})

	h := cart.NewHandler(svc, zap.NewNop())
	r.GET("/cart", h.Summary)
	r.GET("/cart/count", h.Count)
	r.POST("/cart/items", h.AddItem)
	r.PATCH("/cart/items/:productId", h.ChangeQuantity)
	r.POST("/cart/items/:productId/decrement", h.Decrement)
	r.DELETE("/cart", h.Clear)
	return r
}

func do(r *gin.Engine, method, target, body string) (*httptest.ResponseRecorder, response.APIResponse) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	var res response.APIResponse
	_ = json.Unmarshal(w.Body.Bytes(), &res)
	return w, res
}

func TestCartHandler_Count(t *testing.T) {
	svc := &fakeCartService{
		CountFn: func(_ context.Context, s session.Session) (int, error) {
			assert.Equal(t, "tok", s.Token)
			return 4, nil
		},
	}

	w, res := do(setupRouter(svc), http.MethodGet, "/cart/count", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{"count": 4.0}, res.Data)
}

func TestCartHandler_AddItem(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &fakeCartService{
			AddItemFn: func(_ context.Context, _ session.Session, req cart.AddItemRequest) (cart.SummaryResponse, error) {
				assert.Equal(t, int64(3), req.ProductID)
				return cart.SummaryResponse{Items: []cart.LineResponse{{ProductID: 3, Count: 1}}, ItemCount: 1}, nil
			},
		}

		w, res := do(setupRouter(svc), http.MethodPost, "/cart/items", `{"productId":3}`)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.True(t, res.Success)
	})

	t.Run("malformed_body", func(t *testing.T) {
		w, res := do(setupRouter(&fakeCartService{}), http.MethodPost, "/cart/items", `{"productId":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, res.Error)
	})
}

func TestCartHandler_ChangeQuantity(t *testing.T) {
	svc := &fakeCartService{
		ChangeQuantityFn: func(_ context.Context, _ session.Session, productID int64, target int) (cart.SummaryResponse, error) {
			assert.Equal(t, int64(12), productID)
			assert.Equal(t, 5, target)
			return cart.SummaryResponse{Items: []cart.LineResponse{}}, nil
		},
	}

	w, _ := do(setupRouter(svc), http.MethodPatch, "/cart/items/12", `{"count":5}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = do(setupRouter(svc), http.MethodPatch, "/cart/items/abc", `{"count":5}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartHandler_Decrement_FloorCarriesCart(t *testing.T) {
	svc := &fakeCartService{
		DecrementFn: func(context.Context, session.Session, int64) (cart.SummaryResponse, error) {
			return cart.SummaryResponse{Items: []cart.LineResponse{{ProductID: 1, Count: 1}}, ItemCount: 1}, cart.ErrQuantityFloor
		},
	}

	w, res := do(setupRouter(svc), http.MethodPost, "/cart/items/1/decrement", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.NotNil(t, res.Error)
	assert.Equal(t, "QUANTITY_MINIMUM_REACHED", res.Error.Code)

	details, ok := res.Error.Details.(map[string]any)
	require.True(t, ok)
	last := details["cart"].(map[string]any)
	assert.Equal(t, 1.0, last["itemCount"])
}

func TestCartHandler_Clear(t *testing.T) {
	var got []bool
	svc := &fakeCartService{
		ClearFn: func(_ context.Context, _ session.Session, confirmed bool) (cart.SummaryResponse, error) {
			got = append(got, confirmed)
			if !confirmed {
				return cart.SummaryResponse{Items: []cart.LineResponse{}}, cart.ErrConfirmationRequired
			}
			return cart.SummaryResponse{Items: []cart.LineResponse{}, Empty: true}, nil
		},
	}
	r := setupRouter(svc)

	w, _ := do(r, http.MethodDelete, "/cart", "")
	assert.Equal(t, http.StatusPreconditionRequired, w.Code)

	w, res := do(r, http.MethodDelete, "/cart?confirm=true", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, res.Success)
	assert.Equal(t, []bool{false, true}, got)
}
