package wishlist_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"go-storefront/internal/session"
	"go-storefront/internal/wishlist"
)

// ==================== FAKE SERVICE ====================

type fakeWishlistService struct {
	createFunc func(ctx context.Context, s session.Session, productID int64) (wishlist.AddItemResponse, error)
	listFunc   func(ctx context.Context, s session.Session) (wishlist.WishlistResponse, error)
	deleteFunc func(ctx context.Context, s session.Session, productID int64) error
}

func (f *fakeWishlistService) Create(ctx context.Context, s session.Session, productID int64) (wishlist.AddItemResponse, error) {
	if f.createFunc != nil {
		return f.createFunc(ctx, s, productID)
	}
	return wishlist.AddItemResponse{}, nil
}

func (f *fakeWishlistService) List(ctx context.Context, s session.Session) (wishlist.WishlistResponse, error) {
	if f.listFunc != nil {
		return f.listFunc(ctx, s)
	}
	return wishlist.WishlistResponse{}, nil
}

func (f *fakeWishlistService) Delete(ctx context.Context, s session.Session, productID int64) error {
	if f.deleteFunc != nil {
		return f.deleteFunc(ctx, s, productID)
	}
	return nil
}

// ==================== HELPER FUNCTIONS ====================

func setupTestRouter(svc wishlist.Service, authenticated bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if authenticated {
		r.Use(func(c *gin.Context) {
			session.Set(c, sess)
			c.Next()
		})
	}

	h := wishlist.NewHandler(svc)
	r.GET("/wishlists/items", h.List)
	r.POST("/wishlists/items/:productId", h.Create)
	r.DELETE("/wishlists/items/:productId", h.Delete)
	return r
}

func perform(r *gin.Engine, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestWishlistHandler(t *testing.T) {
	t.Run("create_success", func(t *testing.T) {
		svc := &fakeWishlistService{
			createFunc: func(_ context.Context, s session.Session, productID int64) (wishlist.AddItemResponse, error) {
				assert.Equal(t, "u1", s.UserID)
				assert.Equal(t, int64(5), productID)
				return wishlist.AddItemResponse{Message: "ok"}, nil
			},
		}
		w := perform(setupTestRouter(svc, true), http.MethodPost, "/wishlists/items/5")
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("create_conflict", func(t *testing.T) {
		svc := &fakeWishlistService{
			createFunc: func(context.Context, session.Session, int64) (wishlist.AddItemResponse, error) {
				return wishlist.AddItemResponse{}, wishlist.ErrItemAlreadyExists
			},
		}
		w := perform(setupTestRouter(svc, true), http.MethodPost, "/wishlists/items/5")
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("invalid_product_id", func(t *testing.T) {
		w := perform(setupTestRouter(&fakeWishlistService{}, true), http.MethodDelete, "/wishlists/items/abc")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		w := perform(setupTestRouter(&fakeWishlistService{}, false), http.MethodGet, "/wishlists/items")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("list_success", func(t *testing.T) {
		svc := &fakeWishlistService{
			listFunc: func(context.Context, session.Session) (wishlist.WishlistResponse, error) {
				return wishlist.WishlistResponse{Items: []wishlist.WishlistItemResponse{}, Empty: true}, nil
			},
		}
		w := perform(setupTestRouter(svc, true), http.MethodGet, "/wishlists/items")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"empty":true`)
	})

	t.Run("delete_not_found", func(t *testing.T) {
		svc := &fakeWishlistService{
			deleteFunc: func(context.Context, session.Session, int64) error { return wishlist.ErrItemNotFound },
		}
		w := perform(setupTestRouter(svc, true), http.MethodDelete, "/wishlists/items/5")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
