package product_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-storefront/internal/pkg/response"
	"go-storefront/internal/product"
)

type fakeProductService struct {
	ListFn   func(ctx context.Context, req product.ListRequest) (product.ListResponse, error)
	DetailFn func(ctx context.Context, id int64, qty int) (product.DetailResponse, error)
}

func (f *fakeProductService) List(ctx context.Context, req product.ListRequest) (product.ListResponse, error) {
	return f.ListFn(ctx, req)
}

func (f *fakeProductService) Detail(ctx context.Context, id int64, qty int) (product.DetailResponse, error) {
	return f.DetailFn(ctx, id, qty)
}

func setupRouter(svc product.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := product.NewHandler(svc, zap.NewNop())
	r.GET("/products", h.List)
	r.GET("/products/:id", h.Detail)
	return r
}

func serve(r *gin.Engine, target string) (*httptest.ResponseRecorder, response.APIResponse) {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))

	var res response.APIResponse
	_ = json.Unmarshal(w.Body.Bytes(), &res)
	return w, res
}

func TestProductHandler_List(t *testing.T) {
	t.Run("parses_criteria", func(t *testing.T) {
		svc := &fakeProductService{
			ListFn: func(_ context.Context, req product.ListRequest) (product.ListResponse, error) {
				c := req.Criteria
				assert.Equal(t, "phone", c.Query)
				require.NotNil(t, c.MinPrice)
				assert.Equal(t, "10", c.MinPrice.String())
				require.NotNil(t, c.MaxPrice)
				assert.Equal(t, "99.5", c.MaxPrice.String())
				assert.Nil(t, c.MinRate)
				assert.True(t, c.HasDiscountOnly)
				assert.Equal(t, product.SortPriceDesc, c.Sort)
				assert.Equal(t, 2, req.Page)
				assert.Equal(t, 5, req.Limit)
				return product.ListResponse{Items: []product.ProductResponse{}, Total: 7}, nil
			},
		}

		w, res := serve(setupRouter(svc), "/products?query=phone&minPrice=10&maxPrice=99.5&discountOnly=true&sort=price-desc&page=2&limit=5")
		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, res.Meta)
		assert.Equal(t, int64(7), res.Meta.Total)
		assert.Equal(t, 2, res.Meta.TotalPages)
	})

	t.Run("no_pagination_meta_without_limit", func(t *testing.T) {
		svc := &fakeProductService{
			ListFn: func(context.Context, product.ListRequest) (product.ListResponse, error) {
				return product.ListResponse{Items: []product.ProductResponse{}, Empty: true}, nil
			},
		}

		w, res := serve(setupRouter(svc), "/products")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Nil(t, res.Meta)
		assert.Equal(t, true, res.Data.(map[string]any)["empty"])
	})

	t.Run("bad_numeric_filter", func(t *testing.T) {
		svc := &fakeProductService{}
		w, res := serve(setupRouter(svc), "/products?minPrice=abc&minRate=-1")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, product.ErrInvalidFilter.Code, res.Error.Code)
		assert.ElementsMatch(t, []any{"minPrice", "minRate"}, res.Error.Details)
	})

	t.Run("limit_out_of_range", func(t *testing.T) {
		w, _ := serve(setupRouter(&fakeProductService{}), "/products?limit=1000")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("service_error", func(t *testing.T) {
		svc := &fakeProductService{
			ListFn: func(context.Context, product.ListRequest) (product.ListResponse, error) {
				return product.ListResponse{}, product.ErrProductNotFound
			},
		}

		w, _ := serve(setupRouter(svc), "/products")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestProductHandler_Detail(t *testing.T) {
	t.Run("default_quantity_is_one", func(t *testing.T) {
		svc := &fakeProductService{
			DetailFn: func(_ context.Context, id int64, qty int) (product.DetailResponse, error) {
				assert.Equal(t, int64(12), id)
				assert.Equal(t, 1, qty)
				return product.DetailResponse{}, nil
			},
		}

		w, _ := serve(setupRouter(svc), "/products/12")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("explicit_quantity", func(t *testing.T) {
		svc := &fakeProductService{
			DetailFn: func(_ context.Context, _ int64, qty int) (product.DetailResponse, error) {
				assert.Equal(t, 4, qty)
				return product.DetailResponse{}, nil
			},
		}

		w, _ := serve(setupRouter(svc), "/products/12?qty=4")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("invalid_id", func(t *testing.T) {
		w, res := serve(setupRouter(&fakeProductService{}), "/products/abc")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, product.ErrInvalidProductID.Code, res.Error.Code)
	})

	t.Run("invalid_qty", func(t *testing.T) {
		w, _ := serve(setupRouter(&fakeProductService{}), "/products/1?qty=two")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
