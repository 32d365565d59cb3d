package app_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-storefront/internal/app"
	"go-storefront/internal/config"
)

func TestBuildApp_ServesCatalogThroughCache(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var productCalls atomic.Int32
	store := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/Customer/Products":
			productCalls.Add(1)
			_, _ = io.WriteString(w, `{"data":[{"id":1,"name":"Phone","price":"200","discount":"0","rate":4}]}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(store.Close)

	mr := miniredis.RunT(t)

	cfg := &config.Config{
		AppEnv:                "test",
		UpstreamBaseURL:       store.URL,
		UpstreamTimeout:       time.Second,
		RedisAddr:             mr.Addr(),
		CacheTTL:              time.Minute,
		KafkaTopic:            "storefront.events",
		OutboxPollInterval:    50 * time.Millisecond,
		FreeShippingThreshold: decimal.NewFromInt(100),
		FlatShippingFee:       decimal.NewFromInt(10),
		CartMaxQuantity:       999,
	}

	r := gin.New()
	shutdown, err := app.BuildApp(r, cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(shutdown)

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	assert.Equal(t, http.StatusOK, get("/health").Code)

	w := get("/api/v1/products")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Phone"`)

	w = get("/api/v1/products?query=phone")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int32(1), productCalls.Load(), "second list is served from cache")

	assert.Equal(t, http.StatusUnauthorized, get("/api/v1/cart").Code)
	assert.Equal(t, http.StatusUnauthorized, get("/api/v1/wishlists/items").Code)
}
