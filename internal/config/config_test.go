package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "APP_ENV", "UPSTREAM_BASE_URL", "CACHE_TTL",
		"SHIPPING_FREE_THRESHOLD", "SHIPPING_FLAT_FEE", "CART_MAX_QUANTITY",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "https://kashop1.runasp.net/api", cfg.UpstreamBaseURL)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.True(t, cfg.FreeShippingThreshold.Equal(decimal.NewFromInt(100)))
	assert.True(t, cfg.FlatShippingFee.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, 999, cfg.CartMaxQuantity)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("UPSTREAM_BASE_URL", "http://store.local/api/")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("SHIPPING_FREE_THRESHOLD", "250.50")
	t.Setenv("SHIPPING_FLAT_FEE", "-3")
	t.Setenv("CART_MAX_QUANTITY", "not-a-number")
	t.Setenv("ALLOWED_ORIGINS", "https://shop.example, ,https://admin.example")
	t.Setenv("APP_ENV", "production")

	cfg := Load()

	assert.Equal(t, "http://store.local/api", cfg.UpstreamBaseURL)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.True(t, cfg.FreeShippingThreshold.Equal(decimal.RequireFromString("250.50")))
	assert.True(t, cfg.FlatShippingFee.Equal(decimal.NewFromInt(10)), "negative fee falls back to default")
	assert.Equal(t, 999, cfg.CartMaxQuantity)
	assert.Equal(t, []string{"https://shop.example", "https://admin.example"}, cfg.AllowedOrigins)
	assert.True(t, cfg.IsProduction())
}
