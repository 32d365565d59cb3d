package cache

import (
	"context"
	"errors"
	"strconv"
	"time"
)

type Cache interface {
	Get(ctx context.Context, key string, dst any) error
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeletePrefix(ctx context.Context, prefix string) error
}

var ErrCacheMiss = errors.New("cache miss")

// Resource keys. Catalog entries are shared by every visitor, carts are per
// session.
const (
	CatalogPrefix  = "catalog:"
	ReviewsPrefix  = "reviews:"
	cartPrefix     = "cart:"
	ProductsKey    = CatalogPrefix + "products"
	CategoriesKey  = CatalogPrefix + "categories"
	BrandsKey      = CatalogPrefix + "brands"
	productKeyBase = CatalogPrefix + "product:"
)

func ProductKey(id int64) string {
	return productKeyBase + strconv.FormatInt(id, 10)
}

func ReviewsKey(productID int64) string {
	return ReviewsPrefix + strconv.FormatInt(productID, 10)
}

func CartKey(sessionKey string) string {
	return cartPrefix + sessionKey
}

// NopCache never stores anything. It is used when Redis is not configured.
type NopCache struct{}

func (NopCache) Get(context.Context, string, any) error                { return ErrCacheMiss }
func (NopCache) Set(context.Context, string, any, time.Duration) error { return nil }
func (NopCache) Delete(context.Context, ...string) error               { return nil }
func (NopCache) DeletePrefix(context.Context, string) error            { return nil }
