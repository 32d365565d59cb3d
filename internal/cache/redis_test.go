package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-storefront/internal/cache"
	"go-storefront/internal/domain"
)

func setupTestRedis(t *testing.T) (*cache.RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return cache.NewRedisCache(client, "sf"), mr
}

func TestRedisCache_GetSet(t *testing.T) {
	ctx := context.Background()

	t.Run("miss", func(t *testing.T) {
		c, _ := setupTestRedis(t)
		var cart domain.Cart
		assert.ErrorIs(t, c.Get(ctx, cache.CartKey("u:1"), &cart), cache.ErrCacheMiss)
	})

	t.Run("round_trip_keeps_decimal_precision", func(t *testing.T) {
		c, mr := setupTestRedis(t)
		in := domain.Cart{
			Items: []domain.CartLine{{ProductID: 1, Count: 3, Price: decimal.RequireFromString("19.99"), TotalPrice: decimal.RequireFromString("59.97")}},
			Total: decimal.RequireFromString("59.97"),
		}

		require.NoError(t, c.Set(ctx, cache.CartKey("u:1"), in, 10*time.Minute))
		assert.True(t, mr.Exists("sf:cart:u:1"))

		var out domain.Cart
		require.NoError(t, c.Get(ctx, cache.CartKey("u:1"), &out))
		require.Len(t, out.Items, 1)
		assert.True(t, in.Total.Equal(out.Total))
		assert.True(t, in.Items[0].Price.Equal(out.Items[0].Price))
	})

	t.Run("ttl_has_bounded_jitter", func(t *testing.T) {
		c, mr := setupTestRedis(t)
		require.NoError(t, c.Set(ctx, cache.BrandsKey, []domain.Brand{{ID: 1, Name: "Acme"}}, 10*time.Minute))

		ttl := mr.TTL("sf:" + cache.BrandsKey)
		assert.GreaterOrEqual(t, ttl, 10*time.Minute)
		assert.Less(t, ttl, 11*time.Minute)
	})

	t.Run("invalid_json", func(t *testing.T) {
		c, mr := setupTestRedis(t)
		require.NoError(t, mr.Set("sf:"+cache.ProductsKey, "{broken"))

		var out []domain.Product
		err := c.Get(ctx, cache.ProductsKey, &out)
		require.Error(t, err)
		assert.NotErrorIs(t, err, cache.ErrCacheMiss)
	})
}

func TestRedisCache_Delete(t *testing.T) {
	ctx := context.Background()
	c, mr := setupTestRedis(t)

	require.NoError(t, c.Set(ctx, cache.ProductsKey, []int{1}, time.Minute))
	require.NoError(t, c.Set(ctx, cache.ProductKey(5), 1, time.Minute))
	require.NoError(t, c.Set(ctx, cache.ReviewsKey(5), 1, time.Minute))

	require.NoError(t, c.Delete(ctx, cache.ReviewsKey(5), "missing"))
	assert.False(t, mr.Exists("sf:"+cache.ReviewsKey(5)))

	require.NoError(t, c.DeletePrefix(ctx, cache.CatalogPrefix))
	assert.False(t, mr.Exists("sf:"+cache.ProductsKey))
	assert.False(t, mr.Exists("sf:"+cache.ProductKey(5)))

	assert.NoError(t, c.Delete(ctx))
	assert.NoError(t, c.DeletePrefix(ctx, "nothing:"))
}

func TestFetch(t *testing.T) {
	ctx := context.Background()

	t.Run("loads_once_then_serves_cached", func(t *testing.T) {
		c, _ := setupTestRedis(t)
		l := cache.NewLoader(c, time.Minute, nil)

		var calls int32
		load := func(context.Context) ([]domain.Category, error) {
			atomic.AddInt32(&calls, 1)
			return []domain.Category{{ID: 1, Name: "Phones"}}, nil
		}

		for i := 0; i < 3; i++ {
			got, err := cache.Fetch(ctx, l, cache.CategoriesKey, load)
			require.NoError(t, err)
			assert.Equal(t, "Phones", got[0].Name)
		}
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

		l.Invalidate(ctx, cache.CategoriesKey)
		_, err := cache.Fetch(ctx, l, cache.CategoriesKey, load)
		require.NoError(t, err)
		assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	})

	t.Run("load_error_is_not_cached", func(t *testing.T) {
		c, mr := setupTestRedis(t)
		l := cache.NewLoader(c, time.Minute, nil)
		boom := errors.New("boom")

		_, err := cache.Fetch(ctx, l, cache.BrandsKey, func(context.Context) ([]domain.Brand, error) {
			return nil, boom
		})
		assert.ErrorIs(t, err, boom)
		assert.False(t, mr.Exists("sf:"+cache.BrandsKey))
	})

	t.Run("redis_down_falls_through_to_load", func(t *testing.T) {
		c, mr := setupTestRedis(t)
		mr.Close()
		l := cache.NewLoader(c, time.Minute, nil)

		got, err := cache.Fetch(ctx, l, cache.BrandsKey, func(context.Context) ([]domain.Brand, error) {
			return []domain.Brand{{ID: 2}}, nil
		})
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("concurrent_misses_share_one_load", func(t *testing.T) {
		l := cache.NewLoader(cache.NopCache{}, time.Minute, nil)

		var calls int32
		release := make(chan struct{})
		load := func(context.Context) (int, error) {
			atomic.AddInt32(&calls, 1)
			<-release
			return 7, nil
		}

		var wg sync.WaitGroup
		for i := 0; i < 5; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				v, err := cache.Fetch(ctx, l, "k", load)
				assert.NoError(t, err)
				assert.Equal(t, 7, v)
			}()
		}

		time.Sleep(50 * time.Millisecond)
		close(release)
		wg.Wait()
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})
}
