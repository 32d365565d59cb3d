package cache

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Loader fills cache entries on miss. Concurrent misses for the same key share
// one upstream call.
type Loader struct {
	cache  Cache
	ttl    time.Duration
	group  singleflight.Group
	logger *zap.Logger
}

func NewLoader(c Cache, ttl time.Duration, logger *zap.Logger) *Loader {
	if c == nil {
		c = NopCache{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{cache: c, ttl: ttl, logger: logger}
}

func (l *Loader) Cache() Cache { return l.cache }

// Invalidate drops keys. Failures are logged; a stale entry expires with its ttl.
func (l *Loader) Invalidate(ctx context.Context, keys ...string) {
	if err := l.cache.Delete(ctx, keys...); err != nil {
		l.logger.Warn("cache invalidate failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

func (l *Loader) InvalidatePrefix(ctx context.Context, prefix string) {
	if err := l.cache.DeletePrefix(ctx, prefix); err != nil {
		l.logger.Warn("cache invalidate failed", zap.String("prefix", prefix), zap.Error(err))
	}
}

// Fetch returns the cached value for key or loads and stores it. Cache
// errors never fail the call; load errors are returned as is and not cached.
func Fetch[T any](ctx context.Context, l *Loader, key string, load func(ctx context.Context) (T, error)) (T, error) {
	v, err, _ := l.group.Do(key, func() (any, error) {
		var cached T
		err := l.cache.Get(ctx, key, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			l.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		}

		fresh, err := load(ctx)
		if err != nil {
			return nil, err
		}

		if err := l.cache.Set(ctx, key, fresh, l.ttl); err != nil {
			l.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
		}
		return fresh, nil
	})

	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
