package brand

import (
	"context"

	"go.uber.org/zap"

	"go-storefront/internal/cache"
	"go-storefront/internal/upstream"
)

type Service interface {
	List(ctx context.Context) ([]BrandResponse, error)
}

type service struct {
	catalog upstream.CatalogAPI
	loader  *cache.Loader
	logger  *zap.Logger
}

func NewService(catalog upstream.CatalogAPI, loader *cache.Loader, logger *zap.Logger) Service {
	if loader == nil {
		loader = cache.NewLoader(cache.NopCache{}, 0, nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{catalog: catalog, loader: loader, logger: logger}
}

func (s *service) List(ctx context.Context) ([]BrandResponse, error) {
	items, err := cache.Fetch(ctx, s.loader, cache.BrandsKey, s.catalog.ListBrands)
	if err != nil {
		s.logger.Error("list brands failed", zap.Error(err))
		return nil, upstream.Translate(err, nil)
	}

	out := make([]BrandResponse, 0, len(items))
	for _, it := range items {
		out = append(out, BrandResponse{ID: it.ID, Name: it.Name, MainImageURL: it.MainImageURL})
	}
	return out, nil
}
