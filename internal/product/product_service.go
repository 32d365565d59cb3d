package product

import (
	"context"

	"go.uber.org/zap"

	"go-storefront/internal/cache"
	"go-storefront/internal/domain"
	"go-storefront/internal/pricing"
	"go-storefront/internal/upstream"
)

type Service interface {
	List(ctx context.Context, req ListRequest) (ListResponse, error)
	Detail(ctx context.Context, id int64, qty int) (DetailResponse, error)
}

type service struct {
	catalog upstream.CatalogAPI
	loader  *cache.Loader
	logger  *zap.Logger
}

type Deps struct {
	Catalog upstream.CatalogAPI
	Loader  *cache.Loader
	Logger  *zap.Logger
}

func NewService(deps Deps) Service {
	if deps.Catalog == nil {
		panic("catalog api cannot be nil")
	}
	if deps.Loader == nil {
		deps.Loader = cache.NewLoader(cache.NopCache{}, 0, nil)
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	return &service{
		catalog: deps.Catalog,
		loader:  deps.Loader,
		logger:  deps.Logger,
	}
}

func (s *service) List(ctx context.Context, req ListRequest) (ListResponse, error) {
	all, err := cache.Fetch(ctx, s.loader, cache.ProductsKey, s.catalog.ListProducts)
	if err != nil {
		s.logger.Error("list products failed", zap.Error(err))
		return ListResponse{}, upstream.Translate(err, nil)
	}

	filtered := Apply(all, req.Criteria)
	page := Paginate(filtered, req.Page, req.Limit)

	items := make([]ProductResponse, 0, len(page))
	for _, p := range page {
		items = append(items, toResponse(p))
	}

	s.logger.Debug("products filtered",
		zap.Int("fetched", len(all)),
		zap.Int("matched", len(filtered)),
		zap.String("sort", string(req.Criteria.Sort)),
	)

	return ListResponse{
		Items: items,
		Total: len(filtered),
		Empty: len(filtered) == 0,
	}, nil
}

func (s *service) Detail(ctx context.Context, id int64, qty int) (DetailResponse, error) {
	if id <= 0 {
		return DetailResponse{}, ErrInvalidProductID
	}
	if qty <= 0 {
		return DetailResponse{}, ErrInvalidQuantity
	}

	p, err := cache.Fetch(ctx, s.loader, cache.ProductKey(id), func(ctx context.Context) (domain.Product, error) {
		return s.catalog.GetProduct(ctx, id)
	})
	if err != nil {
		s.logger.Warn("get product failed", zap.Int64("product_id", id), zap.Error(err))
		return DetailResponse{}, upstream.Translate(err, ErrProductNotFound)
	}

	return DetailResponse{
		Product: toResponse(p),
		Quote:   toQuoteResponse(pricing.QuoteProduct(p, qty)),
	}, nil
}
