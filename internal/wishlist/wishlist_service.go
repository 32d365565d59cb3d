package wishlist

import (
	"context"
	"time"

	"go.uber.org/zap"

	"go-storefront/internal/cache"
	"go-storefront/internal/domain"
	"go-storefront/internal/session"
	"go-storefront/internal/upstream"
)

type Service interface {
	Create(ctx context.Context, s session.Session, productID int64) (AddItemResponse, error)
	List(ctx context.Context, s session.Session) (WishlistResponse, error)
	Delete(ctx context.Context, s session.Session, productID int64) error
}

type service struct {
	repo    Repository
	catalog upstream.CatalogAPI
	loader  *cache.Loader
	now     func() time.Time
	logger  *zap.Logger
}

type Deps struct {
	Repo    Repository
	Catalog upstream.CatalogAPI
	Loader  *cache.Loader
	Logger  *zap.Logger
}

func NewService(deps Deps) Service {
	if deps.Repo == nil {
		panic("wishlist repository cannot be nil")
	}
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
		repo:    deps.Repo,
		catalog: deps.Catalog,
		loader:  deps.Loader,
		now:     time.Now,
		logger:  deps.Logger,
	}
}

// Create saves a product for the session's user. The product must exist in
// the catalog.
func (s *service) Create(ctx context.Context, sess session.Session, productID int64) (AddItemResponse, error) {
	if sess.IsZero() {
		return AddItemResponse{}, ErrUnauthenticated
	}
	if productID <= 0 {
		return AddItemResponse{}, ErrInvalidProductID
	}

	p, err := cache.Fetch(ctx, s.loader, cache.ProductKey(productID), func(ctx context.Context) (domain.Product, error) {
		return s.catalog.GetProduct(ctx, productID)
	})
	if err != nil {
		return AddItemResponse{}, upstream.Translate(err, ErrProductNotFound)
	}

	at := s.now().UTC()
	added, err := s.repo.AddItem(ctx, sess.Key(), productID, at)
	if err != nil {
		s.logger.Error("wishlist add failed", zap.String("session", sess.Key()), zap.Int64("product_id", productID), zap.Error(err))
		return AddItemResponse{}, ErrWishlistFailed
	}
	if !added {
		return AddItemResponse{}, ErrItemAlreadyExists
	}

	return AddItemResponse{
		Message: "Product added to wishlist successfully",
		Item:    toItemResponse(p, at),
	}, nil
}

// List joins the saved ids with the current catalog. Products that left the
// catalog are skipped.
func (s *service) List(ctx context.Context, sess session.Session) (WishlistResponse, error) {
	if sess.IsZero() {
		return WishlistResponse{}, ErrUnauthenticated
	}

	entries, err := s.repo.GetItems(ctx, sess.Key())
	if err != nil {
		s.logger.Error("wishlist list failed", zap.String("session", sess.Key()), zap.Error(err))
		return WishlistResponse{}, ErrWishlistFailed
	}

	items := make([]WishlistItemResponse, 0, len(entries))
	if len(entries) > 0 {
		products, err := cache.Fetch(ctx, s.loader, cache.ProductsKey, s.catalog.ListProducts)
		if err != nil {
			return WishlistResponse{}, upstream.Translate(err, nil)
		}

		byID := make(map[int64]domain.Product, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}

		for _, e := range entries {
			p, ok := byID[e.ProductID]
			if !ok {
				continue
			}
			items = append(items, toItemResponse(p, e.AddedAt))
		}
	}

	return WishlistResponse{
		Items:     items,
		ItemCount: len(items),
		Empty:     len(items) == 0,
	}, nil
}

func (s *service) Delete(ctx context.Context, sess session.Session, productID int64) error {
	if sess.IsZero() {
		return ErrUnauthenticated
	}
	if productID <= 0 {
		return ErrInvalidProductID
	}

	removed, err := s.repo.DeleteItem(ctx, sess.Key(), productID)
	if err != nil {
		s.logger.Error("wishlist delete failed", zap.String("session", sess.Key()), zap.Int64("product_id", productID), zap.Error(err))
		return ErrWishlistFailed
	}
	if !removed {
		return ErrItemNotFound
	}
	return nil
}
