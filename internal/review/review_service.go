package review

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"go-storefront/internal/cache"
	"go-storefront/internal/domain"
	"go-storefront/internal/outbox"
	"go-storefront/internal/pkg/apperror"
	"go-storefront/internal/pkg/validation"
	"go-storefront/internal/session"
	"go-storefront/internal/upstream"
)

type Service interface {
	List(ctx context.Context, productID int64) (ListResponse, error)
	Create(ctx context.Context, s session.Session, productID int64, req CreateReviewRequest) (ListResponse, error)
}

type service struct {
	api      upstream.ReviewAPI
	loader   *cache.Loader
	outbox   outbox.Service
	validate *validator.Validate
	logger   *zap.Logger
}

type Deps struct {
	API    upstream.ReviewAPI
	Loader *cache.Loader
	Outbox outbox.Service
	Logger *zap.Logger
}

func NewService(deps Deps) Service {
	if deps.API == nil {
		panic("review api cannot be nil")
	}
	if deps.Loader == nil {
		deps.Loader = cache.NewLoader(cache.NopCache{}, 0, nil)
	}
	if deps.Outbox == nil {
		deps.Outbox = outbox.Nop{}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	return &service{
		api:      deps.API,
		loader:   deps.Loader,
		outbox:   deps.Outbox,
		validate: validation.New(),
		logger:   deps.Logger,
	}
}

func (s *service) List(ctx context.Context, productID int64) (ListResponse, error) {
	if productID <= 0 {
		return ListResponse{}, ErrInvalidProductID
	}

	reviews, err := cache.Fetch(ctx, s.loader, cache.ReviewsKey(productID), func(ctx context.Context) ([]domain.Review, error) {
		return s.api.ListReviews(ctx, productID)
	})
	if err != nil {
		return ListResponse{}, upstream.Translate(err, ErrProductNotFound)
	}

	return toListResponse(reviews), nil
}

// Create posts the review and returns the product's refreshed review list.
func (s *service) Create(ctx context.Context, sess session.Session, productID int64, req CreateReviewRequest) (ListResponse, error) {
	if sess.IsZero() {
		return ListResponse{}, ErrUnauthenticated
	}
	if productID <= 0 {
		return ListResponse{}, ErrInvalidProductID
	}

	req.Comment = strings.TrimSpace(req.Comment)
	if req.Comment == "" {
		return ListResponse{}, ErrEmptyComment
	}
	if err := s.validate.Struct(req); err != nil {
		return ListResponse{}, apperror.FromValidation(err)
	}

	err := s.api.CreateReview(ctx, sess.Token, upstream.NewReview{
		ProductID: productID,
		Comment:   req.Comment,
		Rate:      req.Rate,
	})
	if err != nil {
		s.logger.Warn("create review failed", zap.Int64("product_id", productID), zap.Error(err))
		return ListResponse{}, upstream.Translate(err, ErrProductNotFound)
	}

	// the product's aggregate rate moves with every review
	s.loader.Invalidate(ctx, cache.ReviewsKey(productID), cache.ProductKey(productID), cache.ProductsKey)

	payload := outbox.ReviewCreatedPayload{ProductID: productID, Rate: req.Rate}
	if err := s.outbox.Record(ctx, outbox.EventReviewCreated, outbox.AggregateReview, strconv.FormatInt(productID, 10), payload); err != nil {
		s.logger.Warn("record review event failed", zap.Error(err))
	}

	return s.List(ctx, productID)
}
