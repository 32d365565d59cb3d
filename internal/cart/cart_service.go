package cart

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"go-storefront/internal/cache"
	"go-storefront/internal/domain"
	"go-storefront/internal/outbox"
	"go-storefront/internal/pkg/apperror"
	"go-storefront/internal/pkg/validation"
	"go-storefront/internal/pricing"
	"go-storefront/internal/session"
	"go-storefront/internal/upstream"
)

const DefaultMaxQuantity = 999

type Service interface {
	Summary(ctx context.Context, s session.Session) (SummaryResponse, error)
	Count(ctx context.Context, s session.Session) (int, error)

	AddItem(ctx context.Context, s session.Session, req AddItemRequest) (SummaryResponse, error)
	UpdateQty(ctx context.Context, s session.Session, productID int64, req UpdateQtyRequest) (SummaryResponse, error)
	ChangeQuantity(ctx context.Context, s session.Session, productID int64, target int) (SummaryResponse, error)

	Increment(ctx context.Context, s session.Session, productID int64) (SummaryResponse, error)
	Decrement(ctx context.Context, s session.Session, productID int64) (SummaryResponse, error)

	Remove(ctx context.Context, s session.Session, productID int64) (SummaryResponse, error)
	Clear(ctx context.Context, s session.Session, confirmed bool) (SummaryResponse, error)

	// Invalidate drops the session's cached cart.
	Invalidate(ctx context.Context, s session.Session)
}

type service struct {
	api      upstream.CartAPI
	loader   *cache.Loader
	outbox   outbox.Service
	policy   pricing.ShippingPolicy
	maxQty   int
	validate *validator.Validate
	logger   *zap.Logger
}

type Deps struct {
	API         upstream.CartAPI
	Loader      *cache.Loader
	Outbox      outbox.Service
	Shipping    pricing.ShippingPolicy
	MaxQuantity int
	Logger      *zap.Logger
}

func NewService(deps Deps) Service {
	if deps.API == nil {
		panic("cart api cannot be nil")
	}
	if deps.Loader == nil {
		deps.Loader = cache.NewLoader(cache.NopCache{}, 0, nil)
	}
	if deps.Outbox == nil {
		deps.Outbox = outbox.Nop{}
	}
	if deps.Shipping.FreeThreshold.IsZero() && deps.Shipping.FlatFee.IsZero() {
		deps.Shipping = pricing.DefaultShippingPolicy()
	}
	if deps.MaxQuantity <= 0 {
		deps.MaxQuantity = DefaultMaxQuantity
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	return &service{
		api:      deps.API,
		loader:   deps.Loader,
		outbox:   deps.Outbox,
		policy:   deps.Shipping,
		maxQty:   deps.MaxQuantity,
		validate: validation.New(),
		logger:   deps.Logger,
	}
}

// ========================
// helpers
// ========================

func (s *service) load(ctx context.Context, sess session.Session) (domain.Cart, error) {
	if sess.IsZero() {
		return domain.Cart{}, ErrUnauthenticated
	}

	c, err := cache.Fetch(ctx, s.loader, cache.CartKey(sess.Key()), func(ctx context.Context) (domain.Cart, error) {
		return s.api.GetCart(ctx, sess.Token)
	})
	if err != nil {
		return domain.Cart{}, upstream.Translate(err, nil)
	}
	return c, nil
}

func (s *service) summarize(c domain.Cart) SummaryResponse {
	return summarize(c, s.policy, s.maxQty)
}

func (s *service) line(c domain.Cart, productID int64) (domain.CartLine, error) {
	if productID <= 0 {
		return domain.CartLine{}, ErrInvalidProductID
	}
	l, ok := c.Line(productID)
	if !ok {
		return domain.CartLine{}, ErrItemNotFound
	}
	return l, nil
}

// mutate runs one write against the store API. On success the cached cart is
// dropped and the authoritative cart is fetched and returned. On any failure
// the pre-mutation cart is returned with the error; nothing is retried.
func (s *service) mutate(
	ctx context.Context,
	sess session.Session,
	before domain.Cart,
	payload outbox.CartUpdatedPayload,
	write func(ctx context.Context) error,
) (SummaryResponse, error) {
	if err := write(ctx); err != nil {
		s.logger.Warn("cart mutation failed",
			zap.String("session", sess.Key()),
			zap.String("action", payload.Action),
			zap.Int64("product_id", payload.ProductID),
			zap.Error(err),
		)
		return s.summarize(before), upstream.Translate(err, ErrItemNotFound)
	}

	s.Invalidate(ctx, sess)

	after, err := s.load(ctx, sess)
	if err != nil {
		s.logger.Warn("cart refresh after mutation failed", zap.String("session", sess.Key()), zap.Error(err))
		return s.summarize(before), err
	}

	eventType := outbox.EventCartUpdated
	if payload.Action == "clear" {
		eventType = outbox.EventCartCleared
	}
	if err := s.outbox.Record(ctx, eventType, outbox.AggregateCart, sess.Key(), payload); err != nil {
		s.logger.Warn("record cart event failed", zap.String("event_type", eventType), zap.Error(err))
	}

	return s.summarize(after), nil
}

// ========================
// queries
// ========================

func (s *service) Summary(ctx context.Context, sess session.Session) (SummaryResponse, error) {
	c, err := s.load(ctx, sess)
	if err != nil {
		return SummaryResponse{}, err
	}
	return s.summarize(c), nil
}

func (s *service) Count(ctx context.Context, sess session.Session) (int, error) {
	c, err := s.load(ctx, sess)
	if err != nil {
		return 0, err
	}
	return ItemCount(c), nil
}

func (s *service) Invalidate(ctx context.Context, sess session.Session) {
	if sess.IsZero() {
		return
	}
	s.loader.Invalidate(ctx, cache.CartKey(sess.Key()))
}

// ========================
// mutations
// ========================

func (s *service) AddItem(ctx context.Context, sess session.Session, req AddItemRequest) (SummaryResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return SummaryResponse{}, apperror.FromValidation(err)
	}

	before, err := s.load(ctx, sess)
	if err != nil {
		return SummaryResponse{}, err
	}

	if l, ok := before.Line(req.ProductID); ok && l.Count >= s.maxQty {
		return s.summarize(before), ErrQuantityCeiling
	}

	payload := outbox.CartUpdatedPayload{Action: "add", ProductID: req.ProductID, Count: 1}
	return s.mutate(ctx, sess, before, payload, func(ctx context.Context) error {
		return s.api.AddToCart(ctx, sess.Token, req.ProductID)
	})
}

func (s *service) Increment(ctx context.Context, sess session.Session, productID int64) (SummaryResponse, error) {
	before, err := s.load(ctx, sess)
	if err != nil {
		return SummaryResponse{}, err
	}

	l, err := s.line(before, productID)
	if err != nil {
		return s.summarize(before), err
	}
	if l.Count >= s.maxQty {
		return s.summarize(before), ErrQuantityCeiling
	}

	payload := outbox.CartUpdatedPayload{Action: "increment", ProductID: productID, Count: l.Count + 1}
	return s.mutate(ctx, sess, before, payload, func(ctx context.Context) error {
		return s.api.IncrementItem(ctx, sess.Token, productID)
	})
}

func (s *service) Decrement(ctx context.Context, sess session.Session, productID int64) (SummaryResponse, error) {
	before, err := s.load(ctx, sess)
	if err != nil {
		return SummaryResponse{}, err
	}

	l, err := s.line(before, productID)
	if err != nil {
		return s.summarize(before), err
	}
	if l.Count <= 1 {
		return s.summarize(before), ErrQuantityFloor
	}

	payload := outbox.CartUpdatedPayload{Action: "decrement", ProductID: productID, Count: l.Count - 1}
	return s.mutate(ctx, sess, before, payload, func(ctx context.Context) error {
		return s.api.DecrementItem(ctx, sess.Token, productID)
	})
}

func (s *service) UpdateQty(ctx context.Context, sess session.Session, productID int64, req UpdateQtyRequest) (SummaryResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return SummaryResponse{}, apperror.FromValidation(err)
	}

	before, err := s.load(ctx, sess)
	if err != nil {
		return SummaryResponse{}, err
	}

	if _, err := s.line(before, productID); err != nil {
		return s.summarize(before), err
	}
	if req.Count > s.maxQty {
		return s.summarize(before), ErrInvalidQty
	}

	payload := outbox.CartUpdatedPayload{Action: "set", ProductID: productID, Count: req.Count}
	return s.mutate(ctx, sess, before, payload, func(ctx context.Context) error {
		return s.api.UpdateItemCount(ctx, sess.Token, productID, req.Count)
	})
}

// ChangeQuantity moves a line to target using the cheapest call: a step of
// +1 or -1 uses increment or decrement, any other change sets the count.
func (s *service) ChangeQuantity(ctx context.Context, sess session.Session, productID int64, target int) (SummaryResponse, error) {
	if target < 1 || target > s.maxQty {
		return SummaryResponse{}, ErrInvalidQty
	}

	before, err := s.load(ctx, sess)
	if err != nil {
		return SummaryResponse{}, err
	}

	l, err := s.line(before, productID)
	if err != nil {
		return s.summarize(before), err
	}

	switch target - l.Count {
	case 0:
		return s.summarize(before), nil
	case 1:
		return s.Increment(ctx, sess, productID)
	case -1:
		return s.Decrement(ctx, sess, productID)
	default:
		return s.UpdateQty(ctx, sess, productID, UpdateQtyRequest{Count: target})
	}
}

func (s *service) Remove(ctx context.Context, sess session.Session, productID int64) (SummaryResponse, error) {
	before, err := s.load(ctx, sess)
	if err != nil {
		return SummaryResponse{}, err
	}

	if _, err := s.line(before, productID); err != nil {
		return s.summarize(before), err
	}

	payload := outbox.CartUpdatedPayload{Action: "remove", ProductID: productID}
	return s.mutate(ctx, sess, before, payload, func(ctx context.Context) error {
		return s.api.RemoveItem(ctx, sess.Token, productID)
	})
}

func (s *service) Clear(ctx context.Context, sess session.Session, confirmed bool) (SummaryResponse, error) {
	before, err := s.load(ctx, sess)
	if err != nil {
		return SummaryResponse{}, err
	}

	if !confirmed {
		return s.summarize(before), ErrConfirmationRequired
	}

	return s.mutate(ctx, sess, before, outbox.CartUpdatedPayload{Action: "clear"}, func(ctx context.Context) error {
		return s.api.ClearCart(ctx, sess.Token)
	})
}
