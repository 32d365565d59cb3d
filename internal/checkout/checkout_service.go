package checkout

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"go-storefront/internal/cart"
	"go-storefront/internal/domain"
	"go-storefront/internal/outbox"
	"go-storefront/internal/session"
	"go-storefront/internal/upstream"
)

// CartReader is the part of the cart module checkout needs.
type CartReader interface {
	Summary(ctx context.Context, s session.Session) (cart.SummaryResponse, error)
	Invalidate(ctx context.Context, s session.Session)
}

type Service interface {
	Checkout(ctx context.Context, s session.Session, req CheckoutRequest) (CheckoutResponse, error)
}

type service struct {
	api    upstream.CheckoutAPI
	cart   CartReader
	outbox outbox.Service
	logger *zap.Logger
}

type Deps struct {
	API    upstream.CheckoutAPI
	Cart   CartReader
	Outbox outbox.Service
	Logger *zap.Logger
}

func NewService(deps Deps) Service {
	if deps.API == nil {
		panic("checkout api cannot be nil")
	}
	if deps.Cart == nil {
		panic("cart reader cannot be nil")
	}
	if deps.Outbox == nil {
		deps.Outbox = outbox.Nop{}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	return &service{
		api:    deps.API,
		cart:   deps.Cart,
		outbox: deps.Outbox,
		logger: deps.Logger,
	}
}

func (s *service) Checkout(ctx context.Context, sess session.Session, req CheckoutRequest) (CheckoutResponse, error) {
	if sess.IsZero() {
		return CheckoutResponse{}, ErrUnauthenticated
	}

	method, ok := paymentMethod(req.PaymentMethod)
	if !ok {
		return CheckoutResponse{}, ErrInvalidPaymentMethod
	}

	summary, err := s.cart.Summary(ctx, sess)
	if err != nil {
		return CheckoutResponse{}, err
	}
	if summary.Empty {
		return CheckoutResponse{}, ErrEmptyCart
	}

	result, err := s.api.Pay(ctx, sess.Token, method)
	if err != nil {
		s.logger.Error("payment failed",
			zap.String("session", sess.Key()),
			zap.String("payment_method", string(method)),
			zap.Error(err),
		)
		return CheckoutResponse{}, upstream.Translate(err, nil)
	}

	// the store empties the cart once the order exists
	s.cart.Invalidate(ctx, sess)

	if method == domain.PaymentVisa && result.RedirectURL == "" {
		s.logger.Error("payment url missing", zap.String("session", sess.Key()), zap.String("message", result.Message))
		return CheckoutResponse{}, ErrPaymentURLMissing
	}

	productIDs := make([]int64, 0, len(summary.Items))
	for _, l := range summary.Items {
		productIDs = append(productIDs, l.ProductID)
	}
	payload := outbox.CheckoutSubmittedPayload{
		PaymentMethod: string(method),
		ProductIDs:    productIDs,
		ItemCount:     summary.ItemCount,
		Total:         decimal.NewFromFloat(summary.Total).StringFixed(2),
	}
	if err := s.outbox.Record(ctx, outbox.EventCheckoutSubmitted, outbox.AggregateCheckout, sess.Key(), payload); err != nil {
		s.logger.Warn("record checkout event failed", zap.Error(err))
	}

	s.logger.Info("checkout submitted",
		zap.String("session", sess.Key()),
		zap.String("payment_method", string(method)),
		zap.Int("item_count", summary.ItemCount),
	)

	return CheckoutResponse{
		PaymentMethod: string(method),
		RedirectURL:   result.RedirectURL,
		Message:       result.Message,
		ItemCount:     summary.ItemCount,
		Total:         summary.Total,
	}, nil
}
