package consumer

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"go-storefront/internal/cache"
	"go-storefront/internal/outbox"
)

// CacheInvalidator is satisfied by *cache.Loader.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, keys ...string)
	InvalidatePrefix(ctx context.Context, prefix string)
}

// A submitted checkout changes stock, so every cached catalog entry is stale.
func handleCheckoutSubmitted(ctx context.Context, payload []byte, inv CacheInvalidator, logger *zap.Logger) error {
	var data outbox.CheckoutSubmittedPayload
	if err := json.Unmarshal(payload, &data); err != nil {
		return err
	}

	inv.InvalidatePrefix(ctx, cache.CatalogPrefix)
	logger.Info("catalog cache invalidated after checkout",
		zap.Int("items", data.ItemCount),
		zap.String("payment_method", data.PaymentMethod),
	)
	return nil
}

func handleReviewCreated(ctx context.Context, payload []byte, inv CacheInvalidator, logger *zap.Logger) error {
	var data outbox.ReviewCreatedPayload
	if err := json.Unmarshal(payload, &data); err != nil {
		return err
	}

	inv.Invalidate(ctx,
		cache.ReviewsKey(data.ProductID),
		cache.ProductKey(data.ProductID),
		cache.ProductsKey,
	)
	logger.Info("review caches invalidated", zap.Int64("product_id", data.ProductID))
	return nil
}
