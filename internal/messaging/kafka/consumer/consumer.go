package consumer

import (
	"context"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"go-storefront/internal/outbox"
)

// MessageReader is the part of *kafka.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

// ConsumeMessages runs until ctx is cancelled. A message whose handler fails
// is left uncommitted so it is redelivered after a rebalance.
func ConsumeMessages(ctx context.Context, reader MessageReader, inv CacheInvalidator, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Info("consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Warn("fetch message failed", zap.Error(err))
			continue
		}

		eventType := getHeader(msg.Headers, "event_type")

		var handleErr error
		switch eventType {
		case outbox.EventCheckoutSubmitted:
			handleErr = handleCheckoutSubmitted(ctx, msg.Value, inv, logger)
		case outbox.EventReviewCreated:
			handleErr = handleReviewCreated(ctx, msg.Value, inv, logger)
		default:
			// cart events are informational for this consumer
		}

		if handleErr != nil {
			logger.Error("handle message failed",
				zap.String("event_type", eventType),
				zap.Int64("offset", msg.Offset),
				zap.Error(handleErr),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			logger.Warn("commit message failed", zap.Error(err))
		}
	}
}
