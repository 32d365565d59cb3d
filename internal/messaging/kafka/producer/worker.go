package producer

import (
	"context"
	"time"

	"go.uber.org/zap"

	"go-storefront/internal/outbox"
)

const batchSize = 10

func ProcessOutboxEvents(ctx context.Context, repo outbox.Repository, writer MessageWriter, interval time.Duration, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if interval <= 0 {
		interval = 5 * time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("outbox processor started", zap.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := ProcessPendingEvents(ctx, repo, writer, logger); err != nil {
				logger.Error("outbox processing failed", zap.Error(err))
			}
		}
	}
}

// ProcessPendingEvents publishes one batch. A failed publish marks the event
// FAILED; it is not retried.
func ProcessPendingEvents(ctx context.Context, repo outbox.Repository, writer MessageWriter, logger *zap.Logger) error {
	events, err := repo.ListPending(ctx, batchSize)
	if err != nil {
		return err
	}

	if len(events) == 0 {
		return nil
	}

	logger.Debug("processing pending events", zap.Int("count", len(events)))

	for _, event := range events {
		if err := publishEvent(ctx, writer, event); err != nil {
			logger.Warn("publish failed",
				zap.String("event_id", event.ID.String()),
				zap.String("event_type", event.EventType),
				zap.Error(err),
			)
			_ = repo.MarkFailed(ctx, event.ID)
			continue
		}

		if err := repo.MarkSent(ctx, event.ID); err != nil {
			logger.Warn("mark sent failed", zap.String("event_id", event.ID.String()), zap.Error(err))
			continue
		}

		logger.Debug("event published", zap.String("event_id", event.ID.String()), zap.String("event_type", event.EventType))
	}

	return nil
}
