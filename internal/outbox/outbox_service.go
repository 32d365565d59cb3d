package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=outbox_service.go -destination=../mock/outbox/outbox_service_mock.go -package=mock
type Service interface {
	Record(ctx context.Context, eventType, aggregateType, aggregateID string, payload any) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Record(ctx context.Context, eventType, aggregateType, aggregateID string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", eventType, err)
	}

	return s.repo.CreateOutboxEvent(ctx, Event{
		ID:            uuid.New(),
		EventType:     eventType,
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		Payload:       body,
		Status:        StatusPending,
		CreatedAt:     s.now().UTC(),
	})
}

// Nop discards events. Tests that do not care about events use it.
type Nop struct{}

func (Nop) Record(context.Context, string, string, string, any) error { return nil }
