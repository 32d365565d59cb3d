package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

//go:generate mockgen -source=outbox_repo.go -destination=../mock/outbox/outbox_repo_mock.go -package=mock
type Repository interface {
	CreateOutboxEvent(ctx context.Context, e Event) error
	ListPending(ctx context.Context, limit int) ([]Event, error)
	MarkSent(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID) error
}

var ErrEventNotFound = errors.New("outbox event not found")

const (
	pendingKey  = "outbox:pending"
	failedKey   = "outbox:failed"
	eventPrefix = "outbox:event:"
	sentTTL     = 24 * time.Hour
)

// redisRepository keeps event bodies under outbox:event:<id> and orders the
// pending ones in a sorted set scored by creation time, so the worker binary
// can drain what the API process wrote.
type redisRepository struct {
	rdb redis.UniversalClient
}

func NewRedisRepository(rdb redis.UniversalClient) Repository {
	return &redisRepository{rdb: rdb}
}

func (r *redisRepository) CreateOutboxEvent(ctx context.Context, e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal outbox event: %w", err)
	}

	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, eventPrefix+e.ID.String(), data, 0)
		pipe.ZAdd(ctx, pendingKey, redis.Z{
			Score:  float64(e.CreatedAt.UnixNano()),
			Member: e.ID.String(),
		})
		return nil
	})
	return err
}

func (r *redisRepository) ListPending(ctx context.Context, limit int) ([]Event, error) {
	ids, err := r.rdb.ZRange(ctx, pendingKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = eventPrefix + id
	}

	raws, err := r.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(raws))
	for i, raw := range raws {
		s, ok := raw.(string)
		if !ok {
			// body expired or was removed; drop the dangling index entry
			r.rdb.ZRem(ctx, pendingKey, ids[i])
			continue
		}

		var e Event
		if err := json.Unmarshal([]byte(s), &e); err != nil {
			return nil, fmt.Errorf("unmarshal outbox event %s: %w", ids[i], err)
		}
		events = append(events, e)
	}
	return events, nil
}

func (r *redisRepository) MarkSent(ctx context.Context, id uuid.UUID) error {
	return r.mark(ctx, id, StatusSent, "", sentTTL)
}

func (r *redisRepository) MarkFailed(ctx context.Context, id uuid.UUID) error {
	return r.mark(ctx, id, StatusFailed, failedKey, 0)
}

func (r *redisRepository) mark(ctx context.Context, id uuid.UUID, status, setKey string, ttl time.Duration) error {
	key := eventPrefix + id.String()

	data, err := r.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrEventNotFound
	}
	if err != nil {
		return err
	}

	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return fmt.Errorf("unmarshal outbox event %s: %w", id, err)
	}
	e.Status = status

	updated, err := json.Marshal(e)
	if err != nil {
		return err
	}

	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key, updated, ttl)
		pipe.ZRem(ctx, pendingKey, id.String())
		if setKey != "" {
			pipe.SAdd(ctx, setKey, id.String())
		}
		return nil
	})
	return err
}

// memoryRepository is used when Redis is not configured. Events only live as
// long as the process, so the API drains it itself.
type memoryRepository struct {
	mu     sync.Mutex
	events []Event
}

func NewMemoryRepository() Repository {
	return &memoryRepository{}
}

func (m *memoryRepository) CreateOutboxEvent(_ context.Context, e Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, e)
	return nil
}

func (m *memoryRepository) ListPending(_ context.Context, limit int) ([]Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []Event
	for _, e := range m.events {
		if e.Status != StatusPending {
			continue
		}
		out = append(out, e)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *memoryRepository) MarkSent(_ context.Context, id uuid.UUID) error {
	return m.setStatus(id, StatusSent)
}

func (m *memoryRepository) MarkFailed(_ context.Context, id uuid.UUID) error {
	return m.setStatus(id, StatusFailed)
}

func (m *memoryRepository) setStatus(id uuid.UUID, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := slices.IndexFunc(m.events, func(e Event) bool { return e.ID == id })
	if i < 0 {
		return ErrEventNotFound
	}

	if status == StatusSent {
		m.events = slices.Delete(m.events, i, i+1)
		return nil
	}
	m.events[i].Status = status
	return nil
}
