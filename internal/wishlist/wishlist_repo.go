package wishlist

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Entry is one saved product and when it was saved.
type Entry struct {
	ProductID int64
	AddedAt   time.Time
}

//go:generate mockgen -source=wishlist_repo.go -destination=../mock/wishlist/wishlist_repo_mock.go -package=mock
type Repository interface {
	// AddItem reports false when the product was already saved.
	AddItem(ctx context.Context, owner string, productID int64, at time.Time) (bool, error)
	// DeleteItem reports false when the product was not saved.
	DeleteItem(ctx context.Context, owner string, productID int64) (bool, error)
	GetItems(ctx context.Context, owner string) ([]Entry, error)
}

// The store API has no favorites endpoint, so the gateway keeps them. Each
// owner's list is a sorted set scored by the time of saving.
type redisRepository struct {
	rdb redis.UniversalClient
}

func NewRedisRepository(rdb redis.UniversalClient) Repository {
	return &redisRepository{rdb: rdb}
}

func wishlistKey(owner string) string {
	return "wishlist:" + owner
}

func (r *redisRepository) AddItem(ctx context.Context, owner string, productID int64, at time.Time) (bool, error) {
	n, err := r.rdb.ZAddNX(ctx, wishlistKey(owner), redis.Z{
		Score:  float64(at.UnixMilli()),
		Member: strconv.FormatInt(productID, 10),
	}).Result()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *redisRepository) DeleteItem(ctx context.Context, owner string, productID int64) (bool, error) {
	n, err := r.rdb.ZRem(ctx, wishlistKey(owner), strconv.FormatInt(productID, 10)).Result()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *redisRepository) GetItems(ctx context.Context, owner string) ([]Entry, error) {
	zs, err := r.rdb.ZRangeWithScores(ctx, wishlistKey(owner), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(zs))
	for _, z := range zs {
		member, _ := z.Member.(string)
		id, err := strconv.ParseInt(member, 10, 64)
		if err != nil {
			continue
		}
		entries = append(entries, Entry{ProductID: id, AddedAt: time.UnixMilli(int64(z.Score)).UTC()})
	}
	return entries, nil
}

type memoryRepository struct {
	mu    sync.Mutex
	items map[string]map[int64]time.Time
}

// NewMemoryRepository keeps wishlists for the life of the process.
func NewMemoryRepository() Repository {
	return &memoryRepository{items: make(map[string]map[int64]time.Time)}
}

func (m *memoryRepository) AddItem(_ context.Context, owner string, productID int64, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	list, ok := m.items[owner]
	if !ok {
		list = make(map[int64]time.Time)
		m.items[owner] = list
	}
	if _, exists := list[productID]; exists {
		return false, nil
	}
	list[productID] = at.UTC()
	return true, nil
}

func (m *memoryRepository) DeleteItem(_ context.Context, owner string, productID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.items[owner][productID]; !exists {
		return false, nil
	}
	delete(m.items[owner], productID)
	return true, nil
}

func (m *memoryRepository) GetItems(_ context.Context, owner string) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := make([]Entry, 0, len(m.items[owner]))
	for id, at := range m.items[owner] {
		entries = append(entries, Entry{ProductID: id, AddedAt: at})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].AddedAt.Equal(entries[j].AddedAt) {
			return entries[i].ProductID < entries[j].ProductID
		}
		return entries[i].AddedAt.Before(entries[j].AddedAt)
	})
	return entries, nil
}
