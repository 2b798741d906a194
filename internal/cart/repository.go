package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"menulink/internal/models"
	"menulink/internal/redis"
)

var (
	// ErrEmpty means nothing is persisted for the session.
	ErrEmpty = errors.New("cart: nothing persisted")
	// ErrCorrupt means the persisted value is not a JSON array of items.
	ErrCorrupt = errors.New("cart: persisted value is malformed")
)

// Repository persists one session's item collection.
type Repository interface {
	Load(ctx context.Context) ([]models.CartItem, error)
	Save(ctx context.Context, items []models.CartItem) error
	Delete(ctx context.Context) error
}

// Decode parses a persisted cart. Anything other than a JSON array of
// objects is reported as ErrCorrupt.
func Decode(raw []byte) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if items == nil {
		// "null" is not a sequence
		return nil, ErrCorrupt
	}
	return items, nil
}

func Encode(items []models.CartItem) ([]byte, error) {
	if items == nil {
		items = []models.CartItem{}
	}
	return json.Marshal(items)
}

type redisRepository struct {
	client    *redis.Client
	sessionID string
	ttl       time.Duration
}

// NewRedisRepository stores the cart under cart:<sessionID>.
func NewRedisRepository(client *redis.Client, sessionID string, ttl time.Duration) Repository {
	return &redisRepository{client: client, sessionID: sessionID, ttl: ttl}
}

func (r *redisRepository) Load(ctx context.Context) ([]models.CartItem, error) {
	raw, err := r.client.GetCart(ctx, r.sessionID)
	if err != nil {
		if errors.Is(err, redis.ErrNotFound) {
			return nil, ErrEmpty
		}
		return nil, err
	}
	return Decode(raw)
}

func (r *redisRepository) Save(ctx context.Context, items []models.CartItem) error {
	data, err := Encode(items)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	return r.client.SetCart(ctx, r.sessionID, data, r.ttl)
}

func (r *redisRepository) Delete(ctx context.Context) error {
	return r.client.DeleteCart(ctx, r.sessionID)
}

// MemoryRepository keeps the encoded cart in memory.
type MemoryRepository struct {
	mu  sync.Mutex
	raw []byte
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (m *MemoryRepository) Load(context.Context) ([]models.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.raw == nil {
		return nil, ErrEmpty
	}
	return Decode(m.raw)
}

func (m *MemoryRepository) Save(_ context.Context, items []models.CartItem) error {
	data, err := Encode(items)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.raw = data
	m.mu.Unlock()
	return nil
}

func (m *MemoryRepository) Delete(context.Context) error {
	m.mu.Lock()
	m.raw = nil
	m.mu.Unlock()
	return nil
}

// SetRaw overwrites the persisted bytes as-is.
func (m *MemoryRepository) SetRaw(raw []byte) {
	m.mu.Lock()
	m.raw = raw
	m.mu.Unlock()
}

func (m *MemoryRepository) Raw() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.raw
}
