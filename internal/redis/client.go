package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrNotFound is returned when a key does not exist.
var ErrNotFound = errors.New("redis: key not found")

// Store is the subset of redis.Cmdable the client uses.
type Store interface {
	Ping(ctx context.Context) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type Client struct {
	store  Store
	closer func() error
}

// New wraps an existing store, typically a fake in tests.
func New(s Store) *Client {
	return &Client{store: s}
}

func Initialize(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{store: rdb, closer: rdb.Close}, nil
}

func CartKey(sessionID string) string  { return "cart:" + sessionID }
func TokenKey(sessionID string) string { return "token:" + sessionID }

// Cart storage
func (c *Client) GetCart(ctx context.Context, sessionID string) ([]byte, error) {
	val, err := c.store.Get(ctx, CartKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	return val, nil
}

func (c *Client) SetCart(ctx context.Context, sessionID string, data []byte, ttl time.Duration) error {
	if err := c.store.Set(ctx, CartKey(sessionID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cart: %w", err)
	}
	return nil
}

func (c *Client) DeleteCart(ctx context.Context, sessionID string) error {
	return c.store.Del(ctx, CartKey(sessionID)).Err()
}

// Access token storage
func (c *Client) GetToken(ctx context.Context, sessionID string) (string, error) {
	val, err := c.store.Get(ctx, TokenKey(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to get token: %w", err)
	}
	return val, nil
}

func (c *Client) SetToken(ctx context.Context, sessionID, token string, ttl time.Duration) error {
	if err := c.store.Set(ctx, TokenKey(sessionID), token, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set token: %w", err)
	}
	return nil
}

func (c *Client) DeleteToken(ctx context.Context, sessionID string) error {
	return c.store.Del(ctx, TokenKey(sessionID)).Err()
}

// Close Redis connection
func (c *Client) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer()
}
