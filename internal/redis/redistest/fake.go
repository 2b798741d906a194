// Package redistest provides an in-memory stand-in for the redis commands
// used by menulink.
package redistest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

type Fake struct {
	mu   sync.Mutex
	data map[string]string
	ttls map[string]time.Duration

	// Err, when set, is returned by every command.
	Err error
}

func NewFake() *Fake {
	return &Fake{
		data: make(map[string]string),
		ttls: make(map[string]time.Duration),
	}
}

func (f *Fake) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", f.Err)
}

func (f *Fake) Get(_ context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return redis.NewStringResult("", f.Err)
	}
	val, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(val, nil)
}

func (f *Fake) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return redis.NewStatusResult("", f.Err)
	}
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	default:
		f.data[key] = fmt.Sprint(v)
	}
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *Fake) Del(_ context.Context, keys ...string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return redis.NewIntResult(0, f.Err)
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			delete(f.ttls, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

// Put seeds a raw value.
func (f *Fake) Put(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
}

// Value returns the raw value stored under key.
func (f *Fake) Value(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	return v, ok
}

func (f *Fake) TTL(key string) time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ttls[key]
}
