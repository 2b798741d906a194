package cart

import (
	"context"
	"sync"
	"testing"
	"time"

	"menulink/internal/logger"
	"menulink/internal/models"
	"menulink/internal/redis"
	"menulink/internal/redis/redistest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionsReuseStore(t *testing.T) {
	ctx := context.Background()
	repos := map[string]*MemoryRepository{}
	sessions := NewSessions(func(id string) Repository {
		repos[id] = NewMemoryRepository()
		return repos[id]
	}, logger.Nop())

	a := sessions.Get(ctx, "a")
	a.AddItem(ctx, taco, 1)

	assert.Same(t, a, sessions.Get(ctx, "a"))
	assert.NotSame(t, a, sessions.Get(ctx, "b"))
	assert.Equal(t, 2, sessions.Len())
}

func TestSessionsSweep(t *testing.T) {
	ctx := context.Background()
	sessions := NewSessions(func(string) Repository { return NewMemoryRepository() }, logger.Nop())
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	sessions.now = func() time.Time { return now }

	sessions.Get(ctx, "old")
	now = now.Add(20 * time.Minute)
	sessions.Get(ctx, "fresh")
	now = now.Add(15 * time.Minute)

	assert.Equal(t, 1, sessions.Sweep(30*time.Minute))
	assert.Equal(t, 1, sessions.Len())
}

func TestSessionsRehydrateFromRedis(t *testing.T) {
	ctx := context.Background()
	fake := redistest.NewFake()
	client := redis.New(fake)
	factory := func(id string) Repository { return NewRedisRepository(client, id, time.Hour) }

	first := NewSessions(factory, logger.Nop())
	first.Get(ctx, "s1").AddItem(ctx, taco, 2)

	raw, ok := fake.Value("cart:s1")
	require.True(t, ok)
	assert.JSONEq(t, `[{"id":"p-taco","name":"Taco","price":15,"quantity":2}]`, raw)

	second := NewSessions(factory, logger.Nop())
	store := second.Get(ctx, "s1")
	assert.Equal(t, int64(30), store.Total())
}

func TestRedisCorruptCartIsDeleted(t *testing.T) {
	ctx := context.Background()
	fake := redistest.NewFake()
	fake.Put("cart:s1", `{"broken":true}`)

	store := Open(ctx, NewRedisRepository(redis.New(fake), "s1", time.Hour), logger.Nop())

	assert.Empty(t, store.Items())
	_, ok := fake.Value("cart:s1")
	assert.False(t, ok)
}

type blockingRepository struct {
	*MemoryRepository
	release chan struct{}
	loading chan struct{}
}

func (b *blockingRepository) Load(ctx context.Context) ([]models.CartItem, error) {
	close(b.loading)
	<-b.release
	return b.MemoryRepository.Load(ctx)
}

func TestSlowLoadDoesNotStallOtherSessions(t *testing.T) {
	ctx := context.Background()
	slow := &blockingRepository{
		MemoryRepository: NewMemoryRepository(),
		release:          make(chan struct{}),
		loading:          make(chan struct{}),
	}
	sessions := NewSessions(func(id string) Repository {
		if id == "slow" {
			return slow
		}
		return NewMemoryRepository()
	}, logger.Nop())

	done := make(chan *Store)
	go func() { done <- sessions.Get(ctx, "slow") }()
	<-slow.loading

	fast := make(chan struct{})
	go func() {
		sessions.Get(ctx, "fast").AddItem(ctx, taco, 1)
		sessions.Sweep(time.Hour)
		close(fast)
	}()
	select {
	case <-fast:
	case <-time.After(2 * time.Second):
		t.Fatal("second session waited on the first session's load")
	}

	close(slow.release)
	store := <-done
	assert.Same(t, store, sessions.Get(ctx, "slow"))
	assert.Equal(t, 2, sessions.Len())
}

func TestConcurrentFirstGetsShareOneStore(t *testing.T) {
	ctx := context.Background()
	sessions := NewSessions(func(string) Repository { return NewMemoryRepository() }, logger.Nop())

	const n = 8
	stores := make([]*Store, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			stores[i] = sessions.Get(ctx, "s1")
		}(i)
	}
	wg.Wait()

	for _, s := range stores[1:] {
		assert.Same(t, stores[0], s)
	}
	assert.Equal(t, 1, sessions.Len())
}

func TestSweepKeepsRecentlyUsedStores(t *testing.T) {
	ctx := context.Background()
	sessions := NewSessions(func(string) Repository { return NewMemoryRepository() }, logger.Nop())
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	sessions.now = func() time.Time { return now }

	sessions.Get(ctx, "busy")
	now = now.Add(30 * time.Second)

	assert.Zero(t, sessions.Sweep(time.Second))
	assert.Equal(t, 1, sessions.Len())

	now = now.Add(MinSweepIdle)
	assert.Equal(t, 1, sessions.Sweep(time.Second))
}
