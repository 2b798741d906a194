package cart

import (
	"context"
	"sync"
	"time"

	"menulink/internal/logger"
)

// RepositoryFactory returns the repository backing sessionID.
type RepositoryFactory func(sessionID string) Repository

type entry struct {
	store    *Store
	lastSeen time.Time
}

// Sessions keeps one open Store per session id so the visibility flag
// lives as long as the session stays active.
type Sessions struct {
	mu      sync.Mutex
	stores  map[string]*entry
	factory RepositoryFactory
	log     *logger.Logger
	now     func() time.Time
}

func NewSessions(factory RepositoryFactory, log *logger.Logger) *Sessions {
	return &Sessions{
		stores:  make(map[string]*entry),
		factory: factory,
		log:     log,
		now:     time.Now,
	}
}

// MinSweepIdle is the shortest idle period Sweep honours. It must outlast
// any request holding a store, otherwise an evicted store could persist
// after a fresh one was loaded for the same session and overwrite it.
const MinSweepIdle = 2 * time.Minute

// Get returns the session's store, rehydrating it on first use. Loading
// happens outside the registry lock; when two first requests race, the
// store registered first wins and the other is discarded unused.
func (s *Sessions) Get(ctx context.Context, sessionID string) *Store {
	if store, ok := s.touch(sessionID); ok {
		return store
	}

	loaded := Open(ctx, s.factory(sessionID), s.log)

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.stores[sessionID]; ok {
		e.lastSeen = s.now()
		return e.store
	}
	s.stores[sessionID] = &entry{store: loaded, lastSeen: s.now()}
	return loaded
}

func (s *Sessions) touch(sessionID string) (*Store, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.stores[sessionID]
	if !ok {
		return nil, false
	}
	e.lastSeen = s.now()
	return e.store, true
}

// Forget drops the in-memory store; the persisted copy is untouched.
func (s *Sessions) Forget(sessionID string) {
	s.mu.Lock()
	delete(s.stores, sessionID)
	s.mu.Unlock()
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.stores)
}

// Sweep forgets stores idle for longer than idle and reports how many.
// idle below MinSweepIdle is raised to it.
func (s *Sessions) Sweep(idle time.Duration) int {
	if idle < MinSweepIdle {
		idle = MinSweepIdle
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-idle)
	n := 0
	for id, e := range s.stores {
		if e.lastSeen.Before(cutoff) {
			delete(s.stores, id)
			n++
		}
	}
	return n
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *Sessions) RunSweeper(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(idle); n > 0 {
				s.log.Debug(ctx).Int("evicted", n).Msg("swept idle carts")
			}
		}
	}
}
