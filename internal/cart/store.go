// Package cart holds a customer's in-progress selection for one session.
package cart

import (
	"context"
	"errors"
	"sync"

	"menulink/internal/logger"
	"menulink/internal/models"
)

// Store is the cart of a single session. Every mutation writes the full
// item list through the repository; write failures are logged and dropped.
type Store struct {
	mu     sync.Mutex
	repo   Repository
	log    *logger.Logger
	items  []models.CartItem
	isOpen bool
}

// Open rehydrates the cart from repo. A malformed persisted value resets
// the cart to empty and removes the entry.
func Open(ctx context.Context, repo Repository, log *logger.Logger) *Store {
	s := &Store{repo: repo, log: log, items: []models.CartItem{}}

	items, err := repo.Load(ctx)
	switch {
	case err == nil:
		s.items = items
	case errors.Is(err, ErrEmpty):
	case errors.Is(err, ErrCorrupt):
		log.Warn(ctx).Err(err).Msg("corrupt cart, resetting")
		if err := repo.Delete(ctx); err != nil {
			log.Warn(ctx).Err(err).Msg("failed to delete corrupt cart")
		}
	default:
		log.Warn(ctx).Err(err).Msg("failed to load cart, starting empty")
	}
	return s
}

// AddItem merges quantity into the line for product.ID or appends a new
// line, then opens the cart. Quantity is taken as given.
func (s *Store) AddItem(ctx context.Context, product models.Product, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(product.ID); i >= 0 {
		s.items[i].Quantity += quantity
	} else {
		s.items = append(s.items, models.CartItem{
			ID:       product.ID,
			Name:     product.Name,
			Price:    product.Price,
			Quantity: quantity,
			ImageURL: product.ImageURL,
		})
	}
	s.isOpen = true
	s.persist(ctx)
}

// UpdateQuantity sets the quantity of productID; a quantity of zero or
// less removes the line.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(productID)
	if i < 0 {
		return
	}
	if quantity <= 0 {
		s.removeAt(i)
	} else {
		s.items[i].Quantity = quantity
	}
	s.persist(ctx)
}

// RemoveItem drops the line for productID, if any.
func (s *Store) RemoveItem(ctx context.Context, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(productID)
	if i < 0 {
		return
	}
	s.removeAt(i)
	s.persist(ctx)
}

// Clear empties the cart and erases the persisted copy.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = []models.CartItem{}
	if err := s.repo.Delete(ctx); err != nil {
		s.log.Warn(ctx).Err(err).Msg("failed to delete cart")
	}
}

// Consume takes the ordered lines out of the cart: each line loses the
// ordered quantity and emptied lines are removed. Items added after the
// order was taken stay in the cart.
func (s *Store) Consume(ctx context.Context, ordered []models.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range ordered {
		i := s.indexOf(o.ID)
		if i < 0 {
			continue
		}
		s.items[i].Quantity -= o.Quantity
		if s.items[i].Quantity <= 0 {
			s.removeAt(i)
		}
	}
	if len(s.items) == 0 {
		if err := s.repo.Delete(ctx); err != nil {
			s.log.Warn(ctx).Err(err).Msg("failed to delete cart")
		}
		return
	}
	s.persist(ctx)
}

// Total is the cart value in currency units.
func (s *Store) Total() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Total(s.items)
}

// ItemCount is the number of units across all lines.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ItemCount(s.items)
}

// Items returns a copy of the lines in insertion order.
func (s *Store) Items() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// IsOpen reports whether the cart drawer is shown.
func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isOpen
}

// Toggle flips the drawer visibility.
func (s *Store) Toggle() {
	s.mu.Lock()
	s.isOpen = !s.isOpen
	s.mu.Unlock()
}

func (s *Store) Open() {
	s.mu.Lock()
	s.isOpen = true
	s.mu.Unlock()
}

func (s *Store) Close() {
	s.mu.Lock()
	s.isOpen = false
	s.mu.Unlock()
}

// View snapshots the cart under a single lock.
func (s *Store) View() models.CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]models.CartItem, len(s.items))
	copy(items, s.items)
	return models.CartView{
		Items:     items,
		IsOpen:    s.isOpen,
		Total:     Total(items),
		ItemCount: ItemCount(items),
	}
}

func (s *Store) indexOf(productID string) int {
	for i := range s.items {
		if s.items[i].ID == productID {
			return i
		}
	}
	return -1
}

func (s *Store) removeAt(i int) {
	s.items = append(s.items[:i], s.items[i+1:]...)
}

func (s *Store) persist(ctx context.Context) {
	if err := s.repo.Save(ctx, s.items); err != nil {
		s.log.Warn(ctx).Err(err).Msg("failed to persist cart")
	}
}

// Total sums price × quantity. A nil slice totals 0.
func Total(items []models.CartItem) int64 {
	var total int64
	for _, it := range items {
		total += it.Subtotal()
	}
	return total
}

func ItemCount(items []models.CartItem) int {
	count := 0
	for _, it := range items {
		count += it.Quantity
	}
	return count
}
