package services

import (
	"context"

	"menulink/internal/cart"
	"menulink/internal/metrics"
	"menulink/internal/models"
)

type CartService interface {
	View(ctx context.Context, sessionID string) models.CartView
	Items(ctx context.Context, sessionID string) []models.CartItem
	Add(ctx context.Context, sessionID string, product models.Product, quantity int) models.CartView
	UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) models.CartView
	Remove(ctx context.Context, sessionID, productID string) models.CartView
	Clear(ctx context.Context, sessionID string) models.CartView
	// Consume removes ordered lines after checkout.
	Consume(ctx context.Context, sessionID string, ordered []models.CartItem) models.CartView
	Toggle(ctx context.Context, sessionID string) models.CartView
	Open(ctx context.Context, sessionID string) models.CartView
	Close(ctx context.Context, sessionID string) models.CartView
}

type cartService struct {
	sessions *cart.Sessions
	metrics  *metrics.Metrics
}

func NewCartService(sessions *cart.Sessions, m *metrics.Metrics) CartService {
	return &cartService{sessions: sessions, metrics: m}
}

func (s *cartService) View(ctx context.Context, sessionID string) models.CartView {
	return s.sessions.Get(ctx, sessionID).View()
}

func (s *cartService) Items(ctx context.Context, sessionID string) []models.CartItem {
	return s.sessions.Get(ctx, sessionID).Items()
}

// Add puts quantity units of product in the cart; 0 means one unit.
func (s *cartService) Add(ctx context.Context, sessionID string, product models.Product, quantity int) models.CartView {
	if quantity == 0 {
		quantity = 1
	}
	store := s.sessions.Get(ctx, sessionID)
	store.AddItem(ctx, product, quantity)
	s.metrics.CartMutation("add")
	return store.View()
}

func (s *cartService) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) models.CartView {
	store := s.sessions.Get(ctx, sessionID)
	store.UpdateQuantity(ctx, productID, quantity)
	s.metrics.CartMutation("update")
	return store.View()
}

func (s *cartService) Remove(ctx context.Context, sessionID, productID string) models.CartView {
	store := s.sessions.Get(ctx, sessionID)
	store.RemoveItem(ctx, productID)
	s.metrics.CartMutation("remove")
	return store.View()
}

func (s *cartService) Clear(ctx context.Context, sessionID string) models.CartView {
	store := s.sessions.Get(ctx, sessionID)
	store.Clear(ctx)
	s.metrics.CartMutation("clear")
	return store.View()
}

// Consume removes the ordered lines and keeps anything added since.
func (s *cartService) Consume(ctx context.Context, sessionID string, ordered []models.CartItem) models.CartView {
	store := s.sessions.Get(ctx, sessionID)
	store.Consume(ctx, ordered)
	s.metrics.CartMutation("consume")
	return store.View()
}

func (s *cartService) Toggle(ctx context.Context, sessionID string) models.CartView {
	store := s.sessions.Get(ctx, sessionID)
	store.Toggle()
	return store.View()
}

func (s *cartService) Open(ctx context.Context, sessionID string) models.CartView {
	store := s.sessions.Get(ctx, sessionID)
	store.Open()
	return store.View()
}

func (s *cartService) Close(ctx context.Context, sessionID string) models.CartView {
	store := s.sessions.Get(ctx, sessionID)
	store.Close()
	return store.View()
}
