package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"menulink/internal/cart"
	"menulink/internal/logger"
	"menulink/internal/metrics"
	"menulink/internal/models"
	"menulink/internal/order"
	"menulink/internal/repository"

	"github.com/google/uuid"
)

type OrderService interface {
	// Checkout turns the session cart into a WhatsApp order for slug and
	// empties the cart.
	Checkout(ctx context.Context, sessionID, slug string, req models.OrderRequest) (*models.CheckoutResult, error)
	GetOrder(ctx context.Context, orderNumber string) (*models.Order, error)
	// MerchantOrders lists the logged-in merchant's most recent orders.
	MerchantOrders(ctx context.Context, sessionID string, limit int) ([]models.Order, error)
	UpdateStatus(ctx context.Context, sessionID, orderNumber string, status models.OrderStatus) (*models.Order, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	carts     CartService
	menus     MenuService
	auth      AuthService
	whatsapp  WhatsAppService
	tracker   Tracker
	formatter *order.Formatter
	metrics   *metrics.Metrics
	log       *logger.Logger
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	carts CartService,
	menus MenuService,
	auth AuthService,
	whatsapp WhatsAppService,
	tracker Tracker,
	formatter *order.Formatter,
	m *metrics.Metrics,
	log *logger.Logger,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		carts:     carts,
		menus:     menus,
		auth:      auth,
		whatsapp:  whatsapp,
		tracker:   tracker,
		formatter: formatter,
		metrics:   m,
		log:       log,
	}
}

func (s *orderService) Checkout(ctx context.Context, sessionID, slug string, req models.OrderRequest) (*models.CheckoutResult, error) {
	items := s.carts.Items(ctx, sessionID)
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	req.Items = items
	req.CustomerName = strings.TrimSpace(req.CustomerName)

	if err := order.Validate(req); err != nil {
		return nil, err
	}

	business, err := s.menus.Business(ctx, slug)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(business.Phone) == "" {
		return nil, ErrNoBusinessPhone
	}

	message, link := s.formatter.Link(business.Phone, req)
	total := cart.Total(items)

	record := &models.Order{
		OrderNumber:   uuid.NewString(),
		BusinessSlug:  slug,
		CustomerName:  req.CustomerName,
		DeliveryType:  string(req.DeliveryType),
		PaymentMethod: string(req.PaymentMethod),
		TotalAmount:   total,
		TipAmount:     req.Tip,
		CashAmount:    req.CashAmount,
		Notes:         req.Notes,
		Message:       message,
		Status:        string(models.OrderSent),
		Items:         models.OrderItemsFromCart(items),
	}
	// The customer still gets the link if the log write fails.
	if err := s.orderRepo.Create(ctx, record); err != nil {
		s.log.Error(ctx).Err(err).Str("order_number", record.OrderNumber).Msg("failed to record order")
	}

	pushed := false
	if s.whatsapp.Enabled() {
		if err := s.whatsapp.Push(ctx, business.Phone, message); err != nil {
			s.log.Warn(ctx).Err(err).Str("order_number", record.OrderNumber).Msg("failed to push order to gateway")
		} else {
			pushed = true
		}
	}

	s.metrics.OrderSubmitted(record.DeliveryType, record.PaymentMethod, total)
	s.tracker.Track(ctx, "checkout_submit", map[string]interface{}{
		"menuSlug":   slug,
		"price":      total,
		"itemsCount": len(items),
	})
	s.carts.Consume(ctx, sessionID, items)

	s.log.Info(ctx).
		Str("order_number", record.OrderNumber).
		Str("slug", slug).
		Int64("total", total).
		Msg("order submitted")

	return &models.CheckoutResult{
		OrderNumber: record.OrderNumber,
		Message:     message,
		WhatsAppURL: link,
		Total:       total,
		Pushed:      pushed,
	}, nil
}

func (s *orderService) GetOrder(ctx context.Context, orderNumber string) (*models.Order, error) {
	return s.orderRepo.GetByNumber(ctx, orderNumber)
}

func (s *orderService) MerchantOrders(ctx context.Context, sessionID string, limit int) ([]models.Order, error) {
	me, err := s.auth.Me(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.orderRepo.ListBySlug(ctx, me.Slug, limit)
}

// UpdateStatus marks one of the merchant's orders delivered or cancelled.
// Orders of other businesses are reported as not found.
func (s *orderService) UpdateStatus(ctx context.Context, sessionID, orderNumber string, status models.OrderStatus) (*models.Order, error) {
	switch status {
	case models.OrderSent, models.OrderDelivered, models.OrderCancelled:
	default:
		return nil, ErrInvalidStatus
	}

	me, err := s.auth.Me(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	existing, err := s.orderRepo.GetByNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if existing.BusinessSlug != me.Slug {
		return nil, repository.ErrOrderNotFound
	}
	if err := s.orderRepo.UpdateStatus(ctx, orderNumber, status); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	existing.Status = string(status)
	return existing, nil
}
