package repository

import (
	"context"
	"errors"
	"time"

	"menulink/internal/models"

	"gorm.io/gorm"
)

var ErrOrderNotFound = errors.New("order not found")

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByNumber(ctx context.Context, orderNumber string) (*models.Order, error)
	ListBySlug(ctx context.Context, slug string, limit int) ([]models.Order, error)
	ListByDateRange(ctx context.Context, slug string, start, end time.Time) ([]models.Order, error)
	UpdateStatus(ctx context.Context, orderNumber string, status models.OrderStatus) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create inserts the order and its items in one transaction.
func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) GetByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("order_number = ?", orderNumber).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) ListBySlug(ctx context.Context, slug string, limit int) ([]models.Order, error) {
	var orders []models.Order
	q := r.db.WithContext(ctx).
		Preload("Items").
		Where("business_slug = ?", slug).
		Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&orders).Error
	return orders, err
}

func (r *orderRepository) ListByDateRange(ctx context.Context, slug string, start, end time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("business_slug = ? AND created_at BETWEEN ? AND ?", slug, start, end).
		Order("created_at ASC, id ASC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderNumber string, status models.OrderStatus) error {
	res := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("order_number = ?", orderNumber).
		Update("status", string(status))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}
