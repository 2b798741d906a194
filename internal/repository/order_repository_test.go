package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"menulink/internal/database"
	"menulink/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := database.Open(sqlite.Open(dsn))
	require.NoError(t, err)
	return db
}

func newOrder(number, slug string, created time.Time) *models.Order {
	items := []models.CartItem{
		{ID: "p1", Name: "Taco", Price: 15, Quantity: 2},
		{ID: "p2", Name: "Soda", Price: 5, Quantity: 1},
	}
	return &models.Order{
		OrderNumber:   number,
		BusinessSlug:  slug,
		CustomerName:  "Ana",
		DeliveryType:  string(models.DeliveryPickup),
		PaymentMethod: string(models.PaymentCash),
		TotalAmount:   35,
		Message:       "*Nuevo Pedido*",
		Status:        string(models.OrderSent),
		Items:         models.OrderItemsFromCart(items),
		CreatedAt:     created,
	}
}

func TestCreateAndGetByNumber(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository(setupTestDB(t))

	require.NoError(t, repo.Create(ctx, newOrder("o-1", "la-casa", time.Now())))

	got, err := repo.GetByNumber(ctx, "o-1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.CustomerName)
	require.Len(t, got.Items, 2)
	assert.Equal(t, int64(30), got.Items[0].Subtotal)

	_, err = repo.GetByNumber(ctx, "missing")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestListBySlug(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository(setupTestDB(t))
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, newOrder("o-1", "la-casa", base)))
	require.NoError(t, repo.Create(ctx, newOrder("o-2", "la-casa", base.Add(time.Hour))))
	require.NoError(t, repo.Create(ctx, newOrder("o-3", "otra", base)))

	orders, err := repo.ListBySlug(ctx, "la-casa", 10)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "o-2", orders[0].OrderNumber)

	orders, err = repo.ListBySlug(ctx, "la-casa", 1)
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	orders, err = repo.ListByDateRange(ctx, "la-casa", base.Add(-time.Minute), base.Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "o-1", orders[0].OrderNumber)
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository(setupTestDB(t))
	require.NoError(t, repo.Create(ctx, newOrder("o-1", "la-casa", time.Now())))

	require.NoError(t, repo.UpdateStatus(ctx, "o-1", models.OrderDelivered))
	got, err := repo.GetByNumber(ctx, "o-1")
	require.NoError(t, err)
	assert.Equal(t, string(models.OrderDelivered), got.Status)

	assert.ErrorIs(t, repo.UpdateStatus(ctx, "missing", models.OrderCancelled), ErrOrderNotFound)
}
