package models

import (
	"time"

	"gorm.io/gorm"
)

type OrderItem struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	OrderID   uint           `json:"order_id" gorm:"index;not null"`
	ProductID string         `json:"product_id" gorm:"not null"`
	Name      string         `json:"name" gorm:"not null"`
	Quantity  int            `json:"quantity" gorm:"not null"`
	UnitPrice int64          `json:"unit_price" gorm:"not null"`
	Subtotal  int64          `json:"subtotal" gorm:"not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

// OrderItemsFromCart snapshots cart lines into order rows.
func OrderItemsFromCart(items []CartItem) []OrderItem {
	out := make([]OrderItem, 0, len(items))
	for _, it := range items {
		out = append(out, OrderItem{
			ProductID: it.ID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.Price,
			Subtotal:  it.Subtotal(),
		})
	}
	return out
}
