package models

import (
	"time"

	"gorm.io/gorm"
)

type DeliveryType string

const (
	DeliveryHome   DeliveryType = "delivery"
	DeliveryPickup DeliveryType = "pickup"
	DeliveryDineIn DeliveryType = "dinein"
)

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "transfer"
)

type Location struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

// OrderRequest is the checkout form plus the cart snapshot taken at submit
// time. HasChange means the customer pays with the exact amount.
type OrderRequest struct {
	Items         []CartItem    `json:"items,omitempty"`
	CustomerName  string        `json:"customerName" validate:"required"`
	DeliveryType  DeliveryType  `json:"deliveryType" validate:"required,oneof=pickup delivery dinein"`
	ReceiverName  string        `json:"receiverName"`
	Address       string        `json:"address"`
	References    string        `json:"references"`
	ArrivalTime   string        `json:"arrivalTime"`
	PaymentMethod PaymentMethod `json:"paymentMethod" validate:"required,oneof=cash card transfer"`
	HasChange     bool          `json:"hasChange"`
	CashAmount    int64         `json:"cashAmount" validate:"gte=0"`
	HasTip        bool          `json:"hasTip"`
	Tip           int64         `json:"tip" validate:"gte=0"`
	Notes         string        `json:"notes" validate:"max=500"`
	Location      *Location     `json:"location,omitempty"`
}

type Order struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	OrderNumber   string         `json:"order_number" gorm:"unique;not null"`
	BusinessSlug  string         `json:"business_slug" gorm:"index;not null"`
	CustomerName  string         `json:"customer_name" gorm:"not null"`
	DeliveryType  string         `json:"delivery_type" gorm:"not null"`
	PaymentMethod string         `json:"payment_method" gorm:"not null"`
	TotalAmount   int64          `json:"total_amount" gorm:"not null"`
	TipAmount     int64          `json:"tip_amount"`
	CashAmount    int64          `json:"cash_amount"`
	Notes         string         `json:"notes" gorm:"type:text"`
	Message       string         `json:"message" gorm:"type:text"`
	Status        string         `json:"status" gorm:"default:'sent'"`
	Items         []OrderItem    `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

type OrderStatus string

const (
	OrderSent      OrderStatus = "sent"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// CheckoutResult is returned to the client, which opens WhatsAppURL.
type CheckoutResult struct {
	OrderNumber string `json:"orderNumber"`
	Message     string `json:"message"`
	WhatsAppURL string `json:"whatsappUrl"`
	Total       int64  `json:"total"`
	Pushed      bool   `json:"pushed"`
}
