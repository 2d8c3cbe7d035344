package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusFulfilled OrderStatus = "fulfilled"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is one of the known order states.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusFulfilled, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is created in one atomic write together with its items.
// TotalAmount is computed server-side from the item snapshots and is
// immutable afterwards; Status is mutated only by payment settlement or an
// administrative update.
type Order struct {
	ID              string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CustomerID      string          `gorm:"type:varchar(36);not null;index" json:"customer_id"`
	Customer        *Customer       `json:"customer,omitempty"`
	OrderDate       time.Time       `gorm:"not null" json:"order_date"`
	ShippingAddress string          `gorm:"type:varchar(500);not null" json:"shipping_address"`
	CustomerNotes   string          `gorm:"type:varchar(1000)" json:"customer_notes,omitempty"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	Status          OrderStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	Items           []OrderItem     `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
	Payments        []Payment       `json:"payments,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// OrderItem snapshots the product price at order-creation time so later
// catalog price changes never affect historical orders.
type OrderItem struct {
	ID           string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	OrderID      string          `gorm:"type:varchar(36);not null;index" json:"order_id"`
	ProductID    string          `gorm:"type:varchar(36);not null;index" json:"product_id"`
	Product      *Product        `json:"product,omitempty"`
	Quantity     int             `gorm:"not null" json:"quantity"`
	PricePerItem decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price_per_item"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Subtotal is price-per-item times quantity, in exact decimal arithmetic.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.PricePerItem.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
