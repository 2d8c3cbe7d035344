package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusSuccess PaymentStatus = "success"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// Payment is an append-only financial record: rows are created, never
// updated or deleted. Amount always equals the order's server-computed
// total at settlement time.
type Payment struct {
	ID            string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	OrderID       string          `gorm:"type:varchar(36);not null;index" json:"order_id"`
	Order         *Order          `json:"order,omitempty"`
	PaymentMethod string          `gorm:"type:varchar(50);not null" json:"payment_method"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	PaymentStatus PaymentStatus   `gorm:"type:varchar(20);not null" json:"payment_status"`
	TransactionID string          `gorm:"type:varchar(100);not null" json:"transaction_id"`
	PaymentDate   time.Time       `gorm:"not null" json:"payment_date"`
	CreatedAt     time.Time       `json:"created_at"`
}
