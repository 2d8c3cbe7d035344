package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Slug        string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"slug"`
	Description string    `gorm:"type:varchar(1000)" json:"description"`
	Products    []Product `json:"products,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Product is read-only to the order flow: the price and availability stored
// here are the authoritative values snapshotted at order-creation time.
type Product struct {
	ID          string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CategoryID  string          `gorm:"type:varchar(36);not null;index" json:"category_id"`
	Category    *Category       `json:"category,omitempty"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Slug        string          `gorm:"type:varchar(255);not null;uniqueIndex" json:"slug"`
	Description string          `gorm:"type:varchar(2000)" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	IsAvailable bool            `gorm:"not null;default:true" json:"is_available"`
	Images      []ProductImage  `json:"images,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type ProductImage struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	ProductID   string    `gorm:"type:varchar(36);not null;index" json:"product_id"`
	ImageURL    string    `gorm:"type:varchar(500);not null" json:"image_url"`
	IsThumbnail bool      `gorm:"not null;default:false" json:"is_thumbnail"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
