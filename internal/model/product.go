package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a stock-keeping unit. Quantity never goes negative: the store
// carries a CHECK constraint and every decrement is a guarded conditional
// update (see repository.ProductRepository).
type Product struct {
	ID       uint            `gorm:"primaryKey"`
	Name     string          `gorm:"index;not null"`
	SKU      string          `gorm:"column:sku;uniqueIndex;not null"`
	Price    decimal.Decimal `gorm:"type:decimal(10,2);not null;check:price >= 0"`
	Quantity int             `gorm:"not null;check:quantity >= 0"`
	// ReorderLevel is the threshold at or below which the product is
	// considered understocked.
	ReorderLevel int `gorm:"not null;default:5"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Deleting a product cascades to its sales history.
	Sales []Sale `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}
