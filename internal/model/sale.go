package model

import "github.com/shopspring/decimal"

// TimestampLayout is the sortable second-precision form stored in sales.ts.
// Kept textual so SQLite's date() can filter on the calendar-date component.
const TimestampLayout = "2006-01-02T15:04:05"

// Sale is an immutable record of one completed transaction line. It is
// created only by the sales service, atomically with the stock decrement,
// and deleted only as a cascade of deleting its product.
type Sale struct {
	ID        uint            `gorm:"primaryKey"`
	ProductID uint            `gorm:"not null;index"`
	Quantity  int             `gorm:"not null;check:quantity > 0"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null;check:unit_price >= 0"`
	// Total is computed once at creation time and never recomputed.
	Total decimal.Decimal `gorm:"type:decimal(10,2);not null;check:total >= 0"`
	TS    string          `gorm:"column:ts;not null;index"`

	Product *Product `gorm:"foreignKey:ProductID"`
}
