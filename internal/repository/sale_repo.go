package repository

import (
	"context"

	"storepos/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SaleRow is a sale joined to its product name, as listings and exports
// present it.
type SaleRow struct {
	ID          uint
	ProductID   uint
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
	TS          string
}

// SummaryRow aggregates sale rows in a date range.
type SummaryRow struct {
	Orders   int
	Quantity int
	Revenue  decimal.Decimal
}

// SaleRepository defines the data access contract for sale records. Sales
// are insert-only; rows disappear only through the product cascade.
type SaleRepository interface {
	// CreateTx inserts a sale inside the caller's transaction so the insert
	// and the stock decrement commit or roll back together.
	CreateTx(tx *gorm.DB, s *model.Sale) error
	// List returns sales joined to product name, newest first. Bounds are
	// inclusive calendar dates (YYYY-MM-DD); empty means unconstrained.
	List(ctx context.Context, dateFrom, dateTo string) ([]SaleRow, error)
	Summary(ctx context.Context, dateFrom, dateTo string) (*SummaryRow, error)
	FindByID(ctx context.Context, id uint) (*model.Sale, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) CreateTx(tx *gorm.DB, s *model.Sale) error {
	return tx.Create(s).Error
}

func dateRange(q *gorm.DB, dateFrom, dateTo string) *gorm.DB {
	if dateFrom != "" {
		q = q.Where("date(sales.ts) >= date(?)", dateFrom)
	}
	if dateTo != "" {
		q = q.Where("date(sales.ts) <= date(?)", dateTo)
	}
	return q
}

func (r *saleRepo) List(ctx context.Context, dateFrom, dateTo string) ([]SaleRow, error) {
	var rows []SaleRow
	q := r.db.WithContext(ctx).Model(&model.Sale{}).
		Select("sales.id, sales.product_id, products.name AS product_name, sales.quantity, sales.unit_price, sales.total, sales.ts").
		Joins("JOIN products ON products.id = sales.product_id")
	q = dateRange(q, dateFrom, dateTo)
	err := q.Order("sales.ts DESC, sales.id DESC").Scan(&rows).Error
	return rows, err
}

func (r *saleRepo) Summary(ctx context.Context, dateFrom, dateTo string) (*SummaryRow, error) {
	var row SummaryRow
	q := r.db.WithContext(ctx).Model(&model.Sale{}).
		Select("COUNT(*) AS orders, COALESCE(SUM(quantity), 0) AS quantity, COALESCE(SUM(total), 0) AS revenue")
	q = dateRange(q, dateFrom, dateTo)
	err := q.Scan(&row).Error
	return &row, err
}

func (r *saleRepo) FindByID(ctx context.Context, id uint) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).Preload("Product").First(&s, id).Error
	return &s, err
}

func (r *saleRepo) DB() *gorm.DB { return r.db }
