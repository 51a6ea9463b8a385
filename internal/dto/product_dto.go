package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name         string          `json:"name"          validate:"required,min=1,max=120"`
	SKU          string          `json:"sku"           validate:"required,min=1,max=64"`
	Price        decimal.Decimal `json:"price"         validate:"min=0"`
	Quantity     int             `json:"quantity"      validate:"min=0"`
	ReorderLevel *int            `json:"reorder_level" validate:"omitempty,min=0"`
}

// UpdateProductRequest is a full replace of all mutable fields.
type UpdateProductRequest struct {
	Name         string          `json:"name"          validate:"required,min=1,max=120"`
	SKU          string          `json:"sku"           validate:"required,min=1,max=64"`
	Price        decimal.Decimal `json:"price"         validate:"min=0"`
	Quantity     int             `json:"quantity"      validate:"min=0"`
	ReorderLevel int             `json:"reorder_level" validate:"min=0"`
}

type AdjustStockRequest struct {
	Delta int `json:"delta" validate:"required"`
}

type ProductFilter struct {
	Search string `form:"search"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID           uint            `json:"id"`
	Name         string          `json:"name"`
	SKU          string          `json:"sku"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	ReorderLevel int             `json:"reorder_level"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int               `json:"total"`
}
