package dto

import "github.com/shopspring/decimal"

type LowStockFilter struct {
	Threshold int `form:"threshold,default=5" validate:"min=0"`
}

type SalesSummaryResponse struct {
	TotalOrders   int             `json:"total_orders"`
	TotalQuantity int             `json:"total_quantity"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
}

type ExportRequest struct {
	Filename string `json:"filename" validate:"omitempty,max=128"`
}

type ExportResponse struct {
	Path string `json:"path"`
}
