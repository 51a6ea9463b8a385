package service

import (
	"context"
	"fmt"
	"time"

	"storepos/internal/apperr"
	"storepos/internal/dto"
	"storepos/internal/model"
	"storepos/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SalesService records sales atomically against stock and lists history.
type SalesService interface {
	RecordSale(ctx context.Context, req dto.RecordSaleRequest) (*dto.SaleResponse, error)
	ListSales(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error)
	GetSale(ctx context.Context, id uint) (*dto.SaleResponse, error)
}

type salesService struct {
	repo        repository.SaleRepository
	productRepo repository.ProductRepository
	now         func() time.Time
}

func NewSalesService(repo repository.SaleRepository, productRepo repository.ProductRepository) SalesService {
	return &salesService{repo: repo, productRepo: productRepo, now: time.Now}
}

// RecordSale checks, in order: quantity > 0, product exists, stock covers
// the request. The stock check and the decrement are one guarded UPDATE
// inside the same transaction as the sale insert, so a failed decrement
// leaves neither a sale row nor a changed quantity behind.
func (s *salesService) RecordSale(ctx context.Context, req dto.RecordSaleRequest) (*dto.SaleResponse, error) {
	if req.Quantity <= 0 {
		return nil, apperr.Validation("quantity must be > 0")
	}
	if req.UnitPrice.IsNegative() {
		return nil, apperr.Validation("unit price must not be negative")
	}

	total := req.UnitPrice.Mul(decimal.NewFromInt(int64(req.Quantity)))
	ts := s.now().Format(model.TimestampLayout)

	var sale model.Sale
	var productName string
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		p, err := s.productRepo.FindByIDTx(tx, req.ProductID)
		if err != nil {
			if isNotFound(err) {
				return apperr.NotFound(fmt.Sprintf("product %d not found", req.ProductID))
			}
			return apperr.Store(err)
		}
		productName = p.Name

		rows, err := s.productRepo.DecrementStockTx(tx, req.ProductID, req.Quantity)
		if err != nil {
			return apperr.Store(err)
		}
		if rows == 0 {
			return apperr.Validation("insufficient stock")
		}

		sale = model.Sale{
			ProductID: req.ProductID,
			Quantity:  req.Quantity,
			UnitPrice: req.UnitPrice,
			Total:     total,
			TS:        ts,
		}
		if err := s.repo.CreateTx(tx, &sale); err != nil {
			return apperr.Store(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.SaleResponse{
		ID:          sale.ID,
		ProductID:   sale.ProductID,
		ProductName: productName,
		Quantity:    sale.Quantity,
		UnitPrice:   sale.UnitPrice,
		Total:       sale.Total,
		Timestamp:   sale.TS,
	}, nil
}

func (s *salesService) ListSales(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error) {
	rows, err := s.repo.List(ctx, filter.DateFrom, filter.DateTo)
	if err != nil {
		return nil, apperr.Store(err)
	}
	data := make([]dto.SaleResponse, len(rows))
	for i, r := range rows {
		data[i] = dto.SaleResponse{
			ID:          r.ID,
			ProductID:   r.ProductID,
			ProductName: r.ProductName,
			Quantity:    r.Quantity,
			UnitPrice:   r.UnitPrice,
			Total:       r.Total,
			Timestamp:   r.TS,
		}
	}
	return &dto.SaleListResponse{Data: data, Total: len(data)}, nil
}

func (s *salesService) GetSale(ctx context.Context, id uint) (*dto.SaleResponse, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound(fmt.Sprintf("sale %d not found", id))
		}
		return nil, apperr.Store(err)
	}
	resp := &dto.SaleResponse{
		ID:        sale.ID,
		ProductID: sale.ProductID,
		Quantity:  sale.Quantity,
		UnitPrice: sale.UnitPrice,
		Total:     sale.Total,
		Timestamp: sale.TS,
	}
	if sale.Product != nil {
		resp.ProductName = sale.Product.Name
	}
	return resp, nil
}
