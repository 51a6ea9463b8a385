package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"storepos/internal/apperr"
	"storepos/internal/dto"
	"storepos/internal/repository"
)

// ReportService is read-only over the store: low-stock listing, date-ranged
// sales summary, and CSV export of current state.
type ReportService interface {
	LowStock(ctx context.Context, threshold int) ([]dto.ProductResponse, error)
	SalesSummary(ctx context.Context, filter dto.SaleFilter) (*dto.SalesSummaryResponse, error)
	// ExportInventoryCSV and ExportSalesCSV write under the configured
	// export directory and return the file's path.
	ExportInventoryCSV(ctx context.Context, filename string) (string, error)
	ExportSalesCSV(ctx context.Context, filename string) (string, error)
}

type reportService struct {
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	exportDir   string
}

func NewReportService(productRepo repository.ProductRepository, saleRepo repository.SaleRepository, exportDir string) ReportService {
	return &reportService{productRepo: productRepo, saleRepo: saleRepo, exportDir: exportDir}
}

// LowStock reports products that are low by either the ad hoc threshold or
// their own reorder point. The two conditions are independent, so threshold
// can only widen the result relative to reorder_level alone.
func (s *reportService) LowStock(ctx context.Context, threshold int) ([]dto.ProductResponse, error) {
	products, err := s.productRepo.LowStock(ctx, threshold)
	if err != nil {
		return nil, apperr.Store(err)
	}
	resp := make([]dto.ProductResponse, len(products))
	for i := range products {
		resp[i] = *productToResponse(&products[i])
	}
	return resp, nil
}

func (s *reportService) SalesSummary(ctx context.Context, filter dto.SaleFilter) (*dto.SalesSummaryResponse, error) {
	row, err := s.saleRepo.Summary(ctx, filter.DateFrom, filter.DateTo)
	if err != nil {
		return nil, apperr.Store(err)
	}
	return &dto.SalesSummaryResponse{
		TotalOrders:   row.Orders,
		TotalQuantity: row.Quantity,
		TotalRevenue:  row.Revenue,
	}, nil
}

// exportPath confines filename to the export directory, creating it if needed.
func (s *reportService) exportPath(filename, fallback string) (string, error) {
	if filename == "" {
		filename = fallback
	}
	if err := os.MkdirAll(s.exportDir, 0o755); err != nil {
		return "", apperr.Store(err)
	}
	return filepath.Join(s.exportDir, filepath.Base(filename)), nil
}

func (s *reportService) ExportInventoryCSV(ctx context.Context, filename string) (string, error) {
	path, err := s.exportPath(filename, "inventory_export.csv")
	if err != nil {
		return "", err
	}

	products, err := s.productRepo.List(ctx, "")
	if err != nil {
		return "", apperr.Store(err)
	}

	records := make([][]string, 0, len(products)+1)
	records = append(records, []string{"ID", "Name", "SKU", "Price", "Quantity", "Reorder Level"})
	for _, p := range products {
		records = append(records, []string{
			fmt.Sprint(p.ID), p.Name, p.SKU, p.Price.String(),
			fmt.Sprint(p.Quantity), fmt.Sprint(p.ReorderLevel),
		})
	}
	if err := writeCSV(path, records); err != nil {
		return "", err
	}
	return path, nil
}

func (s *reportService) ExportSalesCSV(ctx context.Context, filename string) (string, error) {
	path, err := s.exportPath(filename, "sales_export.csv")
	if err != nil {
		return "", err
	}

	rows, err := s.saleRepo.List(ctx, "", "")
	if err != nil {
		return "", apperr.Store(err)
	}

	records := make([][]string, 0, len(rows)+1)
	records = append(records, []string{"Sale ID", "Product", "Qty", "Unit Price", "Total", "Timestamp"})
	for _, r := range rows {
		records = append(records, []string{
			fmt.Sprint(r.ID), r.ProductName, fmt.Sprint(r.Quantity),
			r.UnitPrice.String(), r.Total.String(), r.TS,
		})
	}
	if err := writeCSV(path, records); err != nil {
		return "", err
	}
	return path, nil
}

func writeCSV(path string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return apperr.Store(err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		return apperr.Store(err)
	}
	return nil
}
