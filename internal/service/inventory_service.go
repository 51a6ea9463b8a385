package service

import (
	"context"
	"fmt"

	"storepos/internal/apperr"
	"storepos/internal/dto"
	"storepos/internal/model"
	"storepos/internal/repository"

	"gorm.io/gorm"
)

const defaultReorderLevel = 5

// InventoryService is the stock ledger: product CRUD plus manual stock
// adjustment with a non-negative floor.
type InventoryService interface {
	AddProduct(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	UpdateProduct(ctx context.Context, id uint, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	DeleteProduct(ctx context.Context, id uint) error
	GetProduct(ctx context.Context, id uint) (*dto.ProductResponse, error)
	ListProducts(ctx context.Context, search string) (*dto.ProductListResponse, error)
	AdjustStock(ctx context.Context, id uint, delta int) (*dto.ProductResponse, error)
}

type inventoryService struct {
	repo repository.ProductRepository
}

func NewInventoryService(repo repository.ProductRepository) InventoryService {
	return &inventoryService{repo: repo}
}

func validateProductFields(name, sku string, priceNegative bool, quantity, reorderLevel int) error {
	if name == "" {
		return apperr.Validation("name must not be empty")
	}
	if sku == "" {
		return apperr.Validation("sku must not be empty")
	}
	if priceNegative {
		return apperr.Validation("price must not be negative")
	}
	if quantity < 0 {
		return apperr.Validation("quantity must not be negative")
	}
	if reorderLevel < 0 {
		return apperr.Validation("reorder level must not be negative")
	}
	return nil
}

func (s *inventoryService) AddProduct(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	reorder := defaultReorderLevel
	if req.ReorderLevel != nil {
		reorder = *req.ReorderLevel
	}
	if err := validateProductFields(req.Name, req.SKU, req.Price.IsNegative(), req.Quantity, reorder); err != nil {
		return nil, err
	}

	p := &model.Product{
		Name:         req.Name,
		SKU:          req.SKU,
		Price:        req.Price,
		Quantity:     req.Quantity,
		ReorderLevel: reorder,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Conflict(fmt.Sprintf("sku %q already exists", req.SKU))
		}
		return nil, apperr.Store(err)
	}
	return productToResponse(p), nil
}

// UpdateProduct is a full replace of all mutable fields.
func (s *inventoryService) UpdateProduct(ctx context.Context, id uint, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := validateProductFields(req.Name, req.SKU, req.Price.IsNegative(), req.Quantity, req.ReorderLevel); err != nil {
		return nil, err
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound(fmt.Sprintf("product %d not found", id))
		}
		return nil, apperr.Store(err)
	}

	p.Name = req.Name
	p.SKU = req.SKU
	p.Price = req.Price
	p.Quantity = req.Quantity
	p.ReorderLevel = req.ReorderLevel
	if err := s.repo.Update(ctx, p); err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Conflict(fmt.Sprintf("sku %q already exists", req.SKU))
		}
		return nil, apperr.Store(err)
	}
	return productToResponse(p), nil
}

// DeleteProduct removes the product and, through the FK cascade, its whole
// sales history. Deleting a missing id is a no-op.
func (s *inventoryService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperr.Store(err)
	}
	return nil
}

func (s *inventoryService) GetProduct(ctx context.Context, id uint) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound(fmt.Sprintf("product %d not found", id))
		}
		return nil, apperr.Store(err)
	}
	return productToResponse(p), nil
}

func (s *inventoryService) ListProducts(ctx context.Context, search string) (*dto.ProductListResponse, error) {
	products, err := s.repo.List(ctx, search)
	if err != nil {
		return nil, apperr.Store(err)
	}
	data := make([]dto.ProductResponse, len(products))
	for i := range products {
		data[i] = *productToResponse(&products[i])
	}
	return &dto.ProductListResponse{Data: data, Total: len(data)}, nil
}

// AdjustStock applies delta inside one transaction. The existence check and
// the guarded conditional update share the transaction, so no interleaving
// writer can observe a stale quantity and push it negative.
func (s *inventoryService) AdjustStock(ctx context.Context, id uint, delta int) (*dto.ProductResponse, error) {
	var updated *model.Product
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if _, err := s.repo.FindByIDTx(tx, id); err != nil {
			if isNotFound(err) {
				return apperr.NotFound(fmt.Sprintf("product %d not found", id))
			}
			return apperr.Store(err)
		}

		rows, err := s.repo.AdjustStockTx(tx, id, delta)
		if err != nil {
			return apperr.Store(err)
		}
		if rows == 0 {
			return apperr.Validation("insufficient stock")
		}

		p, err := s.repo.FindByIDTx(tx, id)
		if err != nil {
			return apperr.Store(err)
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return productToResponse(updated), nil
}

func productToResponse(p *model.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		SKU:          p.SKU,
		Price:        p.Price,
		Quantity:     p.Quantity,
		ReorderLevel: p.ReorderLevel,
	}
}
