package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"storepos/internal/model"
	"storepos/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── In-memory UserRepository stub ────────────────────────────────────────────

type stubUserRepo struct {
	users  map[uint]*model.User
	nextID uint
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uint]*model.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return errors.New("UNIQUE constraint failed: users.username")
		}
	}
	r.nextID++
	u.ID = r.nextID
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id uint) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]model.User, error) {
	users := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

func (r *stubUserRepo) UpdateCredentials(_ context.Context, id uint, hash, salt string) (int64, error) {
	u, ok := r.users[id]
	if !ok {
		return 0, nil
	}
	u.PasswordHash = hash
	u.Salt = salt
	return 1, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id uint) error {
	delete(r.users, id)
	return nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

// ── In-memory ProductRepository stub ─────────────────────────────────────────

type stubProductRepo struct {
	products map[uint]*model.Product
	nextID   uint
	// mirrors the FK cascade: deleting a product drops its sales here too
	sales *stubSaleRepo
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uint]*model.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	for _, existing := range r.products {
		if existing.SKU == p.SKU {
			return errors.New("UNIQUE constraint failed: products.sku")
		}
	}
	r.nextID++
	p.ID = r.nextID
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uint) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) FindBySKU(_ context.Context, sku string) (*model.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) List(_ context.Context, search string) ([]model.Product, error) {
	var result []model.Product
	for _, p := range r.products {
		if search == "" || strings.Contains(p.Name, search) || strings.Contains(p.SKU, search) {
			result = append(result, *p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	for _, existing := range r.products {
		if existing.ID != p.ID && existing.SKU == p.SKU {
			return errors.New("UNIQUE constraint failed: products.sku")
		}
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id uint) error {
	delete(r.products, id)
	if r.sales != nil {
		r.sales.dropByProduct(id)
	}
	return nil
}

func (r *stubProductRepo) LowStock(_ context.Context, threshold int) ([]model.Product, error) {
	var result []model.Product
	for _, p := range r.products {
		if p.Quantity <= threshold || p.Quantity <= p.ReorderLevel {
			result = append(result, *p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Quantity < result[j].Quantity })
	return result, nil
}

func (r *stubProductRepo) FindByIDTx(_ *gorm.DB, id uint) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) AdjustStockTx(_ *gorm.DB, id uint, delta int) (int64, error) {
	p, ok := r.products[id]
	if !ok || p.Quantity+delta < 0 {
		return 0, nil
	}
	p.Quantity += delta
	return 1, nil
}

func (r *stubProductRepo) DecrementStockTx(_ *gorm.DB, id uint, qty int) (int64, error) {
	p, ok := r.products[id]
	if !ok || p.Quantity < qty {
		return 0, nil
	}
	p.Quantity -= qty
	return 1, nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// ── In-memory SaleRepository stub ────────────────────────────────────────────

type stubSaleRepo struct {
	sales    []*model.Sale
	nextID   uint
	products *stubProductRepo
}

func newStubSaleRepo(products *stubProductRepo) *stubSaleRepo {
	r := &stubSaleRepo{products: products}
	if products != nil {
		products.sales = r
	}
	return r
}

func (r *stubSaleRepo) CreateTx(_ *gorm.DB, s *model.Sale) error {
	r.nextID++
	s.ID = r.nextID
	r.sales = append(r.sales, s)
	return nil
}

func (r *stubSaleRepo) dropByProduct(productID uint) {
	kept := r.sales[:0]
	for _, s := range r.sales {
		if s.ProductID != productID {
			kept = append(kept, s)
		}
	}
	r.sales = kept
}

func inRange(ts, dateFrom, dateTo string) bool {
	day := ts[:10]
	if dateFrom != "" && day < dateFrom {
		return false
	}
	if dateTo != "" && day > dateTo {
		return false
	}
	return true
}

func (r *stubSaleRepo) List(_ context.Context, dateFrom, dateTo string) ([]repository.SaleRow, error) {
	var rows []repository.SaleRow
	for _, s := range r.sales {
		if !inRange(s.TS, dateFrom, dateTo) {
			continue
		}
		name := ""
		if r.products != nil {
			if p, ok := r.products.products[s.ProductID]; ok {
				name = p.Name
			}
		}
		rows = append(rows, repository.SaleRow{
			ID: s.ID, ProductID: s.ProductID, ProductName: name,
			Quantity: s.Quantity, UnitPrice: s.UnitPrice, Total: s.Total, TS: s.TS,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TS != rows[j].TS {
			return rows[i].TS > rows[j].TS
		}
		return rows[i].ID > rows[j].ID
	})
	return rows, nil
}

func (r *stubSaleRepo) Summary(_ context.Context, dateFrom, dateTo string) (*repository.SummaryRow, error) {
	row := repository.SummaryRow{Revenue: decimal.Zero}
	for _, s := range r.sales {
		if !inRange(s.TS, dateFrom, dateTo) {
			continue
		}
		row.Orders++
		row.Quantity += s.Quantity
		row.Revenue = row.Revenue.Add(s.Total)
	}
	return &row, nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id uint) (*model.Sale, error) {
	for _, s := range r.sales {
		if s.ID == id {
			cp := *s
			if r.products != nil {
				if p, ok := r.products.products[s.ProductID]; ok {
					cp.Product = p
				}
			}
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubSaleRepo) DB() *gorm.DB { return nil }

var _ repository.SaleRepository = (*stubSaleRepo)(nil)

// ── Helpers ───────────────────────────────────────────────────────────────────

func seedProduct(repo *stubProductRepo, name, sku string, price float64, quantity, reorderLevel int) *model.Product {
	repo.nextID++
	p := &model.Product{
		ID:           repo.nextID,
		Name:         name,
		SKU:          sku,
		Price:        decimal.NewFromFloat(price),
		Quantity:     quantity,
		ReorderLevel: reorderLevel,
	}
	repo.products[p.ID] = p
	return p
}
