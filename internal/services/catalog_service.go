package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"gearrent/internal/domain"
	"gearrent/internal/log"
	"gearrent/internal/repos"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	// ErrInvalidPackage rejects package items that point at a product whose
	// stock is tracked per size or variant.
	ErrInvalidPackage = errors.New("package component must use plain stock")
)

// AllCategories is the storefront filter value that disables the category
// filter.
const AllCategories = "Semua"

type CatalogService struct {
	Cats  CategoryStore
	Prods ProductStore
	Stock StockStore
}

func NewCatalogService(cats CategoryStore, prods ProductStore, stock StockStore) *CatalogService {
	return &CatalogService{Cats: cats, Prods: prods, Stock: stock}
}

// Products returns the live catalog, or the bundled seed when the store
// cannot be read. An empty store is returned as empty.
func (s *CatalogService) Products(ctx context.Context) []domain.Product {
	ps, err := s.Prods.List(ctx)
	if err != nil {
		log.Warn(nil, "catalog.fallback", err, map[string]any{"source": "seed"})
		return repos.SeedProducts()
	}
	return ps
}

// ListProducts filters the catalog by category name and a case-insensitive
// substring of name or description.
func (s *CatalogService) ListProducts(ctx context.Context, category, q string) []domain.Product {
	all := s.Products(ctx)
	category = strings.TrimSpace(category)
	q = strings.ToLower(strings.TrimSpace(q))
	if (category == "" || category == AllCategories) && q == "" {
		return all
	}
	out := make([]domain.Product, 0, len(all))
	for _, p := range all {
		if category != "" && category != AllCategories && !strings.EqualFold(p.Category, category) {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	p, err := s.Prods.Get(ctx, id)
	switch {
	case err == nil:
		return p, nil
	case errors.Is(err, repos.ErrNotFound):
		return domain.Product{}, ErrProductNotFound
	}
	log.Warn(nil, "catalog.fallback", err, map[string]any{"product_id": id})
	for _, sp := range repos.SeedProducts() {
		if sp.ID == id {
			return sp, nil
		}
	}
	return domain.Product{}, ErrProductNotFound
}

// Categories falls back to the default list when the store is empty or
// unreadable.
func (s *CatalogService) Categories(ctx context.Context) []domain.Category {
	cs, err := s.Cats.List(ctx)
	if err != nil {
		log.Warn(nil, "catalog.categories.fallback", err, nil)
		return repos.SeedCategories()
	}
	if len(cs) == 0 {
		return repos.SeedCategories()
	}
	return cs
}

// isTempID reports ids minted client-side from a millisecond clock.
func isTempID(id string) bool {
	if len(id) <= 10 {
		return false
	}
	for _, r := range id {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func (s *CatalogService) CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	if p.ID == "" || isTempID(p.ID) {
		p.ID = uuid.NewString()
	}
	if p.Stock == nil {
		p.Stock = domain.FlatStock(0)
	}
	if err := s.checkPackage(ctx, p); err != nil {
		return domain.Product{}, err
	}
	return s.Prods.Create(ctx, p)
}

// checkPackage only accepts components with flat stock; checkout deducts
// components without a size or color. Unknown components are allowed and
// skipped at checkout.
func (s *CatalogService) checkPackage(ctx context.Context, p domain.Product) error {
	for _, it := range p.PackageItems {
		comp, err := s.Prods.Get(ctx, it.ProductID)
		if errors.Is(err, repos.ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		if comp.Stock != nil && comp.Stock.Kind() != domain.StockFlat {
			return fmt.Errorf("%w: %s", ErrInvalidPackage, comp.ID)
		}
	}
	return nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	if p.Stock == nil {
		p.Stock = domain.FlatStock(0)
	}
	if err := s.checkPackage(ctx, p); err != nil {
		return domain.Product{}, err
	}
	out, err := s.Prods.Update(ctx, p)
	if errors.Is(err, repos.ErrNotFound) {
		return domain.Product{}, ErrProductNotFound
	}
	return out, err
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	ok, err := s.Prods.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrProductNotFound
	}
	return nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, name string) (domain.Category, error) {
	return s.Cats.Create(ctx, domain.Category{ID: uuid.NewString(), Name: strings.TrimSpace(name)})
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id, name string) (domain.Category, error) {
	c, err := s.Cats.Update(ctx, domain.Category{ID: id, Name: strings.TrimSpace(name)})
	if errors.Is(err, repos.ErrNotFound) {
		return domain.Category{}, ErrCategoryNotFound
	}
	return c, err
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	ok, err := s.Cats.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCategoryNotFound
	}
	return nil
}

type DashboardStats struct {
	TotalProducts   int                 `json:"totalProducts"`
	TotalCategories int                 `json:"totalCategories"`
	LowStockCount   int                 `json:"lowStockCount"`
	InventoryValue  int64               `json:"inventoryValue"` // Σ price2Days × stock
	LowStock        []repos.LowStockRow `json:"lowStock"`
}

func (s *CatalogService) Dashboard(ctx context.Context) (DashboardStats, error) {
	ps, err := s.Prods.List(ctx)
	if err != nil {
		return DashboardStats{}, err
	}
	cats, err := s.Cats.List(ctx)
	if err != nil {
		return DashboardStats{}, err
	}
	low, err := s.Stock.LowStock(ctx, domain.LowStockThreshold)
	if err != nil {
		return DashboardStats{}, err
	}
	if low == nil {
		low = []repos.LowStockRow{}
	}
	st := DashboardStats{
		TotalProducts:   len(ps),
		TotalCategories: len(cats),
		LowStockCount:   len(low),
		LowStock:        low,
	}
	for _, p := range ps {
		st.InventoryValue += p.Prices.Days2 * int64(p.TotalStock())
	}
	return st, nil
}
