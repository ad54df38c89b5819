package services_test

import (
	"bytes"
	"context"
	"errors"
	stdlog "log"
	"sync"
	"testing"

	"github.com/jmoiron/sqlx"

	"gearrent/internal/domain"
	"gearrent/internal/repos"
	"gearrent/internal/services"
)

var errStoreDown = errors.New("store down")

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

type shop struct {
	prods    *repos.ProductRepo
	inv      *repos.InventoryRepo
	blobs    *repos.CartRepo
	orders   *repos.OrderRepo
	catalog  *services.CatalogService
	carts    *services.CartService
	checkout *services.OrderService
}

func newShop(t *testing.T) shop {
	t.Helper()
	db := memdb(t)
	s := shop{
		prods:  repos.NewProductRepo(db),
		inv:    repos.NewInventoryRepo(db),
		blobs:  repos.NewCartRepo(db),
		orders: repos.NewOrderRepo(db),
	}
	s.catalog = services.NewCatalogService(repos.NewCategoryRepo(db), s.prods, s.inv)
	s.carts = services.NewCartService(s.blobs, s.catalog, domain.DefaultPricing)
	s.checkout = services.NewOrderService(s.carts, s.prods, s.inv, s.orders,
		services.WhatsAppChannel{Number: "6281234567890"}, domain.DefaultPricing)
	return s
}

// captureLog redirects the standard logger for the duration of the test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := stdlog.Writer()
	stdlog.SetOutput(&buf)
	t.Cleanup(func() { stdlog.SetOutput(prev) })
	return &buf
}

// failingProducts fails every read and write.
type failingProducts struct{}

func (failingProducts) List(context.Context) ([]domain.Product, error) { return nil, errStoreDown }
func (failingProducts) Get(context.Context, string) (domain.Product, error) {
	return domain.Product{}, errStoreDown
}
func (failingProducts) Create(context.Context, domain.Product) (domain.Product, error) {
	return domain.Product{}, errStoreDown
}
func (failingProducts) Update(context.Context, domain.Product) (domain.Product, error) {
	return domain.Product{}, errStoreDown
}
func (failingProducts) Delete(context.Context, string) (bool, error) { return false, errStoreDown }

type emptyCategories struct{}

func (emptyCategories) List(context.Context) ([]domain.Category, error) { return nil, nil }
func (emptyCategories) Create(_ context.Context, c domain.Category) (domain.Category, error) {
	return c, nil
}
func (emptyCategories) Update(_ context.Context, c domain.Category) (domain.Category, error) {
	return c, nil
}
func (emptyCategories) Delete(context.Context, string) (bool, error) { return false, nil }

// flakyStock records writes and fails the ones listed in failFor.
type flakyStock struct {
	mu      sync.Mutex
	failFor map[string]bool
	written map[string]domain.Product
}

func (f *flakyStock) UpdateStock(_ context.Context, p domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor[p.ID] {
		return errStoreDown
	}
	if f.written == nil {
		f.written = map[string]domain.Product{}
	}
	f.written[p.ID] = p
	return nil
}

func (f *flakyStock) LowStock(context.Context, int) ([]repos.LowStockRow, error) { return nil, nil }
