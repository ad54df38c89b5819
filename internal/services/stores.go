package services

import (
	"context"

	"gearrent/internal/domain"
	"gearrent/internal/repos"
)

type ProductStore interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (domain.Product, error)
	Create(ctx context.Context, p domain.Product) (domain.Product, error)
	Update(ctx context.Context, p domain.Product) (domain.Product, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type CategoryStore interface {
	List(ctx context.Context) ([]domain.Category, error)
	Create(ctx context.Context, c domain.Category) (domain.Category, error)
	Update(ctx context.Context, c domain.Category) (domain.Category, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// StockStore writes stock columns only.
type StockStore interface {
	UpdateStock(ctx context.Context, p domain.Product) error
	LowStock(ctx context.Context, threshold int) ([]repos.LowStockRow, error)
}

type OrderStore interface {
	Create(ctx context.Context, o domain.Order) error
	Get(ctx context.Context, id string) (domain.Order, error)
	ListBySession(ctx context.Context, sessionID string) ([]domain.Order, error)
	ListLatest(ctx context.Context, limit int) ([]domain.Order, error)
}

// CartBlobStore holds one opaque blob per key. Load returns nil, nil for a
// missing key.
type CartBlobStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, blob []byte) error
	Delete(ctx context.Context, key string) error
}

var (
	_ ProductStore  = (*repos.ProductRepo)(nil)
	_ CategoryStore = (*repos.CategoryRepo)(nil)
	_ StockStore    = (*repos.InventoryRepo)(nil)
	_ OrderStore    = (*repos.OrderRepo)(nil)
	_ OrderStore    = (*repos.MongoOrderRepo)(nil)
	_ CartBlobStore = (*repos.CartRepo)(nil)
	_ CartBlobStore = (*repos.RedisCartRepo)(nil)
)
