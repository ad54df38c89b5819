package handlers

import (
	"github.com/jmoiron/sqlx"

	"gearrent/internal/config"
	"gearrent/internal/repos"
	"gearrent/internal/services"
)

// Backends overrides the default SQLite stores. Nil fields fall back to
// the database passed to NewDeps.
type Backends struct {
	Carts   services.CartBlobStore
	Orders  services.OrderStore
	Advisor services.Advisor
}

type Deps struct {
	ProductHandler   *ProductHandler
	CategoryHandler  *CategoryHandler
	InventoryHandler *InventoryHandler
	CartHandler      *CartHandler
	OrderHandler     *OrderHandler
	AdvisorHandler   *AdvisorHandler
	AuthHandler      *AuthHandler
	AdminHandler     *AdminHandler
	Auth             *services.AdminAuth
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AdminAuth, b Backends) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	invRepo := repos.NewInventoryRepo(db)

	var carts services.CartBlobStore = repos.NewCartRepo(db)
	if b.Carts != nil {
		carts = b.Carts
	}
	var orders services.OrderStore = repos.NewOrderRepo(db)
	if b.Orders != nil {
		orders = b.Orders
	}
	var advisor services.Advisor = services.OfflineAdvisor{}
	if b.Advisor != nil {
		advisor = b.Advisor
	}

	pricing := cfg.Pricing()
	catalogSvc := services.NewCatalogService(catRepo, prodRepo, invRepo)
	invSvc := services.NewInventoryService(catalogSvc)
	cartSvc := services.NewCartService(carts, catalogSvc, pricing)
	orderSvc := services.NewOrderService(cartSvc, prodRepo, invRepo, orders,
		services.WhatsAppChannel{Number: cfg.WANumber}, pricing)

	return &Deps{
		ProductHandler:   &ProductHandler{Catalog: catalogSvc},
		CategoryHandler:  &CategoryHandler{Catalog: catalogSvc},
		InventoryHandler: &InventoryHandler{Inv: invSvc},
		CartHandler:      &CartHandler{Cart: cartSvc},
		OrderHandler:     &OrderHandler{Order: orderSvc},
		AdvisorHandler:   &AdvisorHandler{Catalog: catalogSvc, Advisor: advisor},
		AuthHandler:      &AuthHandler{Auth: auth},
		AdminHandler:     &AdminHandler{Catalog: catalogSvc, Orders: orderSvc},
		Auth:             auth,
	}
}
