package services

import (
	"context"
	"errors"

	"gearrent/internal/domain"
	"gearrent/internal/log"
)

var (
	ErrSelectionRequired = errors.New("size and color selection required")
	ErrOutOfStock        = errors.New("selection is out of stock")
	ErrLineNotFound      = errors.New("cart line not found")
)

const cartKeyPrefix = "mamasCart:"

func cartKey(sessionID string) string { return cartKeyPrefix + sessionID }

type CartService struct {
	Blobs   CartBlobStore
	Catalog *CatalogService
	Pricing domain.Pricing
}

func NewCartService(blobs CartBlobStore, catalog *CatalogService, pricing domain.Pricing) *CartService {
	return &CartService{Blobs: blobs, Catalog: catalog, Pricing: pricing}
}

// Load restores the session cart. A blob written under an older schema is
// discarded and the session starts with an empty cart.
func (s *CartService) Load(ctx context.Context, sessionID string) (domain.Cart, error) {
	b, err := s.Blobs.Load(ctx, cartKey(sessionID))
	if err != nil {
		return domain.Cart{}, err
	}
	if b == nil {
		return domain.Cart{}, nil
	}
	cart, err := domain.DecodeCart(b)
	if err != nil {
		log.Warn(nil, "cart.schema.reset", err, map[string]any{"sid": sessionID})
		if derr := s.Blobs.Delete(ctx, cartKey(sessionID)); derr != nil {
			log.Error(nil, "cart.schema.reset", derr, map[string]any{"sid": sessionID})
		}
		return domain.Cart{}, nil
	}
	return cart, nil
}

func (s *CartService) save(ctx context.Context, sessionID string, cart domain.Cart) error {
	if len(cart.Lines) == 0 {
		return s.Blobs.Delete(ctx, cartKey(sessionID))
	}
	b, err := domain.EncodeCart(cart)
	if err != nil {
		return err
	}
	return s.Blobs.Save(ctx, cartKey(sessionID), b)
}

// Add puts one unit of the selection in the cart. The product is
// snapshotted from the catalog on first add.
func (s *CartService) Add(ctx context.Context, sessionID, productID, size, color string) (domain.CartLine, error) {
	p, err := s.Catalog.GetProduct(ctx, productID)
	if err != nil {
		return domain.CartLine{}, err
	}
	if p.Stock == nil {
		p.Stock = domain.FlatStock(0)
	}
	switch p.Stock.Kind() {
	case domain.StockByVariant:
		if size == "" || color == "" {
			return domain.CartLine{}, ErrSelectionRequired
		}
	case domain.StockBySize:
		if size == "" {
			return domain.CartLine{}, ErrSelectionRequired
		}
		color = ""
	default:
		size, color = "", ""
	}

	cart, err := s.Load(ctx, sessionID)
	if err != nil {
		return domain.CartLine{}, err
	}
	k := domain.LineKey{ProductID: p.ID, Size: size, Color: color}
	if _, ok := cart.Line(k); !ok && domain.AvailableStock(p, size, color) == 0 {
		return domain.CartLine{}, ErrOutOfStock
	}
	line := cart.Add(p, size, color)
	if err := s.save(ctx, sessionID, cart); err != nil {
		return domain.CartLine{}, err
	}
	return line, nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, sessionID string, k domain.LineKey, delta int) (domain.CartLine, error) {
	cart, err := s.Load(ctx, sessionID)
	if err != nil {
		return domain.CartLine{}, err
	}
	line, ok := cart.UpdateQuantity(k, delta)
	if !ok {
		return domain.CartLine{}, ErrLineNotFound
	}
	if err := s.save(ctx, sessionID, cart); err != nil {
		return domain.CartLine{}, err
	}
	return line, nil
}

func (s *CartService) Remove(ctx context.Context, sessionID string, k domain.LineKey) error {
	cart, err := s.Load(ctx, sessionID)
	if err != nil {
		return err
	}
	if !cart.Remove(k) {
		return ErrLineNotFound
	}
	return s.save(ctx, sessionID, cart)
}

func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	return s.Blobs.Delete(ctx, cartKey(sessionID))
}

type CartLineView struct {
	domain.CartLine
	UnitPrice int64 `json:"unitPrice"`
	Subtotal  int64 `json:"subtotal"`
}

type CartView struct {
	Lines []CartLineView `json:"lines"`
	Days  int            `json:"days"`
	Count int            `json:"count"`
	Total int64          `json:"total"`
}

// View prices the cart for days; nothing is cached between calls.
func (s *CartService) View(ctx context.Context, sessionID string, days int) (CartView, error) {
	cart, err := s.Load(ctx, sessionID)
	if err != nil {
		return CartView{}, err
	}
	days = domain.ClampDuration(days)
	v := CartView{Lines: make([]CartLineView, 0, len(cart.Lines)), Days: days, Count: cart.Count()}
	for _, l := range cart.Lines {
		unit := s.Pricing.UnitPrice(l.Product, days)
		v.Lines = append(v.Lines, CartLineView{CartLine: l, UnitPrice: unit, Subtotal: unit * int64(l.Quantity)})
	}
	v.Total = cart.Total(s.Pricing, days)
	return v, nil
}
