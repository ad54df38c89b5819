package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"gearrent/internal/domain"
	"gearrent/internal/log"
	"gearrent/internal/repos"
)

var (
	ErrCartEmpty          = errors.New("cart empty")
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	ErrOrderNotFound      = errors.New("order not found")
)

// timestamps sort lexically in the stores
const orderTimeLayout = "2006-01-02T15:04:05.000Z07:00"

type OrderService struct {
	Carts   *CartService
	Prods   ProductStore
	Stock   StockStore
	Orders  OrderStore
	Channel Channel
	Pricing domain.Pricing
	Now     func() time.Time
}

func NewOrderService(carts *CartService, prods ProductStore, stock StockStore, orders OrderStore, ch Channel, pricing domain.Pricing) *OrderService {
	return &OrderService{
		Carts: carts, Prods: prods, Stock: stock, Orders: orders, Channel: ch,
		Pricing: pricing, Now: time.Now,
	}
}

// SubmitOrder checks out the session cart: stock is deducted line by line
// against one catalog snapshot, the order is appended to the history, the
// message goes to the channel and the cart is emptied.
//
// Stock writes are not transactional. A failed write is logged and the
// remaining lines are still processed.
func (s *OrderService) SubmitOrder(ctx context.Context, sessionID string, details domain.UserDetails) (domain.Order, Dispatch, error) {
	cart, err := s.Carts.Load(ctx, sessionID)
	if err != nil {
		return domain.Order{}, Dispatch{}, err
	}
	if len(cart.Lines) == 0 {
		return domain.Order{}, Dispatch{}, ErrCartEmpty
	}
	details.Duration = domain.ClampDuration(details.Duration)

	products, err := s.Prods.List(ctx)
	if err != nil {
		log.Error(nil, "checkout.catalog", err, map[string]any{"sid": sessionID})
		return domain.Order{}, Dispatch{}, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	snapshot := make(map[string]*domain.Product, len(products))
	for i := range products {
		snapshot[products[i].ID] = &products[i]
	}

	for _, line := range cart.Lines {
		p, ok := snapshot[line.Product.ID]
		if !ok {
			log.Warn(nil, "checkout.product.missing", nil, map[string]any{"product_id": line.Product.ID})
			continue
		}
		s.deduct(ctx, p, line.Quantity, line.SelectedSize, line.SelectedColor)

		for _, item := range p.PackageItems {
			comp, ok := snapshot[item.ProductID]
			if !ok {
				continue
			}
			if comp.Stock != nil && comp.Stock.Kind() != domain.StockFlat {
				log.Error(nil, "checkout.package.component", ErrInvalidPackage, map[string]any{
					"package_id": p.ID, "component_id": comp.ID, "kind": string(comp.Stock.Kind()),
				})
				continue
			}
			s.deduct(ctx, comp, line.Quantity*item.Quantity, "", "")
		}
	}

	order := domain.Order{
		ID:         uuid.NewString(),
		SessionID:  sessionID,
		CreatedAt:  s.Now().UTC().Format(orderTimeLayout),
		RentalDate: details.RentalDate,
		Duration:   details.Duration,
		TotalPrice: cart.Total(s.Pricing, details.Duration),
		Lines:      cart.Lines,
		Status:     domain.OrderStatusPending,
		Renter:     details,
	}
	if err := s.Orders.Create(ctx, order); err != nil {
		log.Error(nil, "checkout.order.persist", err, map[string]any{"order_id": order.ID})
		return domain.Order{}, Dispatch{}, fmt.Errorf("save order: %w", err)
	}
	log.Audit(nil, "checkout.order.created", map[string]any{
		"order_id": order.ID, "sid": sessionID, "total": order.TotalPrice, "lines": len(order.Lines),
	})

	msg := FormatOrderMessage(order, s.Pricing)
	dispatch, err := s.Channel.Send(ctx, order, msg)
	if err != nil {
		log.Error(nil, "checkout.dispatch", err, map[string]any{"order_id": order.ID})
		dispatch = Dispatch{Message: msg}
	}

	if err := s.Carts.Clear(ctx, sessionID); err != nil {
		log.Warn(nil, "checkout.cart.clear", err, map[string]any{"sid": sessionID})
	}
	return order, dispatch, nil
}

// deduct applies qty to the snapshot product in place and persists it, so
// later lines touching the same product see the reduced stock.
func (s *OrderService) deduct(ctx context.Context, p *domain.Product, qty int, size, color string) {
	if p.Stock == nil {
		p.Stock = domain.FlatStock(0)
	}
	next, ok := p.Stock.Deduct(qty, size, color)
	if !ok {
		log.Warn(nil, "checkout.selection.unresolved", nil, map[string]any{
			"product_id": p.ID, "size": size, "color": color,
		})
		return
	}
	p.Stock = next
	if err := s.Stock.UpdateStock(ctx, *p); err != nil {
		log.Error(nil, "checkout.stock.write", err, map[string]any{"product_id": p.ID})
	}
}

// History lists the session's orders, newest first.
func (s *OrderService) History(ctx context.Context, sessionID string) ([]domain.Order, error) {
	return s.Orders.ListBySession(ctx, sessionID)
}

// Get returns an order placed by the same session.
func (s *OrderService) Get(ctx context.Context, sessionID, id string) (domain.Order, error) {
	o, err := s.Orders.Get(ctx, id)
	if errors.Is(err, repos.ErrNotFound) {
		return domain.Order{}, ErrOrderNotFound
	}
	if err != nil {
		return domain.Order{}, err
	}
	if o.SessionID != sessionID {
		return domain.Order{}, ErrOrderNotFound
	}
	return o, nil
}

func (s *OrderService) Latest(ctx context.Context, limit int) ([]domain.Order, error) {
	return s.Orders.ListLatest(ctx, limit)
}
