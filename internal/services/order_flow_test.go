package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"gearrent/internal/domain"
	"gearrent/internal/services"
)

var renter = domain.UserDetails{
	Name: "Budi", WhatsApp: "081234567890", Campus: "Unsoed", RentalDate: "2025-02-01", Duration: 3,
}

func TestOrderFlow_AddCartCheckout(t *testing.T) {
	s := newShop(t)
	ctx := context.Background()
	sid := "test-session"

	for i := 0; i < 2; i++ {
		if _, err := s.carts.Add(ctx, sid, "1", "", ""); err != nil {
			t.Fatal(err)
		}
	}

	order, dispatch, err := s.checkout.SubmitOrder(ctx, sid, renter)
	if err != nil {
		t.Fatal(err)
	}
	if order.ID == "" || order.Status != domain.OrderStatusPending {
		t.Fatalf("bad order: %+v", order)
	}
	if order.TotalPrice != 170000 {
		t.Fatalf("want 2x85000 for 3 days, got %d", order.TotalPrice)
	}
	if !strings.HasPrefix(dispatch.URL, "https://wa.me/6281234567890?text=") {
		t.Fatalf("bad dispatch url: %s", dispatch.URL)
	}

	// stock decremented from 10 to 8
	tent, _ := s.prods.Get(ctx, "1")
	if tent.TotalStock() != 8 {
		t.Fatalf("want stock=8, got %d", tent.TotalStock())
	}

	// cart cleared, history recorded
	cart, _ := s.carts.Load(ctx, sid)
	if len(cart.Lines) != 0 {
		t.Fatalf("cart should be empty, got %+v", cart.Lines)
	}
	hist, _ := s.checkout.History(ctx, sid)
	if len(hist) != 1 || hist[0].ID != order.ID {
		t.Fatalf("history missing order: %+v", hist)
	}
	if _, err := s.checkout.Get(ctx, "other-session", order.ID); !errors.Is(err, services.ErrOrderNotFound) {
		t.Fatalf("order must not leak across sessions, got %v", err)
	}
}

func TestOrderFlow_VariantDrainsToZero(t *testing.T) {
	s := newShop(t)
	ctx := context.Background()
	sid := "sid-variant"

	b, err := s.catalog.CreateProduct(ctx, domain.Product{
		Name: "Jaket Polar", Category: "Pakaian",
		Prices: domain.PriceTiers{Days2: 20000, Days7: 50000},
		Stock:  domain.VariantStock{{Color: "Merah", Size: "L", Stock: 3}},
	})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if _, err := s.carts.Add(ctx, sid, b.ID, "L", "Merah"); err != nil {
			t.Fatal(err)
		}
	}
	if _, _, err := s.checkout.SubmitOrder(ctx, sid, renter); err != nil {
		t.Fatal(err)
	}

	got, _ := s.prods.Get(ctx, b.ID)
	if got.Stock.Available("L", "Merah") != 0 || got.TotalStock() != 0 {
		t.Fatalf("want variant and total at 0, got %+v", got.Stock)
	}
}

func TestOrderFlow_PackageCascades(t *testing.T) {
	s := newShop(t)
	ctx := context.Background()
	sid := "sid-package"

	for i := 0; i < 2; i++ {
		if _, err := s.carts.Add(ctx, sid, "13", "", ""); err != nil {
			t.Fatal(err)
		}
	}
	if _, _, err := s.checkout.SubmitOrder(ctx, sid, renter); err != nil {
		t.Fatal(err)
	}

	want := map[string]int{"13": 3, "2": 3, "7": 10, "8": 10, "6": 46}
	for id, qty := range want {
		p, err := s.prods.Get(ctx, id)
		if err != nil {
			t.Fatal(err)
		}
		if p.TotalStock() != qty {
			t.Fatalf("product %s: want stock=%d, got %d", id, qty, p.TotalStock())
		}
	}
}

func TestOrderFlow_SameProductTwoSelections(t *testing.T) {
	s := newShop(t)
	ctx := context.Background()
	sid := "sid-two-lines"

	if _, err := s.carts.Add(ctx, sid, "12", "L", "Merah"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.carts.Add(ctx, sid, "12", "L", "Hitam"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := s.checkout.SubmitOrder(ctx, sid, renter); err != nil {
		t.Fatal(err)
	}

	jacket, _ := s.prods.Get(ctx, "12")
	if jacket.Stock.Available("L", "Merah") != 2 || jacket.Stock.Available("L", "Hitam") != 1 {
		t.Fatalf("both lines must be deducted, got %+v", jacket.Stock)
	}
	if jacket.TotalStock() != 6 {
		t.Fatalf("want total 6, got %d", jacket.TotalStock())
	}
}

func TestOrderFlow_DeductionClampsAtZero(t *testing.T) {
	s := newShop(t)
	ctx := context.Background()
	sid := "sid-race"

	for i := 0; i < 3; i++ {
		if _, err := s.carts.Add(ctx, sid, "2", "", ""); err != nil {
			t.Fatal(err)
		}
	}
	// another checkout drained the tent meanwhile
	_ = s.inv.UpdateStock(ctx, domain.Product{ID: "2", Stock: domain.FlatStock(1)})

	if _, _, err := s.checkout.SubmitOrder(ctx, sid, renter); err != nil {
		t.Fatal(err)
	}
	tent, _ := s.prods.Get(ctx, "2")
	if tent.TotalStock() != 0 {
		t.Fatalf("want clamp to 0, got %d", tent.TotalStock())
	}
}

func TestOrderFlow_MissingProductSkipped(t *testing.T) {
	s := newShop(t)
	ctx := context.Background()
	sid := "sid-missing"
	logs := captureLog(t)

	_, _ = s.carts.Add(ctx, sid, "9", "", "")
	_, _ = s.carts.Add(ctx, sid, "10", "", "")
	if _, err := s.prods.Delete(ctx, "9"); err != nil {
		t.Fatal(err)
	}

	order, _, err := s.checkout.SubmitOrder(ctx, sid, renter)
	if err != nil {
		t.Fatal(err)
	}
	if len(order.Lines) != 2 {
		t.Fatalf("order keeps the cart snapshot, got %d lines", len(order.Lines))
	}
	pole, _ := s.prods.Get(ctx, "10")
	if pole.TotalStock() != 19 {
		t.Fatalf("remaining line must still be deducted, got %d", pole.TotalStock())
	}
	if !strings.Contains(logs.String(), `"action":"checkout.product.missing"`) {
		t.Fatalf("missing product should be logged, got: %s", logs.String())
	}
}

func TestOrderFlow_StockWriteFailureContinues(t *testing.T) {
	s := newShop(t)
	ctx := context.Background()
	sid := "sid-flaky"
	logs := captureLog(t)

	_, _ = s.carts.Add(ctx, sid, "1", "", "")
	_, _ = s.carts.Add(ctx, sid, "3", "", "")

	stock := &flakyStock{failFor: map[string]bool{"1": true}}
	s.checkout.Stock = stock

	order, _, err := s.checkout.SubmitOrder(ctx, sid, renter)
	if err != nil {
		t.Fatal(err)
	}
	if order.ID == "" {
		t.Fatal("order should still be created")
	}
	if p, ok := stock.written["3"]; !ok || p.TotalStock() != 7 {
		t.Fatalf("second line should be written after the first failed, got %+v", stock.written)
	}
	if !strings.Contains(logs.String(), `"action":"checkout.stock.write"`) {
		t.Fatalf("write failure should be logged, got: %s", logs.String())
	}
}

func TestOrderFlow_EmptyCart(t *testing.T) {
	s := newShop(t)
	if _, _, err := s.checkout.SubmitOrder(context.Background(), "nobody", renter); !errors.Is(err, services.ErrCartEmpty) {
		t.Fatalf("want ErrCartEmpty, got %v", err)
	}
}

func TestOrderFlow_CatalogUnavailableWritesNothing(t *testing.T) {
	s := newShop(t)
	ctx := context.Background()
	sid := "sid-down"

	_, _ = s.carts.Add(ctx, sid, "1", "", "")
	stock := &flakyStock{}
	s.checkout.Prods = failingProducts{}
	s.checkout.Stock = stock

	_, _, err := s.checkout.SubmitOrder(ctx, sid, renter)
	if !errors.Is(err, services.ErrCatalogUnavailable) {
		t.Fatalf("want ErrCatalogUnavailable, got %v", err)
	}
	if len(stock.written) != 0 {
		t.Fatalf("no stock write expected, got %+v", stock.written)
	}
	cart, _ := s.carts.Load(ctx, sid)
	if len(cart.Lines) != 1 {
		t.Fatal("cart must survive a failed checkout")
	}
	hist, _ := s.orders.ListBySession(ctx, sid)
	if len(hist) != 0 {
		t.Fatal("no order expected")
	}
}

func TestOrderFlow_DurationClamped(t *testing.T) {
	s := newShop(t)
	ctx := context.Background()
	sid := "sid-short"

	_, _ = s.carts.Add(ctx, sid, "5", "", "")
	d := renter
	d.Duration = 1
	order, _, err := s.checkout.SubmitOrder(ctx, sid, d)
	if err != nil {
		t.Fatal(err)
	}
	if order.Duration != 2 || order.TotalPrice != 15000 {
		t.Fatalf("want 2-day minimum, got duration=%d total=%d", order.Duration, order.TotalPrice)
	}
	got, err := s.orders.Get(ctx, order.ID)
	if err != nil || got.Renter.Duration != 2 {
		t.Fatalf("stored renter duration should be clamped: %+v %v", got.Renter, err)
	}
}

func TestOrderFlow_SizedPackageComponentLoggedAsError(t *testing.T) {
	s := newShop(t)
	ctx := context.Background()
	sid := "sid-sized-component"
	logs := captureLog(t)

	// written straight to the store, bypassing the catalog check
	if _, err := s.prods.Create(ctx, domain.Product{
		ID: "bundle-shoes", Name: "Paket Sepatu", Category: "Paketan Sewa",
		Prices: domain.PriceTiers{Days2: 50000}, Stock: domain.FlatStock(3),
		PackageItems: []domain.PackageItem{{ProductID: "11", Quantity: 1}, {ProductID: "10", Quantity: 1}},
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.carts.Add(ctx, sid, "bundle-shoes", "", ""); err != nil {
		t.Fatal(err)
	}
	if _, _, err := s.checkout.SubmitOrder(ctx, sid, renter); err != nil {
		t.Fatal(err)
	}

	shoes, _ := s.prods.Get(ctx, "11")
	if shoes.TotalStock() != 10 {
		t.Fatalf("sized component must be left alone, got %d", shoes.TotalStock())
	}
	pole, _ := s.prods.Get(ctx, "10")
	if pole.TotalStock() != 19 {
		t.Fatalf("plain component must still be deducted, got %d", pole.TotalStock())
	}
	out := logs.String()
	if !strings.Contains(out, `"level":"error","action":"checkout.package.component"`) {
		t.Fatalf("skipped component should be logged as an error, got: %s", out)
	}
}
