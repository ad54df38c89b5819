package services_test

import (
	"context"
	"errors"
	"testing"

	"gearrent/internal/domain"
	"gearrent/internal/services"
)

func TestInventoryService_CheckAvailability(t *testing.T) {
	s := newShop(t)
	svc := services.NewInventoryService(s.catalog)
	ctx := context.Background()

	cases := []struct {
		id, size, color string
		status          string
		qty             int
	}{
		{"1", "", "", "IN_STOCK", 10},
		{"12", "L", "Merah", "IN_STOCK", 3},
		{"12", "L", "Hitam", "LOW_STOCK", 2},
		{"12", "M", "Hitam", "OUT_OF_STOCK", 0},
		{"12", "", "", "IN_STOCK", 8}, // incomplete selection resolves to total
		{"11", "40", "", "LOW_STOCK", 2},
		{"11", "39", "", "OUT_OF_STOCK", 0},
	}
	for _, tc := range cases {
		a, err := svc.CheckAvailability(ctx, tc.id, tc.size, tc.color)
		if err != nil {
			t.Fatal(err)
		}
		if a != (domain.Availability{Status: tc.status, Qty: tc.qty}) {
			t.Fatalf("%s %s/%s: want %s(%d), got %+v", tc.id, tc.size, tc.color, tc.status, tc.qty, a)
		}
	}

	if _, err := svc.CheckAvailability(ctx, "nope", "", ""); !errors.Is(err, services.ErrProductNotFound) {
		t.Fatalf("want ErrProductNotFound, got %v", err)
	}
}
