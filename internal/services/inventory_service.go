package services

import (
	"context"

	"gearrent/internal/domain"
)

type InventoryService struct {
	Catalog *CatalogService
}

func NewInventoryService(catalog *CatalogService) *InventoryService {
	return &InventoryService{Catalog: catalog}
}

// CheckAvailability converts the resolved stock for a selection into
// IN_STOCK / LOW_STOCK / OUT_OF_STOCK.
func (s *InventoryService) CheckAvailability(ctx context.Context, productID, size, color string) (domain.Availability, error) {
	p, err := s.Catalog.GetProduct(ctx, productID)
	if err != nil {
		return domain.Availability{}, err
	}
	qty := domain.AvailableStock(p, size, color)

	status := "OUT_OF_STOCK"
	switch {
	case qty >= domain.LowStockThreshold:
		status = "IN_STOCK"
	case qty > 0:
		status = "LOW_STOCK"
	}
	return domain.Availability{Status: status, Qty: qty}, nil
}
