package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "gearrent/internal/log"
	"gearrent/internal/services"
	"gearrent/internal/validate"
)

type InventoryHandler struct {
	Inv *services.InventoryService
}

// GET /api/v1/availability?productId=&size=&color=
func (h *InventoryHandler) Check(c *fiber.Ctx) error {
	productID, ok := validate.ID(c.Query("productId"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "missing productId")
	}
	size, okSize := validate.Label(c.Query("size"))
	color, okColor := validate.Label(c.Query("color"))
	if !okSize || !okColor {
		applog.Security(c, "validation.fail", map[string]any{"field": "selection"})
		return jsonError(c, fiber.StatusBadRequest, "invalid size or color")
	}

	avail, err := h.Inv.CheckAvailability(c.UserContext(), productID, size, color)
	if errors.Is(err, services.ErrProductNotFound) {
		return jsonError(c, fiber.StatusNotFound, "product not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(avail)
}
