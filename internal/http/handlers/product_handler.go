package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"gearrent/internal/log"
	"gearrent/internal/services"
	"gearrent/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

// GET /api/v1/products?category=&q=
func (h *ProductHandler) List(c *fiber.Ctx) error {
	category := strings.TrimSpace(c.Query("category"))
	if category != "" {
		var ok bool
		if category, ok = validate.Name(category, 40); !ok {
			log.Security(c, "validation.fail", map[string]any{"field": "category"})
			return jsonError(c, fiber.StatusBadRequest, "invalid category")
		}
	}
	q := ""
	if raw := c.Query("q"); strings.TrimSpace(raw) != "" {
		var ok bool
		if q, ok = validate.Q(raw); !ok {
			log.Security(c, "validation.fail", map[string]any{"field": "q", "value": raw})
			return jsonError(c, fiber.StatusBadRequest, "enter a valid keyword")
		}
	}
	products := h.Catalog.ListProducts(c.UserContext(), category, q)
	return c.JSON(fiber.Map{"products": products, "count": len(products)})
}

// GET /api/v1/products/:id
func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "product"})
		return jsonError(c, fiber.StatusNotFound, "this item is no longer available")
	}
	p, err := h.Catalog.GetProduct(c.UserContext(), id)
	if errors.Is(err, services.ErrProductNotFound) {
		return jsonError(c, fiber.StatusNotFound, "this item is no longer available")
	}
	if err != nil {
		return err
	}
	return c.JSON(p)
}
