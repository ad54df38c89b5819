package handlers

import (
	"github.com/gofiber/fiber/v2"

	"gearrent/internal/services"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

// GET /api/v1/categories
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cats := h.Catalog.Categories(c.UserContext())
	return c.JSON(fiber.Map{"categories": cats, "all": services.AllCategories})
}
