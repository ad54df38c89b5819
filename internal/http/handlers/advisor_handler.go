package handlers

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"

	applog "gearrent/internal/log"
	"gearrent/internal/services"
)

type AdvisorHandler struct {
	Catalog *services.CatalogService
	Advisor services.Advisor
}

// POST /api/v1/advisor
func (h *AdvisorHandler) Ask(c *fiber.Ctx) error {
	var req struct {
		Query string `json:"query"`
	}
	if !bindJSON(c, &req) {
		return jsonError(c, fiber.StatusBadRequest, "invalid request")
	}
	q := strings.TrimSpace(req.Query)
	if q == "" || utf8.RuneCountInString(q) > 500 {
		applog.Security(c, "validation.fail", map[string]any{"field": "query"})
		return jsonError(c, fiber.StatusBadRequest, "query must be 1-500 characters")
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), 20*time.Second)
	defer cancel()
	advice := h.Advisor.Recommend(ctx, q, h.Catalog.Products(ctx))
	return c.JSON(advice)
}
