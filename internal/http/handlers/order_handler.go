package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"gearrent/internal/domain"
	applog "gearrent/internal/log"
	"gearrent/internal/services"
	"gearrent/internal/validate"
)

type OrderHandler struct {
	Order *services.OrderService
}

type placeReq struct {
	Name       string `json:"name"`
	WhatsApp   string `json:"whatsapp"`
	Campus     string `json:"campus"`
	RentalDate string `json:"rentalDate"`
	Duration   int    `json:"duration"`
}

// POST /api/v1/orders
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	sid := sessionID(c)
	var req placeReq
	if !bindJSON(c, &req) {
		return jsonError(c, fiber.StatusBadRequest, "invalid request")
	}

	name, ok := validate.Name(req.Name, 60)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "name"})
		return jsonError(c, fiber.StatusBadRequest, "name must be 1-60 characters")
	}
	wa, ok := validate.WhatsApp(req.WhatsApp)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "whatsapp"})
		return jsonError(c, fiber.StatusBadRequest, "enter a valid WhatsApp number")
	}
	campus, ok := validate.Name(req.Campus, 80)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "campus"})
		return jsonError(c, fiber.StatusBadRequest, "campus must be 1-80 characters")
	}
	date, ok := validate.Date(req.RentalDate)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "rentalDate"})
		return jsonError(c, fiber.StatusBadRequest, "rental date must be YYYY-MM-DD")
	}
	if req.Duration > 365 {
		req.Duration = 365
	}

	order, dispatch, err := h.Order.SubmitOrder(c.UserContext(), sid, domain.UserDetails{
		Name: name, WhatsApp: wa, Campus: campus, RentalDate: date, Duration: req.Duration,
	})
	switch {
	case errors.Is(err, services.ErrCartEmpty):
		return jsonError(c, fiber.StatusBadRequest, "your cart is empty")
	case errors.Is(err, services.ErrCatalogUnavailable):
		return jsonError(c, fiber.StatusServiceUnavailable, "catalog is unavailable, please retry shortly")
	case err != nil:
		return err
	}
	applog.Audit(c, "order.place", map[string]any{
		"order_id": order.ID,
		"total":    order.TotalPrice,
		"duration": order.Duration,
	})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"order":       order,
		"whatsappUrl": dispatch.URL,
		"message":     dispatch.Message,
	})
}

// GET /api/v1/orders/:id
func (h *OrderHandler) View(c *fiber.Ctx) error {
	oid, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "order not found")
	}
	o, err := h.Order.Get(c.UserContext(), sessionID(c), oid)
	if errors.Is(err, services.ErrOrderNotFound) {
		applog.Security(c, "access.denied.order", map[string]any{"order_id": oid})
		return jsonError(c, fiber.StatusNotFound, "order not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(o)
}

// GET /api/v1/orders lists the session's history, newest first.
func (h *OrderHandler) History(c *fiber.Ctx) error {
	orders, err := h.Order.History(c.UserContext(), sessionID(c))
	if err != nil {
		applog.Error(c, "orders.history.fail", err, nil)
		return err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return c.JSON(fiber.Map{"orders": orders})
}
