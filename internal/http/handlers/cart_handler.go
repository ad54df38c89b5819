package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"gearrent/internal/domain"
	applog "gearrent/internal/log"
	"gearrent/internal/services"
	"gearrent/internal/validate"
)

type CartHandler struct {
	Cart *services.CartService
}

type lineReq struct {
	ProductID string `json:"productId"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Delta     int    `json:"delta"`
}

func (r lineReq) key(c *fiber.Ctx) (domain.LineKey, bool) {
	id, okID := validate.ID(r.ProductID)
	size, okSize := validate.Label(r.Size)
	color, okColor := validate.Label(r.Color)
	if !okID || !okSize || !okColor {
		applog.Security(c, "validation.fail", map[string]any{"field": "cart_line"})
		return domain.LineKey{}, false
	}
	return domain.LineKey{ProductID: id, Size: size, Color: color}, true
}

func cartError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrProductNotFound):
		return jsonError(c, fiber.StatusNotFound, "this item is no longer available")
	case errors.Is(err, services.ErrLineNotFound):
		return jsonError(c, fiber.StatusNotFound, "item is not in your cart")
	case errors.Is(err, services.ErrSelectionRequired):
		return jsonError(c, fiber.StatusBadRequest, "please choose a size and color")
	case errors.Is(err, services.ErrOutOfStock):
		return jsonError(c, fiber.StatusConflict, "this selection is out of stock")
	}
	return err
}

// GET /api/v1/cart?days=
func (h *CartHandler) View(c *fiber.Ctx) error {
	cv, err := h.Cart.View(c.UserContext(), sessionID(c), validate.Duration(c.Query("days")))
	if err != nil {
		return err
	}
	return c.JSON(cv)
}

// POST /api/v1/cart/lines
func (h *CartHandler) Add(c *fiber.Ctx) error {
	var req lineReq
	if !bindJSON(c, &req) {
		return jsonError(c, fiber.StatusBadRequest, "invalid request")
	}
	k, ok := req.key(c)
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid cart line")
	}
	line, err := h.Cart.Add(c.UserContext(), sessionID(c), k.ProductID, k.Size, k.Color)
	if err != nil {
		return cartError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(line)
}

// PATCH /api/v1/cart/lines
func (h *CartHandler) Update(c *fiber.Ctx) error {
	var req lineReq
	if !bindJSON(c, &req) {
		return jsonError(c, fiber.StatusBadRequest, "invalid request")
	}
	k, ok := req.key(c)
	if !ok || !validate.Delta(req.Delta) {
		return jsonError(c, fiber.StatusBadRequest, "invalid cart line")
	}
	line, err := h.Cart.UpdateQuantity(c.UserContext(), sessionID(c), k, req.Delta)
	if err != nil {
		return cartError(c, err)
	}
	return c.JSON(line)
}

// DELETE /api/v1/cart/lines
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	var req lineReq
	if !bindJSON(c, &req) {
		return jsonError(c, fiber.StatusBadRequest, "invalid request")
	}
	k, ok := req.key(c)
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid cart line")
	}
	if err := h.Cart.Remove(c.UserContext(), sessionID(c), k); err != nil {
		return cartError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DELETE /api/v1/cart
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	if err := h.Cart.Clear(c.UserContext(), sessionID(c)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
