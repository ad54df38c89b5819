package handlers

import (
	"github.com/gofiber/fiber/v2"

	"gearrent/internal/log"
	"gearrent/internal/services"
	"gearrent/internal/validate"
)

type AuthHandler struct {
	Auth *services.AdminAuth
}

type loginReq struct {
	Password string `json:"password"`
}

// POST /api/v1/admin/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginReq
	if !bindJSON(c, &req) {
		return jsonError(c, fiber.StatusBadRequest, "invalid request")
	}
	if !validate.Password(req.Password) {
		log.Security(c, "auth.login.fail", map[string]any{"reason": "bad_password_format"})
		return jsonError(c, fiber.StatusUnauthorized, "invalid password")
	}
	if err := h.Auth.Login(req.Password); err != nil {
		log.Security(c, "auth.login.fail", nil)
		return jsonError(c, fiber.StatusUnauthorized, "invalid password")
	}
	log.Audit(c, "auth.login.success", nil)
	return c.JSON(fiber.Map{"ok": true})
}
