package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "gearrent/internal/log"
	"gearrent/internal/services"
)

const adminHeader = "X-Admin-Password"

// RequireAdmin checks the shared admin password sent on every admin call.
func RequireAdmin(auth *services.AdminAuth) fiber.Handler {
	return func(c *fiber.Ctx) error {
		pw := c.Get(adminHeader)
		if pw == "" {
			applog.Security(c, "access.denied.admin", map[string]any{"reason": "missing"})
			return jsonError(c, fiber.StatusUnauthorized, "admin password required")
		}
		if err := auth.Login(pw); err != nil {
			applog.Security(c, "access.denied.admin", map[string]any{"reason": "mismatch"})
			return jsonError(c, fiber.StatusForbidden, "access denied")
		}
		return c.Next()
	}
}
