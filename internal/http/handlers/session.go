package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"gearrent/internal/validate"
)

// Session makes sure every API request carries a session id cookie and
// exposes it as c.Locals("sid"). Carts and order history hang off it.
func Session() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid, ok := validate.ID(c.Cookies("sid"))
		if !ok {
			sid = uuid.NewString()
			c.Cookie(&fiber.Cookie{
				Name:     "sid",
				Value:    sid,
				Path:     "/",
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
				Secure:   false, // enable true behind TLS
				MaxAge:   60 * 60 * 24 * 180,
			})
		}
		c.Locals("sid", sid)
		return c.Next()
	}
}

func sessionID(c *fiber.Ctx) string {
	sid, _ := c.Locals("sid").(string)
	return sid
}
