package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	applog "gearrent/internal/log"
)

// Limits configures the per-route rate limiters.
type Limits struct {
	Login        int
	LoginWindow  time.Duration
	Availability int
	Advisor      int
	Window       time.Duration
}

func DefaultLimits() Limits {
	return Limits{
		Login:        5,
		LoginWindow:  10 * time.Minute,
		Availability: 15,
		Advisor:      10,
		Window:       30 * time.Second,
	}
}

func routeLimiter(max int, window time.Duration, name string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|" + name
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate."+name+".hit", nil)
			return jsonError(c, fiber.StatusTooManyRequests, "rate limit exceeded, retry soon")
		},
	})
}

// Routes mounts the storefront and admin API on app.
func Routes(app *fiber.App, d *Deps, lim Limits) {
	api := app.Group("/api/v1", Session())

	api.Get("/products", d.ProductHandler.List)
	api.Get("/products/:id", d.ProductHandler.Detail)
	api.Get("/categories", d.CategoryHandler.List)
	api.Get("/availability", routeLimiter(lim.Availability, lim.Window, "availability"), d.InventoryHandler.Check)

	api.Get("/cart", d.CartHandler.View)
	api.Post("/cart/lines", d.CartHandler.Add)
	api.Patch("/cart/lines", d.CartHandler.Update)
	api.Delete("/cart/lines", d.CartHandler.Remove)
	api.Delete("/cart", d.CartHandler.Clear)

	api.Post("/orders", d.OrderHandler.Place)
	api.Get("/orders", d.OrderHandler.History)
	api.Get("/orders/:id", d.OrderHandler.View)

	api.Post("/advisor", routeLimiter(lim.Advisor, lim.Window, "advisor"), d.AdvisorHandler.Ask)

	// Admin (login throttled, everything else behind the shared password)
	api.Post("/admin/login", routeLimiter(lim.Login, lim.LoginWindow, "login"), d.AuthHandler.Login)
	admin := api.Group("/admin", RequireAdmin(d.Auth))
	admin.Get("/dashboard", d.AdminHandler.Dashboard)
	admin.Get("/orders", d.AdminHandler.OrdersPage)
	admin.Get("/products", d.AdminHandler.Products)
	admin.Post("/products", d.AdminHandler.CreateProduct)
	admin.Put("/products/:id", d.AdminHandler.UpdateProduct)
	admin.Delete("/products/:id", d.AdminHandler.DeleteProduct)
	admin.Get("/categories", d.AdminHandler.Categories)
	admin.Post("/categories", d.AdminHandler.CreateCategory)
	admin.Put("/categories/:id", d.AdminHandler.UpdateCategory)
	admin.Delete("/categories/:id", d.AdminHandler.DeleteCategory)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(NotFound)
}
