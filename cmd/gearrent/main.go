package main

import (
	"context"
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"golang.org/x/crypto/bcrypt"

	"gearrent/internal/config"
	"gearrent/internal/http/handlers"
	applog "gearrent/internal/log"
	"gearrent/internal/repos"
	"gearrent/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	authSvc, err := services.NewAdminAuth(cfg.AdminPassword, bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}

	// Optional backends
	var backends handlers.Backends
	if cfg.CartStore == "redis" {
		rdb := repos.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("[redis] ping %s: %v", cfg.RedisAddr, err)
		}
		backends.Carts = repos.NewRedisCartRepo(rdb)
		log.Printf("[redis] cart store at %s", cfg.RedisAddr)
	}
	if cfg.OrderStore == "mongo" {
		client, err := repos.ConnectMongo(context.Background(), cfg.MongoURI)
		if err != nil {
			log.Fatal(err)
		}
		orders := repos.NewMongoOrderRepo(client, cfg.MongoDatabase)
		if err := orders.EnsureIndexes(context.Background()); err != nil {
			log.Printf("[mongo] ensure indexes: %v", err)
		}
		backends.Orders = orders
		log.Printf("[mongo] order history in %s", cfg.MongoDatabase)
	}
	backends.Advisor = services.NewAdvisor(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel)

	app := fiber.New(fiber.Config{
		AppName:      "gearrent",
		ErrorHandler: handlers.ErrorHandler,
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/healthz"
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "header:X-CSRF-Token",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", map[string]any{"err": err.Error()})
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Security check failed. Please refresh and try again."})
		},
	}))

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db, cfg, authSvc, backends)
	handlers.Routes(app, deps, handlers.DefaultLimits())

	log.Fatal(app.Listen(":" + cfg.Port))
}
