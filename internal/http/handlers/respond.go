package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "gearrent/internal/log"
)

const friendlyError = "Something went wrong. Please try again."

func jsonError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// ErrorHandler logs the failure and answers without leaking internals.
// Client errors raised with fiber.NewError keep their own message.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		return jsonError(c, fe.Code, fe.Message)
	}
	applog.Error(c, "server.error", err, nil)
	return jsonError(c, fiber.StatusInternalServerError, friendlyError)
}

// NotFound is the catch-all route.
func NotFound(c *fiber.Ctx) error {
	return jsonError(c, fiber.StatusNotFound, "not found")
}

// bindJSON decodes the request body, logging malformed payloads.
func bindJSON(c *fiber.Ctx, v any) bool {
	if err := c.BodyParser(v); err != nil {
		applog.Security(c, "validation.fail", map[string]any{"field": "body"})
		return false
	}
	return true
}
