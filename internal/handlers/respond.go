package handlers

import (
	"errors"

	"resep/internal/services"

	"github.com/gofiber/fiber/v2"
)

// currentUserID returns the authenticated user's ID from the request context,
// or "" for anonymous requests.
func currentUserID(c *fiber.Ctx) string {
	if id, ok := c.Locals("user_id").(string); ok {
		return id
	}
	return ""
}

// respondError maps a service error onto the HTTP status dictated by the
// error taxonomy: not-found to 404, validation/duplicate/self-subscribe to
// 400, permission denial to 403, anything else to 500.
func respondError(c *fiber.Ctx, message string, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrDuplicate),
		errors.Is(err, services.ErrSelfSubscribe):
		status = fiber.StatusBadRequest
	case errors.Is(err, services.ErrForbidden):
		status = fiber.StatusForbidden
	}
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}
