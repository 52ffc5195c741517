package handlers

import (
	"errors"
	"log"

	"github.com/GDG-on-Campus-ASU/GDGoC-certs/apperror"
	"github.com/gofiber/fiber/v2"
)

// errorResponse maps service error kinds to HTTP statuses. Unrecognized
// errors are logged and returned as an opaque 500.
func errorResponse(c *fiber.Ctx, err error) error {
	var vErr *apperror.ValidationError
	if errors.As(err, &vErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "CSV validation failed",
			"errors": vErr.Messages(),
		})
	}

	switch {
	case errors.Is(err, apperror.ErrAuthentication):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, apperror.ErrAuthorization):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, apperror.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, apperror.ErrProfileIncomplete),
		errors.Is(err, apperror.ErrMalformedInput),
		errors.Is(err, apperror.ErrOrgAlreadySet):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, apperror.ErrDuplicateID):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		log.Printf("🔥 Unexpected error: %v | Path: %s", err, c.Path())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}
