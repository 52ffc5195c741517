package handlers

import (
	"errors"

	"github.com/GDG-on-Campus-ASU/GDGoC-certs/apperror"
	"github.com/GDG-on-Campus-ASU/GDGoC-certs/services"
	"github.com/gofiber/fiber/v2"
)

type ValidateHandler struct {
	validation *services.ValidationService
}

func NewValidateHandler(validation *services.ValidationService) *ValidateHandler {
	return &ValidateHandler{validation: validation}
}

// Validate is the public, unauthenticated lookup of a certificate by its
// unique id.
func (h *ValidateHandler) Validate(c *fiber.Ctx) error {
	uniqueID := c.Params("unique_id")
	if uniqueID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Certificate ID is required"})
	}

	cert, err := h.validation.Lookup(uniqueID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error":   "Certificate not found",
				"message": "No certificate exists with this ID. Please check the ID and try again.",
			})
		}
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"valid":       true,
		"certificate": cert,
	})
}
