package routes

import (
	"github.com/GDG-on-Campus-ASU/GDGoC-certs/handlers"
	"github.com/gofiber/fiber/v2"
)

// PublicRoutes registers the unauthenticated validation endpoint.
func PublicRoutes(app *fiber.App, h *handlers.ValidateHandler) {
	api := app.Group("/api/v1")

	api.Get("/validate/:unique_id", h.Validate)
}
