package routes

import (
	"github.com/GDG-on-Campus-ASU/GDGoC-certs/handlers"
	"github.com/GDG-on-Campus-ASU/GDGoC-certs/middleware"
	"github.com/gofiber/fiber/v2"
)

func CertificateRoutes(app *fiber.App, h *handlers.CertificateHandler) {
	api := app.Group("/api/v1")

	certs := api.Group("/certificates", middleware.Protected())
	certs.Post("/generate", h.Generate)
	certs.Post("/generate-bulk", h.GenerateBulk)
	certs.Get("", h.List)
}
