package routes

import (
	"github.com/GDG-on-Campus-ASU/GDGoC-certs/handlers"
	"github.com/GDG-on-Campus-ASU/GDGoC-certs/middleware"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App, h *handlers.AuthHandler) {
	api := app.Group("/api/v1")

	auth := api.Group("/auth", middleware.Protected())
	auth.Post("/login", middleware.AdminGroupRequired(), h.Login)
	auth.Get("/me", h.Me)
	auth.Put("/profile", h.UpdateProfile)
}
