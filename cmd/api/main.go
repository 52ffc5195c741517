package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/GDG-on-Campus-ASU/GDGoC-certs/configs"
	"github.com/GDG-on-Campus-ASU/GDGoC-certs/database"
	"github.com/GDG-on-Campus-ASU/GDGoC-certs/handlers"
	"github.com/GDG-on-Campus-ASU/GDGoC-certs/notifications"
	"github.com/GDG-on-Campus-ASU/GDGoC-certs/routes"
	"github.com/GDG-on-Campus-ASU/GDGoC-certs/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	db, err := database.Connect(config.Config("DATABASE_URL"))
	if err != nil {
		log.Fatalf("🔥 %v", err)
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		log.Fatalf("🔥 %v", err)
	}

	store := database.NewStore(db)

	var mailer services.Mailer
	if emailService := notifications.NewEmailService(
		config.Config("BREVO_API_KEY"),
		config.Config("EMAIL_SENDER"),
		config.Config("EMAIL_SENDER_NAME"),
	); emailService != nil {
		mailer = emailService
	}

	validationBaseURL := config.ConfigOr("VALIDATION_BASE_URL", "https://certs.gdg-oncampus.dev")

	certificateService := services.NewCertificateService(store, mailer, validationBaseURL)
	leaderService := services.NewLeaderService(store)
	validationService := services.NewValidationService(store)

	app := fiber.New(fiber.Config{
		AppName:       "GDGoC Certificate Service",
		CaseSensitive: true,
		StrictRouting: false,
		BodyLimit:     10 * 1024 * 1024,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		IdleTimeout:   60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.ConfigOr("ALLOWED_ORIGINS", "https://certs.gdg-oncampus.dev"),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	routes.PublicRoutes(app, handlers.NewValidateHandler(validationService))
	routes.AuthRoutes(app, handlers.NewAuthHandler(leaderService))
	routes.CertificateRoutes(app, handlers.NewCertificateHandler(certificateService))

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down...")
		if err := app.Shutdown(); err != nil {
			log.Printf("🔥 Server shutdown failed: %v", err)
		}
	}()

	port := config.ConfigOr("PORT", "8080")
	log.Printf("✅ Server is running on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}

	log.Println("✅ Server stopped")
}
