package handlers

import (
	"github.com/GDG-on-Campus-ASU/GDGoC-certs/middleware"
	"github.com/GDG-on-Campus-ASU/GDGoC-certs/services"
	"github.com/GDG-on-Campus-ASU/GDGoC-certs/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type CertificateHandler struct {
	certificates *services.CertificateService
}

func NewCertificateHandler(certificates *services.CertificateService) *CertificateHandler {
	return &CertificateHandler{certificates: certificates}
}

type GenerateCertificateRequest struct {
	RecipientName  string `json:"recipient_name" validate:"required"`
	RecipientEmail string `json:"recipient_email"`
	EventType      string `json:"event_type" validate:"required,oneof=workshop course"`
	EventName      string `json:"event_name" validate:"required"`
}

// Generate issues a single certificate for the authenticated leader.
func (h *CertificateHandler) Generate(c *fiber.Ctx) error {
	var req GenerateCertificateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if req.RecipientEmail != "" && !utils.IsValidEmail(req.RecipientEmail) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid email format"})
	}

	cert, err := h.certificates.Generate(middleware.IdentityFromCtx(c), services.GenerateRequest{
		RecipientName:  req.RecipientName,
		RecipientEmail: req.RecipientEmail,
		EventType:      req.EventType,
		EventName:      req.EventName,
	})
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":     true,
		"certificate": cert,
	})
}

type GenerateBulkRequest struct {
	CSVContent string `json:"csv_content" validate:"required"`
}

// GenerateBulk issues certificates from CSV text. Row validation failures
// reject the whole batch; per-row persistence failures are reported in the
// response without aborting remaining rows.
func (h *CertificateHandler) GenerateBulk(c *fiber.Ctx) error {
	var req GenerateBulkRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "CSV content is required"})
	}

	result, err := h.certificates.GenerateBulk(middleware.IdentityFromCtx(c), req.CSVContent)
	if err != nil {
		return errorResponse(c, err)
	}

	response := fiber.Map{
		"success":      true,
		"generated":    result.Generated,
		"failed":       result.Failed,
		"certificates": result.Certificates,
	}
	if result.Failed > 0 {
		response["errors"] = result.Failures
	}

	return c.Status(fiber.StatusCreated).JSON(response)
}

// List returns the authenticated leader's own certificates, newest first.
func (h *CertificateHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 50)

	certs, total, err := h.certificates.ListByIssuer(middleware.IdentityFromCtx(c), page, limit)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"certificates": certs,
		"total":        total,
		"page":         page,
		"limit":        limit,
	})
}
