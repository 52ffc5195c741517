package handlers

import (
	"github.com/GDG-on-Campus-ASU/GDGoC-certs/middleware"
	"github.com/GDG-on-Campus-ASU/GDGoC-certs/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	leaders *services.LeaderService
}

func NewAuthHandler(leaders *services.LeaderService) *AuthHandler {
	return &AuthHandler{leaders: leaders}
}

// Login provisions the leader on first authenticated login and returns the
// profile. 201 when a new leader was created.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	identity := middleware.IdentityFromCtx(c)

	leader, created, err := h.leaders.ProvisionOnLogin(identity)
	if err != nil {
		return errorResponse(c, err)
	}

	if created {
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"user":    leader,
			"message": "New user created. Please complete your profile setup.",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    leader,
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	identity := middleware.IdentityFromCtx(c)

	leader, err := h.leaders.Profile(identity.SubjectID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"user": leader})
}

type UpdateProfileRequest struct {
	Name    *string `json:"name"`
	OrgName *string `json:"org_name"`
}

// UpdateProfile updates the leader's name and/or sets org_name. org_name is
// settable exactly once.
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	identity := middleware.IdentityFromCtx(c)

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	leader, err := h.leaders.UpdateProfile(identity.SubjectID, services.UpdateProfileRequest{
		Name:    req.Name,
		OrgName: req.OrgName,
	})
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    leader,
		"message": "Profile updated successfully",
	})
}
