package handlers

import (
	"errors"

	"zeelx/internal/core/domain"
	"zeelx/internal/pkg/response"
	"zeelx/internal/sandbox/services"

	"github.com/gofiber/fiber/v2"
)

// ProfileHandler handles KYC profile endpoints
type ProfileHandler struct {
	profileService *services.ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// Get returns the current user's profile
// @Summary Get profile
// @Description Get the current user's KYC profile
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /profile [get]
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	profile, err := h.profileService.Get(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return response.NotFound(c, "Profile not found")
		}
		return response.InternalServerError(c, "Failed to fetch profile")
	}

	return response.Success(c, "Profile retrieved successfully", fiber.Map{
		"profile": profile.ToDomain(),
	})
}

// Submit creates or resubmits the profile
// @Summary Submit profile
// @Description Create the KYC profile or replace the answers on resubmission
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.ProfileInput true "KYC answers"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /profile [post]
func (h *ProfileHandler) Submit(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.ProfileInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	profile, err := h.profileService.Upsert(c.Context(), userID, &input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Register number is required")
		}
		return response.InternalServerError(c, "Failed to save profile")
	}

	return response.Success(c, "Profile saved successfully", fiber.Map{
		"profile": profile.ToDomain(),
	})
}
