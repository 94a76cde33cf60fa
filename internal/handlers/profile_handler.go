package handlers

import (
	"terranova/internal/middleware"
	"terranova/internal/models"
	"terranova/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProfileHandler serves the signed-in user's own account.
type ProfileHandler struct {
	service *services.UserService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(service *services.UserService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// RegisterRoutes registers the /me routes.
func (h *ProfileHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/me", h.HandleGetProfile)
	router.Patch("/me", h.HandleUpdateProfile)
	router.Delete("/me", h.HandleDeleteAccount)
}

// HandleGetProfile returns the caller's profile.
func (h *ProfileHandler) HandleGetProfile(c *fiber.Ctx) error {
	user, err := h.service.GetProfile(c.UserContext(), middleware.CurrentUser(c).UserID)
	if err != nil {
		return failure(c, err, "Could not retrieve profile")
	}
	return c.JSON(user)
}

// HandleUpdateProfile applies a partial profile update.
func (h *ProfileHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	var req models.ProfileUpdate
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}
	user, err := h.service.UpdateProfile(c.UserContext(), middleware.CurrentUser(c).UserID, req)
	if err != nil {
		return failure(c, err, "Could not update profile")
	}
	return c.JSON(user)
}

// HandleDeleteAccount deletes the caller and all of their projects.
func (h *ProfileHandler) HandleDeleteAccount(c *fiber.Ctx) error {
	if err := h.service.DeleteAccount(c.UserContext(), middleware.CurrentUser(c).UserID); err != nil {
		return failure(c, err, "Could not delete account")
	}
	c.ClearCookie(middleware.SessionCookie)
	return c.JSON(fiber.Map{"message": "Account deleted"})
}
