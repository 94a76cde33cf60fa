package handlers

import (
	"errors"
	"fmt"
	"log"

	"terranova/internal/middleware"
	"terranova/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ExportHandler serves project CSV downloads.
type ExportHandler struct {
	service *services.ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(service *services.ExportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// RegisterRoutes registers the export route.
func (h *ExportHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/export", h.HandleExport)
}

// HandleExport streams the caller's projects as a CSV attachment.
func (h *ExportHandler) HandleExport(c *fiber.Ctx) error {
	userID := c.Query("userId")
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "User ID is required",
		})
	}

	export, err := h.service.ExportCSV(c.UserContext(), middleware.CurrentUser(c).UserID, userID)
	switch {
	case err == nil:
	case errors.Is(err, services.ErrNoProjects):
		log.Printf("No projects found for export, userId: %s", userID)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No projects available for export",
		})
	case errors.Is(err, services.ErrProjectsUnavailable):
		log.Printf("Export fetch failed for %s: %v", userID, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Failed to fetch projects",
		})
	default:
		return failure(c, err, "Failed to generate CSV export.")
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", export.Filename))
	return c.Send(export.Data)
}
