package handlers

import (
	"terranova/internal/middleware"
	"terranova/internal/models"
	"terranova/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProjectHandler handles HTTP requests for projects.
type ProjectHandler struct {
	service *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(service *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		service: service,
	}
}

// RegisterRoutes registers the project routes. They must sit behind
// middleware.AuthRequired.
func (h *ProjectHandler) RegisterRoutes(router fiber.Router) {
	projectRoutes := router.Group("/projects")
	projectRoutes.Get("/", h.HandleListProjects)
	projectRoutes.Post("/", h.HandleCreateProject)
	projectRoutes.Get("/:id", h.HandleGetProject)
	projectRoutes.Put("/:id", h.HandleUpdateProject)
	projectRoutes.Delete("/:id", h.HandleDeleteProject)
}

// HandleListProjects returns the projects of the user named by ?userId=.
func (h *ProjectHandler) HandleListProjects(c *fiber.Ctx) error {
	userID := c.Query("userId")
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "User ID is required",
		})
	}

	projects, err := h.service.List(c.UserContext(), middleware.CurrentUser(c).UserID, userID)
	if err != nil {
		return failure(c, err, "Could not retrieve projects")
	}
	return c.JSON(projects)
}

// HandleGetProject returns a single project.
func (h *ProjectHandler) HandleGetProject(c *fiber.Ctx) error {
	project, err := h.service.Get(c.UserContext(), middleware.CurrentUser(c).UserID, c.Params("id"))
	if err != nil {
		return failure(c, err, "Could not retrieve project")
	}
	return c.JSON(project)
}

// HandleCreateProject creates a new project and returns it with its ID.
func (h *ProjectHandler) HandleCreateProject(c *fiber.Ctx) error {
	var req models.CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}

	project, err := h.service.Create(c.UserContext(), middleware.CurrentUser(c).UserID, req)
	if err != nil {
		return failure(c, err, "Could not create project")
	}
	return c.Status(fiber.StatusCreated).JSON(project)
}

// HandleUpdateProject overwrites name, location, status and milestones.
func (h *ProjectHandler) HandleUpdateProject(c *fiber.Ctx) error {
	var req models.UpdateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}

	project, err := h.service.Update(c.UserContext(), middleware.CurrentUser(c).UserID, c.Params("id"), req)
	if err != nil {
		return failure(c, err, "Could not update project")
	}
	return c.JSON(project)
}

// HandleDeleteProject hard-deletes a project.
func (h *ProjectHandler) HandleDeleteProject(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.Delete(c.UserContext(), middleware.CurrentUser(c).UserID, id); err != nil {
		return failure(c, err, "Could not delete project")
	}
	return c.JSON(fiber.Map{
		"message": "Project " + id + " deleted successfully",
	})
}
