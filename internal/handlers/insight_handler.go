package handlers

import (
	"context"
	"errors"
	"log"

	"terranova/internal/ai"
	"terranova/internal/models"
	"terranova/internal/services"
	"terranova/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// InsightHandler exposes the generative-text endpoints.
type InsightHandler struct {
	service  *services.InsightService
	validate *validation.Validator
}

// NewInsightHandler creates a new InsightHandler.
func NewInsightHandler(service *services.InsightService) *InsightHandler {
	return &InsightHandler{
		service:  service,
		validate: validation.New(),
	}
}

// RegisterRoutes registers the insight routes. Extra handlers such as a rate
// limiter run before each of them.
func (h *InsightHandler) RegisterRoutes(router fiber.Router, extra ...fiber.Handler) {
	router.Post("/gemini-insights", chain(extra, h.HandleInsights)...)
	router.Post("/summary", chain(extra, h.HandleSummary)...)
}

// HandleInsights returns recommendations for the submitted projects.
func (h *InsightHandler) HandleInsights(c *fiber.Ctx) error {
	return h.handle(c, "Failed to generate insights.", func(ctx context.Context, req models.InsightRequest) (string, error) {
		return h.service.Insights(ctx, req.Projects)
	})
}

// HandleSummary returns a short summary of project stats and weather.
func (h *InsightHandler) HandleSummary(c *fiber.Ctx) error {
	return h.handle(c, "Failed to generate summary.", func(ctx context.Context, req models.InsightRequest) (string, error) {
		return h.service.Summary(ctx, req.Projects, req.WeatherData)
	})
}

func chain(before []fiber.Handler, last fiber.Handler) []fiber.Handler {
	out := make([]fiber.Handler, 0, len(before)+1)
	out = append(out, before...)
	return append(out, last)
}

func (h *InsightHandler) handle(c *fiber.Ctx, failMessage string, generate func(context.Context, models.InsightRequest) (string, error)) error {
	var req models.InsightRequest
	if err := c.BodyParser(&req); err != nil || h.validate.Struct(req) != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Projects array is required",
		})
	}

	text, err := generate(c.UserContext(), req)
	if err != nil {
		log.Printf("Gemini API error: %v", err)
		switch {
		case errors.Is(err, ai.ErrModelNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Gemini model not found. Check model name or API key.",
			})
		case errors.Is(err, ai.ErrRateLimited):
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Rate limit exceeded. Try again later.",
			})
		case errors.Is(err, ai.ErrUnavailable):
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "AI service is not configured.",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": failMessage,
		})
	}
	return c.JSON(fiber.Map{"text": text})
}
