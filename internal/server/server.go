// Package server assembles the Fiber application: middleware, public routes
// and the session-protected API.
package server

import (
	"time"

	"terranova/internal/handlers"
	"terranova/internal/middleware"
	"terranova/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options tunes the HTTP layer.
type Options struct {
	// AllowOrigins is the CORS origin list, normally the frontend base URL.
	AllowOrigins string
	SecureCookie bool
	// DisableAccessLog turns off the per-request logger, mostly for tests.
	DisableAccessLog bool

	// Limiter guards the generative-text routes when non-nil.
	Limiter      middleware.Limiter
	AIRateLimit  int
	AIRateWindow time.Duration
}

// Services bundles what the handlers need.
type Services struct {
	Auth     *services.AuthService
	Users    *services.UserService
	Projects *services.ProjectService
	Export   *services.ExportService
	Insights *services.InsightService
}

// New builds the application. Each app gets its own metrics registry.
func New(opts Options, svc Services) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "TerraNova",
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(registry)

	app.Use(recover.New())
	if !opts.DisableAccessLog {
		app.Use(logger.New())
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     opts.AllowOrigins,
		AllowCredentials: opts.AllowOrigins != "" && opts.AllowOrigins != "*",
	}))
	app.Use(metrics.Handler())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	api := app.Group("/api")

	// Authentication routes (public)
	handlers.NewAuthHandler(svc.Auth, opts.SecureCookie).RegisterRoutes(api)

	// Protected routes (require a session)
	protected := api.Group("", middleware.AuthRequired(svc.Auth))
	handlers.NewProfileHandler(svc.Users).RegisterRoutes(protected)
	handlers.NewProjectHandler(svc.Projects).RegisterRoutes(protected)
	handlers.NewExportHandler(svc.Export).RegisterRoutes(protected)

	var aiGuards []fiber.Handler
	if opts.Limiter != nil {
		aiGuards = append(aiGuards, middleware.RateLimit(opts.Limiter, opts.AIRateLimit, opts.AIRateWindow, metrics))
	}
	handlers.NewInsightHandler(svc.Insights).RegisterRoutes(protected, aiGuards...)

	return app
}
