package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/streadway/amqp"
	"gorm.io/gorm/logger"

	"terranova/internal/ai"
	"terranova/internal/config"
	"terranova/internal/database"
	"terranova/internal/middleware"
	"terranova/internal/repositories"
	"terranova/internal/server"
	"terranova/internal/services"
	"terranova/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// --- Database ---
	db, err := database.Open(cfg.DatabaseDSN, logger.Warn)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Initialize RabbitMQ Client (optional) ---
	var events services.EventPublisher
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Printf("RabbitMQ unavailable, project events disabled: %v", err)
		} else {
			defer mqClient.Close()
			events = mqClient
		}
	}

	// --- Generative text (optional) ---
	var generator ai.Generator
	if gemini, err := ai.NewGeminiGenerator(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel); err != nil {
		log.Printf("Gemini disabled: %v", err)
	} else {
		generator = gemini
	}

	// --- Rate limiting for AI routes (optional) ---
	var limiter middleware.Limiter
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Printf("Redis ping failed, limiter will fail open until it recovers: %v", err)
		}
		cancel()
		limiter = middleware.NewRedisLimiter(rdb)
	}

	// --- Initialize Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	projectRepo := repositories.NewGORMProjectRepository(db)

	// --- Initialize Services ---
	projectService := services.NewProjectService(projectRepo, events)
	svc := server.Services{
		Auth:     services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL),
		Users:    services.NewUserService(userRepo),
		Projects: projectService,
		Export:   services.NewExportService(projectService),
		Insights: services.NewInsightService(generator),
	}

	app := server.New(server.Options{
		AllowOrigins: cfg.APIBaseURL,
		SecureCookie: cfg.SecureCookie,
		Limiter:      limiter,
		AIRateLimit:  cfg.AIRateLimit,
		AIRateWindow: cfg.AIRateWindow,
	}, svc)

	// --- Project activity consumer ---
	if mqClient != nil {
		err := mqClient.ConsumeProjectEvents(func(msg amqp.Delivery) error {
			var event services.ProjectEvent
			if err := json.Unmarshal(msg.Body, &event); err != nil {
				return err
			}
			log.Printf("Activity: %s %s (%s) by user %s", event.Type, event.ProjectID, event.Name, event.UserID)
			return nil
		})
		if err != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", err)
		}
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}

	log.Println("Server gracefully stopped")
}
