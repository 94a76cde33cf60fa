// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every setting the server reads at startup.
type Config struct {
	AppPort      string
	DatabaseDSN  string
	JWTSecret    string
	JWTTTL       time.Duration
	APIBaseURL   string
	SecureCookie bool

	GeminiAPIKey string
	GeminiModel  string

	RabbitMQURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	AIRateLimit   int
	AIRateWindow  time.Duration
}

// Load reads an optional .env file and then the process environment.
// DATABASE_DSN and JWT_SECRET are required.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Could not read .env file: %v", err)
	}
	return FromViper(viper.New())
}

// FromViper applies defaults to v and builds a Config from it.
func FromViper(v *viper.Viper) (*Config, error) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("API_BASE_URL", "http://localhost:3000")
	v.SetDefault("SECURE_COOKIE", false)
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash-lite")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("AI_RATE_LIMIT", 20)
	v.SetDefault("AI_RATE_WINDOW", "1m")
	v.AutomaticEnv()

	cfg := &Config{
		AppPort:       v.GetString("APP_PORT"),
		DatabaseDSN:   v.GetString("DATABASE_DSN"),
		JWTSecret:     v.GetString("JWT_SECRET"),
		JWTTTL:        v.GetDuration("JWT_TTL"),
		APIBaseURL:    v.GetString("API_BASE_URL"),
		SecureCookie:  v.GetBool("SECURE_COOKIE"),
		GeminiAPIKey:  v.GetString("GEMINI_API_KEY"),
		GeminiModel:   v.GetString("GEMINI_MODEL"),
		RabbitMQURL:   v.GetString("RABBITMQ_URL"),
		RedisAddr:     v.GetString("REDIS_ADDR"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		RedisDB:       v.GetInt("REDIS_DB"),
		AIRateLimit:   v.GetInt("AI_RATE_LIMIT"),
		AIRateWindow:  v.GetDuration("AI_RATE_WINDOW"),
	}

	if cfg.DatabaseDSN == "" {
		return nil, fmt.Errorf("DATABASE_DSN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.JWTTTL <= 0 {
		return nil, fmt.Errorf("JWT_TTL must be positive, got %q", v.GetString("JWT_TTL"))
	}
	return cfg, nil
}
