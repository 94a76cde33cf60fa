package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViperDefaults(t *testing.T) {
	v := viper.New()
	v.Set("DATABASE_DSN", "file:test.db")
	v.Set("JWT_SECRET", "secret")

	cfg, err := FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.AppPort)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, "http://localhost:3000", cfg.APIBaseURL)
	assert.Equal(t, "gemini-2.5-flash-lite", cfg.GeminiModel)
	assert.Equal(t, 20, cfg.AIRateLimit)
	assert.Equal(t, time.Minute, cfg.AIRateWindow)
	assert.Empty(t, cfg.GeminiAPIKey)
	assert.Empty(t, cfg.RabbitMQURL)
	assert.Empty(t, cfg.RedisAddr)
}

func TestFromViperRequiresSecrets(t *testing.T) {
	v := viper.New()
	v.Set("JWT_SECRET", "secret")
	_, err := FromViper(v)
	assert.EqualError(t, err, "DATABASE_DSN is required")

	v = viper.New()
	v.Set("DATABASE_DSN", "file:test.db")
	_, err = FromViper(v)
	assert.EqualError(t, err, "JWT_SECRET is required")
}

func TestFromViperReadsEnvironment(t *testing.T) {
	t.Setenv("DATABASE_DSN", "host=localhost user=postgres dbname=terranova")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("AI_RATE_LIMIT", "5")

	cfg, err := FromViper(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "host=localhost user=postgres dbname=terranova", cfg.DatabaseDSN)
	assert.Equal(t, "from-env", cfg.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 5, cfg.AIRateLimit)
}

func TestFromViperRejectsBadTTL(t *testing.T) {
	v := viper.New()
	v.Set("DATABASE_DSN", "file:test.db")
	v.Set("JWT_SECRET", "secret")
	v.Set("JWT_TTL", "0s")
	_, err := FromViper(v)
	assert.Error(t, err)
}
