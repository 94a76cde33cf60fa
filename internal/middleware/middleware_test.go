package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"terranova/internal/middleware"
	"terranova/internal/models"
	"terranova/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedApp(authService *services.AuthService) *fiber.App {
	app := fiber.New()
	app.Get("/me", middleware.AuthRequired(authService), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"id": middleware.CurrentUser(c).UserID})
	})
	return app
}

func TestAuthRequired(t *testing.T) {
	authService := services.NewAuthService(nil, "test_jwt_secret", time.Hour)
	app := newProtectedApp(authService)

	token, _, err := authService.IssueToken(&models.User{ID: "user-123", Email: "a@example.com"})
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		cookie string
		status int
	}{
		{name: "no token", status: http.StatusUnauthorized},
		{name: "malformed header", header: "Token " + token, status: http.StatusUnauthorized},
		{name: "bad token", header: "Bearer not-a-token", status: http.StatusUnauthorized},
		{name: "bearer", header: "Bearer " + token, status: http.StatusOK},
		{name: "cookie", cookie: token, status: http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: tc.cookie})
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tc.status, resp.StatusCode)

			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			if tc.status == http.StatusOK {
				assert.Equal(t, "user-123", body["id"])
			} else {
				assert.Equal(t, middleware.LoginPath, body["login"])
			}
		})
	}
}

func TestCurrentUserOnPublicRoute(t *testing.T) {
	app := fiber.New()
	app.Get("/public", func(c *fiber.Ctx) error {
		assert.Nil(t, middleware.CurrentUser(c))
		return c.SendStatus(fiber.StatusNoContent)
	})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/public", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

type countingLimiter struct {
	mu     sync.Mutex
	counts map[string]int
	err    error
}

func (l *countingLimiter) Allow(_ context.Context, key string, limit int, _ time.Duration) (bool, error) {
	if l.err != nil {
		return true, l.err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.counts[key]++
	return l.counts[key] <= limit, nil
}

func TestRateLimit(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := middleware.NewMetrics(reg)
	limiter := &countingLimiter{counts: map[string]int{}}

	app := fiber.New()
	app.Use(metrics.Handler())
	app.Post("/api/summary", middleware.RateLimit(limiter, 2, time.Minute, metrics), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/summary", nil), -1)
		require.NoError(t, err)
		statuses = append(statuses, resp.StatusCode)
		resp.Body.Close()
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, statuses)

	count, err := testutil.GatherAndCount(reg, "terranova_api_rate_limit_hits_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	requests, err := testutil.GatherAndCount(reg, "terranova_api_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, requests)
}

func TestRateLimitFailsOpen(t *testing.T) {
	limiter := &countingLimiter{err: errors.New("redis down")}
	app := fiber.New()
	app.Get("/x", middleware.RateLimit(limiter, 1, time.Minute, nil), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/x", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
}
