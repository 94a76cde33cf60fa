package middleware

import (
	"log"
	"strings"

	"terranova/internal/services"

	"github.com/gofiber/fiber/v2"
)

const (
	// SessionCookie carries the session token for browser clients.
	SessionCookie = "session"
	// LoginPath is where unauthenticated callers are sent.
	LoginPath = "/api/auth/login"

	claimsKey = "claims"
)

// AuthRequired is a Fiber middleware to check for a valid session token,
// taken from the Authorization header or the session cookie.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, ok := extractToken(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authentication required",
				"login":   LoginPath,
			})
		}

		claims, err := authService.ValidateToken(tokenString)
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
				"login":   LoginPath,
			})
		}

		// Store claims in Fiber context for subsequent handlers
		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// CurrentUser returns the claims stored by AuthRequired, or nil on routes
// that are not protected.
func CurrentUser(c *fiber.Ctx) *services.Claims {
	claims, _ := c.Locals(claimsKey).(*services.Claims)
	return claims
}

func extractToken(c *fiber.Ctx) (string, bool) {
	if authHeader := c.Get(fiber.HeaderAuthorization); authHeader != "" {
		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") && strings.TrimSpace(parts[1]) != "" {
			return strings.TrimSpace(parts[1]), true
		}
		return "", false
	}
	if cookie := c.Cookies(SessionCookie); cookie != "" {
		return cookie, true
	}
	return "", false
}
