package middleware

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	redis "github.com/redis/go-redis/v9"
)

// Limiter decides whether one more request under key fits in the window.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// RedisLimiter is a fixed-window counter kept in Redis.
type RedisLimiter struct {
	client  *redis.Client
	prefix  string
	timeout time.Duration
}

// NewRedisLimiter creates a limiter on top of client.
func NewRedisLimiter(client *redis.Client) *RedisLimiter {
	return &RedisLimiter{
		client:  client,
		prefix:  "terranova:ratelimit:",
		timeout: 250 * time.Millisecond,
	}
}

// Allow increments the counter for key and reports whether it is within limit.
func (rl *RedisLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if limit <= 0 {
		return true, nil
	}
	if window <= 0 {
		window = time.Minute
	}
	ctx, cancel := context.WithTimeout(ctx, rl.timeout)
	defer cancel()

	redisKey := rl.prefix + key
	counter, err := rl.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return true, err
	}
	if counter == 1 {
		if err := rl.client.Expire(ctx, redisKey, window).Err(); err != nil {
			return true, err
		}
	}
	return counter <= int64(limit), nil
}

// RateLimit rejects callers that exceed limit requests per window with 429.
// Callers are keyed by user ID when signed in, by IP otherwise. Limiter
// errors let the request through.
func RateLimit(limiter Limiter, limit int, window time.Duration, metrics *Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := "ip:" + c.IP()
		if claims := CurrentUser(c); claims != nil {
			key = "user:" + claims.UserID
		}
		key = c.Path() + ":" + key

		allowed, err := limiter.Allow(c.UserContext(), key, limit, window)
		if err != nil {
			log.Printf("Rate limiter error for %s: %v", key, err)
			return c.Next()
		}
		if !allowed {
			metrics.recordRateLimitHit(c.Path())
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(window.Seconds())))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"message": "Rate limit exceeded. Try again later.",
			})
		}
		return c.Next()
	}
}
