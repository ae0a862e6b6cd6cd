package ratelimit

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	limiter "github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	"go.uber.org/zap"
)

// Config holds the request budget per client IP.
type Config struct {
	// Limit is the number of requests allowed per Window. Zero disables limiting.
	Limit int64
	// Window is the period the limit applies to.
	Window time.Duration
	// Logger receives limiter store errors. May be nil.
	Logger *zap.Logger
}

// New creates a middleware limiting requests per client IP.
// Store errors let the request through.
func New(cfg Config) fiber.Handler {
	if cfg.Limit <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	instance := limiter.New(memory.NewStore(), limiter.Rate{Period: cfg.Window, Limit: cfg.Limit})

	return func(c *fiber.Ctx) error {
		lc, err := instance.Get(c.Context(), c.IP())
		if err != nil {
			cfg.Logger.Warn("Rate limiter error", zap.Error(err))
			return c.Next()
		}

		c.Set("X-RateLimit-Limit", strconv.FormatInt(lc.Limit, 10))
		c.Set("X-RateLimit-Remaining", strconv.FormatInt(lc.Remaining, 10))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(lc.Reset, 10))

		if lc.Reached {
			retryAfter := int(time.Until(time.Unix(lc.Reset, 0)).Seconds())
			if retryAfter < 0 {
				retryAfter = 0
			}
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfter))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":       "Rate limit exceeded",
				"retry_after": retryAfter,
			})
		}

		return c.Next()
	}
}
