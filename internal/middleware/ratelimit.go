package middleware

import (
	"context"
	"fmt"
	"sync"
	"time"

	"skillshare/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// FailPolicy defines the behavior when the rate limit store (Redis) is unavailable.
type FailPolicy int

const (
	// FailOpen allows the request to proceed if Redis is unavailable.
	FailOpen FailPolicy = iota
	// FailClosed blocks the request (503 Service Unavailable) if Redis is unavailable.
	FailClosed
)

// RateLimitConfig configures one limited route group.
type RateLimitConfig struct {
	Name   string
	Limit  int
	Window time.Duration
	Policy FailPolicy
	// Redis holds shared counters. When nil an in-process token bucket is used.
	Redis *redis.Client
	// Disabled turns the limiter into a pass-through, e.g. in tests.
	Disabled bool
}

// CheckRateLimit counts a request against a fixed Redis window.
// Returns true if allowed, false if limit exceeded.
func CheckRateLimit(ctx context.Context, rdb *redis.Client, resource, id string, limit int, window time.Duration) (bool, error) {
	if rdb == nil {
		return false, fmt.Errorf("redis client is nil")
	}

	key := fmt.Sprintf("rl:%s:%s", resource, id)

	// INCR and set EXPIRE if new
	cnt, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if cnt == 1 {
		if err := rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}
	return cnt <= int64(limit), nil
}

// localLimiter keeps one token bucket per client.
type localLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	every    rate.Limit
	burst    int
}

const maxLocalClients = 10000

func newLocalLimiter(limit int, window time.Duration) *localLimiter {
	return &localLimiter{
		limiters: make(map[string]*rate.Limiter),
		every:    rate.Every(window / time.Duration(limit)),
		burst:    limit,
	}
}

func (l *localLimiter) allow(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	lim, ok := l.limiters[id]
	if !ok {
		if len(l.limiters) >= maxLocalClients {
			l.limiters = make(map[string]*rate.Limiter)
		}
		lim = rate.NewLimiter(l.every, l.burst)
		l.limiters[id] = lim
	}
	return lim.Allow()
}

// RateLimit returns a Fiber middleware enforcing cfg.Limit requests per cfg.Window.
// It keys by the authenticated identity when present, otherwise by remote IP.
func RateLimit(cfg RateLimitConfig) fiber.Handler {
	if cfg.Disabled || cfg.Limit <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	local := newLocalLimiter(cfg.Limit, cfg.Window)

	return func(c *fiber.Ctx) error {
		resource := cfg.Name
		if resource == "" {
			resource = c.Path()
		}
		id := "ip:" + c.IP()
		if ident, ok := IdentityFromCtx(c); ok {
			id = "user:" + ident.Email
		}

		var allowed bool
		if cfg.Redis == nil {
			allowed = local.allow(resource + "|" + id)
		} else {
			var err error
			allowed, err = CheckRateLimit(c.UserContext(), cfg.Redis, resource, id, cfg.Limit, cfg.Window)
			if err != nil {
				Logger.WarnContext(c.UserContext(), "rate limit store unavailable",
					"resource", resource, "error", err.Error())
				if cfg.Policy == FailClosed {
					return c.Status(fiber.StatusServiceUnavailable).JSON(models.ErrorResponse{
						Error: "rate limit unavailable",
					})
				}
				return c.Next()
			}
		}

		if !allowed {
			return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorResponse{
				Error: "rate limit exceeded",
			})
		}
		return c.Next()
	}
}
