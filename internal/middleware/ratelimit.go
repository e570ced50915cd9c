package middleware

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// FailPolicy decides what happens when Redis cannot be reached.
type FailPolicy int

const (
	FailOpen   FailPolicy = iota // let the request through
	FailClosed                   // answer 503
)

var errNoRedis = errors.New("rate limit store unavailable")

// Limit is a fixed-window request budget for one route.
type Limit struct {
	Name     string // key namespace, e.g. "checkout"
	Requests int
	Window   time.Duration
	Policy   FailPolicy

	// PerRestaurant adds the :restaurantID parameter to the key so diners of
	// one restaurant do not consume the budget of another.
	PerRestaurant bool
}

// rateLimitEnabled reports whether limits apply in the current APP_ENV.
// Local and test runs are never limited.
func rateLimitEnabled() bool {
	switch strings.ToLower(os.Getenv("APP_ENV")) {
	case "", "test", "development":
		return false
	}
	return true
}

func (l Limit) key(subject string) string {
	return "rl:" + l.Name + ":" + subject
}

// Allow counts one hit for subject. When the budget is spent it also returns
// how long until the window resets.
func (l Limit) Allow(ctx context.Context, rdb *redis.Client, subject string) (bool, time.Duration, error) {
	if !rateLimitEnabled() {
		return true, 0, nil
	}
	if rdb == nil {
		return false, 0, errNoRedis
	}

	key := l.key(subject)
	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	_, err := rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, key)
		p.ExpireNX(ctx, key, l.Window)
		ttl = p.PTTL(ctx, key)
		return nil
	})
	if err != nil {
		return false, 0, err
	}
	if incr.Val() <= int64(l.Requests) {
		return true, 0, nil
	}
	return false, ttl.Val(), nil
}

// subject identifies the caller: the session account when present, the
// client IP otherwise.
func (l Limit) subject(c *fiber.Ctx) string {
	var who string
	if aid, ok := c.Locals("accountID").(string); ok && aid != "" {
		who = "account:" + aid
	} else {
		who = "ip:" + c.IP()
	}
	if l.PerRestaurant {
		if rid := c.Params("restaurantID"); rid != "" {
			return "restaurant:" + rid + ":" + who
		}
	}
	return who
}

// RateLimit enforces l on the route. Rejections carry Retry-After in seconds.
func RateLimit(rdb *redis.Client, l Limit) fiber.Handler {
	if l.Name == "" {
		l.Name = "default"
	}
	return func(c *fiber.Ctx) error {
		allowed, retry, err := l.Allow(c.UserContext(), rdb, l.subject(c))
		if err != nil {
			if l.Policy == FailOpen {
				return c.Next()
			}
			Logger.WarnContext(c.UserContext(), "rate limit store unavailable, rejecting",
				slog.String("limit", l.Name),
				slog.String("error", err.Error()),
			)
			return limitResponse(c, fiber.StatusServiceUnavailable, "Rate limit unavailable")
		}
		if !allowed {
			if retry > 0 {
				c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int((retry+time.Second-1)/time.Second)))
			}
			return limitResponse(c, fiber.StatusTooManyRequests, "Too many requests, try again later")
		}
		return c.Next()
	}
}

func limitResponse(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status":  status,
		"success": false,
		"message": message,
		"code":    "RATE_LIMITED",
	})
}
