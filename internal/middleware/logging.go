// Package middleware provides logging, metrics, tracing and rate limiting for the HTTP server.
package middleware

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Logger is the global structured logger instance used throughout the application.
var Logger *slog.Logger

type contextKey string

const (
	RequestIDKey    contextKey = "request_id"
	AccountIDKey    contextKey = "account_id"
	RestaurantIDKey contextKey = "restaurant_id"
	TraceIDKey      contextKey = "trace_id"
)

// SlowRequestThreshold promotes request logs to WARN.
var SlowRequestThreshold = time.Second

// ctxAttrs lists the context values copied onto every record, in output order.
var ctxAttrs = []contextKey{RequestIDKey, AccountIDKey, RestaurantIDKey, TraceIDKey}

// ctxHandler tags records with the request, account, restaurant and trace
// identifiers found on the context.
type ctxHandler struct {
	slog.Handler
}

func (h *ctxHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, key := range ctxAttrs {
		if v, ok := ctx.Value(key).(string); ok && v != "" {
			r.AddAttrs(slog.String(string(key), v))
		}
	}
	return h.Handler.Handle(ctx, r)
}

func (h *ctxHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ctxHandler{h.Handler.WithAttrs(attrs)}
}

func (h *ctxHandler) WithGroup(name string) slog.Handler {
	return &ctxHandler{h.Handler.WithGroup(name)}
}

func init() {
	var handler slog.Handler
	level := slog.LevelInfo

	if os.Getenv("APP_ENV") == "production" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}

	Logger = slog.New(&ctxHandler{handler})
}

// WithAccountID returns ctx tagged with the authenticated account for logging.
func WithAccountID(ctx context.Context, accountID string) context.Context {
	return context.WithValue(ctx, AccountIDKey, accountID)
}

// WithRestaurantID returns ctx tagged with the restaurant being served.
func WithRestaurantID(ctx context.Context, restaurantID string) context.Context {
	return context.WithValue(ctx, RestaurantIDKey, restaurantID)
}

// localsToContext maps fiber Locals keys onto logging context keys.
var localsToContext = map[string]contextKey{
	"requestid":    RequestIDKey,
	"accountID":    AccountIDKey,
	"restaurantID": RestaurantIDKey,
	"traceID":      TraceIDKey,
}

// ContextMiddleware copies request, session and trace identifiers from fiber
// Locals into the request context so service-layer logs carry them.
func ContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		for local, key := range localsToContext {
			if v, ok := c.Locals(local).(string); ok && v != "" {
				ctx = context.WithValue(ctx, key, v)
			}
		}

		c.SetUserContext(ctx)
		return c.Next()
	}
}

// RestaurantContext tags public storefront requests with the :restaurantID
// route parameter. Mount it on the group that declares the parameter.
func RestaurantContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if rid := c.Params("restaurantID"); rid != "" {
			c.SetUserContext(WithRestaurantID(c.UserContext(), rid))
		}
		return c.Next()
	}
}

// StructuredLogger logs one line per request. Health probes and /metrics
// scrapes are skipped.
func StructuredLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if quietPath(c.Path()) {
			return c.Next()
		}
		start := time.Now()

		err := c.Next()

		latency := time.Since(start)
		status := c.Response().StatusCode()
		route := c.Path()
		if r := c.Route(); r != nil && r.Path != "" {
			route = r.Path
		}
		fields := []any{
			slog.Int("status", status),
			slog.String("method", c.Method()),
			slog.String("route", route),
			slog.String("path", c.Path()),
			slog.String("ip", c.IP()),
			slog.Duration("latency", latency),
		}

		ctx := c.UserContext()
		switch {
		case err != nil:
			fields = append(fields, slog.String("error", err.Error()))
			Logger.ErrorContext(ctx, "request failed", fields...)
		case status >= fiber.StatusInternalServerError:
			Logger.ErrorContext(ctx, "request failed", fields...)
		case latency >= SlowRequestThreshold:
			Logger.WarnContext(ctx, "slow request", fields...)
		default:
			Logger.InfoContext(ctx, "request processed", fields...)
		}

		return err
	}
}

func quietPath(path string) bool {
	return path == "/metrics" || path == "/health" || strings.HasPrefix(path, "/health/")
}
