package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"menuboard/internal/middleware"
	"menuboard/internal/observability"

	"github.com/redis/go-redis/v9"
)

// GetJSON loads key into dest. It reports false on a miss or when Redis is unavailable.
func GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if client == nil {
		return false, nil
	}
	raw, err := client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON stores value under key for ttl. A nil client is a no-op.
func SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if client == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return client.Set(ctx, key, raw, ttl).Err()
}

// Aside serves dest from the cache or fills it with fetch and stores the result.
// Cache failures never fail the call; fetch errors are returned unchanged.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	hit, err := GetJSON(ctx, key, dest)
	switch {
	case err != nil:
		observability.CacheRequests.WithLabelValues("error").Inc()
		middleware.Logger.WarnContext(ctx, "cache read failed", slog.String("key", key), slog.String("error", err.Error()))
	case hit:
		observability.CacheRequests.WithLabelValues("hit").Inc()
		return nil
	default:
		observability.CacheRequests.WithLabelValues("miss").Inc()
	}

	if err := fetch(); err != nil {
		return err
	}

	if err := SetJSON(ctx, key, dest, ttl); err != nil {
		middleware.Logger.WarnContext(ctx, "cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
	return nil
}
