package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	MenuKeyPrefix      = "menu:%s"
	RevokedTokenPrefix = "blacklist:%s"
)

// MenuTTL bounds how stale a public menu can be if an invalidation is lost.
var MenuTTL = 5 * time.Minute

func MenuKey(restaurantID string) string {
	return fmt.Sprintf(MenuKeyPrefix, restaurantID)
}

func RevokedTokenKey(jti string) string {
	return fmt.Sprintf(RevokedTokenPrefix, jti)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateMenu drops the cached public menu of a restaurant.
func InvalidateMenu(ctx context.Context, restaurantID string) {
	Invalidate(ctx, MenuKey(restaurantID))
}

// RevokeToken marks a session token as revoked until it would have expired anyway.
func RevokeToken(ctx context.Context, jti string, ttl time.Duration) error {
	if client == nil || jti == "" || ttl <= 0 {
		return nil
	}
	return client.Set(ctx, RevokedTokenKey(jti), "1", ttl).Err()
}

// IsTokenRevoked reports whether jti was revoked. Without Redis nothing is revoked.
func IsTokenRevoked(ctx context.Context, jti string) bool {
	if client == nil || jti == "" {
		return false
	}
	n, err := client.Exists(ctx, RevokedTokenKey(jti)).Result()
	return err == nil && n > 0
}
