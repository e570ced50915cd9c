package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestLimitAllow(t *testing.T) {
	tests := []struct {
		name          string
		env           string
		withRedis     bool
		expectedAllow bool
		expectErr     bool
	}{
		{name: "unset env is not limited", env: "", expectedAllow: true},
		{name: "test env is not limited", env: "test", expectedAllow: true},
		{name: "development env is not limited", env: "development", expectedAllow: true},
		{name: "production without redis", env: "production", expectErr: true},
		{name: "first hit allowed", env: "production", withRedis: true, expectedAllow: true},
	}

	l := Limit{Name: "login", Requests: 1, Window: time.Minute}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("APP_ENV", tt.env)

			var rdb *redis.Client
			if tt.withRedis {
				_, rdb = newTestRedis(t)
			}

			allowed, _, err := l.Allow(context.Background(), rdb, "ip:1")
			if tt.expectErr {
				assert.Error(t, err)
				assert.False(t, allowed)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedAllow, allowed)
		})
	}
}

func TestLimitAllow_WindowExpiry(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	mr, rdb := newTestRedis(t)
	ctx := context.Background()
	l := Limit{Name: "register", Requests: 2, Window: time.Minute}

	for i := 0; i < 2; i++ {
		allowed, _, err := l.Allow(ctx, rdb, "ip:9")
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, retry, err := l.Allow(ctx, rdb, "ip:9")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Greater(t, retry, time.Duration(0))
	assert.LessOrEqual(t, retry, time.Minute)

	// Rejected hits must not extend the window.
	assert.LessOrEqual(t, mr.TTL("rl:register:ip:9"), time.Minute)

	mr.FastForward(2 * time.Minute)

	allowed, _, err = l.Allow(ctx, rdb, "ip:9")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRateLimit_RejectsWithRetryAfter(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	_, rdb := newTestRedis(t)

	app := fiber.New()
	app.Post("/login", RateLimit(rdb, Limit{Name: "login", Requests: 1, Window: time.Minute}), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/login", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "60", resp.Header.Get(fiber.HeaderRetryAfter))
}

func TestRateLimit_PerRestaurant(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	_, rdb := newTestRedis(t)

	app := fiber.New()
	limit := Limit{Name: "checkout", Requests: 1, Window: time.Minute, PerRestaurant: true}
	app.Post("/restaurants/:restaurantID/orders", RateLimit(rdb, limit), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	post := func(rid string) int {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/restaurants/"+rid+"/orders", nil))
		require.NoError(t, err)
		return resp.StatusCode
	}

	assert.Equal(t, http.StatusOK, post("casa-pepe"))
	assert.Equal(t, http.StatusTooManyRequests, post("casa-pepe"))
	assert.Equal(t, http.StatusOK, post("la-arepa"))
}

func TestRateLimit_FailPolicy(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	app := fiber.New()
	ok := func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) }
	app.Get("/open", RateLimit(nil, Limit{Requests: 1, Window: time.Minute}), ok)
	app.Get("/closed", RateLimit(nil, Limit{Requests: 1, Window: time.Minute, Policy: FailClosed}), ok)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/open", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/closed", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
