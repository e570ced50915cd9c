package server

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
)

const healthCheckTimeout = 2 * time.Second

// dependency is one backing service probed by the readiness check. A nil
// probe means the dependency is not configured.
type dependency struct {
	name     string
	optional bool
	probe    func(context.Context) error
}

func (s *Server) dependencies() []dependency {
	deps := []dependency{{name: "database", probe: s.pingDatabase}}

	redisDep := dependency{name: "redis", optional: true}
	if s.redis != nil {
		redisDep.probe = func(ctx context.Context) error { return s.redis.Ping(ctx).Err() }
	}
	return append(deps, redisDep)
}

func (s *Server) pingDatabase(ctx context.Context) error {
	if s.db == nil {
		return errors.New("database not configured")
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// LivenessCheck godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/live [get]
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "up", "time": time.Now()})
}

// ReadinessCheck probes every dependency. An optional dependency that is not
// configured reports "disabled" and does not fail readiness; a configured one
// that does not answer does.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	checks := fiber.Map{}
	healthy := true

	for _, dep := range s.dependencies() {
		if dep.probe == nil && dep.optional {
			checks[dep.name] = "disabled"
			continue
		}
		ctx, cancel := context.WithTimeout(c.UserContext(), healthCheckTimeout)
		err := errors.New("not configured")
		if dep.probe != nil {
			err = dep.probe(ctx)
		}
		cancel()

		if err != nil {
			healthy = false
			checks[dep.name] = "unhealthy"
			continue
		}
		checks[dep.name] = "healthy"
	}

	status, overall := fiber.StatusOK, "healthy"
	if !healthy {
		status, overall = fiber.StatusServiceUnavailable, "unhealthy"
	}
	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"checks": checks,
		"time":   time.Now(),
	})
}
