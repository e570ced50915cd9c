// Package bootstrap wires the runtime dependencies shared by the server and
// the command line tools.
package bootstrap

import (
	"context"
	"fmt"
	"log"

	"menuboard/internal/cache"
	"menuboard/internal/config"
	"menuboard/internal/database"
	"menuboard/internal/events"
	"menuboard/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedFixture, when set, is a YAML fixture applied after migrating.
	SeedFixture string
}

// Runtime holds the connections a process needs.
type Runtime struct {
	DB        *gorm.DB
	Redis     *redis.Client
	Publisher events.OrderPublisher
}

// InitRuntime connects to the database (which migrates it), connects Redis and
// builds the order event publisher. Redis may be nil when unreachable.
func InitRuntime(cfg *config.Config, opts Options) (*Runtime, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	if opts.SeedFixture != "" {
		if err := applyFixture(db, opts.SeedFixture); err != nil {
			return nil, err
		}
	}

	return &Runtime{
		DB:        db,
		Redis:     cache.GetClient(),
		Publisher: NewPublisher(cfg),
	}, nil
}

// NewPublisher returns a Kafka publisher when brokers are configured and a
// no-op publisher otherwise. Whether an order is published is decided per
// restaurant by the order_events flag.
func NewPublisher(cfg *config.Config) events.OrderPublisher {
	brokers := cfg.Brokers()
	if len(brokers) == 0 || cfg.KafkaOrderTopic == "" {
		return events.NoopPublisher{}
	}
	log.Printf("order events enabled: topic %s on %v", cfg.KafkaOrderTopic, brokers)
	return events.NewKafkaPublisher(events.NewKafkaWriter(brokers, cfg.KafkaOrderTopic))
}

func applyFixture(db *gorm.DB, path string) error {
	fixture, err := seed.LoadFixture(path)
	if err != nil {
		return err
	}
	res, err := seed.NewSeeder(db, seed.SeedOptions{}).Apply(context.Background(), fixture)
	if err != nil {
		return fmt.Errorf("failed to seed fixture: %w", err)
	}
	log.Printf("seeded %d restaurants (%d already present)", res.Restaurants, res.Skipped)
	return nil
}
