// Command main loads demo restaurants into the Menuboard database.
package main

import (
	"context"
	"flag"
	"log"

	"menuboard/internal/config"
	"menuboard/internal/database"
	"menuboard/internal/seed"
)

func main() {
	fixturePath := flag.String("fixture", "", "YAML fixture to load (overrides -fake)")
	fake := flag.Int("fake", 3, "Number of fake restaurants to generate")
	tables := flag.Int("tables", 10, "Tables per fake restaurant")
	items := flag.Int("items", 12, "Menu items per fake restaurant")
	randSeed := flag.Int64("seed", 0, "Random seed for fake data (0 = random)")
	shouldClean := flag.Bool("clean", false, "Delete all data before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db, seed.SeedOptions{})
	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	var fixture *seed.Fixture
	if *fixturePath != "" {
		fixture, err = seed.LoadFixture(*fixturePath)
		if err != nil {
			log.Fatalf("Failed to load fixture: %v", err)
		}
	} else {
		factory := seed.NewFactory(*randSeed)
		fixture = &seed.Fixture{}
		for i := 0; i < *fake; i++ {
			fixture.Restaurants = append(fixture.Restaurants, factory.Restaurant(*tables, *items))
		}
	}

	res, err := s.Apply(context.Background(), fixture)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeded %d restaurants, %d tables, %d menu items (%d skipped)",
		res.Restaurants, res.Tables, res.Items, res.Skipped)
	if *fixturePath == "" {
		log.Printf("Generated accounts use the password %s", seed.DemoPassword)
	}
}
