// Command migrate runs schema operations for the Menuboard database.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"menuboard/internal/config"
	"menuboard/internal/database"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func usage() error {
	return fmt.Errorf("usage: go run ./cmd/migrate <auto|status>")
}

func run() error {
	flag.Parse()
	if flag.NArg() < 1 {
		return usage()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Connect applies the schema, so status reflects a migrated database.
	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(flag.Arg(0))) {
	case "auto":
		if err := database.Migrate(db); err != nil {
			return err
		}
		log.Println("automigrations applied")
	case "status":
		migrator := db.Migrator()
		for _, model := range database.PersistentModels() {
			stmt := db.Model(model).Statement
			if err := stmt.Parse(model); err != nil {
				return fmt.Errorf("parse model: %w", err)
			}
			state := "missing"
			if migrator.HasTable(model) {
				state = "present"
			}
			log.Printf("%-16s %s", stmt.Schema.Table, state)
		}
	default:
		return usage()
	}
	return nil
}
