package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"hearth/internal/database"
	"hearth/internal/logger"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	direction := flag.String("direction", "up", "migration direction: up or down")
	steps := flag.Int("steps", 0, "number of migrations to apply (0 = all)")
	flag.Parse()

	if err := run(*direction, *steps); err != nil {
		logger.Get().Fatalf("Migration error: %v", err)
	}
}

func run(direction string, steps int) error {
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	mig, err := migrate.New("file://migrations", dbConfig.URL())
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer mig.Close()

	switch direction {
	case "up":
		if steps > 0 {
			err = mig.Steps(steps)
		} else {
			err = mig.Up()
		}
	case "down":
		if steps > 0 {
			err = mig.Steps(-steps)
		} else {
			err = mig.Down()
		}
	default:
		return fmt.Errorf("unknown direction %q, use up or down", direction)
	}

	if err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Get().Infof("Migrations %s complete", direction)
	return nil
}
