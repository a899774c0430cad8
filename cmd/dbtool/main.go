package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/lorrc/desk-simulator/internal/config"
	"github.com/lorrc/desk-simulator/internal/infrastructure/logging"
)

func main() {
	var (
		migrationsPath = flag.String("migrations", "migrations", "path to the migrations directory")
		down           = flag.Bool("down", false, "roll back all migrations instead of applying them")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(logging.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Output:      os.Stdout,
		ServiceName: "dbtool",
		Environment: cfg.App.Environment,
	})

	if cfg.Database.URL == "" {
		logger.Error("DATABASE_URL is required")
		os.Exit(1)
	}

	m, err := migrate.New("file://"+*migrationsPath, cfg.Database.URL)
	if err != nil {
		logger.Error("failed to initialize migrations", "error", err)
		os.Exit(1)
	}
	defer m.Close()

	if *down {
		logger.Info("rolling back migrations")
		err = m.Down()
	} else {
		logger.Info("applying migrations", "path", *migrationsPath)
		err = m.Up()
	}

	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("database schema already up to date")
	case err != nil:
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	default:
		logger.Info("migration complete")
	}
}
