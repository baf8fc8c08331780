// Package main implements the entry point for the tasktrack API
// server, which serves task CRUD over JSON and an HTML form interface
// backed by PostgreSQL.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/pmorris/tasktrack-api/internal/config"
	"github.com/pmorris/tasktrack-api/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

// run wires configuration, logging, the database pool, and the HTTP
// server, returning any startup or shutdown error.
func run() error {
	// A local .env file is optional; real deployments export the
	// variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"db_host", cfg.Database.Host,
		"db_name", cfg.Database.Name)

	db, err := setupDatabase(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("failed to close database pool", "error", err)
		}
	}()

	app := newApplication(cfg, log, db)

	return app.startHTTPServer(context.Background(), app.setupRouter())
}
