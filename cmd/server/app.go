package main

import (
	"database/sql"
	"log/slog"

	"github.com/pmorris/tasktrack-api/internal/config"
	"github.com/pmorris/tasktrack-api/internal/platform/postgres"
	"github.com/pmorris/tasktrack-api/internal/store"
)

// application holds the long-lived dependencies of the server: the
// configuration loaded at startup, the root logger, the pooled
// database handle, and the task store built on it. Everything is
// constructed once in run() and passed down; no ambient globals.
type application struct {
	config    *config.Config
	logger    *slog.Logger
	db        *sql.DB
	taskStore store.TaskStore
}

// newApplication assembles the application dependency graph.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) *application {
	return &application{
		config:    cfg,
		logger:    logger,
		db:        db,
		taskStore: postgres.NewPostgresTaskStore(db, logger),
	}
}
