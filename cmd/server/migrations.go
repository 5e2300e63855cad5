package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"

	"github.com/getapet/server/migrations"
)

// runMigrations applies the embedded SQL migrations on startup so a fresh
// database comes up with the schema and the seed categories in place.
func runMigrations(db *sql.DB, logg *slog.Logger) error {
	goose.SetBaseFS(migrations.Files)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, err := goose.GetDBVersion(db)
	if err != nil {
		return fmt.Errorf("failed to read migration version: %w", err)
	}
	logg.Info("migrations applied", slog.Int64("version", version))
	return nil
}
