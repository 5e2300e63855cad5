// Package main is the entry point for the Get A Pet server, a classifieds
// API for pet adoption ads backed by PostgreSQL.
package main

import (
	"fmt"
	"log"
	"log/slog"

	"github.com/getapet/server/internal/config"
	"github.com/getapet/server/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// run loads configuration, wires the application and serves HTTP until a
// shutdown signal arrives.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logg := logger.Setup(cfg.Server.LogLevel)
	logg.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel))

	app, err := newApplication(cfg, logg)
	if err != nil {
		return err
	}
	defer app.cleanup()

	return app.serve()
}
