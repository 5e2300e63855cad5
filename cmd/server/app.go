package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getapet/server/internal/config"
	"github.com/getapet/server/internal/platform/images"
	"github.com/getapet/server/internal/platform/postgres"
	"github.com/getapet/server/internal/service"
	"github.com/getapet/server/internal/service/auth"
)

// application holds the wired components of the running server.
type application struct {
	config  *config.Config
	logger  *slog.Logger
	db      *sql.DB
	service service.ClassifiedsService
	images  *images.Storage
}

// newApplication connects to the database, applies migrations and wires the
// executor, service and image storage.
func newApplication(cfg *config.Config, logg *slog.Logger) (*application, error) {
	db, err := setupDatabase(cfg, logg)
	if err != nil {
		return nil, err
	}
	if err := runMigrations(db, logg); err != nil {
		if cerr := db.Close(); cerr != nil {
			logg.Error("failed to close database", slog.String("error", cerr.Error()))
		}
		return nil, err
	}

	executor := postgres.NewExecutor(db, logg)
	svc := service.NewClassifiedsService(
		executor,
		auth.NewBcryptHasher(),
		auth.NewBcryptVerifier(),
		logg,
	)
	storage := images.NewStorage(cfg.Images.Dir, cfg.Images.PublicPrefix, cfg.Images.MaxUploadSize, logg)

	return &application{
		config:  cfg,
		logger:  logg,
		db:      db,
		service: svc,
		images:  storage,
	}, nil
}

// serve runs the HTTP server until SIGINT/SIGTERM, then shuts down gracefully.
func (app *application) serve() error {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", app.config.Server.Port),
		Handler:           app.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info("starting server", slog.Int("port", app.config.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-shutdownCh:
		app.logger.Info("shutting down", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	app.logger.Info("server shutdown completed")
	return nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database", slog.String("error", err.Error()))
		}
	}
}
