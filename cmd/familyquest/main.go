package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dukerupert/familyquest/internal/app"
	"github.com/dukerupert/familyquest/internal/config"
	"github.com/dukerupert/familyquest/internal/database"
	"github.com/dukerupert/familyquest/internal/logging"
	"github.com/dukerupert/familyquest/internal/server"
	"github.com/dukerupert/familyquest/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "familyquest: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	snapshots := store.NewSnapshotStore(db, cfg.SnapshotKey, logger.With("component", "store"))
	ctrl := app.New(snapshots, logger.With("component", "controller"))
	if err := ctrl.Load(); err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	srv := server.New(ctrl, logger)

	httpServer := &http.Server{
		Addr:        cfg.Addr(),
		Handler:     srv.Router(),
		ReadTimeout: 30 * time.Second,
		IdleTimeout: 120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go srv.RunCleanup(ctx)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("familyquest running", "addr", cfg.Addr(), "db", cfg.DBPath, "ready", ctrl.Ready())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
