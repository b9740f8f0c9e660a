package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stormvale/vocation-engine/internal/bootstrap"
	"github.com/stormvale/vocation-engine/internal/config"
	"github.com/stormvale/vocation-engine/internal/database"
	"github.com/stormvale/vocation-engine/internal/realtime"
	"github.com/stormvale/vocation-engine/internal/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	if err := cfg.RequireAPIKey(); err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}
	if err := cfg.RequireTokenSecret(); err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		slog.Error("Logger setup failed", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	connString := cfg.GetDBConnString()

	if err := database.Migrate(connString); err != nil {
		slog.Error("Database migration failed", "error", err)
		os.Exit(1)
	}

	dbPool, err := database.NewPool(context.Background(), connString, database.APIPoolSettings())
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	repos := bootstrap.InitializeRepositories(dbPool)
	_, vocationService := bootstrap.InitializeServices(repos)

	hub := realtime.NewHub()
	tokenIssuer := realtime.NewTokenIssuer(cfg.TokenSecret, realtime.DefaultTokenTTL)

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, dbPool, vocationService, hub, tokenIssuer)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	case sig := <-quit:
		slog.Info("Shutdown signal received", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(ctx, bootstrap.ShutdownComponents{
		Server: srv,
		Hub:    hub,
	})
}
