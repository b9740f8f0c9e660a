package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stormvale/vocation-engine/internal/bootstrap"
	"github.com/stormvale/vocation-engine/internal/config"
	"github.com/stormvale/vocation-engine/internal/database"
	"github.com/stormvale/vocation-engine/internal/handler"
	"github.com/stormvale/vocation-engine/internal/realtime"
	"github.com/stormvale/vocation-engine/internal/ticker"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	// The daemon pushes over authenticated websockets only; without a signing
	// secret it cannot serve anyone, so bail before touching the store.
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

	dbPool, err := database.NewPool(context.Background(), cfg.GetDBConnString(), database.DaemonPoolSettings())
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	repos := bootstrap.InitializeRepositories(dbPool)
	_, vocationService := bootstrap.InitializeServices(repos)

	hub := realtime.NewHub()
	tokenIssuer := realtime.NewTokenIssuer(cfg.TokenSecret, realtime.DefaultTokenTTL)

	poller := ticker.New(vocationService, hub, cfg.TickInterval)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	poller.Start(ctx)

	r := chi.NewRouter()
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/ws", realtime.Handler(hub, tokenIssuer))

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.TickPort),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Tick daemon listening", "addr", httpServer.Addr, "interval", cfg.TickInterval)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		slog.Error("Tick daemon failed", "error", err)
		os.Exit(1)
	case sig := <-quit:
		slog.Info("Shutdown signal received", "signal", sig.String())
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("Tick daemon forced to shutdown", "error", err)
	}

	poller.Stop()
	hub.Stop()

	slog.Info("Tick daemon stopped")
}
