package bootstrap

import (
	"context"
	"log/slog"

	"github.com/stormvale/vocation-engine/internal/realtime"
	"github.com/stormvale/vocation-engine/internal/server"
	"github.com/stormvale/vocation-engine/internal/ticker"
)

// ShutdownComponents holds the components that need graceful shutdown.
type ShutdownComponents struct {
	Server *server.Server
	Poller *ticker.Poller
	Hub    *realtime.Hub
}

// GracefulShutdown stops components in dependency order:
// 1. HTTP server (stop accepting new requests)
// 2. Tick poller (finish the in-flight sweep, stop claiming)
// 3. Realtime hub (close client connections)
//
// Errors during shutdown are logged but do not stop the sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedStop, "error", err)
		}
	}

	if components.Poller != nil {
		slog.Info(LogMsgShuttingDownPoller)
		components.Poller.Stop()
	}

	if components.Hub != nil {
		slog.Info(LogMsgClosingRealtimeHub)
		components.Hub.Stop()
	}

	slog.Info(LogMsgServerStopped)
}
