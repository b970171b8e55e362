package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/SpaceCases_Go/internal/catalog"
	"github.com/osse101/SpaceCases_Go/internal/database"
	"github.com/osse101/SpaceCases_Go/internal/event"
	"github.com/osse101/SpaceCases_Go/internal/server"
	"github.com/osse101/SpaceCases_Go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Nil fields are skipped.
type ShutdownComponents struct {
	Server             *server.Server
	SettlementWorker   *worker.SettlementWorker
	Refresher          *catalog.Refresher
	ResilientPublisher *event.ResilientPublisher
	DBPool             database.Pool
}

// GracefulShutdown stops components in dependency order:
// 1. HTTP server (stop accepting new requests)
// 2. Settlement worker (cancel pending expiry timers)
// 3. Catalog refresher (wait for a running refresh)
// 4. Event publisher (flush pending events)
// 5. Database pool
//
// Errors are logged and do not stop the sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	slog.Info(LogMsgShuttingDown)

	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if c.SettlementWorker != nil {
		if err := c.SettlementWorker.Shutdown(ctx); err != nil {
			slog.Error(LogMsgWorkerShutdownFailed, "error", err)
		}
	}

	if c.Refresher != nil {
		if err := c.Refresher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgRefresherShutdownFailed, "error", err)
		}
	}

	if c.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := c.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgPublisherShutdownFailed, "error", err)
		}
	}

	if c.DBPool != nil {
		c.DBPool.Close()
	}

	slog.Info(LogMsgStopped)
}
