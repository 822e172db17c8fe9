package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/dropgame/internal/drop"
	"github.com/osse101/dropgame/internal/scheduler"
	"github.com/osse101/dropgame/internal/worker"
)

// Stopper is a component with a context-bounded stop.
type Stopper interface {
	Stop(ctx context.Context) error
}

// Closer is a component that stops without a context.
type Closer interface {
	Stop() error
}

// ShutdownComponents holds all components that need graceful shutdown.
// Nil fields are skipped.
type ShutdownComponents struct {
	Server    Stopper
	Gateway   Closer
	Games     []*drop.Game
	Scheduler *scheduler.Scheduler
	Pool      *worker.Pool
	Storage   *Storage
}

// GracefulShutdown stops components in dependency order:
// 1. Ops server (stop accepting requests)
// 2. Games (cancel pending drop timers)
// 3. Gateway (no more events arrive)
// 4. Scheduler and workers (drain in-flight jobs)
// 5. Storage
//
// Errors are logged and do not stop the sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	slog.Info(LogMsgShuttingDown)

	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	for _, g := range c.Games {
		g.Shutdown(ctx)
	}

	if c.Gateway != nil {
		if err := c.Gateway.Stop(); err != nil {
			slog.Error(LogMsgGatewayCloseFailed, "error", err)
		}
	}

	if c.Scheduler != nil {
		c.Scheduler.Stop()
	}
	if c.Pool != nil {
		c.Pool.Stop()
	}
	if c.Storage != nil {
		c.Storage.Close()
	}

	slog.Info(LogMsgStopped)
}
