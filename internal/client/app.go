package client

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-digi-lib/internal/diag"
	"github.com/MKhiriev/go-digi-lib/internal/logger"
	"github.com/MKhiriev/go-digi-lib/internal/service"
	"github.com/MKhiriev/go-digi-lib/internal/workers"
)

type App struct {
	services *service.Services
	workers  *workers.Workers
	diag     *diag.Server
	logger   *logger.Logger
}

// NewApp assembles the client runtime from its wired parts. A nil
// diagServer keeps the diagnostics endpoint off.
func NewApp(services *service.Services, jobs *workers.Workers, diagServer *diag.Server, log *logger.Logger) *App {
	return &App{
		services: services,
		workers:  jobs,
		diag:     diagServer,
		logger:   log,
	}
}

// Run starts the background workers and blocks until SIGINT, SIGTERM, or
// SIGQUIT. Shutdown stops the workers, drains the render pool, and takes
// the diagnostics endpoint down.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	// Actions stranded in flight by a crash go back to pending before
	// anything else touches the queue.
	recovered, err := a.services.Queue.RecoverInFlight(ctx)
	if err != nil {
		return fmt.Errorf("recover in-flight actions: %w", err)
	}
	if recovered > 0 {
		a.logger.Info().Int64("actions", recovered).Msg("requeued actions stranded in flight")
	}

	if a.diag != nil {
		a.diag.Start()
		defer a.diag.Stop()
	}

	defer a.services.Render.Close()

	a.workers.Start(ctx)
	defer a.workers.Stop()

	if _, err := a.services.Sync.SyncNow(ctx); err != nil {
		a.logger.Warn().Err(err).Msg("startup sync failed")
	}

	<-ctx.Done()
	a.logger.Info().Msg("client shutdown gracefully")

	return nil
}
