package workers

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-digi-lib/internal/config"
	"github.com/MKhiriev/go-digi-lib/internal/connectivity"
	"github.com/MKhiriev/go-digi-lib/internal/logger"
	"github.com/MKhiriev/go-digi-lib/internal/service"
)

// Workers owns the application's background jobs and manages them as a
// group.
type Workers struct {
	workers []Worker
}

// NewWorkers wires the background jobs of a running client: the periodic
// sync cycle, the periodic queue drain, cache maintenance, and the
// watcher that fires a sync as soon as the link comes back. Network jobs
// skip their pass while offline or, when configured, on a metered link.
func NewWorkers(services *service.Services, monitor connectivity.Monitor, cfg *config.StructuredConfig, log *logger.Logger) *Workers {
	networkAllowed := func() bool {
		if !monitor.Online() {
			return false
		}
		if cfg.Connectivity.UnmeteredOnly && monitor.Metered() {
			return false
		}
		return true
	}

	return &Workers{workers: []Worker{
		newPeriodic("sync", cfg.Workers.SyncInterval, networkAllowed, func(ctx context.Context) error {
			_, err := services.Sync.SyncNow(ctx)
			return err
		}, log),
		newPeriodic("drain", cfg.Workers.DrainInterval, networkAllowed, func(ctx context.Context) error {
			_, err := services.Sync.PushNow(ctx)
			return err
		}, log),
		newPeriodic("cache-maintenance", cfg.Workers.MaintenanceInterval, nil, func(ctx context.Context) error {
			_, err := services.Cache.Maintain(ctx)
			return err
		}, log),
		newReconnect(services.Sync, monitor, cfg.Connectivity.ProbeInterval, log),
	}}
}

// Start launches every worker bound to ctx.
func (w *Workers) Start(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Start(ctx)
	}
}

// Stop shuts the workers down in reverse start order and blocks until
// every goroutine has exited.
func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
}

// lifecycle owns the start/stop bookkeeping shared by every worker in
// this package.
type lifecycle struct {
	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// launch stops any previously running goroutine, then runs loop on a
// fresh goroutine under a child context of ctx.
func (l *lifecycle) launch(ctx context.Context, loop func(ctx context.Context)) {
	l.Stop()

	l.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.wg.Add(1)
	l.mu.Unlock()

	go func() {
		defer l.wg.Done()
		loop(jobCtx)
	}()
}

// Stop cancels the worker goroutine and blocks until it has fully
// exited. Safe to call when the worker is not running (no-op in that
// case).
func (l *lifecycle) Stop() {
	l.mu.Lock()
	cancel := l.cancel
	l.cancel = nil
	l.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	l.wg.Wait()
}
