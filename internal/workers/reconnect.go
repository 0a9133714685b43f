// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-digi-lib/internal/connectivity"
	"github.com/MKhiriev/go-digi-lib/internal/logger"
	"github.com/MKhiriev/go-digi-lib/internal/service"
)

// reconnect watches the link state and fires one sync cycle on the
// offline-to-online transition, so queued edits leave the device without
// waiting for the next scheduled pass.
type reconnect struct {
	lifecycle

	sync     service.SyncService
	monitor  connectivity.Monitor
	interval time.Duration
	logger   *logger.Logger
}

func newReconnect(syncSvc service.SyncService, monitor connectivity.Monitor, interval time.Duration, log *logger.Logger) *reconnect {
	return &reconnect{sync: syncSvc, monitor: monitor, interval: interval, logger: log}
}

// Start implements Worker. The poll interval follows the monitor's probe
// interval; the monitor caches its verdict for that long anyway, so
// polling faster would only re-read the cache.
func (r *reconnect) Start(ctx context.Context) {
	interval := r.interval
	if interval <= 0 {
		interval = 30 * time.Second
	}

	r.launch(ctx, func(ctx context.Context) {
		t := time.NewTicker(interval)
		defer t.Stop()

		last := r.monitor.Online()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				online := r.monitor.Online()
				if online && !last {
					r.logger.Info().Msg("link restored, starting sync cycle")
					if _, err := r.sync.SyncNow(ctx); err != nil {
						r.logger.Warn().Err(err).Msg("reconnect sync failed")
					}
				}
				last = online
			}
		}
	})
}
