package service

import (
	"github.com/MKhiriev/go-digi-lib/internal/adapter"
	"github.com/MKhiriev/go-digi-lib/internal/config"
	"github.com/MKhiriev/go-digi-lib/internal/connectivity"
	"github.com/MKhiriev/go-digi-lib/internal/logger"
	"github.com/MKhiriev/go-digi-lib/internal/renderer"
	"github.com/MKhiriev/go-digi-lib/internal/store"
)

// Services bundles the client business layer.
type Services struct {
	Cache  CacheService
	Render RenderService
	Queue  QueueService
	Sync   SyncService
}

// NewServices wires every service over the shared storages and the
// external adapters.
func NewServices(storages *store.Storages, serverAdapter adapter.ServerAdapter, native renderer.NativeRenderer, monitor connectivity.Monitor, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	cacheService := NewCacheService(storages.Cache, storages.Blobs, cfg.Cache, logger)
	queueService := NewQueueService(storages.Queue, storages.Library, storages.Conflicts, serverAdapter, cfg.Queue, cfg.App.ClientID, logger)

	return &Services{
		Cache:  cacheService,
		Render: NewRenderService(cacheService, serverAdapter, native, monitor, cfg.Render, cfg.Connectivity, logger),
		Queue:  queueService,
		Sync:   NewSyncService(serverAdapter, storages.Cursors, storages.Library, storages.Conflicts, storages.Queue, queueService, monitor, logger),
	}
}
