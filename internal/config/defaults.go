package config

import "time"

// defaultConfig returns the built-in defaults applied when no other
// source sets a field. Endpoint and path settings have no sensible
// defaults and stay empty; validation rejects the config if they are
// still missing after the merge.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			LogLevel: "info",
		},
		Remote: Remote{
			RequestTimeout: 30 * time.Second,
			TicketSkew:     5 * time.Second,
		},
		Cache: Cache{
			MaxBytes:        512 << 20, // 512 MiB
			HeadroomPercent: 10,
		},
		Render: Render{
			DefaultDPI:     144,
			DefaultFormat:  "png",
			PreloadPages:   2,
			PreloadWorkers: 2,
			NativeTimeout:  60 * time.Second,
		},
		Queue: Queue{
			MaxAttempts: 8,
			BackoffBase: 2 * time.Second,
			BackoffCap:  5 * time.Minute,
			BatchSize:   50,
		},
		Workers: Workers{
			SyncInterval:        5 * time.Minute,
			DrainInterval:       30 * time.Second,
			MaintenanceInterval: 15 * time.Minute,
		},
		Diag: Diag{
			RequestTimeout: 10 * time.Second,
		},
		Connectivity: Connectivity{
			ProbeInterval: time.Minute,
		},
	}
}
