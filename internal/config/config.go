// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-digi-lib client. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line
// flags, an optional JSON file, and built-in defaults.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the installation
	// identifier, version, and logging options.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the local persistence backends:
	// the SQLite metadata database and the blob directory.
	Storage Storage `envPrefix:"STORAGE_"`

	// Remote holds the server endpoint and outbound request settings.
	Remote Remote `envPrefix:"REMOTE_"`

	// Cache holds the page cache size ceiling and eviction settings.
	Cache Cache `envPrefix:"CACHE_"`

	// Render holds rendering defaults and native renderer settings.
	Render Render `envPrefix:"RENDER_"`

	// Queue holds offline action queue retry settings.
	Queue Queue `envPrefix:"QUEUE_"`

	// Workers holds periodic background job intervals.
	Workers Workers `envPrefix:"WORKERS_"`

	// Diag holds the local diagnostics HTTP server settings.
	Diag Diag `envPrefix:"DIAG_"`

	// Connectivity holds reachability probe settings.
	Connectivity Connectivity `envPrefix:"CONNECTIVITY_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged after the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// ClientID identifies this installation to the server so pushed
	// actions are excluded from its own subsequent manifests.
	// Env: APP_CLIENT_ID
	ClientID string `env:"CLIENT_ID"`

	// Version is the semantic version string of the running client.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogLevel selects the minimum emitted log level
	// ("debug", "info", "warn", "error").
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// LogFile is an optional path for file logging. When empty, log
	// entries go to stdout.
	// Env: APP_LOG_FILE
	LogFile string `env:"LOG_FILE"`
}

// Storage groups the configuration for the local persistence backends.
type Storage struct {
	// DB holds the local SQLite connection settings.
	DB DB `envPrefix:"DB_"`

	// Blobs holds the file-system settings for rendered artifacts.
	Blobs Blobs `envPrefix:"BLOBS_"`
}

// DB holds connection settings for the local metadata database.
type DB struct {
	// DSN is the SQLite Data Source Name used to open the database
	// (e.g. "file:/home/user/.digi-lib/library.db?_journal_mode=WAL").
	// In-memory DSNs are rejected because the cache index must survive
	// restarts.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Blobs holds file-system settings for the rendered artifact store.
type Blobs struct {
	// Dir is the directory where rendered page blobs are stored.
	// Env: STORAGE_BLOBS_DIR
	Dir string `env:"DIR"`
}

// Remote holds the server endpoint and outbound request settings.
type Remote struct {
	// BaseURL is the root of the library server API
	// (e.g. "https://library.example.com").
	// Env: REMOTE_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// AuthToken is the bearer token attached to every API request.
	// Env: REMOTE_AUTH_TOKEN
	AuthToken string `env:"AUTH_TOKEN"`

	// RequestTimeout bounds a single outbound request (e.g. "30s").
	// Env: REMOTE_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// TicketSkew is the safety margin subtracted from render ticket
	// expiries to absorb clock drift between client and server.
	// Env: REMOTE_TICKET_SKEW
	TicketSkew time.Duration `env:"TICKET_SKEW"`
}

// Cache holds the page cache size ceiling and eviction settings.
type Cache struct {
	// MaxBytes is the cache size ceiling. Inserting past it triggers
	// eviction.
	// Env: CACHE_MAX_BYTES
	MaxBytes int64 `env:"MAX_BYTES"`

	// HeadroomPercent controls how far below MaxBytes eviction drives
	// the total, so that a single insert does not re-trigger it
	// immediately. A value of 10 evicts down to 90% of MaxBytes.
	// Env: CACHE_HEADROOM_PERCENT
	HeadroomPercent int `env:"HEADROOM_PERCENT"`

	// MaxAge expires entries not accessed for this long during
	// maintenance sweeps. Zero disables age-based expiry.
	// Env: CACHE_MAX_AGE
	MaxAge time.Duration `env:"MAX_AGE"`
}

// Render holds rendering defaults and native renderer settings.
type Render struct {
	// DefaultDPI is the raster density used when a request leaves it zero.
	// Env: RENDER_DEFAULT_DPI
	DefaultDPI int `env:"DEFAULT_DPI"`

	// DefaultFormat is the image format used when a request leaves it
	// empty ("png", "webp" or "jpeg").
	// Env: RENDER_DEFAULT_FORMAT
	DefaultFormat string `env:"DEFAULT_FORMAT"`

	// PreloadPages is how many following pages to warm after a
	// foreground render.
	// Env: RENDER_PRELOAD_PAGES
	PreloadPages int `env:"PRELOAD_PAGES"`

	// PreloadWorkers caps concurrent background preload renders.
	// Env: RENDER_PRELOAD_WORKERS
	PreloadWorkers int `env:"PRELOAD_WORKERS"`

	// NativeCommand is the renderer binary probed at startup
	// (e.g. "pdftoppm"). Empty disables the native tier.
	// Env: RENDER_NATIVE_COMMAND
	NativeCommand string `env:"NATIVE_COMMAND"`

	// NativeTimeout bounds a single native render invocation.
	// Env: RENDER_NATIVE_TIMEOUT
	NativeTimeout time.Duration `env:"NATIVE_TIMEOUT"`

	// DocumentDir is where original document files live locally; the
	// native renderer reads its input from here.
	// Env: RENDER_DOCUMENT_DIR
	DocumentDir string `env:"DOCUMENT_DIR"`
}

// Queue holds offline action queue retry settings.
type Queue struct {
	// MaxAttempts is how many pushes an action gets before it is marked
	// failed and left for user review.
	// Env: QUEUE_MAX_ATTEMPTS
	MaxAttempts int `env:"MAX_ATTEMPTS"`

	// BackoffBase is the delay after the first failed attempt; each
	// further failure doubles it.
	// Env: QUEUE_BACKOFF_BASE
	BackoffBase time.Duration `env:"BACKOFF_BASE"`

	// BackoffCap bounds the doubling.
	// Env: QUEUE_BACKOFF_CAP
	BackoffCap time.Duration `env:"BACKOFF_CAP"`

	// BatchSize caps how many actions one drain cycle pushes.
	// Env: QUEUE_BATCH_SIZE
	BatchSize int `env:"BATCH_SIZE"`
}

// Workers holds periodic background job intervals.
type Workers struct {
	// SyncInterval is the pause between sync cycles (e.g. "5m").
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// DrainInterval is the pause between offline queue drain attempts.
	// Env: WORKERS_DRAIN_INTERVAL
	DrainInterval time.Duration `env:"DRAIN_INTERVAL"`

	// MaintenanceInterval is the pause between cache maintenance sweeps.
	// Env: WORKERS_MAINTENANCE_INTERVAL
	MaintenanceInterval time.Duration `env:"MAINTENANCE_INTERVAL"`
}

// Diag holds the local diagnostics HTTP server settings.
type Diag struct {
	// Address is the TCP address the diagnostics server listens on,
	// in "host:port" format. Empty disables the server.
	// Env: DIAG_ADDRESS
	Address string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single
	// diagnostics request.
	// Env: DIAG_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Connectivity holds reachability probe settings.
type Connectivity struct {
	// ProbeURL is the endpoint fetched to decide whether the client is
	// online. Empty falls back to the remote base URL.
	// Env: CONNECTIVITY_PROBE_URL
	ProbeURL string `env:"PROBE_URL"`

	// ProbeInterval is the pause between reachability checks.
	// Env: CONNECTIVITY_PROBE_INTERVAL
	ProbeInterval time.Duration `env:"PROBE_INTERVAL"`

	// AssumeOnline disables probing and treats the network as always
	// reachable. Useful in tests and wired deployments.
	// Env: CONNECTIVITY_ASSUME_ONLINE
	AssumeOnline bool `env:"ASSUME_ONLINE"`

	// Metered marks the current network as metered. The client has no
	// portable way to detect this itself, so the embedding platform sets
	// it.
	// Env: CONNECTIVITY_METERED
	Metered bool `env:"METERED"`

	// UnmeteredOnly suppresses sync cycles and queue drains while the
	// network is metered.
	// Env: CONNECTIVITY_UNMETERED_ONLY
	UnmeteredOnly bool `env:"UNMETERED_ONLY"`
}

// GetStructuredConfig loads, merges, and validates the client
// configuration from all available sources in the following priority order
// (earlier sources win for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}
