package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty configs slice.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_MergesMultipleConfigs verifies that fields from multiple configs
// are merged into a single result and that the earlier source wins on overlap.
func TestBuild_MergesMultipleConfigs(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		validTestConfig(func(c *StructuredConfig) {
			c.App.Version = "1.0.0"
			c.App.LogLevel = ""
		}),
		&StructuredConfig{App: App{Version: "2.0.0", LogLevel: "debug"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", cfg.App.Version, "earlier source wins for non-zero fields")
	assert.Equal(t, "debug", cfg.App.LogLevel, "later source fills zero fields")
}

// TestBuild_ValidatesResult verifies that the merged config is validated,
// so an incomplete config set fails the build.
func TestBuild_ValidatesResult(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		App: App{Version: "1.0.0"},
	})

	_, err := b.build()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}

// ── withEnv ───────────────────────────────────────────────────────────────────

// TestWithEnv_ReturnsBuilder verifies the fluent interface.
func TestWithEnv_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withEnv())
}

// TestWithEnv_ReadsEnvVars verifies that environment variables are picked up.
func TestWithEnv_ReadsEnvVars(t *testing.T) {
	t.Setenv("APP_VERSION", "env-version")
	t.Setenv("REMOTE_BASE_URL", "https://library.example.com")

	b := newConfigBuilder()
	b.withEnv()

	require.Len(t, b.configs, 1)
	assert.Equal(t, "env-version", b.configs[0].App.Version)
	assert.Equal(t, "https://library.example.com", b.configs[0].Remote.BaseURL)
}

// TestWithEnv_NoErrorOnEmptyEnv verifies that withEnv does not set b.err
// when no relevant env vars are present.
func TestWithEnv_NoErrorOnEmptyEnv(t *testing.T) {
	b := newConfigBuilder()
	b.withEnv()
	assert.NoError(t, b.err)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

// TestWithJSON_NoOp_WhenNoPathSet verifies that withJSON does nothing when
// no config has a JSONFilePath.
func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})
	b.withJSON()

	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

// TestWithJSON_AppendsConfig_WhenValidFile verifies that a valid JSON file is
// parsed and appended.
func TestWithJSON_AppendsConfig_WhenValidFile(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.App.Version = "json-version"
	payload.Remote.BaseURL = "https://json.example.com"
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "json-version", b.configs[1].App.Version)
	assert.Equal(t, "https://json.example.com", b.configs[1].Remote.BaseURL)
}

// TestWithJSON_SetsError_WhenFileNotFound verifies that a missing file path
// sets b.err.
func TestWithJSON_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		JSONFilePath: "/nonexistent/config.json",
	})
	b.withJSON()

	assert.Error(t, b.err)
}

// TestWithJSON_SetsError_WhenMalformedJSON verifies that invalid JSON content
// sets b.err.
func TestWithJSON_SetsError_WhenMalformedJSON(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "bad-*.json")
	require.NoError(t, err)
	_, err = f.WriteString("{not valid json")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: f.Name()})
	b.withJSON()

	assert.Error(t, b.err)
}

// ── withDefaults ──────────────────────────────────────────────────────────────

// TestWithDefaults_FillsZeroFields verifies that defaults only land where no
// earlier source set a value.
func TestWithDefaults_FillsZeroFields(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, validTestConfig(func(c *StructuredConfig) {
		c.Cache.MaxBytes = 64 << 20
		c.Workers.SyncInterval = time.Minute
	}))
	b.withDefaults()

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, int64(64<<20), cfg.Cache.MaxBytes, "explicit value survives defaults")
	assert.Equal(t, time.Minute, cfg.Workers.SyncInterval)
	assert.Equal(t, 8, cfg.Queue.MaxAttempts, "default fills untouched field")
	assert.Equal(t, 144, cfg.Render.DefaultDPI)
	assert.Equal(t, "png", cfg.Render.DefaultFormat)
}

// TestWithDefaults_AloneIsNotEnough verifies that defaults do not produce a
// valid config on their own: endpoints and paths must be supplied.
func TestWithDefaults_AloneIsNotEnough(t *testing.T) {
	_, err := newConfigBuilder().withDefaults().build()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}

// validTestConfig returns a minimal configuration that passes validation,
// with opts applied on top.
func validTestConfig(opts ...func(*StructuredConfig)) *StructuredConfig {
	cfg := &StructuredConfig{
		Storage: Storage{
			DB:    DB{DSN: "file:/tmp/library.db"},
			Blobs: Blobs{Dir: "/tmp/blobs"},
		},
		Remote: Remote{
			BaseURL:        "https://library.example.com",
			RequestTimeout: 30 * time.Second,
		},
		Cache: Cache{MaxBytes: 128 << 20, HeadroomPercent: 10},
		Queue: Queue{
			MaxAttempts: 5,
			BackoffBase: time.Second,
			BackoffCap:  time.Minute,
			BatchSize:   10,
		},
		Workers: Workers{
			SyncInterval:        5 * time.Minute,
			DrainInterval:       30 * time.Second,
			MaintenanceInterval: 15 * time.Minute,
		},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
