package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNetAddress_String tests the String method of NetAddress
func TestNetAddress_String(t *testing.T) {
	tests := []struct {
		name     string
		addr     NetAddress
		expected string
	}{
		{
			name:     "empty address",
			addr:     NetAddress{},
			expected: "",
		},
		{
			name:     "localhost with port",
			addr:     NetAddress{Host: "localhost", Port: 6060},
			expected: "localhost:6060",
		},
		{
			name:     "IP address with port",
			addr:     NetAddress{Host: "127.0.0.1", Port: 9090},
			expected: "127.0.0.1:9090",
		},
		{
			name:     "only port no host",
			addr:     NetAddress{Host: "", Port: 6060},
			expected: ":6060",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.addr.String()
			assert.Equal(t, tt.expected, result)
		})
	}
}

// TestNetAddress_Set tests the Set method of NetAddress
func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		expectError  bool
		errorMsg     string
		expectedAddr NetAddress
	}{
		{
			name:         "valid localhost",
			input:        "localhost:6060",
			expectedAddr: NetAddress{Host: "localhost", Port: 6060},
		},
		{
			name:         "valid IP",
			input:        "127.0.0.1:8081",
			expectedAddr: NetAddress{Host: "127.0.0.1", Port: 8081},
		},
		{
			name:        "missing port",
			input:       "localhost",
			expectError: true,
			errorMsg:    "need address in a form `host:port`",
		},
		{
			name:        "zero port",
			input:       "localhost:0",
			expectError: true,
			errorMsg:    "port number is a positive integer",
		},
		{
			name:        "invalid IP address",
			input:       "invalid.host:6060",
			expectError: true,
			errorMsg:    "incorrect IP-address provided",
		},
		{
			name:        "empty string",
			input:       "",
			expectError: true,
			errorMsg:    "need address in a form `host:port`",
		},
		{
			name:        "non-numeric port",
			input:       "localhost:abc",
			expectError: true,
			errorMsg:    "invalid syntax",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr := &NetAddress{}
			err := addr.Set(tt.input)

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedAddr.Host, addr.Host)
				assert.Equal(t, tt.expectedAddr.Port, addr.Port)
			}
		})
	}
}

// TestParseFlags tests the ParseFlags function
func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		validate func(t *testing.T, cfg *StructuredConfig)
	}{
		{
			name: "all flags set",
			args: []string{
				"-a", "localhost:6060",
				"-d", "file:/home/user/.digi-lib/library.db",
				"-b", "/home/user/.digi-lib/blobs",
				"-docs", "/home/user/Documents",
				"-remote-url", "https://library.example.com",
				"-auth-token", "bearer-secret",
				"-c", "/path/to/config.json",
				"-cache-max-bytes", "268435456",
				"-render-command", "pdftoppm",
				"-sync-interval", "5m",
				"-drain-interval", "30s",
				"-request-timeout", "30s",
				"-log-level", "debug",
			},
			validate: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, "localhost:6060", cfg.Diag.Address)
				assert.Equal(t, "file:/home/user/.digi-lib/library.db", cfg.Storage.DB.DSN)
				assert.Equal(t, "/home/user/.digi-lib/blobs", cfg.Storage.Blobs.Dir)
				assert.Equal(t, "/home/user/Documents", cfg.Render.DocumentDir)
				assert.Equal(t, "https://library.example.com", cfg.Remote.BaseURL)
				assert.Equal(t, "bearer-secret", cfg.Remote.AuthToken)
				assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
				assert.Equal(t, int64(268435456), cfg.Cache.MaxBytes)
				assert.Equal(t, "pdftoppm", cfg.Render.NativeCommand)
				assert.Equal(t, 5*time.Minute, cfg.Workers.SyncInterval)
				assert.Equal(t, 30*time.Second, cfg.Workers.DrainInterval)
				assert.Equal(t, 30*time.Second, cfg.Remote.RequestTimeout)
				assert.Equal(t, "debug", cfg.App.LogLevel)
			},
		},
		{
			name: "config alias flag",
			args: []string{
				"-config", "/path/to/config.json",
			},
			validate: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
			},
		},
		{
			name: "partial flags",
			args: []string{
				"-a", "127.0.0.1:3000",
				"-remote-url", "https://library.example.com",
			},
			validate: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, "127.0.0.1:3000", cfg.Diag.Address)
				assert.Equal(t, "https://library.example.com", cfg.Remote.BaseURL)
				assert.Empty(t, cfg.Storage.DB.DSN)
				assert.Empty(t, cfg.Storage.Blobs.Dir)
			},
		},
		{
			name: "no flags",
			args: []string{},
			validate: func(t *testing.T, cfg *StructuredConfig) {
				assert.Empty(t, cfg.Diag.Address)
				assert.Empty(t, cfg.Storage.DB.DSN)
				assert.Empty(t, cfg.Storage.Blobs.Dir)
				assert.Empty(t, cfg.Remote.BaseURL)
				assert.Empty(t, cfg.JSONFilePath)
				assert.Zero(t, cfg.Cache.MaxBytes)
				assert.Zero(t, cfg.Workers.SyncInterval)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset flag.CommandLine for each test
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)

			// Set os.Args to simulate command line arguments
			oldArgs := os.Args
			os.Args = append([]string{"cmd"}, tt.args...)
			defer func() { os.Args = oldArgs }()

			cfg := ParseFlags()
			require.NotNil(t, cfg)
			tt.validate(t, cfg)
		})
	}
}

// TestNetAddress_SetAndString tests the round-trip of Set and String
func TestNetAddress_SetAndString(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"localhost:6060", "localhost:6060"},
		{"127.0.0.1:9090", "127.0.0.1:9090"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			addr := &NetAddress{}
			err := addr.Set(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, addr.String())
		})
	}
}
