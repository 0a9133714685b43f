package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a diagnostics server address in format [host]:[port]
//	-d local database DSN
//	-b blob directory for rendered artifacts
//	-docs local document directory for the native renderer
//	-remote-url library server base URL
//	-auth-token bearer token for the library server
//	-c/-config json file path with configs
//	-cache-max-bytes page cache ceiling in bytes
//	-render-command native renderer binary (e.g. "pdftoppm")
//	-sync-interval pause between sync cycles (e.g., "5m")
//	-drain-interval pause between queue drain attempts (e.g., "30s")
//	-request-timeout outbound request timeout (e.g., "30s")
//	-log-level minimum log level (debug, info, warn, error)
func ParseFlags() *StructuredConfig {
	var diagAddress NetAddress
	var databaseDSN string
	var blobDir string
	var documentDir string
	var remoteURL string
	var authToken string
	var jsonConfigPath string
	var cacheMaxBytes int64
	var renderCommand string
	var syncInterval time.Duration
	var drainInterval time.Duration
	var requestTimeout time.Duration
	var logLevel string

	flag.Var(&diagAddress, "a", "Diagnostics server address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Local database DSN")
	flag.StringVar(&blobDir, "b", "", "Blob directory for rendered artifacts")
	flag.StringVar(&documentDir, "docs", "", "Local document directory")
	flag.StringVar(&remoteURL, "remote-url", "", "Library server base URL")
	flag.StringVar(&authToken, "auth-token", "", "Library server bearer token")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.Int64Var(&cacheMaxBytes, "cache-max-bytes", 0, "Page cache ceiling in bytes")
	flag.StringVar(&renderCommand, "render-command", "", "Native renderer binary")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Sync cycle interval (e.g., 5m)")
	flag.DurationVar(&drainInterval, "drain-interval", 0, "Queue drain interval (e.g., 30s)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Outbound request timeout (e.g., 30s)")
	flag.StringVar(&logLevel, "log-level", "", "Minimum log level")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			LogLevel: logLevel,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
			Blobs: Blobs{
				Dir: blobDir,
			},
		},
		Remote: Remote{
			BaseURL:        remoteURL,
			AuthToken:      authToken,
			RequestTimeout: requestTimeout,
		},
		Cache: Cache{
			MaxBytes: cacheMaxBytes,
		},
		Render: Render{
			NativeCommand: renderCommand,
			DocumentDir:   documentDir,
		},
		Workers: Workers{
			SyncInterval:  syncInterval,
			DrainInterval: drainInterval,
		},
		Diag: Diag{
			Address: diagAddress.String(),
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns the empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
