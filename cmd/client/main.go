package main

import (
	"fmt"

	"github.com/MKhiriev/go-digi-lib/internal/adapter"
	"github.com/MKhiriev/go-digi-lib/internal/client"
	"github.com/MKhiriev/go-digi-lib/internal/config"
	"github.com/MKhiriev/go-digi-lib/internal/connectivity"
	"github.com/MKhiriev/go-digi-lib/internal/diag"
	"github.com/MKhiriev/go-digi-lib/internal/logger"
	"github.com/MKhiriev/go-digi-lib/internal/metrics"
	"github.com/MKhiriev/go-digi-lib/internal/renderer"
	"github.com/MKhiriev/go-digi-lib/internal/service"
	"github.com/MKhiriev/go-digi-lib/internal/store"
	"github.com/MKhiriev/go-digi-lib/internal/workers"
	"github.com/MKhiriev/go-digi-lib/models"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		logger.New("digilib-client", logger.ParseLevel("")).Fatal().Err(err).Msg("error getting configs")
	}

	log := newLogger(cfg)

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Remote, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	storages, err := store.NewStorages(cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}
	defer storages.Close()

	probe := serverAdapter.Ping
	if cfg.Connectivity.ProbeURL != "" {
		probe = connectivity.NewURLProbe(cfg.Connectivity.ProbeURL)
	}
	monitor := connectivity.NewMonitor(cfg.Connectivity, probe, log)

	native := renderer.Probe(cfg.Render, log)

	services := service.NewServices(storages, serverAdapter, native, monitor, cfg, log)

	jobs := workers.NewWorkers(services, monitor, cfg, log)

	var diagServer *diag.Server
	if cfg.Diag.Address != "" {
		registry := prometheus.NewRegistry()
		metrics.New(registry, services, log)
		diagServer = diag.NewServer(services, registry, buildInfo(), cfg.Diag, log)
	}

	app := client.NewApp(services, jobs, diagServer, log)

	if err := app.Run(); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

func newLogger(cfg *config.StructuredConfig) *logger.Logger {
	level := logger.ParseLevel(cfg.App.LogLevel)
	if cfg.App.LogFile != "" {
		return logger.NewFileLogger("digilib-client", cfg.App.LogFile, level)
	}
	return logger.New("digilib-client", level)
}

func buildInfo() models.BuildInfo {
	return models.BuildInfo{Version: buildVersion, Date: buildDate, Commit: buildCommit}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
