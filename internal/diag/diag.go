// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package diag serves the localhost diagnostics endpoint: liveness,
// counter snapshots, and Prometheus metrics.
//
// The endpoint is optional; an empty address in the configuration keeps
// it off. It carries no authentication and must stay bound to loopback.
package diag

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/MKhiriev/go-digi-lib/internal/config"
	"github.com/MKhiriev/go-digi-lib/internal/logger"
	"github.com/MKhiriev/go-digi-lib/internal/service"
	"github.com/MKhiriev/go-digi-lib/models"
	"github.com/prometheus/client_golang/prometheus"
)

const shutdownTimeout = 5 * time.Second

// Server is the diagnostics HTTP server.
type Server struct {
	services *service.Services
	gatherer prometheus.Gatherer
	build    models.BuildInfo
	timeout  time.Duration
	logger   *logger.Logger

	server *http.Server
}

// NewServer wires the diagnostics endpoint over the service snapshots
// and gatherer. The server is idle until Start is called.
func NewServer(services *service.Services, gatherer prometheus.Gatherer, build models.BuildInfo, cfg config.Diag, log *logger.Logger) *Server {
	s := &Server{
		services: services,
		gatherer: gatherer,
		build:    build,
		timeout:  cfg.RequestTimeout,
		logger:   log,
	}
	s.server = &http.Server{
		Addr:              cfg.Address,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Start begins serving in the background. The listener's lifetime is
// bounded by Stop, not by any context.
func (s *Server) Start() {
	go func() {
		s.logger.Info().Str("addr", s.server.Addr).Msg("diagnostics endpoint up")
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error().Err(err).Msg("diagnostics endpoint failed")
		}
	}()
}

// Stop gracefully shuts the endpoint down, waiting for in-flight
// requests up to a short deadline. Safe to call when never started.
func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("diagnostics endpoint shutdown")
	}
}
