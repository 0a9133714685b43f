// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating with
// the library server.
//
// The primary abstraction is [ServerAdapter], which decouples the render and
// sync services from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPServerAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrVersionConflict] for 409, [ErrUnauthorized] for 401).
// [IsTransient] classifies failures for the retry scheduler.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-digi-lib/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the library
// server. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel values
// defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent authenticated requests.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// RenderTicket requests a short-lived signed URL for the rendered page
	// (documentID, page) at the given raster density and encoding. The
	// ticket must be redeemed with FetchArtifact before it expires.
	RenderTicket(ctx context.Context, documentID string, page, dpi int, format models.RenderFormat) (models.RenderTicket, error)

	// FetchArtifact downloads the rendered page bytes through the ticket's
	// signed URL. Tickets that already expired locally (with the configured
	// clock-drift margin) fail with [ErrTicketExpired] before any request
	// is made; a server-side rejection of a stale signature maps to the
	// same sentinel.
	FetchArtifact(ctx context.Context, ticket models.RenderTicket) ([]byte, error)

	// Manifest pulls one page of changed library records for req.Class,
	// starting after req.Cursor. The response carries the cursor to resume
	// from and whether more pages follow immediately.
	Manifest(ctx context.Context, req models.ManifestRequest) (models.ManifestResponse, error)

	// PushActions replays a batch of queued actions against the server and
	// returns the per-action verdicts. A non-2xx response fails the whole
	// batch; per-action conflicts and rejections are reported inside the
	// receipt with a 2xx status.
	PushActions(ctx context.Context, req models.PushRequest) (models.PushReceipt, error)

	// Ping performs a cheap reachability check against the server's health
	// endpoint. Used by the connectivity monitor.
	Ping(ctx context.Context) error
}
