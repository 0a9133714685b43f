package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-digi-lib/internal/config"
	"github.com/MKhiriev/go-digi-lib/internal/logger"
	"github.com/MKhiriev/go-digi-lib/internal/utils"
	"github.com/MKhiriev/go-digi-lib/models"
	"github.com/go-resty/resty/v2"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	ticketSkew time.Duration

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [ServerAdapter].
// It normalises and validates the base URL from cfg.BaseURL, configures the
// underlying HTTP client with the resolved base URL and request timeout, and
// seeds the bearer token from cfg.AuthToken.
//
// Returns an error if cfg.BaseURL is empty or cannot be parsed as a valid URL.
func NewHTTPServerAdapter(cfg config.Remote, logger *logger.Logger) (ServerAdapter, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid remote base url: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)

	a := &httpServerAdapter{client: client, ticketSkew: cfg.TicketSkew, logger: logger}
	a.SetToken(cfg.AuthToken)

	return a, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed) for
// use in the Authorization header of all subsequent authenticated requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter]. It returns the bearer token currently held
// by the adapter, or an empty string if none has been set.
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// RenderTicket implements [ServerAdapter]. It GETs
// GET /api/render/ticket?document_id=&page=&dpi=&format= and decodes the
// signed-URL ticket from the response body. Requires a valid bearer token.
func (h *httpServerAdapter) RenderTicket(ctx context.Context, documentID string, page, dpi int, format models.RenderFormat) (models.RenderTicket, error) {
	var ticket models.RenderTicket

	resp, err := h.authedRequest(ctx).
		SetQueryParams(map[string]string{
			"document_id": documentID,
			"page":        strconv.Itoa(page),
			"dpi":         strconv.Itoa(dpi),
			"format":      string(format),
		}).
		SetResult(&ticket).
		Get("/api/render/ticket")
	if err != nil {
		return models.RenderTicket{}, fmt.Errorf("render ticket request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.RenderTicket{}, err
	}

	// The signed token always carries the exp claim; recover the expiry
	// from it when the response body omits expires_at.
	if ticket.ExpiresAt.IsZero() && ticket.Token != "" {
		if exp, expErr := utils.TokenExpiry(ticket.Token); expErr == nil {
			ticket.ExpiresAt = exp
		}
	}

	return ticket, nil
}

// FetchArtifact implements [ServerAdapter]. It GETs the ticket's pre-signed
// URL directly, bypassing the configured base URL. The signature embedded in
// the URL authorises the download, so no bearer token is attached. Tickets
// already past their expiry (minus the configured skew margin) fail with
// [ErrTicketExpired] without touching the network.
func (h *httpServerAdapter) FetchArtifact(ctx context.Context, ticket models.RenderTicket) ([]byte, error) {
	if ticket.Expired(time.Now(), h.ticketSkew) {
		return nil, fmt.Errorf("%w: expired at %s", ErrTicketExpired, ticket.ExpiresAt.Format(time.RFC3339))
	}

	resp, err := h.client.R().SetContext(ctx).Get(ticket.URL)
	if err != nil {
		return nil, fmt.Errorf("fetch artifact request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		// Artifact storage rejects a stale signature with 403; surface it
		// as an expired ticket so callers request a fresh one instead of
		// treating it as an auth failure.
		if errors.Is(err, ErrForbidden) {
			return nil, fmt.Errorf("%w: signed url rejected", ErrTicketExpired)
		}
		return nil, err
	}

	return resp.Body(), nil
}

// Manifest implements [ServerAdapter]. It GETs
// GET /api/sync/manifest?entity_type=&since=&limit= and decodes one page of
// changed records. An empty req.Cursor pulls the stream from the beginning.
// Requires a valid bearer token.
func (h *httpServerAdapter) Manifest(ctx context.Context, req models.ManifestRequest) (models.ManifestResponse, error) {
	r := h.authedRequest(ctx).
		SetQueryParam("entity_type", req.Class.String()).
		SetQueryParam("since", req.Cursor)
	if req.Limit > 0 {
		r.SetQueryParam("limit", strconv.Itoa(req.Limit))
	}

	resp, err := r.Get("/api/sync/manifest")
	if err != nil {
		return models.ManifestResponse{}, fmt.Errorf("manifest request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ManifestResponse{}, err
	}

	var page models.ManifestResponse
	if err = json.Unmarshal(resp.Body(), &page); err != nil {
		return models.ManifestResponse{}, fmt.Errorf("decode manifest response: %w", err)
	}

	return page, nil
}

// PushActions implements [ServerAdapter]. It POSTs the action batch to
// POST /api/sync/push and decodes the per-action receipt. Conflicts and
// rejections of individual actions arrive inside the receipt with a 2xx
// status; a non-2xx status fails the whole batch. Requires a valid bearer
// token.
func (h *httpServerAdapter) PushActions(ctx context.Context, req models.PushRequest) (models.PushReceipt, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/sync/push")
	if err != nil {
		return models.PushReceipt{}, fmt.Errorf("push request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PushReceipt{}, err
	}

	var receipt models.PushReceipt
	if err = json.Unmarshal(resp.Body(), &receipt); err != nil {
		return models.PushReceipt{}, fmt.Errorf("decode push receipt: %w", err)
	}

	return receipt, nil
}

// Ping implements [ServerAdapter]. It GETs the health endpoint and maps the
// response status; any error means the server should be treated as
// unreachable.
func (h *httpServerAdapter) Ping(ctx context.Context) error {
	resp, err := h.authedRequest(ctx).Get("/api/health")
	if err != nil {
		return fmt.Errorf("ping request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
