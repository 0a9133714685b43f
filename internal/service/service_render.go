// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/MKhiriev/go-digi-lib/internal/adapter"
	"github.com/MKhiriev/go-digi-lib/internal/config"
	"github.com/MKhiriev/go-digi-lib/internal/connectivity"
	"github.com/MKhiriev/go-digi-lib/internal/logger"
	"github.com/MKhiriev/go-digi-lib/internal/renderer"
	"github.com/MKhiriev/go-digi-lib/internal/store"
	"github.com/MKhiriev/go-digi-lib/models"
)

// Thumbnail conventions shared with the server: page 0 marks a thumbnail
// request and the dpi field carries the longest-edge pixel size. The
// native tier has no scaler and rasterises the first page at a fixed low
// density instead.
const (
	thumbFormat     = models.FormatWebP
	thumbNativePage = 1
	thumbNativeDPI  = 72
)

type renderService struct {
	cache   CacheService
	adapter adapter.ServerAdapter
	native  renderer.NativeRenderer
	monitor connectivity.Monitor
	cfg     config.Render
	conn    config.Connectivity
	logger  *logger.Logger

	// group collapses concurrent renders of the same cache key so a page
	// is rasterised at most once no matter how many viewers ask for it.
	group singleflight.Group

	// Preloads outlive the request that spawned them, so the pool runs on
	// its own context cancelled by Close.
	preloadCtx    context.Context
	preloadCancel context.CancelFunc
	preloadPool   *errgroup.Group

	cacheHits     atomic.Int64
	remoteRenders atomic.Int64
	nativeRenders atomic.Int64
	preloads      atomic.Int64
	failures      atomic.Int64
}

// NewRenderService builds the render orchestrator over the cache service,
// the remote adapter, and the probed native renderer.
func NewRenderService(cache CacheService, serverAdapter adapter.ServerAdapter, native renderer.NativeRenderer, monitor connectivity.Monitor, cfg config.Render, conn config.Connectivity, logger *logger.Logger) RenderService {
	workers := cfg.PreloadWorkers
	if workers <= 0 {
		workers = 2
	}

	ctx, cancel := context.WithCancel(context.Background())
	pool := new(errgroup.Group)
	pool.SetLimit(workers)

	return &renderService{
		cache:         cache,
		adapter:       serverAdapter,
		native:        native,
		monitor:       monitor,
		cfg:           cfg,
		conn:          conn,
		logger:        logger,
		preloadCtx:    ctx,
		preloadCancel: cancel,
		preloadPool:   pool,
	}
}

// RenderPage implements [RenderService].
func (r *renderService) RenderPage(ctx context.Context, req models.RenderRequest) (models.RenderResult, error) {
	r.normalize(&req)
	start := time.Now()
	key := req.Key()

	if !req.SkipCache {
		if res, ok := r.fromCache(ctx, key); ok {
			res.Elapsed = time.Since(start)
			r.schedulePreloads(req)
			return res, nil
		}
	}

	v, err, _ := r.group.Do(key, func() (any, error) {
		return r.renderCold(ctx, req, key)
	})
	if err != nil {
		r.failures.Add(1)
		return models.RenderResult{}, err
	}

	res := v.(models.RenderResult)
	res.Elapsed = time.Since(start)
	r.schedulePreloads(req)
	return res, nil
}

// RenderThumbnail implements [RenderService].
func (r *renderService) RenderThumbnail(ctx context.Context, documentID string, edge int) (models.RenderResult, error) {
	start := time.Now()
	key := models.ThumbKey(documentID, edge, thumbFormat)

	if res, ok := r.fromCache(ctx, key); ok {
		res.Elapsed = time.Since(start)
		return res, nil
	}

	v, err, _ := r.group.Do(key, func() (any, error) {
		return r.renderThumbCold(ctx, documentID, edge, key)
	})
	if err != nil {
		r.failures.Add(1)
		return models.RenderResult{}, err
	}

	res := v.(models.RenderResult)
	res.Elapsed = time.Since(start)
	return res, nil
}

// PreloadPages implements [RenderService].
func (r *renderService) PreloadPages(ctx context.Context, documentID string, fromPage, count int) int {
	scheduled := 0
	for i := 0; i < count; i++ {
		req := models.RenderRequest{
			DocumentID: documentID,
			Page:       fromPage + i,
			DPI:        r.cfg.DefaultDPI,
			Format:     r.defaultFormat(),
		}
		if r.schedulePreload(req) {
			scheduled++
		}
	}
	return scheduled
}

// Stats implements [RenderService].
func (r *renderService) Stats() models.RenderStats {
	return models.RenderStats{
		CacheHits:     r.cacheHits.Load(),
		RemoteRenders: r.remoteRenders.Load(),
		NativeRenders: r.nativeRenders.Load(),
		Preloads:      r.preloads.Load(),
		Failures:      r.failures.Load(),
	}
}

// Close implements [RenderService].
func (r *renderService) Close() {
	r.preloadCancel()
	_ = r.preloadPool.Wait()
}

// fromCache serves a key from the artifact cache. Any error counts as a
// miss; unexpected ones are logged.
func (r *renderService) fromCache(ctx context.Context, key string) (models.RenderResult, bool) {
	data, entry, err := r.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, store.ErrCacheEntryNotFound) {
			r.logger.Warn().Err(err).Str("key", key).Msg("cache lookup failed")
		}
		return models.RenderResult{}, false
	}

	r.cacheHits.Add(1)
	return models.RenderResult{Key: key, Data: data, Format: entry.Format, Origin: models.OriginCache}, true
}

// renderCold runs the remote then native tier chain for a key that missed
// the cache and writes the produced artifact back.
func (r *renderService) renderCold(ctx context.Context, req models.RenderRequest, key string) (models.RenderResult, error) {
	var remoteErr error
	if r.monitor.Online() {
		data, format, err := r.renderRemote(ctx, req)
		if err == nil {
			r.remoteRenders.Add(1)
			r.writeBack(ctx, key, req.DocumentID, format, data)
			return models.RenderResult{Key: key, Data: data, Format: format, Origin: models.OriginRemote}, nil
		}
		remoteErr = err
		r.logger.Warn().Err(err).Str("key", key).Msg("remote render failed")
	} else {
		remoteErr = ErrOffline
	}

	var nativeErr error
	if r.native.Available() {
		data, err := r.native.RenderPage(ctx, r.documentPath(req.DocumentID), req.Page, req.DPI)
		if err == nil {
			format := r.native.Format()
			r.nativeRenders.Add(1)
			r.writeBack(ctx, key, req.DocumentID, format, data)
			return models.RenderResult{Key: key, Data: data, Format: format, Origin: models.OriginNative}, nil
		}
		nativeErr = err
		r.logger.Warn().Err(err).Str("key", key).Msg("native render failed")
	} else {
		nativeErr = renderer.ErrNativeUnavailable
	}

	return models.RenderResult{}, fmt.Errorf("%w: %w", ErrRenderFailed, errors.Join(remoteErr, nativeErr))
}

func (r *renderService) renderThumbCold(ctx context.Context, documentID string, edge int, key string) (models.RenderResult, error) {
	var remoteErr error
	if r.monitor.Online() {
		req := models.RenderRequest{DocumentID: documentID, Page: 0, DPI: edge, Format: thumbFormat}
		data, format, err := r.renderRemote(ctx, req)
		if err == nil {
			r.remoteRenders.Add(1)
			r.writeBack(ctx, key, documentID, format, data)
			return models.RenderResult{Key: key, Data: data, Format: format, Origin: models.OriginRemote}, nil
		}
		remoteErr = err
		r.logger.Warn().Err(err).Str("key", key).Msg("remote thumbnail failed")
	} else {
		remoteErr = ErrOffline
	}

	var nativeErr error
	if r.native.Available() {
		data, err := r.native.RenderPage(ctx, r.documentPath(documentID), thumbNativePage, thumbNativeDPI)
		if err == nil {
			format := r.native.Format()
			r.nativeRenders.Add(1)
			r.writeBack(ctx, key, documentID, format, data)
			return models.RenderResult{Key: key, Data: data, Format: format, Origin: models.OriginNative}, nil
		}
		nativeErr = err
		r.logger.Warn().Err(err).Str("key", key).Msg("native thumbnail failed")
	} else {
		nativeErr = renderer.ErrNativeUnavailable
	}

	return models.RenderResult{}, fmt.Errorf("%w: %w", ErrRenderFailed, errors.Join(remoteErr, nativeErr))
}

// renderRemote asks the server for a render ticket and downloads the
// artifact through its signed URL. A ticket that expired between issue
// and fetch is refreshed once.
func (r *renderService) renderRemote(ctx context.Context, req models.RenderRequest) ([]byte, models.RenderFormat, error) {
	ticket, err := r.adapter.RenderTicket(ctx, req.DocumentID, req.Page, req.DPI, req.Format)
	if err != nil {
		return nil, "", fmt.Errorf("render ticket: %w", err)
	}

	data, err := r.adapter.FetchArtifact(ctx, ticket)
	if errors.Is(err, adapter.ErrTicketExpired) {
		ticket, err = r.adapter.RenderTicket(ctx, req.DocumentID, req.Page, req.DPI, req.Format)
		if err != nil {
			return nil, "", fmt.Errorf("refresh render ticket: %w", err)
		}
		data, err = r.adapter.FetchArtifact(ctx, ticket)
	}
	if err != nil {
		return nil, "", fmt.Errorf("fetch artifact: %w", err)
	}

	return data, req.Format, nil
}

// writeBack stores a rendered artifact in the cache. Failures are logged
// and swallowed; the render already succeeded from the caller's view.
func (r *renderService) writeBack(ctx context.Context, key, documentID string, format models.RenderFormat, data []byte) {
	entry := models.CacheEntry{Key: key, DocumentID: documentID, Format: format}
	if _, err := r.cache.Put(ctx, entry, data); err != nil {
		r.logger.Error().Err(err).Str("key", key).Msg("cache write-back failed")
	}
}

// schedulePreloads warms the pages following req.Page when the request
// asked for it.
func (r *renderService) schedulePreloads(req models.RenderRequest) {
	for i := 1; i <= req.PreloadNext; i++ {
		next := req
		next.Page = req.Page + i
		next.SkipCache = false
		next.PreloadNext = 0
		r.schedulePreload(next)
	}
}

// schedulePreload queues one background render. The page is dropped when
// the pool is saturated or the connection policy forbids background
// transfers; a preload is never worth waiting for.
func (r *renderService) schedulePreload(req models.RenderRequest) bool {
	if r.conn.UnmeteredOnly && r.monitor.Metered() && !r.native.Available() {
		return false
	}
	if r.preloadCtx.Err() != nil {
		return false
	}

	return r.preloadPool.TryGo(func() error {
		key := req.Key()
		if _, _, err := r.cache.Get(r.preloadCtx, key); err == nil {
			return nil
		}
		if _, err, _ := r.group.Do(key, func() (any, error) {
			return r.renderCold(r.preloadCtx, req, key)
		}); err != nil {
			r.logger.Debug().Err(err).Str("key", key).Msg("preload failed")
			return nil
		}
		r.preloads.Add(1)
		return nil
	})
}

// normalize fills request defaults from config.
func (r *renderService) normalize(req *models.RenderRequest) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.DPI <= 0 {
		req.DPI = r.cfg.DefaultDPI
	}
	if req.Format == "" {
		req.Format = r.defaultFormat()
	}
}

func (r *renderService) defaultFormat() models.RenderFormat {
	if r.cfg.DefaultFormat == "" {
		return models.FormatPNG
	}
	return models.RenderFormat(r.cfg.DefaultFormat)
}

// documentPath locates the local source file the native tier rasterises.
func (r *renderService) documentPath(documentID string) string {
	return filepath.Join(r.cfg.DocumentDir, documentID+".pdf")
}
