package service

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/MKhiriev/go-digi-lib/internal/adapter"
	"github.com/MKhiriev/go-digi-lib/internal/config"
	"github.com/MKhiriev/go-digi-lib/internal/logger"
	"github.com/MKhiriev/go-digi-lib/internal/mock"
	"github.com/MKhiriev/go-digi-lib/internal/renderer"
	"github.com/MKhiriev/go-digi-lib/internal/store"
	"github.com/MKhiriev/go-digi-lib/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// stubCache — простой мок CacheService, не требует mockgen (избегаем цикл импортов).
type stubCache struct {
	mu       sync.Mutex
	arts     map[string]stubArtifact
	putOrder []string
}

type stubArtifact struct {
	data   []byte
	format models.RenderFormat
}

func newStubCache() *stubCache {
	return &stubCache{arts: make(map[string]stubArtifact)}
}

func (s *stubCache) seed(key string, format models.RenderFormat, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.arts[key] = stubArtifact{data: data, format: format}
}

func (s *stubCache) puts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.putOrder...)
}

func (s *stubCache) Put(_ context.Context, entry models.CacheEntry, data []byte) (models.CacheEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.arts[entry.Key] = stubArtifact{data: data, format: entry.Format}
	s.putOrder = append(s.putOrder, entry.Key)
	return entry, nil
}

func (s *stubCache) Get(_ context.Context, key string) ([]byte, models.CacheEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	art, ok := s.arts[key]
	if !ok {
		return nil, models.CacheEntry{}, store.ErrCacheEntryNotFound
	}
	return art.data, models.CacheEntry{Key: key, Format: art.format}, nil
}

func (s *stubCache) Remove(context.Context, string) error                { return nil }
func (s *stubCache) RemoveDocument(context.Context, string) (int, error) { return 0, nil }
func (s *stubCache) TotalSize(context.Context) (int64, error)            { return 0, nil }
func (s *stubCache) EvictTo(context.Context, int64) (int, error)         { return 0, nil }

func (s *stubCache) ListByLastAccessed(context.Context, int) ([]models.CacheEntry, error) {
	return nil, nil
}

func (s *stubCache) Maintain(context.Context) (models.CacheStats, error) {
	return models.CacheStats{}, nil
}

func (s *stubCache) Stats(context.Context) (models.CacheStats, error) {
	return models.CacheStats{}, nil
}

// newTestRenderSvc — хелпер для создания renderService с моками
func newTestRenderSvc(t *testing.T, ctrl *gomock.Controller, cfg config.Render, conn config.Connectivity) (*renderService, *stubCache, *mock.MockServerAdapter, *mock.MockNativeRenderer, *mock.MockMonitor) {
	t.Helper()
	cache := newStubCache()
	mockAdapter := mock.NewMockServerAdapter(ctrl)
	mockNative := mock.NewMockNativeRenderer(ctrl)
	mockMonitor := mock.NewMockMonitor(ctrl)

	if cfg.DefaultDPI == 0 {
		cfg.DefaultDPI = 150
	}
	if cfg.DefaultFormat == "" {
		cfg.DefaultFormat = "png"
	}
	if cfg.DocumentDir == "" {
		cfg.DocumentDir = "/library/docs"
	}

	svc := NewRenderService(cache, mockAdapter, mockNative, mockMonitor, cfg, conn, logger.Nop()).(*renderService)
	return svc, cache, mockAdapter, mockNative, mockMonitor
}

// ── RenderPage ───────────────────────────────────────────────────────────────

func TestRenderService_RenderPage_ServesFromCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, cache, _, _, _ := newTestRenderSvc(t, ctrl, config.Render{}, config.Connectivity{})
	defer svc.Close()
	ctx := context.Background()

	key := models.PageKey("d1", 3, 150, models.FormatPNG)
	cache.seed(key, models.FormatPNG, []byte("cached artifact"))

	res, err := svc.RenderPage(ctx, models.RenderRequest{DocumentID: "d1", Page: 3})
	require.NoError(t, err)

	assert.Equal(t, models.OriginCache, res.Origin)
	assert.Equal(t, []byte("cached artifact"), res.Data)
	assert.Equal(t, int64(1), svc.Stats().CacheHits)
}

func TestRenderService_RenderPage_RemoteTierWritesBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, cache, mockAdapter, _, mockMonitor := newTestRenderSvc(t, ctrl, config.Render{}, config.Connectivity{})
	defer svc.Close()
	ctx := context.Background()

	ticket := models.RenderTicket{URL: "https://cdn.example.com/r/abc", Token: "tok-1"}
	mockMonitor.EXPECT().Online().Return(true)
	// Пустые DPI и формат должны замениться значениями из конфига
	mockAdapter.EXPECT().RenderTicket(ctx, "d1", 1, 150, models.FormatPNG).Return(ticket, nil)
	mockAdapter.EXPECT().FetchArtifact(ctx, ticket).Return([]byte("remote artifact"), nil)

	res, err := svc.RenderPage(ctx, models.RenderRequest{DocumentID: "d1"})
	require.NoError(t, err)

	assert.Equal(t, models.OriginRemote, res.Origin)
	assert.Equal(t, models.FormatPNG, res.Format)
	key := models.PageKey("d1", 1, 150, models.FormatPNG)
	assert.Equal(t, key, res.Key)
	assert.Contains(t, cache.puts(), key)
	assert.Equal(t, int64(1), svc.Stats().RemoteRenders)
}

func TestRenderService_RenderPage_RefreshesExpiredTicket(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, mockAdapter, _, mockMonitor := newTestRenderSvc(t, ctrl, config.Render{}, config.Connectivity{})
	defer svc.Close()
	ctx := context.Background()

	stale := models.RenderTicket{URL: "https://cdn.example.com/r/old", Token: "tok-old"}
	fresh := models.RenderTicket{URL: "https://cdn.example.com/r/new", Token: "tok-new"}

	mockMonitor.EXPECT().Online().Return(true)
	mockAdapter.EXPECT().RenderTicket(ctx, "d1", 2, 150, models.FormatPNG).Return(stale, nil)
	mockAdapter.EXPECT().FetchArtifact(ctx, stale).Return(nil, adapter.ErrTicketExpired)
	mockAdapter.EXPECT().RenderTicket(ctx, "d1", 2, 150, models.FormatPNG).Return(fresh, nil)
	mockAdapter.EXPECT().FetchArtifact(ctx, fresh).Return([]byte("fresh artifact"), nil)

	res, err := svc.RenderPage(ctx, models.RenderRequest{DocumentID: "d1", Page: 2})
	require.NoError(t, err)
	assert.Equal(t, []byte("fresh artifact"), res.Data)
}

func TestRenderService_RenderPage_FallsBackToNative(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, mockAdapter, mockNative, mockMonitor := newTestRenderSvc(t, ctrl, config.Render{}, config.Connectivity{})
	defer svc.Close()
	ctx := context.Background()

	mockMonitor.EXPECT().Online().Return(true)
	mockAdapter.EXPECT().RenderTicket(ctx, "d1", 1, 150, models.FormatPNG).Return(models.RenderTicket{}, adapter.ErrUnavailable)
	mockNative.EXPECT().Available().Return(true)
	mockNative.EXPECT().RenderPage(ctx, filepath.Join("/library/docs", "d1.pdf"), 1, 150).Return([]byte("native artifact"), nil)
	mockNative.EXPECT().Format().Return(models.FormatPNG)

	res, err := svc.RenderPage(ctx, models.RenderRequest{DocumentID: "d1"})
	require.NoError(t, err)

	assert.Equal(t, models.OriginNative, res.Origin)
	assert.Equal(t, int64(1), svc.Stats().NativeRenders)
}

func TestRenderService_RenderPage_OfflineWithoutNativeFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, mockNative, mockMonitor := newTestRenderSvc(t, ctrl, config.Render{}, config.Connectivity{})
	defer svc.Close()
	ctx := context.Background()

	mockMonitor.EXPECT().Online().Return(false)
	mockNative.EXPECT().Available().Return(false)

	_, err := svc.RenderPage(ctx, models.RenderRequest{DocumentID: "d1"})
	require.ErrorIs(t, err, ErrRenderFailed)
	assert.ErrorIs(t, err, ErrOffline)
	assert.ErrorIs(t, err, renderer.ErrNativeUnavailable)
	assert.Equal(t, int64(1), svc.Stats().Failures)
}

// ── RenderThumbnail ──────────────────────────────────────────────────────────

func TestRenderService_RenderThumbnail_NativeFallbackUsesThumbKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, cache, _, mockNative, mockMonitor := newTestRenderSvc(t, ctrl, config.Render{}, config.Connectivity{})
	defer svc.Close()
	ctx := context.Background()

	mockMonitor.EXPECT().Online().Return(false)
	mockNative.EXPECT().Available().Return(true)
	mockNative.EXPECT().RenderPage(ctx, filepath.Join("/library/docs", "d7.pdf"), thumbNativePage, thumbNativeDPI).Return([]byte("thumb artifact"), nil)
	mockNative.EXPECT().Format().Return(models.FormatPNG)

	res, err := svc.RenderThumbnail(ctx, "d7", 256)
	require.NoError(t, err)

	key := models.ThumbKey("d7", 256, thumbFormat)
	assert.Equal(t, key, res.Key)
	assert.Equal(t, models.OriginNative, res.Origin)
	assert.Contains(t, cache.puts(), key)
}

func TestRenderService_RenderThumbnail_RemoteSignalsThumbnailRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, mockAdapter, _, mockMonitor := newTestRenderSvc(t, ctrl, config.Render{}, config.Connectivity{})
	defer svc.Close()
	ctx := context.Background()

	// Страница 0 и «dpi» в роли длинной стороны — протокол миниатюр
	ticket := models.RenderTicket{Token: "tok-thumb"}
	mockMonitor.EXPECT().Online().Return(true)
	mockAdapter.EXPECT().RenderTicket(ctx, "d7", 0, 256, thumbFormat).Return(ticket, nil)
	mockAdapter.EXPECT().FetchArtifact(ctx, ticket).Return([]byte("thumb artifact"), nil)

	res, err := svc.RenderThumbnail(ctx, "d7", 256)
	require.NoError(t, err)
	assert.Equal(t, models.OriginRemote, res.Origin)
	assert.Equal(t, thumbFormat, res.Format)
}

// ── Preload ──────────────────────────────────────────────────────────────────

func TestRenderService_RenderPage_WarmsFollowingPages(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, cache, _, mockNative, mockMonitor := newTestRenderSvc(t, ctrl, config.Render{}, config.Connectivity{})
	ctx := context.Background()

	mockMonitor.EXPECT().Online().Return(false).Times(3)
	mockNative.EXPECT().Available().Return(true).Times(3)
	mockNative.EXPECT().RenderPage(gomock.Any(), gomock.Any(), 1, 150).Return([]byte("page 1"), nil)
	mockNative.EXPECT().RenderPage(gomock.Any(), gomock.Any(), 2, 150).Return([]byte("page 2"), nil)
	mockNative.EXPECT().RenderPage(gomock.Any(), gomock.Any(), 3, 150).Return([]byte("page 3"), nil)
	mockNative.EXPECT().Format().Return(models.FormatPNG).Times(3)

	res, err := svc.RenderPage(ctx, models.RenderRequest{DocumentID: "d1", Page: 1, PreloadNext: 2})
	require.NoError(t, err)
	assert.Equal(t, models.OriginNative, res.Origin)

	// Close дожидается фоновых прогревов
	svc.Close()

	stats := svc.Stats()
	assert.Equal(t, int64(3), stats.NativeRenders)
	assert.Equal(t, int64(2), stats.Preloads)
	assert.Len(t, cache.puts(), 3)
}

func TestRenderService_PreloadPages_SkipsAlreadyCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, cache, _, mockNative, mockMonitor := newTestRenderSvc(t, ctrl, config.Render{}, config.Connectivity{})
	ctx := context.Background()

	cache.seed(models.PageKey("d1", 4, 150, models.FormatPNG), models.FormatPNG, []byte("warm"))

	mockMonitor.EXPECT().Online().Return(false)
	mockNative.EXPECT().Available().Return(true)
	mockNative.EXPECT().RenderPage(gomock.Any(), gomock.Any(), 5, 150).Return([]byte("page 5"), nil)
	mockNative.EXPECT().Format().Return(models.FormatPNG)

	scheduled := svc.PreloadPages(ctx, "d1", 4, 2)
	assert.Equal(t, 2, scheduled)

	svc.Close()
	assert.Equal(t, int64(1), svc.Stats().Preloads)
}

func TestRenderService_PreloadPages_DroppedOnMeteredLink(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, mockNative, mockMonitor := newTestRenderSvc(t, ctrl, config.Render{}, config.Connectivity{UnmeteredOnly: true})
	defer svc.Close()
	ctx := context.Background()

	mockMonitor.EXPECT().Metered().Return(true).Times(3)
	mockNative.EXPECT().Available().Return(false).Times(3)

	scheduled := svc.PreloadPages(ctx, "d1", 1, 3)
	assert.Zero(t, scheduled)
}
