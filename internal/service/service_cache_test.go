// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/MKhiriev/go-digi-lib/internal/config"
	"github.com/MKhiriev/go-digi-lib/internal/logger"
	"github.com/MKhiriev/go-digi-lib/internal/mock"
	"github.com/MKhiriev/go-digi-lib/internal/store"
	"github.com/MKhiriev/go-digi-lib/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestCacheSvc — хелпер для создания cacheService с моками
func newTestCacheSvc(t *testing.T, ctrl *gomock.Controller, cfg config.Cache) (*cacheService, *mock.MockCacheRepository, *mock.MockBlobStore) {
	t.Helper()
	mockEntries := mock.NewMockCacheRepository(ctrl)
	mockBlobs := mock.NewMockBlobStore(ctrl)

	svc := NewCacheService(mockEntries, mockBlobs, cfg, logger.Nop()).(*cacheService)
	return svc, mockEntries, mockBlobs
}

func digestOf(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ── Put ──────────────────────────────────────────────────────────────────────

func TestCacheService_Put_ComputesDigestAndTimestamps(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockEntries, mockBlobs := newTestCacheSvc(t, ctrl, config.Cache{MaxBytes: 1 << 20})
	ctx := context.Background()

	data := []byte("rendered page bytes")
	mockBlobs.EXPECT().Save(ctx, digestOf(data), data).Return(nil)
	mockEntries.EXPECT().SaveEntry(ctx, gomock.Any()).Return(nil)
	mockEntries.EXPECT().TotalSize(ctx).Return(int64(len(data)), nil)

	stored, err := svc.Put(ctx, models.CacheEntry{Key: "page:d1:3:150:png", DocumentID: "d1", Format: models.FormatPNG}, data)
	require.NoError(t, err)

	assert.Equal(t, digestOf(data), stored.SHA256)
	assert.Equal(t, int64(len(data)), stored.SizeBytes)
	assert.False(t, stored.CreatedAt.IsZero())
	assert.WithinDuration(t, time.Now().UTC(), stored.LastAccessedAt, time.Minute)
}

func TestCacheService_Put_EvictsWhenOverBudget(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// 100 байт лимит, 10% запас — вытесняем до 90
	svc, mockEntries, mockBlobs := newTestCacheSvc(t, ctrl, config.Cache{MaxBytes: 100, HeadroomPercent: 10})
	ctx := context.Background()

	data := []byte("0123456789")
	mockBlobs.EXPECT().Save(ctx, digestOf(data), data).Return(nil)
	mockEntries.EXPECT().SaveEntry(ctx, gomock.Any()).Return(nil)
	mockEntries.EXPECT().TotalSize(ctx).Return(int64(120), nil).Times(2)

	old := models.CacheEntry{Key: "page:d0:1:150:png", SHA256: "digest-old", SizeBytes: 40}
	mockEntries.EXPECT().EvictionCandidates(ctx, evictBatchSize).Return([]models.CacheEntry{old}, nil)
	mockEntries.EXPECT().DeleteEntry(ctx, old.Key).Return(nil)
	mockEntries.EXPECT().CountBySHA256(ctx, old.SHA256).Return(int64(0), nil)
	mockBlobs.EXPECT().Remove(ctx, old.SHA256).Return(nil)

	_, err := svc.Put(ctx, models.CacheEntry{Key: "page:d1:1:150:png", DocumentID: "d1"}, data)
	require.NoError(t, err)
	assert.Equal(t, int64(1), svc.evictions.Load())
}

// ── Get ──────────────────────────────────────────────────────────────────────

func TestCacheService_Get_HitTouchesEntry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockEntries, mockBlobs := newTestCacheSvc(t, ctrl, config.Cache{})
	ctx := context.Background()

	entry := models.CacheEntry{Key: "page:d1:1:150:png", SHA256: "digest-1", Format: models.FormatPNG}
	data := []byte("artifact")

	mockEntries.EXPECT().GetEntry(ctx, entry.Key).Return(entry, nil)
	mockBlobs.EXPECT().Load(ctx, entry.SHA256).Return(data, nil)
	mockEntries.EXPECT().TouchEntry(ctx, entry.Key, gomock.Any()).Return(nil)

	got, gotEntry, err := svc.Get(ctx, entry.Key)
	require.NoError(t, err)
	assert.Equal(t, data, got)
	assert.Equal(t, entry.Format, gotEntry.Format)
	assert.Equal(t, int64(1), svc.hits.Load())
}

func TestCacheService_Get_MissCountsMiss(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockEntries, _ := newTestCacheSvc(t, ctrl, config.Cache{})
	ctx := context.Background()

	mockEntries.EXPECT().GetEntry(ctx, "page:d1:9:150:png").Return(models.CacheEntry{}, store.ErrCacheEntryNotFound)

	_, _, err := svc.Get(ctx, "page:d1:9:150:png")
	require.ErrorIs(t, err, store.ErrCacheEntryNotFound)
	assert.Equal(t, int64(1), svc.misses.Load())
}

func TestCacheService_Get_DropsEntryWhenBlobMissing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockEntries, mockBlobs := newTestCacheSvc(t, ctrl, config.Cache{})
	ctx := context.Background()

	entry := models.CacheEntry{Key: "page:d1:1:150:png", SHA256: "digest-gone"}
	mockEntries.EXPECT().GetEntry(ctx, entry.Key).Return(entry, nil)
	mockBlobs.EXPECT().Load(ctx, entry.SHA256).Return(nil, store.ErrBlobNotFound)
	mockEntries.EXPECT().DeleteEntry(ctx, entry.Key).Return(nil)

	_, _, err := svc.Get(ctx, entry.Key)
	require.ErrorIs(t, err, store.ErrCacheEntryNotFound)
	assert.Equal(t, int64(1), svc.orphans.Load())
	assert.Equal(t, int64(1), svc.misses.Load())
}

// ── Remove ───────────────────────────────────────────────────────────────────

func TestCacheService_Remove_MissingKeyIsNoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockEntries, _ := newTestCacheSvc(t, ctrl, config.Cache{})
	ctx := context.Background()

	mockEntries.EXPECT().GetEntry(ctx, "page:d1:1:150:png").Return(models.CacheEntry{}, store.ErrCacheEntryNotFound)

	require.NoError(t, svc.Remove(ctx, "page:d1:1:150:png"))
}

func TestCacheService_Remove_UnlinksUnreferencedBlob(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockEntries, mockBlobs := newTestCacheSvc(t, ctrl, config.Cache{})
	ctx := context.Background()

	entry := models.CacheEntry{Key: "page:d1:1:150:png", SHA256: "digest-1"}
	mockEntries.EXPECT().GetEntry(ctx, entry.Key).Return(entry, nil)
	mockEntries.EXPECT().DeleteEntry(ctx, entry.Key).Return(nil)
	mockEntries.EXPECT().CountBySHA256(ctx, entry.SHA256).Return(int64(0), nil)
	mockBlobs.EXPECT().Remove(ctx, entry.SHA256).Return(nil)

	require.NoError(t, svc.Remove(ctx, entry.Key))
}

func TestCacheService_Remove_KeepsSharedBlob(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockEntries, _ := newTestCacheSvc(t, ctrl, config.Cache{})
	ctx := context.Background()

	// Блоб ещё используется другим ключом — файл не трогаем
	entry := models.CacheEntry{Key: "page:d1:1:150:png", SHA256: "digest-shared"}
	mockEntries.EXPECT().GetEntry(ctx, entry.Key).Return(entry, nil)
	mockEntries.EXPECT().DeleteEntry(ctx, entry.Key).Return(nil)
	mockEntries.EXPECT().CountBySHA256(ctx, entry.SHA256).Return(int64(2), nil)

	require.NoError(t, svc.Remove(ctx, entry.Key))
}

func TestCacheService_RemoveDocument_DeletesAllEntries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockEntries, mockBlobs := newTestCacheSvc(t, ctrl, config.Cache{})
	ctx := context.Background()

	list := []models.CacheEntry{
		{Key: "page:d1:1:150:png", SHA256: "digest-1"},
		{Key: "thumb:d1:256:webp", SHA256: "digest-2"},
	}
	mockEntries.EXPECT().EntriesByDocument(ctx, "d1").Return(list, nil)
	for _, entry := range list {
		mockEntries.EXPECT().DeleteEntry(ctx, entry.Key).Return(nil)
		mockEntries.EXPECT().CountBySHA256(ctx, entry.SHA256).Return(int64(0), nil)
		mockBlobs.EXPECT().Remove(ctx, entry.SHA256).Return(nil)
	}

	removed, err := svc.RemoveDocument(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
}

// ── EvictTo / Maintain ───────────────────────────────────────────────────────

func TestCacheService_EvictTo_StopsWhenNoCandidates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockEntries, _ := newTestCacheSvc(t, ctrl, config.Cache{})
	ctx := context.Background()

	mockEntries.EXPECT().TotalSize(ctx).Return(int64(50), nil)
	mockEntries.EXPECT().EvictionCandidates(ctx, evictBatchSize).Return(nil, nil)

	evicted, err := svc.EvictTo(ctx, 10)
	require.NoError(t, err)
	assert.Zero(t, evicted)
}

func TestCacheService_Maintain_RepairsBothOrphanDirections(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockEntries, mockBlobs := newTestCacheSvc(t, ctrl, config.Cache{})
	ctx := context.Background()

	kept := models.CacheEntry{Key: "page:d1:1:150:png", SHA256: "digest-kept", SizeBytes: 10}
	broken := models.CacheEntry{Key: "page:d1:2:150:png", SHA256: "digest-lost", SizeBytes: 10}

	// Запись без файла — строку удаляем
	mockEntries.EXPECT().AllEntries(ctx).Return([]models.CacheEntry{kept, broken}, nil)
	mockBlobs.EXPECT().Exists(kept.SHA256).Return(true)
	mockBlobs.EXPECT().Exists(broken.SHA256).Return(false)
	mockEntries.EXPECT().DeleteEntry(ctx, broken.Key).Return(nil)

	// Файл без записи — файл удаляем
	mockEntries.EXPECT().DistinctDigests(ctx).Return([]string{kept.SHA256}, nil)
	mockBlobs.EXPECT().Digests(ctx).Return([]string{kept.SHA256, "digest-stray"}, nil)
	mockBlobs.EXPECT().Remove(ctx, "digest-stray").Return(nil)

	mockEntries.EXPECT().CountEntries(ctx).Return(int64(1), nil)
	mockEntries.EXPECT().TotalSize(ctx).Return(int64(10), nil)

	stats, err := svc.Maintain(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.OrphansRepaired)
	assert.Equal(t, 1, stats.Entries)
	assert.Equal(t, int64(10), stats.TotalBytes)
}

func TestCacheService_Maintain_ExpiresStaleEntries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockEntries, mockBlobs := newTestCacheSvc(t, ctrl, config.Cache{MaxAge: time.Hour})
	ctx := context.Background()

	stale := models.CacheEntry{Key: "page:d9:1:150:png", SHA256: "digest-stale", SizeBytes: 7}
	mockEntries.EXPECT().ExpiredEntries(ctx, gomock.Any()).Return([]models.CacheEntry{stale}, nil)
	mockEntries.EXPECT().DeleteEntry(ctx, stale.Key).Return(nil)
	mockEntries.EXPECT().CountBySHA256(ctx, stale.SHA256).Return(int64(0), nil)
	mockBlobs.EXPECT().Remove(ctx, stale.SHA256).Return(nil)

	mockEntries.EXPECT().AllEntries(ctx).Return(nil, nil)
	mockEntries.EXPECT().DistinctDigests(ctx).Return(nil, nil)
	mockBlobs.EXPECT().Digests(ctx).Return(nil, nil)

	mockEntries.EXPECT().CountEntries(ctx).Return(int64(0), nil)
	mockEntries.EXPECT().TotalSize(ctx).Return(int64(0), nil)

	stats, err := svc.Maintain(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Evictions)
}

func TestCacheService_ListByLastAccessed_DelegatesToCandidates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockEntries, _ := newTestCacheSvc(t, ctrl, config.Cache{})
	ctx := context.Background()

	want := []models.CacheEntry{{Key: "page:d1:1:150:png"}}
	mockEntries.EXPECT().EvictionCandidates(ctx, 5).Return(want, nil)

	got, err := svc.ListByLastAccessed(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
