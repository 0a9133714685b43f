package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-digi-lib/internal/config"
	"github.com/MKhiriev/go-digi-lib/internal/logger"
	"github.com/MKhiriev/go-digi-lib/internal/store"
	"github.com/MKhiriev/go-digi-lib/models"
)

// evictBatchSize caps how many candidate rows one eviction query pulls.
const evictBatchSize = 64

type cacheService struct {
	entries store.CacheRepository
	blobs   store.BlobStore
	cfg     config.Cache
	logger  *logger.Logger

	// mu serialises every mutation of the entry/blob pair so aggregate
	// accounting (TotalSize against MaxBytes) stays consistent.
	mu sync.Mutex

	hits      atomic.Int64
	misses    atomic.Int64
	puts      atomic.Int64
	evictions atomic.Int64
	orphans   atomic.Int64
}

// NewCacheService builds the cache service over the metadata repository and
// the blob store.
func NewCacheService(entries store.CacheRepository, blobs store.BlobStore, cfg config.Cache, logger *logger.Logger) CacheService {
	return &cacheService{entries: entries, blobs: blobs, cfg: cfg, logger: logger}
}

// Put implements [CacheService].
func (c *cacheService) Put(ctx context.Context, entry models.CacheEntry, data []byte) (models.CacheEntry, error) {
	sum := sha256.Sum256(data)
	entry.SHA256 = hex.EncodeToString(sum[:])
	entry.SizeBytes = int64(len(data))

	now := time.Now().UTC()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
	entry.LastAccessedAt = now

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.blobs.Save(ctx, entry.SHA256, data); err != nil {
		return models.CacheEntry{}, fmt.Errorf("save blob: %w", err)
	}
	if err := c.entries.SaveEntry(ctx, entry); err != nil {
		return models.CacheEntry{}, fmt.Errorf("save cache entry: %w", err)
	}
	c.puts.Add(1)

	total, err := c.entries.TotalSize(ctx)
	if err != nil {
		return entry, fmt.Errorf("total size after put: %w", err)
	}
	if c.cfg.MaxBytes > 0 && total > c.cfg.MaxBytes {
		if _, err := c.evictTo(ctx, c.evictTarget()); err != nil {
			return entry, fmt.Errorf("evict after put: %w", err)
		}
	}

	return entry, nil
}

// Get implements [CacheService].
func (c *cacheService) Get(ctx context.Context, key string) ([]byte, models.CacheEntry, error) {
	entry, err := c.entries.GetEntry(ctx, key)
	if err != nil {
		if errors.Is(err, store.ErrCacheEntryNotFound) {
			c.misses.Add(1)
		}
		return nil, models.CacheEntry{}, err
	}

	data, err := c.blobs.Load(ctx, entry.SHA256)
	if err != nil {
		if errors.Is(err, store.ErrBlobNotFound) {
			// The blob vanished under the row. Drop the row so the next
			// request renders fresh instead of tripping here again.
			if delErr := c.entries.DeleteEntry(ctx, key); delErr != nil {
				c.logger.Error().Err(delErr).Str("key", key).Msg("drop entry with missing blob")
			}
			c.orphans.Add(1)
			c.misses.Add(1)
			return nil, models.CacheEntry{}, fmt.Errorf("%w: blob %s missing", store.ErrCacheEntryNotFound, entry.SHA256)
		}
		return nil, models.CacheEntry{}, fmt.Errorf("load blob: %w", err)
	}

	if err := c.entries.TouchEntry(ctx, key, time.Now().UTC()); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("touch cache entry")
	}

	c.hits.Add(1)
	return data, entry, nil
}

// Remove implements [CacheService].
func (c *cacheService) Remove(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, err := c.entries.GetEntry(ctx, key)
	if err != nil {
		if errors.Is(err, store.ErrCacheEntryNotFound) {
			return nil
		}
		return fmt.Errorf("load entry for remove: %w", err)
	}

	if err := c.entries.DeleteEntry(ctx, key); err != nil {
		return fmt.Errorf("delete cache entry: %w", err)
	}
	return c.unlinkIfUnreferenced(ctx, entry.SHA256)
}

// RemoveDocument implements [CacheService].
func (c *cacheService) RemoveDocument(ctx context.Context, documentID string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	list, err := c.entries.EntriesByDocument(ctx, documentID)
	if err != nil {
		return 0, fmt.Errorf("list document entries: %w", err)
	}

	removed := 0
	for _, entry := range list {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if err := c.entries.DeleteEntry(ctx, entry.Key); err != nil {
			c.logger.Error().Err(err).Str("key", entry.Key).Msg("delete entry for document removal")
			continue
		}
		if err := c.unlinkIfUnreferenced(ctx, entry.SHA256); err != nil {
			c.logger.Error().Err(err).Str("digest", entry.SHA256).Msg("unlink blob for document removal")
		}
		removed++
	}

	c.logger.Info().Str("document_id", documentID).Int("removed", removed).Msg("document cache cleared")
	return removed, nil
}

// TotalSize implements [CacheService].
func (c *cacheService) TotalSize(ctx context.Context) (int64, error) {
	return c.entries.TotalSize(ctx)
}

// ListByLastAccessed implements [CacheService].
func (c *cacheService) ListByLastAccessed(ctx context.Context, limit int) ([]models.CacheEntry, error) {
	return c.entries.EvictionCandidates(ctx, limit)
}

// EvictTo implements [CacheService].
func (c *cacheService) EvictTo(ctx context.Context, target int64) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evictTo(ctx, target)
}

// Maintain implements [CacheService].
func (c *cacheService) Maintain(ctx context.Context) (models.CacheStats, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.expireOld(ctx); err != nil {
		return models.CacheStats{}, err
	}
	if err := c.repairOrphans(ctx); err != nil {
		return models.CacheStats{}, err
	}
	if c.cfg.MaxBytes > 0 {
		if _, err := c.evictTo(ctx, c.cfg.MaxBytes); err != nil {
			return models.CacheStats{}, err
		}
	}

	return c.stats(ctx)
}

// Stats implements [CacheService].
func (c *cacheService) Stats(ctx context.Context) (models.CacheStats, error) {
	return c.stats(ctx)
}

// evictTarget is the size an overflow eviction drives the cache down to:
// the ceiling minus the configured headroom, so a burst of puts does not
// trigger an eviction pass per artifact.
func (c *cacheService) evictTarget() int64 {
	if c.cfg.HeadroomPercent <= 0 {
		return c.cfg.MaxBytes
	}
	return c.cfg.MaxBytes * int64(100-c.cfg.HeadroomPercent) / 100
}

// evictTo removes least-recently-used entries until the summed size is at
// or below target. Entries that fail to delete are logged and skipped.
// Assumes c.mu is held.
func (c *cacheService) evictTo(ctx context.Context, target int64) (int, error) {
	total, err := c.entries.TotalSize(ctx)
	if err != nil {
		return 0, fmt.Errorf("total size: %w", err)
	}

	evicted := 0
	for total > target {
		if err := ctx.Err(); err != nil {
			return evicted, err
		}

		candidates, err := c.entries.EvictionCandidates(ctx, evictBatchSize)
		if err != nil {
			return evicted, fmt.Errorf("eviction candidates: %w", err)
		}
		if len(candidates) == 0 {
			break
		}

		progressed := false
		for _, entry := range candidates {
			if total <= target {
				break
			}
			if err := c.entries.DeleteEntry(ctx, entry.Key); err != nil {
				c.logger.Error().Err(err).Str("key", entry.Key).Msg("evict entry")
				continue
			}
			if err := c.unlinkIfUnreferenced(ctx, entry.SHA256); err != nil {
				c.logger.Error().Err(err).Str("digest", entry.SHA256).Msg("unlink evicted blob")
			}
			total -= entry.SizeBytes
			evicted++
			progressed = true
			c.evictions.Add(1)
		}
		if !progressed {
			break
		}
	}

	if evicted > 0 {
		c.logger.Info().Int("evicted", evicted).Int64("total_bytes", total).Msg("cache evicted")
	}
	return evicted, nil
}

// expireOld drops entries whose last access is older than the configured
// max age. Assumes c.mu is held.
func (c *cacheService) expireOld(ctx context.Context) error {
	if c.cfg.MaxAge <= 0 {
		return nil
	}

	cutoff := time.Now().UTC().Add(-c.cfg.MaxAge)
	expired, err := c.entries.ExpiredEntries(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("list expired entries: %w", err)
	}

	for _, entry := range expired {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.entries.DeleteEntry(ctx, entry.Key); err != nil {
			c.logger.Error().Err(err).Str("key", entry.Key).Msg("expire entry")
			continue
		}
		if err := c.unlinkIfUnreferenced(ctx, entry.SHA256); err != nil {
			c.logger.Error().Err(err).Str("digest", entry.SHA256).Msg("unlink expired blob")
		}
		c.evictions.Add(1)
	}

	if len(expired) > 0 {
		c.logger.Info().Int("expired", len(expired)).Msg("cache entries expired")
	}
	return nil
}

// repairOrphans reconciles the metadata index with the blob directory in
// both directions: rows pointing at missing files are dropped, files no
// row points at are unlinked. Assumes c.mu is held.
func (c *cacheService) repairOrphans(ctx context.Context) error {
	entries, err := c.entries.AllEntries(ctx)
	if err != nil {
		return fmt.Errorf("list entries: %w", err)
	}
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if c.blobs.Exists(entry.SHA256) {
			continue
		}
		if err := c.entries.DeleteEntry(ctx, entry.Key); err != nil {
			c.logger.Error().Err(err).Str("key", entry.Key).Msg("drop entry with missing blob")
			continue
		}
		c.orphans.Add(1)
	}

	referenced, err := c.entries.DistinctDigests(ctx)
	if err != nil {
		return fmt.Errorf("list referenced digests: %w", err)
	}
	known := make(map[string]struct{}, len(referenced))
	for _, digest := range referenced {
		known[digest] = struct{}{}
	}

	stored, err := c.blobs.Digests(ctx)
	if err != nil {
		return fmt.Errorf("list stored blobs: %w", err)
	}
	for _, digest := range stored {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, ok := known[digest]; ok {
			continue
		}
		if err := c.blobs.Remove(ctx, digest); err != nil {
			c.logger.Error().Err(err).Str("digest", digest).Msg("unlink orphan blob")
			continue
		}
		c.orphans.Add(1)
	}

	return nil
}

// unlinkIfUnreferenced removes the blob file once no entry points at it.
// Blobs are content-addressed, so two keys may share one file.
func (c *cacheService) unlinkIfUnreferenced(ctx context.Context, digest string) error {
	refs, err := c.entries.CountBySHA256(ctx, digest)
	if err != nil {
		return fmt.Errorf("count blob references: %w", err)
	}
	if refs > 0 {
		return nil
	}
	if err := c.blobs.Remove(ctx, digest); err != nil {
		return fmt.Errorf("remove blob: %w", err)
	}
	return nil
}

func (c *cacheService) stats(ctx context.Context) (models.CacheStats, error) {
	count, err := c.entries.CountEntries(ctx)
	if err != nil {
		return models.CacheStats{}, fmt.Errorf("count entries: %w", err)
	}
	total, err := c.entries.TotalSize(ctx)
	if err != nil {
		return models.CacheStats{}, fmt.Errorf("total size: %w", err)
	}

	return models.CacheStats{
		Entries:         int(count),
		TotalBytes:      total,
		MaxBytes:        c.cfg.MaxBytes,
		Hits:            c.hits.Load(),
		Misses:          c.misses.Load(),
		Puts:            c.puts.Load(),
		Evictions:       c.evictions.Load(),
		OrphansRepaired: c.orphans.Load(),
	}, nil
}
