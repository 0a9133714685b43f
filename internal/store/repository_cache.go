package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-digi-lib/internal/logger"
	"github.com/MKhiriev/go-digi-lib/models"
)

type cacheRepository struct {
	*DB
	logger *logger.Logger
}

func NewCacheRepository(db *DB, logger *logger.Logger) CacheRepository {
	return &cacheRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *cacheRepository) SaveEntry(ctx context.Context, entry models.CacheEntry) error {
	log := logger.FromContext(ctx)

	_, err := r.DB.ExecContext(ctx, saveCacheEntry,
		entry.Key,
		entry.DocumentID,
		entry.SizeBytes,
		entry.SHA256,
		entry.Format,
		entry.CreatedAt,
		entry.LastAccessedAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "cacheRepository.SaveEntry").
			Str("key", entry.Key).
			Msg("failed to execute upsert for cache entry")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *cacheRepository) GetEntry(ctx context.Context, key string) (models.CacheEntry, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, getCacheEntry, key)

	entry, err := scanCacheEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.CacheEntry{}, ErrCacheEntryNotFound
		}
		log.Err(err).
			Str("func", "cacheRepository.GetEntry").
			Str("key", key).
			Msg("failed to scan cache entry row")
		return models.CacheEntry{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return entry, nil
}

func (r *cacheRepository) TouchEntry(ctx context.Context, key string, accessedAt time.Time) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, touchCacheEntry, accessedAt, key)
	if err != nil {
		log.Err(err).
			Str("func", "cacheRepository.TouchEntry").
			Str("key", key).
			Msg("failed to update last access time")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrCacheEntryNotFound
	}

	return nil
}

func (r *cacheRepository) DeleteEntry(ctx context.Context, key string) error {
	log := logger.FromContext(ctx)

	_, err := r.DB.ExecContext(ctx, deleteCacheEntry, key)
	if err != nil {
		log.Err(err).
			Str("func", "cacheRepository.DeleteEntry").
			Str("key", key).
			Msg("failed to delete cache entry")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *cacheRepository) EntriesByDocument(ctx context.Context, documentID string) ([]models.CacheEntry, error) {
	return r.queryEntries(ctx, "cacheRepository.EntriesByDocument", getCacheEntriesByDocument, documentID)
}

func (r *cacheRepository) EvictionCandidates(ctx context.Context, limit int) ([]models.CacheEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildEvictionCandidatesQuery(limit)
	if err != nil {
		log.Err(err).
			Str("func", "cacheRepository.EvictionCandidates").
			Msg("failed to build eviction candidates query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryEntries(ctx, "cacheRepository.EvictionCandidates", query, args...)
}

func (r *cacheRepository) ExpiredEntries(ctx context.Context, cutoff time.Time) ([]models.CacheEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildExpiredEntriesQuery(cutoff)
	if err != nil {
		log.Err(err).
			Str("func", "cacheRepository.ExpiredEntries").
			Msg("failed to build expired entries query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryEntries(ctx, "cacheRepository.ExpiredEntries", query, args...)
}

func (r *cacheRepository) AllEntries(ctx context.Context) ([]models.CacheEntry, error) {
	return r.queryEntries(ctx, "cacheRepository.AllEntries", getAllCacheEntries)
}

func (r *cacheRepository) TotalSize(ctx context.Context) (int64, error) {
	return r.queryCount(ctx, "cacheRepository.TotalSize", sumCacheSize)
}

func (r *cacheRepository) CountEntries(ctx context.Context) (int64, error) {
	return r.queryCount(ctx, "cacheRepository.CountEntries", countCacheEntries)
}

func (r *cacheRepository) CountBySHA256(ctx context.Context, digest string) (int64, error) {
	return r.queryCount(ctx, "cacheRepository.CountBySHA256", countCacheEntriesBySHA, digest)
}

func (r *cacheRepository) DistinctDigests(ctx context.Context) ([]string, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, getDistinctCacheDigests)
	if err != nil {
		log.Err(err).
			Str("func", "cacheRepository.DistinctDigests").
			Msg("failed to query distinct digests")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var digests []string
	for rows.Next() {
		var digest string
		if err := rows.Scan(&digest); err != nil {
			log.Err(err).
				Str("func", "cacheRepository.DistinctDigests").
				Msg("failed to scan digest row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		digests = append(digests, digest)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return digests, nil
}

// queryEntries runs a SELECT over cache_entries columns and scans the
// result set.
func (r *cacheRepository) queryEntries(ctx context.Context, funcName, query string, args ...any) ([]models.CacheEntry, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", funcName).
			Msg("failed to execute cache entries query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var entries []models.CacheEntry
	for rows.Next() {
		entry, err := scanCacheEntry(rows)
		if err != nil {
			log.Err(err).
				Str("func", funcName).
				Msg("failed to scan cache entry row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}

func (r *cacheRepository) queryCount(ctx context.Context, funcName, query string, args ...any) (int64, error) {
	log := logger.FromContext(ctx)

	var count int64
	if err := r.DB.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		log.Err(err).
			Str("func", funcName).
			Msg("failed to scan count row")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCacheEntry(row rowScanner) (models.CacheEntry, error) {
	var entry models.CacheEntry
	err := row.Scan(
		&entry.Key,
		&entry.DocumentID,
		&entry.SizeBytes,
		&entry.SHA256,
		&entry.Format,
		&entry.CreatedAt,
		&entry.LastAccessedAt,
	)
	return entry, err
}
