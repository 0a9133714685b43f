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

type conflictRepository struct {
	*DB
	logger *logger.Logger
}

func NewConflictRepository(db *DB, logger *logger.Logger) ConflictRepository {
	return &conflictRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *conflictRepository) SaveConflict(ctx context.Context, conflict models.Conflict) error {
	log := logger.FromContext(ctx)

	// A unique index keeps at most one open conflict per entity; inserting
	// a duplicate is silently ignored so repeated detection is idempotent.
	_, err := r.DB.ExecContext(ctx, saveConflict,
		conflict.ID,
		conflict.EntityID,
		conflict.Class,
		conflict.LocalVersion,
		conflict.RemoteVersion,
		conflict.LocalPayload,
		conflict.RemotePayload,
		conflict.DetectedAt,
		conflict.Resolution,
		conflict.ResolvedAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "conflictRepository.SaveConflict").
			Str("entity_id", conflict.EntityID).
			Msg("failed to insert conflict")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *conflictRepository) GetConflict(ctx context.Context, id string) (models.Conflict, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, getConflict, id)

	conflict, err := scanConflict(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Conflict{}, ErrConflictNotFound
		}
		log.Err(err).
			Str("func", "conflictRepository.GetConflict").
			Str("id", id).
			Msg("failed to scan conflict row")
		return models.Conflict{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return conflict, nil
}

func (r *conflictRepository) OpenConflictByEntity(ctx context.Context, entityID string) (models.Conflict, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, getOpenConflictByEntity, entityID, models.ResolutionNone)

	conflict, err := scanConflict(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Conflict{}, ErrConflictNotFound
		}
		log.Err(err).
			Str("func", "conflictRepository.OpenConflictByEntity").
			Str("entity_id", entityID).
			Msg("failed to scan conflict row")
		return models.Conflict{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return conflict, nil
}

func (r *conflictRepository) OpenConflicts(ctx context.Context, class models.EntityClass, limit int) ([]models.Conflict, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildOpenConflictsQuery(class, limit)
	if err != nil {
		log.Err(err).
			Str("func", "conflictRepository.OpenConflicts").
			Msg("failed to build open conflicts query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "conflictRepository.OpenConflicts").
			Msg("failed to execute open conflicts query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var conflicts []models.Conflict
	for rows.Next() {
		conflict, err := scanConflict(rows)
		if err != nil {
			log.Err(err).
				Str("func", "conflictRepository.OpenConflicts").
				Msg("failed to scan conflict row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		conflicts = append(conflicts, conflict)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return conflicts, nil
}

func (r *conflictRepository) ResolveConflict(ctx context.Context, id string, resolution models.ConflictResolution, resolvedAt time.Time) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, resolveConflict,
		resolution,
		resolvedAt,
		id,
		models.ResolutionNone,
	)
	if err != nil {
		log.Err(err).
			Str("func", "conflictRepository.ResolveConflict").
			Str("id", id).
			Msg("failed to resolve conflict")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	// Zero rows means the conflict does not exist or was already resolved.
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrConflictNotFound
	}

	return nil
}

func (r *conflictRepository) CountOpen(ctx context.Context) (int64, error) {
	log := logger.FromContext(ctx)

	var count int64
	if err := r.DB.QueryRowContext(ctx, countOpenConflicts, models.ResolutionNone).Scan(&count); err != nil {
		log.Err(err).
			Str("func", "conflictRepository.CountOpen").
			Msg("failed to scan open conflict count")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}

func scanConflict(row rowScanner) (models.Conflict, error) {
	var conflict models.Conflict
	err := row.Scan(
		&conflict.ID,
		&conflict.EntityID,
		&conflict.Class,
		&conflict.LocalVersion,
		&conflict.RemoteVersion,
		&conflict.LocalPayload,
		&conflict.RemotePayload,
		&conflict.DetectedAt,
		&conflict.Resolution,
		&conflict.ResolvedAt,
	)
	return conflict, err
}
