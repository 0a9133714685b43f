package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-digi-lib/internal/logger"
	"github.com/MKhiriev/go-digi-lib/models"
)

type cursorRepository struct {
	*DB
	logger *logger.Logger
}

func NewCursorRepository(db *DB, logger *logger.Logger) CursorRepository {
	return &cursorRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *cursorRepository) GetCursor(ctx context.Context, class models.EntityClass) (models.SyncCursor, error) {
	log := logger.FromContext(ctx)

	var cursor models.SyncCursor
	row := r.DB.QueryRowContext(ctx, getSyncCursor, class)
	if err := row.Scan(&cursor.Class, &cursor.Value, &cursor.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.SyncCursor{}, ErrCursorNotFound
		}
		log.Err(err).
			Str("func", "cursorRepository.GetCursor").
			Str("class", class.String()).
			Msg("failed to scan sync cursor row")
		return models.SyncCursor{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return cursor, nil
}

func (r *cursorRepository) SaveCursor(ctx context.Context, cursor models.SyncCursor) error {
	log := logger.FromContext(ctx)

	_, err := r.DB.ExecContext(ctx, saveSyncCursor, cursor.Class, cursor.Value, cursor.UpdatedAt)
	if err != nil {
		log.Err(err).
			Str("func", "cursorRepository.SaveCursor").
			Str("class", cursor.Class.String()).
			Msg("failed to upsert sync cursor")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *cursorRepository) AllCursors(ctx context.Context) ([]models.SyncCursor, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, getAllSyncCursors)
	if err != nil {
		log.Err(err).
			Str("func", "cursorRepository.AllCursors").
			Msg("failed to query sync cursors")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var cursors []models.SyncCursor
	for rows.Next() {
		var cursor models.SyncCursor
		if err := rows.Scan(&cursor.Class, &cursor.Value, &cursor.UpdatedAt); err != nil {
			log.Err(err).
				Str("func", "cursorRepository.AllCursors").
				Msg("failed to scan sync cursor row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		cursors = append(cursors, cursor)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return cursors, nil
}
