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

type queueRepository struct {
	*DB
	logger *logger.Logger
}

func NewQueueRepository(db *DB, logger *logger.Logger) QueueRepository {
	return &queueRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *queueRepository) SaveAction(ctx context.Context, action models.QueuedAction) error {
	log := logger.FromContext(ctx)

	_, err := r.DB.ExecContext(ctx, saveQueuedAction,
		action.ID,
		action.Type,
		action.EntityID,
		action.Payload,
		action.BaseVersion,
		action.Status,
		action.Attempts,
		action.NextAttemptAt,
		action.CreatedAt,
		action.LastError,
	)
	if err != nil {
		log.Err(err).
			Str("func", "queueRepository.SaveAction").
			Str("id", action.ID).
			Str("entity_id", action.EntityID).
			Msg("failed to insert queued action")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *queueRepository) GetAction(ctx context.Context, id string) (models.QueuedAction, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, getQueuedAction, id)

	action, err := scanQueuedAction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.QueuedAction{}, ErrActionNotFound
		}
		log.Err(err).
			Str("func", "queueRepository.GetAction").
			Str("id", id).
			Msg("failed to scan queued action row")
		return models.QueuedAction{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return action, nil
}

func (r *queueRepository) DueActions(ctx context.Context, now time.Time, limit int) ([]models.QueuedAction, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildDueActionsQuery(now, limit)
	if err != nil {
		log.Err(err).
			Str("func", "queueRepository.DueActions").
			Msg("failed to build due actions query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryActions(ctx, "queueRepository.DueActions", query, args...)
}

func (r *queueRepository) ActionsByEntity(ctx context.Context, entityID string) ([]models.QueuedAction, error) {
	return r.queryActions(ctx, "queueRepository.ActionsByEntity", getActionsByEntity, entityID)
}

func (r *queueRepository) MarkInFlight(ctx context.Context, ids []string) error {
	log := logger.FromContext(ctx)

	if len(ids) == 0 {
		return nil
	}

	query, args, err := buildMarkInFlightQuery(ids)
	if err != nil {
		log.Err(err).
			Str("func", "queueRepository.MarkInFlight").
			Msg("failed to build mark in-flight query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "queueRepository.MarkInFlight").
			Int("count", len(ids)).
			Msg("failed to mark actions in-flight")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *queueRepository) MarkSucceeded(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "queueRepository.MarkSucceeded", id)
}

func (r *queueRepository) Reschedule(ctx context.Context, id string, attempts int, nextAttemptAt time.Time, lastError string) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, rescheduleQueuedAction,
		models.StatusPending,
		attempts,
		nextAttemptAt,
		lastError,
		id,
	)
	if err != nil {
		log.Err(err).
			Str("func", "queueRepository.Reschedule").
			Str("id", id).
			Msg("failed to reschedule queued action")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrActionNotFound
	}

	return nil
}

func (r *queueRepository) MarkFailed(ctx context.Context, id string, attempts int, lastError string) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, markActionFailed,
		models.StatusFailed,
		attempts,
		lastError,
		id,
	)
	if err != nil {
		log.Err(err).
			Str("func", "queueRepository.MarkFailed").
			Str("id", id).
			Msg("failed to mark action failed")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrActionNotFound
	}

	return nil
}

func (r *queueRepository) ResetInFlight(ctx context.Context) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, resetInFlightActions, models.StatusPending, models.StatusInFlight)
	if err != nil {
		log.Err(err).
			Str("func", "queueRepository.ResetInFlight").
			Msg("failed to reset in-flight actions")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected, nil
}

func (r *queueRepository) FailedActions(ctx context.Context) ([]models.QueuedAction, error) {
	return r.queryActions(ctx, "queueRepository.FailedActions", getActionsByStatus, models.StatusFailed)
}

func (r *queueRepository) RetryFailed(ctx context.Context, id string, now time.Time) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, retryFailedAction,
		models.StatusPending,
		now,
		id,
		models.StatusFailed,
	)
	if err != nil {
		log.Err(err).
			Str("func", "queueRepository.RetryFailed").
			Str("id", id).
			Msg("failed to retry failed action")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrActionNotFound
	}

	return nil
}

func (r *queueRepository) RebaseEntity(ctx context.Context, entityID string, baseVersion int64) error {
	log := logger.FromContext(ctx)

	if _, err := r.DB.ExecContext(ctx, rebaseEntityActions, baseVersion, entityID); err != nil {
		log.Err(err).
			Str("func", "queueRepository.RebaseEntity").
			Str("entity_id", entityID).
			Int64("base_version", baseVersion).
			Msg("failed to rebase entity actions")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *queueRepository) DeleteEntity(ctx context.Context, entityID string) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, deleteEntityActions, entityID)
	if err != nil {
		log.Err(err).
			Str("func", "queueRepository.DeleteEntity").
			Str("entity_id", entityID).
			Msg("failed to delete entity actions")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected, nil
}

func (r *queueRepository) DeleteAction(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "queueRepository.DeleteAction", id)
}

func (r *queueRepository) Counts(ctx context.Context) (models.QueueStats, error) {
	log := logger.FromContext(ctx)

	var stats models.QueueStats

	rows, err := r.DB.QueryContext(ctx, countActionsByStatus)
	if err != nil {
		log.Err(err).
			Str("func", "queueRepository.Counts").
			Msg("failed to query action counts")
		return stats, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var status models.ActionStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return stats, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		switch status {
		case models.StatusPending:
			stats.Pending = count
		case models.StatusInFlight:
			stats.InFlight = count
		case models.StatusFailed:
			stats.Failed = count
		}
	}
	if err := rows.Err(); err != nil {
		return stats, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	// MIN() over an empty set yields a NULL row, hence the pointer scan.
	var oldest *time.Time
	if err := r.DB.QueryRowContext(ctx, oldestPendingAction, models.StatusPending).Scan(&oldest); err != nil {
		log.Err(err).
			Str("func", "queueRepository.Counts").
			Msg("failed to query oldest pending action")
		return stats, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	stats.OldestPending = oldest

	return stats, nil
}

func (r *queueRepository) deleteByID(ctx context.Context, funcName, id string) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, deleteQueuedAction, id)
	if err != nil {
		log.Err(err).
			Str("func", funcName).
			Str("id", id).
			Msg("failed to delete queued action")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrActionNotFound
	}

	return nil
}

func (r *queueRepository) queryActions(ctx context.Context, funcName, query string, args ...any) ([]models.QueuedAction, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", funcName).
			Msg("failed to execute queued actions query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var actions []models.QueuedAction
	for rows.Next() {
		action, err := scanQueuedAction(rows)
		if err != nil {
			log.Err(err).
				Str("func", funcName).
				Msg("failed to scan queued action row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		actions = append(actions, action)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return actions, nil
}

func scanQueuedAction(row rowScanner) (models.QueuedAction, error) {
	var action models.QueuedAction
	err := row.Scan(
		&action.ID,
		&action.Type,
		&action.EntityID,
		&action.Payload,
		&action.BaseVersion,
		&action.Status,
		&action.Attempts,
		&action.NextAttemptAt,
		&action.CreatedAt,
		&action.LastError,
	)
	return action, err
}
