package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-digi-lib/internal/adapter"
	"github.com/MKhiriev/go-digi-lib/internal/config"
	"github.com/MKhiriev/go-digi-lib/internal/logger"
	"github.com/MKhiriev/go-digi-lib/internal/store"
	"github.com/MKhiriev/go-digi-lib/internal/utils"
	"github.com/MKhiriev/go-digi-lib/models"
)

// maxBackoffShift bounds the exponent so the shift cannot overflow a
// time.Duration long before the cap applies.
const maxBackoffShift = 16

type queueService struct {
	queue     store.QueueRepository
	library   store.LibraryRepository
	conflicts store.ConflictRepository
	adapter   adapter.ServerAdapter
	cfg       config.Queue
	clientID  string
	logger    *logger.Logger

	// drainMu enforces the single active drain pass. TryLock refuses a
	// second pass instead of queueing it.
	drainMu sync.Mutex
}

// NewQueueService builds the offline queue service. clientID identifies
// this installation in push batches so the server can exclude its own
// actions from subsequent manifests.
func NewQueueService(queue store.QueueRepository, library store.LibraryRepository, conflicts store.ConflictRepository, serverAdapter adapter.ServerAdapter, cfg config.Queue, clientID string, logger *logger.Logger) QueueService {
	return &queueService{
		queue:     queue,
		library:   library,
		conflicts: conflicts,
		adapter:   serverAdapter,
		cfg:       cfg,
		clientID:  clientID,
		logger:    logger,
	}
}

// Enqueue implements [QueueService].
func (q *queueService) Enqueue(ctx context.Context, action models.QueuedAction) (models.QueuedAction, error) {
	now := time.Now().UTC()
	action.ID = utils.NewTimeOrderedID()
	action.Status = models.StatusPending
	action.Attempts = 0
	action.NextAttemptAt = now
	action.CreatedAt = now
	action.LastError = nil

	if err := q.queue.SaveAction(ctx, action); err != nil {
		return models.QueuedAction{}, fmt.Errorf("save action: %w", err)
	}

	q.logger.Debug().Str("action_id", action.ID).Str("entity_id", action.EntityID).Msg("action enqueued")
	return action, nil
}

// Drain implements [QueueService].
func (q *queueService) Drain(ctx context.Context) (models.DrainSummary, error) {
	if !q.drainMu.TryLock() {
		return models.DrainSummary{}, ErrDrainInProgress
	}
	defer q.drainMu.Unlock()

	now := time.Now().UTC()
	due, err := q.queue.DueActions(ctx, now, q.batchSize())
	if err != nil {
		return models.DrainSummary{}, fmt.Errorf("list due actions: %w", err)
	}
	if len(due) == 0 {
		return models.DrainSummary{}, nil
	}

	batch, blocked, err := q.selectHeads(ctx, due)
	if err != nil {
		return models.DrainSummary{}, err
	}

	summary := models.DrainSummary{Blocked: blocked}
	if len(batch) == 0 {
		return summary, nil
	}

	ids := make([]string, 0, len(batch))
	for _, a := range batch {
		ids = append(ids, a.ID)
	}
	if err := q.queue.MarkInFlight(ctx, ids); err != nil {
		return summary, fmt.Errorf("mark in flight: %w", err)
	}
	summary.Attempted = len(batch)

	receipt, err := q.adapter.PushActions(ctx, q.pushRequest(batch))
	if err != nil {
		q.settleTransportFailure(ctx, batch, err, &summary)
		return summary, fmt.Errorf("push actions: %w", err)
	}

	q.settleReceipt(ctx, batch, receipt, &summary)

	q.logger.Info().
		Int("attempted", summary.Attempted).
		Int("applied", summary.Applied).
		Int("rescheduled", summary.Rescheduled).
		Int("rejected", summary.Rejected).
		Int("conflicts", len(summary.Conflicts)).
		Int("blocked", summary.Blocked).
		Msg("queue drained")
	return summary, nil
}

// RecoverInFlight implements [QueueService].
func (q *queueService) RecoverInFlight(ctx context.Context) (int64, error) {
	reset, err := q.queue.ResetInFlight(ctx)
	if err != nil {
		return 0, fmt.Errorf("reset in-flight actions: %w", err)
	}
	if reset > 0 {
		q.logger.Info().Int64("reset", reset).Msg("stranded in-flight actions recovered")
	}
	return reset, nil
}

// Failed implements [QueueService].
func (q *queueService) Failed(ctx context.Context) ([]models.QueuedAction, error) {
	return q.queue.FailedActions(ctx)
}

// RetryFailed implements [QueueService].
func (q *queueService) RetryFailed(ctx context.Context, id string) error {
	return q.queue.RetryFailed(ctx, id, time.Now().UTC())
}

// Discard implements [QueueService].
func (q *queueService) Discard(ctx context.Context, id string) error {
	return q.queue.DeleteAction(ctx, id)
}

// Stats implements [QueueService].
func (q *queueService) Stats(ctx context.Context) (models.QueueStats, error) {
	return q.queue.Counts(ctx)
}

// selectHeads keeps only the oldest undelivered action of each entity.
// Pushing one action per entity per pass preserves replay order with no
// assumptions about how the server sequences a batch.
func (q *queueService) selectHeads(ctx context.Context, due []models.QueuedAction) ([]models.QueuedAction, int, error) {
	batch := make([]models.QueuedAction, 0, len(due))
	blocked := 0
	seen := make(map[string]bool, len(due))

	for _, a := range due {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		if seen[a.EntityID] {
			blocked++
			continue
		}
		seen[a.EntityID] = true

		undelivered, err := q.queue.ActionsByEntity(ctx, a.EntityID)
		if err != nil {
			return nil, 0, fmt.Errorf("list entity actions: %w", err)
		}
		if len(undelivered) > 0 && undelivered[0].ID != a.ID {
			// An older action of this entity is failed or not yet due;
			// pushing this one would reorder the entity's history.
			blocked++
			continue
		}
		batch = append(batch, a)
	}

	return batch, blocked, nil
}

func (q *queueService) pushRequest(batch []models.QueuedAction) models.PushRequest {
	req := models.PushRequest{ClientID: q.clientID, Actions: make([]models.PushAction, 0, len(batch))}
	for _, a := range batch {
		req.Actions = append(req.Actions, models.PushAction{
			ID:          a.ID,
			Type:        a.Type,
			EntityID:    a.EntityID,
			BaseVersion: a.BaseVersion,
			Payload:     a.Payload,
			CreatedAt:   a.CreatedAt,
		})
	}
	return req
}

// settleTransportFailure reschedules or fails the whole batch when the
// push itself never reached the server.
func (q *queueService) settleTransportFailure(ctx context.Context, batch []models.QueuedAction, pushErr error, summary *models.DrainSummary) {
	transient := adapter.IsTransient(pushErr)
	for _, a := range batch {
		q.rescheduleOrFail(ctx, a, pushErr.Error(), transient, summary)
	}
}

func (q *queueService) rescheduleOrFail(ctx context.Context, a models.QueuedAction, cause string, transient bool, summary *models.DrainSummary) {
	attempts := a.Attempts + 1
	if transient && attempts < q.maxAttempts() {
		next := time.Now().UTC().Add(q.backoff(attempts))
		if err := q.queue.Reschedule(ctx, a.ID, attempts, next, cause); err != nil {
			q.logger.Error().Err(err).Str("action_id", a.ID).Msg("reschedule action")
			return
		}
		summary.Rescheduled++
		return
	}

	if err := q.queue.MarkFailed(ctx, a.ID, attempts, cause); err != nil {
		q.logger.Error().Err(err).Str("action_id", a.ID).Msg("mark action failed")
		return
	}
	summary.Rejected++
}

// settleReceipt applies the server's per-action verdicts.
func (q *queueService) settleReceipt(ctx context.Context, batch []models.QueuedAction, receipt models.PushReceipt, summary *models.DrainSummary) {
	now := time.Now().UTC()
	for _, a := range batch {
		res, ok := receipt.ResultFor(a.ID)
		if !ok {
			// The server did not report on this action. Leave it for the
			// next pass rather than guessing a verdict.
			next := now.Add(q.backoff(a.Attempts + 1))
			if err := q.queue.Reschedule(ctx, a.ID, a.Attempts+1, next, "missing from push receipt"); err != nil {
				q.logger.Error().Err(err).Str("action_id", a.ID).Msg("reschedule unreported action")
				continue
			}
			summary.Rescheduled++
			continue
		}

		switch res.Outcome {
		case models.PushApplied:
			q.settleApplied(ctx, a, res, summary)
		case models.PushConflict:
			q.settleConflict(ctx, a, res, now, summary)
		case models.PushRejected:
			if err := q.queue.MarkFailed(ctx, a.ID, a.Attempts+1, res.Error); err != nil {
				q.logger.Error().Err(err).Str("action_id", a.ID).Msg("mark rejected action failed")
				continue
			}
			summary.Rejected++
		default:
			q.rescheduleOrFail(ctx, a, fmt.Sprintf("unknown push outcome %q", res.Outcome), false, summary)
		}
	}
}

func (q *queueService) settleApplied(ctx context.Context, a models.QueuedAction, res models.PushResult, summary *models.DrainSummary) {
	if err := q.queue.MarkSucceeded(ctx, a.ID); err != nil {
		q.logger.Error().Err(err).Str("action_id", a.ID).Msg("delete acknowledged action")
		return
	}

	// Adopt the server-assigned version. The record may not exist locally
	// when the entity has never been pulled; the next sync fills it in.
	if err := q.library.MarkClean(ctx, a.EntityID, res.NewVersion); err != nil && !errors.Is(err, store.ErrRecordNotFound) {
		q.logger.Error().Err(err).Str("entity_id", a.EntityID).Msg("mark record clean")
	}
	summary.Applied++
}

func (q *queueService) settleConflict(ctx context.Context, a models.QueuedAction, res models.PushResult, now time.Time, summary *models.DrainSummary) {
	local, err := q.library.GetRecord(ctx, a.EntityID)
	if err != nil && !errors.Is(err, store.ErrRecordNotFound) {
		q.logger.Error().Err(err).Str("entity_id", a.EntityID).Msg("load record for conflict")
	}
	localVersion := local.Version
	if localVersion == 0 {
		localVersion = a.BaseVersion
	}

	conflict := models.Conflict{
		ID:            utils.NewTimeOrderedID(),
		EntityID:      a.EntityID,
		Class:         a.Type.Class(),
		LocalVersion:  localVersion,
		RemoteVersion: res.RemoteVersion,
		LocalPayload:  a.Payload,
		DetectedAt:    now,
		Resolution:    models.ResolutionNone,
	}
	if err := q.conflicts.SaveConflict(ctx, conflict); err != nil {
		q.logger.Error().Err(err).Str("entity_id", a.EntityID).Msg("save push conflict")
	}

	// Parking the action as failed freezes the entity's later actions
	// until the conflict is resolved.
	if err := q.queue.MarkFailed(ctx, a.ID, a.Attempts+1, "version conflict"); err != nil {
		q.logger.Error().Err(err).Str("action_id", a.ID).Msg("park conflicted action")
	}
	summary.Conflicts = append(summary.Conflicts, conflict)
}

// backoff grows the retry delay exponentially with the attempt count,
// capped by config.
func (q *queueService) backoff(attempts int) time.Duration {
	base := q.cfg.BackoffBase
	if base <= 0 {
		base = time.Second
	}

	shift := attempts - 1
	if shift < 0 {
		shift = 0
	}
	if shift > maxBackoffShift {
		shift = maxBackoffShift
	}

	d := base << shift
	if ceiling := q.cfg.BackoffCap; ceiling > 0 && d > ceiling {
		d = ceiling
	}
	return d
}

func (q *queueService) maxAttempts() int {
	if q.cfg.MaxAttempts <= 0 {
		return 5
	}
	return q.cfg.MaxAttempts
}

func (q *queueService) batchSize() int {
	if q.cfg.BatchSize <= 0 {
		return 32
	}
	return q.cfg.BatchSize
}
