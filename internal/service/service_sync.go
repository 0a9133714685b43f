// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/MKhiriev/go-digi-lib/internal/adapter"
	"github.com/MKhiriev/go-digi-lib/internal/connectivity"
	"github.com/MKhiriev/go-digi-lib/internal/logger"
	"github.com/MKhiriev/go-digi-lib/internal/store"
	"github.com/MKhiriev/go-digi-lib/internal/utils"
	"github.com/MKhiriev/go-digi-lib/models"
)

// manifestPageLimit caps records per manifest page. The server may send
// fewer.
const manifestPageLimit = 200

// syncClasses is the pull order of one cycle. Documents come first so
// annotations pulled later never reference a document the library has
// not seen.
var syncClasses = []models.EntityClass{models.ClassDocument, models.ClassAnnotation, models.ClassCollection}

type syncService struct {
	adapter   adapter.ServerAdapter
	cursors   store.CursorRepository
	library   store.LibraryRepository
	conflicts store.ConflictRepository
	queue     store.QueueRepository
	queueSvc  QueueService
	monitor   connectivity.Monitor
	logger    *logger.Logger

	// group coalesces concurrent SyncNow calls onto one running cycle.
	group singleflight.Group

	phase atomic.Int32

	mu           sync.Mutex
	lastStarted  *time.Time
	lastFinished *time.Time
	lastError    string
	lastSummary  *models.SyncSummary
	mergeFns     map[models.EntityClass]MergeFunc
	onConflict   []func(models.Conflict)
}

// NewSyncService builds the delta-sync coordinator. Pushing goes through
// queueSvc so drain semantics stay in one place.
func NewSyncService(serverAdapter adapter.ServerAdapter, cursors store.CursorRepository, library store.LibraryRepository, conflicts store.ConflictRepository, queue store.QueueRepository, queueSvc QueueService, monitor connectivity.Monitor, logger *logger.Logger) SyncService {
	return &syncService{
		adapter:   serverAdapter,
		cursors:   cursors,
		library:   library,
		conflicts: conflicts,
		queue:     queue,
		queueSvc:  queueSvc,
		monitor:   monitor,
		logger:    logger,
		mergeFns:  make(map[models.EntityClass]MergeFunc),
	}
}

// SyncNow implements [SyncService].
func (s *syncService) SyncNow(ctx context.Context) (models.SyncSummary, error) {
	v, err, _ := s.group.Do("cycle", func() (any, error) {
		return s.runCycle(ctx)
	})
	if err != nil {
		return models.SyncSummary{}, err
	}
	return v.(models.SyncSummary), nil
}

// PushNow implements [SyncService].
func (s *syncService) PushNow(ctx context.Context) (models.DrainSummary, error) {
	if !s.monitor.Online() {
		return models.DrainSummary{}, ErrOffline
	}

	s.phase.Store(int32(models.PhasePushing))
	defer s.phase.Store(int32(models.PhaseIdle))

	drain, err := s.queueSvc.Drain(ctx)
	s.fireConflicts(drain.Conflicts)
	return drain, err
}

// Resolve implements [SyncService].
func (s *syncService) Resolve(ctx context.Context, class models.EntityClass, entityID string, resolution models.ConflictResolution) error {
	conflict, err := s.conflicts.OpenConflictByEntity(ctx, entityID)
	if err != nil {
		return fmt.Errorf("load open conflict: %w", err)
	}
	if conflict.Class != class {
		return fmt.Errorf("%w: entity %s has no open %s conflict", store.ErrConflictNotFound, entityID, class)
	}

	s.phase.Store(int32(models.PhaseResolving))
	defer s.phase.Store(int32(models.PhaseIdle))

	switch resolution {
	case models.ResolutionUseRemote:
		err = s.resolveUseRemote(ctx, conflict)
	case models.ResolutionUseLocal:
		err = s.resolveUseLocal(ctx, conflict)
	case models.ResolutionMerged:
		err = s.resolveMerged(ctx, conflict)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownResolution, resolution)
	}
	if err != nil {
		return err
	}

	if err := s.conflicts.ResolveConflict(ctx, conflict.ID, resolution, time.Now().UTC()); err != nil {
		return fmt.Errorf("close conflict: %w", err)
	}

	s.logger.Info().Str("entity_id", entityID).Str("class", class.String()).Int("resolution", int(resolution)).Msg("conflict resolved")
	return nil
}

// Conflicts implements [SyncService].
func (s *syncService) Conflicts(ctx context.Context, class models.EntityClass, limit int) ([]models.Conflict, error) {
	return s.conflicts.OpenConflicts(ctx, class, limit)
}

// RegisterMerge implements [SyncService].
func (s *syncService) RegisterMerge(class models.EntityClass, fn MergeFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mergeFns[class] = fn
}

// OnConflict implements [SyncService].
func (s *syncService) OnConflict(fn func(models.Conflict)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onConflict = append(s.onConflict, fn)
}

// Status implements [SyncService].
func (s *syncService) Status(ctx context.Context) (models.SyncStatus, error) {
	open, err := s.conflicts.CountOpen(ctx)
	if err != nil {
		return models.SyncStatus{}, fmt.Errorf("count open conflicts: %w", err)
	}

	phase := models.SyncPhase(s.phase.Load())

	s.mu.Lock()
	defer s.mu.Unlock()
	return models.SyncStatus{
		Phase:               phase,
		PhaseName:           phase.String(),
		LastCycleStarted:    s.lastStarted,
		LastCycleFinished:   s.lastFinished,
		LastError:           s.lastError,
		UnresolvedConflicts: int(open),
		Summary:             s.lastSummary,
	}, nil
}

func (s *syncService) runCycle(ctx context.Context) (models.SyncSummary, error) {
	if !s.monitor.Online() {
		return models.SyncSummary{}, ErrOffline
	}

	started := time.Now().UTC()
	s.mu.Lock()
	s.lastStarted = &started
	s.mu.Unlock()

	summary := models.SyncSummary{StartedAt: started}
	err := s.pullAndPush(ctx, &summary)

	finished := time.Now().UTC()
	summary.FinishedAt = finished

	s.phase.Store(int32(models.PhaseIdle))
	s.mu.Lock()
	s.lastFinished = &finished
	s.lastSummary = &summary
	s.lastError = ""
	if err != nil {
		s.lastError = err.Error()
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Error().Err(err).Msg("sync cycle failed")
		return summary, err
	}

	s.logger.Info().
		Int("pulled", summary.Pulled).
		Int("applied", summary.Applied).
		Int("deleted", summary.Deleted).
		Int("pushed", summary.Pushed).
		Int("conflicts", summary.Conflicts).
		Dur("elapsed", finished.Sub(started)).
		Msg("sync cycle finished")
	return summary, nil
}

func (s *syncService) pullAndPush(ctx context.Context, summary *models.SyncSummary) error {
	for _, class := range syncClasses {
		if err := s.pullClass(ctx, class, summary); err != nil {
			return fmt.Errorf("pull %s stream: %w", class, err)
		}
	}

	s.phase.Store(int32(models.PhasePushing))
	drain, err := s.queueSvc.Drain(ctx)
	s.fireConflicts(drain.Conflicts)
	summary.Pushed = drain.Applied
	summary.Conflicts += len(drain.Conflicts)
	if err != nil && !errors.Is(err, ErrDrainInProgress) {
		return fmt.Errorf("push queued actions: %w", err)
	}
	return nil
}

// pullClass walks the manifest pages of one entity stream and applies
// them. The cursor advances only after every page of the stream was
// applied, so a failed cycle repeats records instead of skipping them.
func (s *syncService) pullClass(ctx context.Context, class models.EntityClass, summary *models.SyncSummary) error {
	cursor, err := s.cursors.GetCursor(ctx, class)
	if err != nil && !errors.Is(err, store.ErrCursorNotFound) {
		return fmt.Errorf("load cursor: %w", err)
	}
	position := cursor.Value

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.phase.Store(int32(models.PhasePulling))
		page, err := s.adapter.Manifest(ctx, models.ManifestRequest{Class: class, Cursor: position, Limit: manifestPageLimit})
		if err != nil {
			return fmt.Errorf("fetch manifest page: %w", err)
		}

		s.phase.Store(int32(models.PhaseApplying))
		for _, rec := range page.Records {
			if err := s.applyRecord(ctx, rec, summary); err != nil {
				return fmt.Errorf("apply record %s: %w", rec.EntityID, err)
			}
		}

		if page.NextCursor != "" {
			position = page.NextCursor
		}
		if !page.HasMore {
			break
		}
	}

	if position != cursor.Value {
		now := time.Now().UTC()
		if err := s.cursors.SaveCursor(ctx, models.SyncCursor{Class: class, Value: position, UpdatedAt: now}); err != nil {
			return fmt.Errorf("save cursor: %w", err)
		}
		summary.CursorsAdvanced = append(summary.CursorsAdvanced, class)
	}
	return nil
}

// applyRecord folds one manifest record into the local library. Records
// whose entity has an open conflict are skipped until it is resolved;
// records colliding with unacknowledged local edits register a new one.
func (s *syncService) applyRecord(ctx context.Context, rec models.ManifestRecord, summary *models.SyncSummary) error {
	summary.Pulled++

	_, err := s.conflicts.OpenConflictByEntity(ctx, rec.EntityID)
	switch {
	case err == nil:
		// Frozen until the existing conflict is resolved.
		return nil
	case !errors.Is(err, store.ErrConflictNotFound):
		return fmt.Errorf("check open conflict: %w", err)
	}

	local, err := s.library.GetRecord(ctx, rec.EntityID)
	exists := err == nil
	if err != nil && !errors.Is(err, store.ErrRecordNotFound) {
		return fmt.Errorf("load local record: %w", err)
	}

	if exists && rec.Version <= local.Version {
		// Already at or past this version, usually the echo of our own
		// acknowledged push.
		return nil
	}

	diverged, err := s.locallyEdited(ctx, local, exists, rec.EntityID)
	if err != nil {
		return err
	}
	if diverged {
		return s.registerPullConflict(ctx, local, rec, summary)
	}

	record := models.LibraryRecord{
		EntityID:  rec.EntityID,
		Class:     rec.Class,
		Version:   rec.Version,
		Hash:      rec.Hash,
		Deleted:   rec.Deleted,
		Dirty:     false,
		Payload:   rec.Payload,
		UpdatedAt: rec.UpdatedAt,
	}
	if err := s.library.UpsertRecord(ctx, record); err != nil {
		return fmt.Errorf("upsert record: %w", err)
	}

	if rec.Deleted {
		summary.Deleted++
	} else {
		summary.Applied++
	}
	return nil
}

// locallyEdited reports whether the entity carries local changes the
// server has not acknowledged: a dirty record or undelivered queued
// actions.
func (s *syncService) locallyEdited(ctx context.Context, local models.LibraryRecord, exists bool, entityID string) (bool, error) {
	if exists && local.Dirty {
		return true, nil
	}
	pending, err := s.queue.ActionsByEntity(ctx, entityID)
	if err != nil {
		return false, fmt.Errorf("list entity actions: %w", err)
	}
	return len(pending) > 0, nil
}

func (s *syncService) registerPullConflict(ctx context.Context, local models.LibraryRecord, rec models.ManifestRecord, summary *models.SyncSummary) error {
	conflict := models.Conflict{
		ID:            utils.NewTimeOrderedID(),
		EntityID:      rec.EntityID,
		Class:         rec.Class,
		LocalVersion:  local.Version,
		RemoteVersion: rec.Version,
		LocalPayload:  local.Payload,
		RemotePayload: rec.Payload,
		DetectedAt:    time.Now().UTC(),
		Resolution:    models.ResolutionNone,
	}
	if err := s.conflicts.SaveConflict(ctx, conflict); err != nil {
		return fmt.Errorf("save pull conflict: %w", err)
	}

	summary.Conflicts++
	s.logger.Warn().
		Str("entity_id", rec.EntityID).
		Int64("local_version", local.Version).
		Int64("remote_version", rec.Version).
		Msg("sync conflict detected")
	s.fireConflicts([]models.Conflict{conflict})
	return nil
}

// resolveUseRemote adopts the server record and drops the local edits
// that lost.
func (s *syncService) resolveUseRemote(ctx context.Context, conflict models.Conflict) error {
	if conflict.RemotePayload == nil {
		// Push-detected conflicts carry no remote payload. Clearing the
		// dirty flag at the current version lets the next pull bring the
		// winning record in.
		if err := s.library.MarkClean(ctx, conflict.EntityID, conflict.LocalVersion); err != nil && !errors.Is(err, store.ErrRecordNotFound) {
			return fmt.Errorf("mark record clean: %w", err)
		}
	} else {
		now := time.Now().UTC()
		record := models.LibraryRecord{
			EntityID:  conflict.EntityID,
			Class:     conflict.Class,
			Version:   conflict.RemoteVersion,
			Dirty:     false,
			Payload:   conflict.RemotePayload,
			UpdatedAt: &now,
		}
		if err := s.library.UpsertRecord(ctx, record); err != nil {
			return fmt.Errorf("adopt remote record: %w", err)
		}
	}

	dropped, err := s.queue.DeleteEntity(ctx, conflict.EntityID)
	if err != nil {
		return fmt.Errorf("drop queued actions: %w", err)
	}
	if dropped > 0 {
		s.logger.Info().Str("entity_id", conflict.EntityID).Int64("dropped", dropped).Msg("local actions discarded for remote record")
	}
	return nil
}

// resolveUseLocal keeps the local payload and re-issues the queued edits
// on top of the version the server reported.
func (s *syncService) resolveUseLocal(ctx context.Context, conflict models.Conflict) error {
	local, err := s.library.GetRecord(ctx, conflict.EntityID)
	exists := err == nil
	if err != nil && !errors.Is(err, store.ErrRecordNotFound) {
		return fmt.Errorf("load local record: %w", err)
	}

	if exists {
		local.Version = conflict.RemoteVersion
		local.Dirty = true
		if err := s.library.UpsertRecord(ctx, local); err != nil {
			return fmt.Errorf("keep local record: %w", err)
		}
	}

	if err := s.queue.RebaseEntity(ctx, conflict.EntityID, conflict.RemoteVersion); err != nil {
		return fmt.Errorf("rebase queued actions: %w", err)
	}

	// Parked actions go back to pending so the next drain replays them.
	actions, err := s.queue.ActionsByEntity(ctx, conflict.EntityID)
	if err != nil {
		return fmt.Errorf("list entity actions: %w", err)
	}
	now := time.Now().UTC()
	for _, a := range actions {
		if a.Status != models.StatusFailed {
			continue
		}
		if err := s.queue.RetryFailed(ctx, a.ID, now); err != nil {
			return fmt.Errorf("retry action %s: %w", a.ID, err)
		}
	}

	// A dirty record with nothing queued would never reach the server;
	// re-publish it as a fresh action.
	if len(actions) == 0 && exists {
		if _, err := s.queueSvc.Enqueue(ctx, models.QueuedAction{
			Type:        actionTypeForClass(conflict.Class),
			EntityID:    conflict.EntityID,
			Payload:     local.Payload,
			BaseVersion: conflict.RemoteVersion,
		}); err != nil {
			return fmt.Errorf("enqueue kept local record: %w", err)
		}
	}
	return nil
}

// resolveMerged runs the registered merge function and enqueues its
// output as a fresh action on top of the remote version.
func (s *syncService) resolveMerged(ctx context.Context, conflict models.Conflict) error {
	s.mu.Lock()
	fn, ok := s.mergeFns[conflict.Class]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrMergeNotRegistered, conflict.Class)
	}

	merged, err := fn(conflict.LocalPayload, conflict.RemotePayload)
	if err != nil {
		return fmt.Errorf("merge payloads: %w", err)
	}

	now := time.Now().UTC()
	record := models.LibraryRecord{
		EntityID:  conflict.EntityID,
		Class:     conflict.Class,
		Version:   conflict.RemoteVersion,
		Dirty:     true,
		Payload:   merged,
		UpdatedAt: &now,
	}
	if err := s.library.UpsertRecord(ctx, record); err != nil {
		return fmt.Errorf("store merged record: %w", err)
	}

	// Stale queued edits are superseded by the merged payload.
	if _, err := s.queue.DeleteEntity(ctx, conflict.EntityID); err != nil {
		return fmt.Errorf("drop superseded actions: %w", err)
	}
	if _, err := s.queueSvc.Enqueue(ctx, models.QueuedAction{
		Type:        actionTypeForClass(conflict.Class),
		EntityID:    conflict.EntityID,
		Payload:     merged,
		BaseVersion: conflict.RemoteVersion,
	}); err != nil {
		return fmt.Errorf("enqueue merged record: %w", err)
	}
	return nil
}

func (s *syncService) fireConflicts(conflicts []models.Conflict) {
	s.mu.Lock()
	callbacks := append(([]func(models.Conflict))(nil), s.onConflict...)
	s.mu.Unlock()

	for _, c := range conflicts {
		for _, fn := range callbacks {
			fn(c)
		}
	}
}

// actionTypeForClass picks the queue action type that re-publishes a
// full record of the class.
func actionTypeForClass(class models.EntityClass) models.ActionType {
	if class == models.ClassAnnotation {
		return models.ActionAnnotation
	}
	return models.ActionMetadata
}
