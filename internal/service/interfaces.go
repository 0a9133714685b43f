// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-digi-lib/models"
)

// CacheService is the size-bounded artifact cache built on top of the
// metadata repository and the blob store. All mutating operations keep the
// two in step; readers may race mutators and at worst observe a miss.
type CacheService interface {
	// Put stores data under entry.Key. The content digest, size, and
	// timestamps are computed here; the caller fills Key, DocumentID, and
	// Format. When the insert pushes the cache above its configured
	// ceiling an eviction pass runs before Put returns.
	Put(ctx context.Context, entry models.CacheEntry, data []byte) (models.CacheEntry, error)

	// Get loads the artifact bytes for key and touches its last access
	// time. A metadata row whose blob file is gone counts as a miss; the
	// stale row is dropped on the way out.
	// Returns store.ErrCacheEntryNotFound when the key is absent.
	Get(ctx context.Context, key string) ([]byte, models.CacheEntry, error)

	// Remove deletes one cached artifact. The blob file is unlinked only
	// when no other entry shares its content. Removing an absent key is
	// a no-op.
	Remove(ctx context.Context, key string) error

	// RemoveDocument drops every cached artifact of a document and
	// returns how many entries were removed.
	RemoveDocument(ctx context.Context, documentID string) (int, error)

	// TotalSize reports the summed blob size of all entries in bytes.
	TotalSize(ctx context.Context) (int64, error)

	// ListByLastAccessed returns entries least-recently-used first,
	// entries of equal age larger first. A zero limit means no limit.
	ListByLastAccessed(ctx context.Context, limit int) ([]models.CacheEntry, error)

	// EvictTo removes least-recently-used entries until the total size is
	// at or below target. Returns the number of evicted entries.
	EvictTo(ctx context.Context, target int64) (int, error)

	// Maintain runs the periodic housekeeping pass: expires entries past
	// the configured max age, repairs orphans in both directions (rows
	// without blobs, blobs without rows), and evicts down to the ceiling.
	// Returns the post-maintenance snapshot.
	Maintain(ctx context.Context) (models.CacheStats, error)

	// Stats returns a point-in-time snapshot of cache size and counters.
	Stats(ctx context.Context) (models.CacheStats, error)
}

// RenderService resolves page render requests through the tier chain:
// local cache, then the remote render endpoint, then a native rasterizer
// when one was found on the machine. Every produced artifact is written
// back to the cache.
type RenderService interface {
	// RenderPage renders one document page. Concurrent requests for the
	// same cache key are collapsed into a single render. When
	// req.PreloadNext is positive the following pages are warmed in the
	// background after the result is returned.
	// Returns ErrRenderFailed wrapping the per-tier causes when no tier
	// could produce the page.
	RenderPage(ctx context.Context, req models.RenderRequest) (models.RenderResult, error)

	// RenderThumbnail renders a document thumbnail bounded by edge pixels
	// on its longest side. Thumbnails follow the same tier chain as pages.
	RenderThumbnail(ctx context.Context, documentID string, edge int) (models.RenderResult, error)

	// PreloadPages schedules count pages starting at fromPage onto the
	// background warm pool at the default DPI and format. Individual
	// render failures are swallowed. Returns how many pages were actually
	// scheduled; pages are dropped when the pool is saturated.
	PreloadPages(ctx context.Context, documentID string, fromPage, count int) int

	// Stats returns the per-origin render counters since process start.
	Stats() models.RenderStats

	// Close cancels background preloads and waits for the pool to drain.
	// The service stays usable for foreground renders afterwards.
	Close()
}

// QueueService manages the durable offline action queue. Actions are
// persisted before Enqueue returns and replayed against the server in
// creation order per entity.
type QueueService interface {
	// Enqueue assigns the action an ID and schedules it for the next
	// drain pass. The returned action carries the generated fields.
	Enqueue(ctx context.Context, action models.QueuedAction) (models.QueuedAction, error)

	// Drain pushes due actions to the server in one batch and settles
	// each one according to the server's verdict: applied actions are
	// deleted, conflicts are registered and parked as failed, rejected
	// actions are marked failed, transport failures reschedule with
	// exponential backoff. Only the oldest undelivered action per entity
	// is pushed in a pass, so per-entity order survives any failure.
	// Returns ErrDrainInProgress when another pass is running.
	Drain(ctx context.Context) (models.DrainSummary, error)

	// RecoverInFlight returns actions stranded in the in-flight state to
	// pending. Called once at startup before the first drain.
	RecoverInFlight(ctx context.Context) (int64, error)

	// Failed lists actions that exhausted their attempts or were rejected
	// by the server, oldest first.
	Failed(ctx context.Context) ([]models.QueuedAction, error)

	// RetryFailed returns one failed action to the pending state with a
	// cleared attempt counter.
	RetryFailed(ctx context.Context, id string) error

	// Discard permanently deletes a queued action regardless of status.
	Discard(ctx context.Context, id string) error

	// Stats returns a point-in-time snapshot of queue depths.
	Stats(ctx context.Context) (models.QueueStats, error)
}

// MergeFunc combines a conflicting local payload with its remote
// counterpart into a payload acceptable to both sides. Registered per
// entity class via [SyncService.RegisterMerge].
type MergeFunc func(local, remote []byte) ([]byte, error)

// SyncService runs the delta-sync cycle against the server: pull changed
// records per entity class, apply them locally, push queued actions, and
// surface conflicts for explicit resolution.
type SyncService interface {
	// SyncNow runs one full sync cycle. Concurrent calls coalesce onto
	// the running cycle and share its outcome. Returns ErrOffline without
	// touching the server when the monitor reports the client offline.
	SyncNow(ctx context.Context) (models.SyncSummary, error)

	// PushNow drains the offline queue without pulling, firing conflict
	// callbacks for any version conflicts the server reported. Used by
	// the drain worker between full cycles.
	PushNow(ctx context.Context) (models.DrainSummary, error)

	// Resolve settles the open conflict of an entity. Use-remote adopts
	// the server record and discards queued local actions; use-local
	// keeps the local payload, rebases queued actions onto the remote
	// version, and returns failed ones to pending; merge runs the
	// registered MergeFunc and enqueues the merged payload as a new
	// action on top of the remote version.
	// Returns ErrMergeNotRegistered when merging without a registered
	// function, and store.ErrConflictNotFound when the entity has no open
	// conflict of the given class.
	Resolve(ctx context.Context, class models.EntityClass, entityID string, resolution models.ConflictResolution) error

	// Conflicts lists open conflicts oldest first. A zero class matches
	// every entity class; a zero limit means no limit.
	Conflicts(ctx context.Context, class models.EntityClass, limit int) ([]models.Conflict, error)

	// RegisterMerge installs the merge function for an entity class,
	// replacing any previous one.
	RegisterMerge(class models.EntityClass, fn MergeFunc)

	// OnConflict registers a callback fired once per newly detected
	// conflict, during pull application and push settlement. Callbacks
	// run synchronously on the sync goroutine and must not block.
	OnConflict(fn func(models.Conflict))

	// Status describes the coordinator for diagnostics: current phase,
	// last cycle timing and outcome, and the open conflict count.
	Status(ctx context.Context) (models.SyncStatus, error)
}
