package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-digi-lib/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// CacheRepository is the low-level metadata index of the rendered page cache.
// It tracks one row per cached artifact; the bytes themselves live in
// [BlobStore].
type CacheRepository interface {
	SaveEntry(ctx context.Context, entry models.CacheEntry) error
	GetEntry(ctx context.Context, key string) (models.CacheEntry, error)
	TouchEntry(ctx context.Context, key string, accessedAt time.Time) error
	DeleteEntry(ctx context.Context, key string) error
	EntriesByDocument(ctx context.Context, documentID string) ([]models.CacheEntry, error)
	// EvictionCandidates lists entries ordered least-recently-used first;
	// entries of equal age come larger first.
	EvictionCandidates(ctx context.Context, limit int) ([]models.CacheEntry, error)
	ExpiredEntries(ctx context.Context, cutoff time.Time) ([]models.CacheEntry, error)
	AllEntries(ctx context.Context) ([]models.CacheEntry, error)
	TotalSize(ctx context.Context) (int64, error)
	CountEntries(ctx context.Context) (int64, error)
	// CountBySHA256 reports how many entries share a blob. Blobs are
	// content-addressed, so a file may only be unlinked when this
	// drops to zero.
	CountBySHA256(ctx context.Context, digest string) (int64, error)
	DistinctDigests(ctx context.Context) ([]string, error)
}

// QueueRepository persists offline actions awaiting push to the server.
// Scheduling policy (backoff arithmetic, attempt ceilings) belongs to the
// service layer; this repository stores whatever it decides.
type QueueRepository interface {
	SaveAction(ctx context.Context, action models.QueuedAction) error
	GetAction(ctx context.Context, id string) (models.QueuedAction, error)
	// DueActions lists pending actions whose next attempt time has passed,
	// oldest first, so per-entity causal order is preserved downstream.
	DueActions(ctx context.Context, now time.Time, limit int) ([]models.QueuedAction, error)
	// ActionsByEntity lists every undelivered action of an entity oldest
	// first, regardless of status. An entity with rows here has local
	// edits the server has not acknowledged.
	ActionsByEntity(ctx context.Context, entityID string) ([]models.QueuedAction, error)
	MarkInFlight(ctx context.Context, ids []string) error
	// MarkSucceeded removes the action; acknowledged work leaves no row.
	MarkSucceeded(ctx context.Context, id string) error
	Reschedule(ctx context.Context, id string, attempts int, nextAttemptAt time.Time, lastError string) error
	MarkFailed(ctx context.Context, id string, attempts int, lastError string) error
	// ResetInFlight returns in-flight actions to pending. Called once at
	// startup so rows stranded by a crash become eligible again.
	ResetInFlight(ctx context.Context) (int64, error)
	FailedActions(ctx context.Context) ([]models.QueuedAction, error)
	RetryFailed(ctx context.Context, id string, now time.Time) error
	// RebaseEntity rewrites the base version of every queued action of an
	// entity. Conflict resolution uses it to re-issue kept local edits on
	// top of the version the server reported.
	RebaseEntity(ctx context.Context, entityID string, baseVersion int64) error
	DeleteEntity(ctx context.Context, entityID string) (int64, error)
	DeleteAction(ctx context.Context, id string) error
	Counts(ctx context.Context) (models.QueueStats, error)
}

// CursorRepository persists the per-entity-class delta-sync positions.
type CursorRepository interface {
	GetCursor(ctx context.Context, class models.EntityClass) (models.SyncCursor, error)
	SaveCursor(ctx context.Context, cursor models.SyncCursor) error
	AllCursors(ctx context.Context) ([]models.SyncCursor, error)
}

// LibraryRepository is the local materialisation of synchronised library
// state: bookmarks, annotations, collections, reading progress. The sync
// coordinator writes manifest records through it and reads back versions to
// detect conflicts.
type LibraryRepository interface {
	GetRecord(ctx context.Context, entityID string) (models.LibraryRecord, error)
	UpsertRecord(ctx context.Context, record models.LibraryRecord) error
	RecordsByClass(ctx context.Context, class models.EntityClass) ([]models.LibraryRecord, error)
	DirtyRecords(ctx context.Context) ([]models.LibraryRecord, error)
	// MarkClean clears the dirty flag and adopts the server-assigned
	// version after a successful push.
	MarkClean(ctx context.Context, entityID string, version int64) error
}

// ConflictRepository records divergent edits awaiting a resolution choice.
// At most one open conflict exists per entity; saving a duplicate is a no-op.
type ConflictRepository interface {
	SaveConflict(ctx context.Context, conflict models.Conflict) error
	GetConflict(ctx context.Context, id string) (models.Conflict, error)
	OpenConflictByEntity(ctx context.Context, entityID string) (models.Conflict, error)
	// OpenConflicts lists unresolved conflicts oldest first. A zero class
	// matches every entity class; a zero limit means no limit.
	OpenConflicts(ctx context.Context, class models.EntityClass, limit int) ([]models.Conflict, error)
	ResolveConflict(ctx context.Context, id string, resolution models.ConflictResolution, resolvedAt time.Time) error
	CountOpen(ctx context.Context) (int64, error)
}

// BlobStore holds the rendered artifact bytes on the local filesystem,
// addressed by the hex SHA-256 digest of the content.
type BlobStore interface {
	Save(ctx context.Context, digest string, data []byte) error
	Load(ctx context.Context, digest string) ([]byte, error)
	// Remove deletes the blob file. Removing an absent blob is not an
	// error.
	Remove(ctx context.Context, digest string) error
	Exists(digest string) bool
	// Digests walks the store and returns every stored digest; maintenance
	// uses it to find files no metadata row points at.
	Digests(ctx context.Context) ([]string, error)
}
