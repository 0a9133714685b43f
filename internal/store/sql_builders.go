package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-digi-lib/models"
)

// Columns selected by the dynamic queries, in scan order.
var (
	cacheEntryColumns = []string{
		"key", "document_id", "size_bytes", "sha256", "format",
		"created_at", "last_accessed_at",
	}
	queuedActionColumns = []string{
		"id", "type", "entity_id", "payload", "base_version", "status",
		"attempts", "next_attempt_at", "created_at", "last_error",
	}
	conflictColumns = []string{
		"id", "entity_id", "class", "local_version", "remote_version",
		"local_payload", "remote_payload", "detected_at", "resolution",
		"resolved_at",
	}
)

// buildDueActionsQuery selects pending actions whose next attempt time has
// passed, oldest first. A non-positive limit selects all of them.
func buildDueActionsQuery(now time.Time, limit int) (string, []any, error) {
	query := sq.Select(queuedActionColumns...).
		From("action_queue").
		Where(sq.Eq{"status": models.StatusPending}).
		Where(sq.LtOrEq{"next_attempt_at": now}).
		OrderBy("created_at ASC").
		PlaceholderFormat(sq.Dollar)

	if limit > 0 {
		query = query.Limit(uint64(limit))
	}

	return query.ToSql()
}

// buildMarkInFlightQuery flips the given actions to in-flight in one
// statement. squirrel expands the id slice into IN ($2, $3, ...).
func buildMarkInFlightQuery(ids []string) (string, []any, error) {
	return sq.Update("action_queue").
		Set("status", models.StatusInFlight).
		Where(sq.Eq{"id": ids}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
}

// buildEvictionCandidatesQuery orders cache entries least-recently-used
// first; entries touched at the same instant come larger first so eviction
// frees space in fewer steps.
func buildEvictionCandidatesQuery(limit int) (string, []any, error) {
	query := sq.Select(cacheEntryColumns...).
		From("cache_entries").
		OrderBy("last_accessed_at ASC", "size_bytes DESC").
		PlaceholderFormat(sq.Dollar)

	if limit > 0 {
		query = query.Limit(uint64(limit))
	}

	return query.ToSql()
}

// buildExpiredEntriesQuery selects cache entries not touched since cutoff.
func buildExpiredEntriesQuery(cutoff time.Time) (string, []any, error) {
	return sq.Select(cacheEntryColumns...).
		From("cache_entries").
		Where(sq.Lt{"last_accessed_at": cutoff}).
		OrderBy("last_accessed_at ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
}

// buildOpenConflictsQuery selects unresolved conflicts oldest first,
// optionally narrowed to one entity class.
func buildOpenConflictsQuery(class models.EntityClass, limit int) (string, []any, error) {
	query := sq.Select(conflictColumns...).
		From("conflicts").
		Where(sq.Eq{"resolution": models.ResolutionNone}).
		OrderBy("detected_at ASC").
		PlaceholderFormat(sq.Dollar)

	if class != 0 {
		query = query.Where(sq.Eq{"class": class})
	}
	if limit > 0 {
		query = query.Limit(uint64(limit))
	}

	return query.ToSql()
}
