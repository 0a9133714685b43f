// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

const (
	saveCacheEntry = `
		INSERT INTO cache_entries (
			key,
			document_id,
			size_bytes,
			sha256,
			format,
			created_at,
			last_accessed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT(key) DO UPDATE SET
			size_bytes       = excluded.size_bytes,
			sha256           = excluded.sha256,
			format           = excluded.format,
			last_accessed_at = excluded.last_accessed_at;`

	getCacheEntry = `
		SELECT
			key,
			document_id,
			size_bytes,
			sha256,
			format,
			created_at,
			last_accessed_at
		FROM cache_entries
		WHERE key = $1;`

	touchCacheEntry = `
		UPDATE cache_entries
		SET last_accessed_at = $1
		WHERE key = $2;`

	deleteCacheEntry = `
		DELETE FROM cache_entries
		WHERE key = $1;`

	getCacheEntriesByDocument = `
		SELECT
			key,
			document_id,
			size_bytes,
			sha256,
			format,
			created_at,
			last_accessed_at
		FROM cache_entries
		WHERE document_id = $1;`

	getAllCacheEntries = `
		SELECT
			key,
			document_id,
			size_bytes,
			sha256,
			format,
			created_at,
			last_accessed_at
		FROM cache_entries;`

	sumCacheSize = `
		SELECT COALESCE(SUM(size_bytes), 0)
		FROM cache_entries;`

	countCacheEntries = `
		SELECT COUNT(*)
		FROM cache_entries;`

	countCacheEntriesBySHA = `
		SELECT COUNT(*)
		FROM cache_entries
		WHERE sha256 = $1;`

	getDistinctCacheDigests = `
		SELECT DISTINCT sha256
		FROM cache_entries;`
)

const (
	saveQueuedAction = `
		INSERT INTO action_queue (
			id,
			type,
			entity_id,
			payload,
			base_version,
			status,
			attempts,
			next_attempt_at,
			created_at,
			last_error
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`

	getQueuedAction = `
		SELECT
			id,
			type,
			entity_id,
			payload,
			base_version,
			status,
			attempts,
			next_attempt_at,
			created_at,
			last_error
		FROM action_queue
		WHERE id = $1;`

	getActionsByEntity = `
		SELECT
			id,
			type,
			entity_id,
			payload,
			base_version,
			status,
			attempts,
			next_attempt_at,
			created_at,
			last_error
		FROM action_queue
		WHERE entity_id = $1
		ORDER BY created_at ASC;`

	deleteQueuedAction = `
		DELETE FROM action_queue
		WHERE id = $1;`

	rescheduleQueuedAction = `
		UPDATE action_queue SET
			status          = $1,
			attempts        = $2,
			next_attempt_at = $3,
			last_error      = $4
		WHERE id = $5;`

	markActionFailed = `
		UPDATE action_queue SET
			status     = $1,
			attempts   = $2,
			last_error = $3
		WHERE id = $4;`

	resetInFlightActions = `
		UPDATE action_queue
		SET status = $1
		WHERE status = $2;`

	getActionsByStatus = `
		SELECT
			id,
			type,
			entity_id,
			payload,
			base_version,
			status,
			attempts,
			next_attempt_at,
			created_at,
			last_error
		FROM action_queue
		WHERE status = $1
		ORDER BY created_at ASC;`

	retryFailedAction = `
		UPDATE action_queue SET
			status          = $1,
			attempts        = 0,
			next_attempt_at = $2,
			last_error      = NULL
		WHERE id = $3 AND status = $4;`

	rebaseEntityActions = `
		UPDATE action_queue
		SET base_version = $1
		WHERE entity_id = $2;`

	deleteEntityActions = `
		DELETE FROM action_queue
		WHERE entity_id = $1;`

	countActionsByStatus = `
		SELECT status, COUNT(*)
		FROM action_queue
		GROUP BY status;`

	oldestPendingAction = `
		SELECT MIN(created_at)
		FROM action_queue
		WHERE status = $1;`
)

const (
	saveSyncCursor = `
		INSERT INTO sync_cursors (
			class,
			value,
			updated_at
		) VALUES ($1, $2, $3)
		ON CONFLICT(class) DO UPDATE SET
			value      = excluded.value,
			updated_at = excluded.updated_at;`

	getSyncCursor = `
		SELECT
			class,
			value,
			updated_at
		FROM sync_cursors
		WHERE class = $1;`

	getAllSyncCursors = `
		SELECT
			class,
			value,
			updated_at
		FROM sync_cursors;`
)

const (
	upsertLibraryRecord = `
		INSERT INTO library_records (
			entity_id,
			class,
			version,
			hash,
			deleted,
			dirty,
			payload,
			updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT(entity_id) DO UPDATE SET
			class      = excluded.class,
			version    = excluded.version,
			hash       = excluded.hash,
			deleted    = excluded.deleted,
			dirty      = excluded.dirty,
			payload    = excluded.payload,
			updated_at = excluded.updated_at;`

	getLibraryRecord = `
		SELECT
			entity_id,
			class,
			version,
			hash,
			deleted,
			dirty,
			payload,
			updated_at
		FROM library_records
		WHERE entity_id = $1;`

	getLibraryRecordsByClass = `
		SELECT
			entity_id,
			class,
			version,
			hash,
			deleted,
			dirty,
			payload,
			updated_at
		FROM library_records
		WHERE class = $1;`

	getDirtyLibraryRecords = `
		SELECT
			entity_id,
			class,
			version,
			hash,
			deleted,
			dirty,
			payload,
			updated_at
		FROM library_records
		WHERE dirty = 1;`

	markLibraryRecordClean = `
		UPDATE library_records SET
			dirty   = 0,
			version = $1
		WHERE entity_id = $2;`
)

const (
	saveConflict = `
		INSERT INTO conflicts (
			id,
			entity_id,
			class,
			local_version,
			remote_version,
			local_payload,
			remote_payload,
			detected_at,
			resolution,
			resolved_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT DO NOTHING;`

	getConflict = `
		SELECT
			id,
			entity_id,
			class,
			local_version,
			remote_version,
			local_payload,
			remote_payload,
			detected_at,
			resolution,
			resolved_at
		FROM conflicts
		WHERE id = $1;`

	getOpenConflictByEntity = `
		SELECT
			id,
			entity_id,
			class,
			local_version,
			remote_version,
			local_payload,
			remote_payload,
			detected_at,
			resolution,
			resolved_at
		FROM conflicts
		WHERE entity_id = $1 AND resolution = $2;`

	resolveConflict = `
		UPDATE conflicts SET
			resolution  = $1,
			resolved_at = $2
		WHERE id = $3 AND resolution = $4;`

	countOpenConflicts = `
		SELECT COUNT(*)
		FROM conflicts
		WHERE resolution = $1;`
)
