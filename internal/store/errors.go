package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrCacheEntryNotFound is returned when a lookup targets a cache key
	// that has no metadata row, either because it was never stored or
	// because eviction already removed it.
	ErrCacheEntryNotFound = errors.New("cache entry not found")

	// ErrActionNotFound is returned when a queue operation targets an
	// action ID that does not exist, typically because a concurrent drain
	// already completed and deleted it.
	ErrActionNotFound = errors.New("queued action not found")

	// ErrCursorNotFound is returned when no sync cursor row exists yet for
	// the requested entity class. A fresh installation starts without
	// cursors; callers treat this as "sync from the beginning".
	ErrCursorNotFound = errors.New("sync cursor not found")

	// ErrRecordNotFound is returned when a library record lookup matches
	// no row.
	ErrRecordNotFound = errors.New("library record not found")

	// ErrConflictNotFound is returned when a conflict lookup or resolution
	// targets a conflict that does not exist or is already resolved.
	ErrConflictNotFound = errors.New("conflict not found")

	// ErrBlobNotFound is returned when a blob read targets a digest with
	// no file on disk. The metadata row may still exist; maintenance
	// repairs such orphans.
	ErrBlobNotFound = errors.New("blob not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
