package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-digi-lib/internal/config"
	"github.com/MKhiriev/go-digi-lib/internal/logger"
)

// Storages groups all local storage repositories into a single value that
// can be passed around the service layer.
type Storages struct {
	// Cache is the SQLite-backed metadata index of the rendered page cache.
	Cache CacheRepository

	// Queue holds offline actions awaiting push.
	Queue QueueRepository

	// Cursors tracks per-entity-class delta-sync positions.
	Cursors CursorRepository

	// Library is the local materialisation of synchronised library state.
	Library LibraryRepository

	// Conflicts records divergent edits awaiting resolution.
	Conflicts ConflictRepository

	// Blobs holds the rendered artifact bytes on disk.
	Blobs BlobStore

	db *DB
}

// NewStorages initialises the local storage layer using the supplied
// configuration and logger. It performs the following steps:
//  1. Opens an SQLite connection to the file path specified in cfg.DB.DSN,
//     creating the database file if it does not yet exist.
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Creates the blob directory and constructs a [Storages] value wired
//     to fresh repositories.
//
// Returns an error if the database connection cannot be established, if
// migration fails, or if the blob directory cannot be created.
func NewStorages(cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(context.Background(), cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	blobs, err := NewBlobFileStorage(cfg.Blobs.Dir, logger)
	if err != nil {
		return nil, fmt.Errorf("blob storage error: %w", err)
	}

	return &Storages{
		Cache:     NewCacheRepository(db, logger),
		Queue:     NewQueueRepository(db, logger),
		Cursors:   NewCursorRepository(db, logger),
		Library:   NewLibraryRepository(db, logger),
		Conflicts: NewConflictRepository(db, logger),
		Blobs:     blobs,
		db:        db,
	}, nil
}

// Close releases the underlying database connection.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
