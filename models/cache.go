package models

import "time"

// CacheEntry describes a single rendered artifact held in the local
// page cache. The entry row lives in SQLite while the rendered bytes
// live in a content-addressed blob file next to the database.
type CacheEntry struct {
	// Key uniquely identifies the artifact, see PageKey and ThumbKey.
	Key string

	// DocumentID is the library document the artifact belongs to.
	// Kept denormalized so whole-document invalidation is a single query.
	DocumentID string

	// SizeBytes is the size of the blob file on disk.
	SizeBytes int64

	// SHA256 is the lowercase hex digest of the blob content.
	// It doubles as the blob file name.
	SHA256 string

	// Format records the artifact encoding (png, webp, jpeg).
	Format RenderFormat

	CreatedAt      time.Time
	LastAccessedAt time.Time
}
