package store

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/go-digi-lib/internal/logger"
)

// blobFileStorage keeps rendered artifact bytes as flat files under a root
// directory, sharded by the first two characters of the digest so no single
// directory grows unbounded:
//
//	<root>/ab/abc123...def
//
// Writes land in a temp file first and are renamed into place, so a reader
// can never observe a partially written blob.
type blobFileStorage struct {
	root   string
	logger *logger.Logger
}

func NewBlobFileStorage(root string, logger *logger.Logger) (BlobStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("error creating blob directory: %w", err)
	}

	return &blobFileStorage{
		root:   root,
		logger: logger,
	}, nil
}

func (s *blobFileStorage) Save(ctx context.Context, digest string, data []byte) error {
	log := logger.FromContext(ctx)

	dir := s.shardDir(digest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Err(err).
			Str("func", "blobFileStorage.Save").
			Str("digest", digest).
			Msg("failed to create shard directory")
		return fmt.Errorf("failed to create shard directory: %w", err)
	}

	// Temp files live in the root, not the shard, so the digest walk
	// never picks them up.
	tmp, err := os.CreateTemp(s.root, "tmp-*")
	if err != nil {
		log.Err(err).
			Str("func", "blobFileStorage.Save").
			Str("digest", digest).
			Msg("failed to create temp file")
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		log.Err(err).
			Str("func", "blobFileStorage.Save").
			Str("digest", digest).
			Msg("failed to write blob data")
		return fmt.Errorf("failed to write blob data: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path(digest)); err != nil {
		os.Remove(tmp.Name())
		log.Err(err).
			Str("func", "blobFileStorage.Save").
			Str("digest", digest).
			Msg("failed to move blob into place")
		return fmt.Errorf("failed to move blob into place: %w", err)
	}

	return nil
}

func (s *blobFileStorage) Load(ctx context.Context, digest string) ([]byte, error) {
	log := logger.FromContext(ctx)

	data, err := os.ReadFile(s.path(digest))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrBlobNotFound
		}
		log.Err(err).
			Str("func", "blobFileStorage.Load").
			Str("digest", digest).
			Msg("failed to read blob file")
		return nil, fmt.Errorf("failed to read blob file: %w", err)
	}

	return data, nil
}

func (s *blobFileStorage) Remove(ctx context.Context, digest string) error {
	log := logger.FromContext(ctx)

	if err := os.Remove(s.path(digest)); err != nil && !os.IsNotExist(err) {
		log.Err(err).
			Str("func", "blobFileStorage.Remove").
			Str("digest", digest).
			Msg("failed to remove blob file")
		return fmt.Errorf("failed to remove blob file: %w", err)
	}

	return nil
}

func (s *blobFileStorage) Exists(digest string) bool {
	_, err := os.Stat(s.path(digest))
	return err == nil
}

func (s *blobFileStorage) Digests(ctx context.Context) ([]string, error) {
	log := logger.FromContext(ctx)

	var digests []string
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), "tmp-") {
			return nil
		}
		digests = append(digests, d.Name())
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "blobFileStorage.Digests").
			Msg("failed to walk blob directory")
		return nil, fmt.Errorf("failed to walk blob directory: %w", err)
	}

	return digests, nil
}

func (s *blobFileStorage) shardDir(digest string) string {
	shard := digest
	if len(shard) > 2 {
		shard = shard[:2]
	}
	return filepath.Join(s.root, shard)
}

func (s *blobFileStorage) path(digest string) string {
	return filepath.Join(s.shardDir(digest), digest)
}
