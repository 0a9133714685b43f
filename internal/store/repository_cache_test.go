package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/MKhiriev/go-digi-lib/internal/logger"
	"github.com/MKhiriev/go-digi-lib/models"
)

func newTestCacheRepo(t *testing.T) (*cacheRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &cacheRepository{
		DB:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func testCacheEntry() models.CacheEntry {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	return models.CacheEntry{
		Key:            "doc-1/p3.144.png",
		DocumentID:     "doc-1",
		SizeBytes:      2048,
		SHA256:         "aabb00112233445566778899aabbccddeeff00112233445566778899aabbccdd",
		Format:         models.FormatPNG,
		CreatedAt:      now,
		LastAccessedAt: now,
	}
}

func cacheEntryRows(entries ...models.CacheEntry) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"key", "document_id", "size_bytes", "sha256", "format",
		"created_at", "last_accessed_at",
	})
	for _, e := range entries {
		rows.AddRow(e.Key, e.DocumentID, e.SizeBytes, e.SHA256, string(e.Format), e.CreatedAt, e.LastAccessedAt)
	}
	return rows
}

func TestCacheRepository_SaveEntry_Success(t *testing.T) {
	repo, mock, db := newTestCacheRepo(t)
	defer db.Close()

	entry := testCacheEntry()

	mock.ExpectExec("INSERT INTO cache_entries").
		WithArgs(entry.Key, entry.DocumentID, entry.SizeBytes, entry.SHA256, entry.Format, entry.CreatedAt, entry.LastAccessedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SaveEntry(context.Background(), entry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCacheRepository_SaveEntry_DBError(t *testing.T) {
	repo, mock, db := newTestCacheRepo(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO cache_entries").
		WillReturnError(errors.New("disk I/O error"))

	err := repo.SaveEntry(context.Background(), testCacheEntry())
	if !errors.Is(err, ErrExecutingStatement) {
		t.Fatalf("expected ErrExecutingStatement, got %v", err)
	}
}

func TestCacheRepository_GetEntry_Success(t *testing.T) {
	repo, mock, db := newTestCacheRepo(t)
	defer db.Close()

	want := testCacheEntry()

	mock.ExpectQuery("SELECT (.+) FROM cache_entries WHERE key").
		WithArgs(want.Key).
		WillReturnRows(cacheEntryRows(want))

	got, err := repo.GetEntry(context.Background(), want.Key)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Key != want.Key {
		t.Errorf("expected key %s, got %s", want.Key, got.Key)
	}
	if got.SizeBytes != want.SizeBytes {
		t.Errorf("expected size %d, got %d", want.SizeBytes, got.SizeBytes)
	}
	if got.Format != models.FormatPNG {
		t.Errorf("expected format png, got %s", got.Format)
	}
}

func TestCacheRepository_GetEntry_NotFound(t *testing.T) {
	repo, mock, db := newTestCacheRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM cache_entries WHERE key").
		WithArgs("missing").
		WillReturnRows(cacheEntryRows())

	_, err := repo.GetEntry(context.Background(), "missing")
	if !errors.Is(err, ErrCacheEntryNotFound) {
		t.Fatalf("expected ErrCacheEntryNotFound, got %v", err)
	}
}

func TestCacheRepository_TouchEntry_Success(t *testing.T) {
	repo, mock, db := newTestCacheRepo(t)
	defer db.Close()

	at := time.Now()

	mock.ExpectExec("UPDATE cache_entries").
		WithArgs(at, "doc-1/p3.144.png").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.TouchEntry(context.Background(), "doc-1/p3.144.png", at); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCacheRepository_TouchEntry_NotFound(t *testing.T) {
	repo, mock, db := newTestCacheRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE cache_entries").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.TouchEntry(context.Background(), "missing", time.Now())
	if !errors.Is(err, ErrCacheEntryNotFound) {
		t.Fatalf("expected ErrCacheEntryNotFound, got %v", err)
	}
}

func TestCacheRepository_DeleteEntry_Success(t *testing.T) {
	repo, mock, db := newTestCacheRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM cache_entries").
		WithArgs("doc-1/p3.144.png").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DeleteEntry(context.Background(), "doc-1/p3.144.png"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCacheRepository_EntriesByDocument_Success(t *testing.T) {
	repo, mock, db := newTestCacheRepo(t)
	defer db.Close()

	first := testCacheEntry()
	second := testCacheEntry()
	second.Key = "doc-1/thumb.256.png"

	mock.ExpectQuery("SELECT (.+) FROM cache_entries WHERE document_id").
		WithArgs("doc-1").
		WillReturnRows(cacheEntryRows(first, second))

	entries, err := repo.EntriesByDocument(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
}

func TestCacheRepository_EvictionCandidates_PreservesOrder(t *testing.T) {
	repo, mock, db := newTestCacheRepo(t)
	defer db.Close()

	oldest := testCacheEntry()
	oldest.Key = "doc-1/p1.144.png"
	newest := testCacheEntry()
	newest.Key = "doc-1/p2.144.png"

	mock.ExpectQuery("SELECT (.+) FROM cache_entries ORDER BY last_accessed_at ASC, size_bytes DESC").
		WillReturnRows(cacheEntryRows(oldest, newest))

	entries, err := repo.EvictionCandidates(context.Background(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Key != oldest.Key {
		t.Errorf("expected %s first, got %s", oldest.Key, entries[0].Key)
	}
}

func TestCacheRepository_ExpiredEntries_PassesCutoff(t *testing.T) {
	repo, mock, db := newTestCacheRepo(t)
	defer db.Close()

	cutoff := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT (.+) FROM cache_entries WHERE last_accessed_at").
		WithArgs(cutoff).
		WillReturnRows(cacheEntryRows())

	entries, err := repo.ExpiredEntries(context.Background(), cutoff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}
}

func TestCacheRepository_TotalSize_Success(t *testing.T) {
	repo, mock, db := newTestCacheRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT COALESCE").
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(int64(123456)))

	total, err := repo.TotalSize(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 123456 {
		t.Errorf("expected 123456, got %d", total)
	}
}

func TestCacheRepository_CountBySHA256_Success(t *testing.T) {
	repo, mock, db := newTestCacheRepo(t)
	defer db.Close()

	digest := testCacheEntry().SHA256

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(digest).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repo.CountBySHA256(context.Background(), digest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2, got %d", count)
	}
}

func TestCacheRepository_DistinctDigests_Success(t *testing.T) {
	repo, mock, db := newTestCacheRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT DISTINCT sha256").
		WillReturnRows(sqlmock.NewRows([]string{"sha256"}).AddRow("aa11").AddRow("bb22"))

	digests, err := repo.DistinctDigests(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(digests) != 2 {
		t.Fatalf("expected 2 digests, got %d", len(digests))
	}
}

func TestCacheRepository_QueryError_Wrapped(t *testing.T) {
	repo, mock, db := newTestCacheRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM cache_entries").
		WillReturnError(errors.New("db is locked"))

	_, err := repo.AllEntries(context.Background())
	if !errors.Is(err, ErrExecutingQuery) {
		t.Fatalf("expected ErrExecutingQuery, got %v", err)
	}
}
