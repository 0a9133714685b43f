package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/MKhiriev/go-digi-lib/internal/logger"
	"github.com/MKhiriev/go-digi-lib/models"
)

func newTestQueueRepo(t *testing.T) (*queueRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &queueRepository{
		DB:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func testQueuedAction() models.QueuedAction {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	return models.QueuedAction{
		ID:            "0195fced-1111-7aaa-bbbb-cccccccccccc",
		Type:          models.ActionAnnotation,
		EntityID:      "doc-1",
		Payload:       []byte(`{"text":"margin note"}`),
		BaseVersion:   4,
		Status:        models.StatusPending,
		Attempts:      0,
		NextAttemptAt: now,
		CreatedAt:     now,
	}
}

func queuedActionRows(actions ...models.QueuedAction) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "type", "entity_id", "payload", "base_version", "status",
		"attempts", "next_attempt_at", "created_at", "last_error",
	})
	for _, a := range actions {
		// last_error is nullable; hand the driver a plain string or nil
		var lastErr driver.Value
		if a.LastError != nil {
			lastErr = *a.LastError
		}
		rows.AddRow(a.ID, int(a.Type), a.EntityID, a.Payload, a.BaseVersion,
			int(a.Status), a.Attempts, a.NextAttemptAt, a.CreatedAt, lastErr)
	}
	return rows
}

func TestQueueRepository_SaveAction_Success(t *testing.T) {
	repo, mock, db := newTestQueueRepo(t)
	defer db.Close()

	action := testQueuedAction()

	mock.ExpectExec("INSERT INTO action_queue").
		WithArgs(action.ID, action.Type, action.EntityID, action.Payload,
			action.BaseVersion, action.Status, action.Attempts,
			action.NextAttemptAt, action.CreatedAt, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SaveAction(context.Background(), action); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestQueueRepository_GetAction_Success(t *testing.T) {
	repo, mock, db := newTestQueueRepo(t)
	defer db.Close()

	want := testQueuedAction()

	mock.ExpectQuery("SELECT (.+) FROM action_queue WHERE id").
		WithArgs(want.ID).
		WillReturnRows(queuedActionRows(want))

	got, err := repo.GetAction(context.Background(), want.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != want.ID {
		t.Errorf("expected id %s, got %s", want.ID, got.ID)
	}
	if got.Type != models.ActionAnnotation {
		t.Errorf("expected annotation type, got %d", got.Type)
	}
	if got.LastError != nil {
		t.Errorf("expected nil LastError, got %v", *got.LastError)
	}
}

func TestQueueRepository_GetAction_NotFound(t *testing.T) {
	repo, mock, db := newTestQueueRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM action_queue WHERE id").
		WithArgs("missing").
		WillReturnRows(queuedActionRows())

	_, err := repo.GetAction(context.Background(), "missing")
	if !errors.Is(err, ErrActionNotFound) {
		t.Fatalf("expected ErrActionNotFound, got %v", err)
	}
}

func TestQueueRepository_DueActions_Success(t *testing.T) {
	repo, mock, db := newTestQueueRepo(t)
	defer db.Close()

	now := time.Now()
	action := testQueuedAction()

	mock.ExpectQuery("SELECT (.+) FROM action_queue WHERE status").
		WithArgs(models.StatusPending, now).
		WillReturnRows(queuedActionRows(action))

	actions, err := repo.DueActions(context.Background(), now, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(actions) != 1 {
		t.Fatalf("expected 1 action, got %d", len(actions))
	}
	if actions[0].EntityID != "doc-1" {
		t.Errorf("expected entity doc-1, got %s", actions[0].EntityID)
	}
}

func TestQueueRepository_ActionsByEntity_Success(t *testing.T) {
	repo, mock, db := newTestQueueRepo(t)
	defer db.Close()

	action := testQueuedAction()

	mock.ExpectQuery("SELECT (.+) FROM action_queue WHERE entity_id").
		WithArgs("doc-1").
		WillReturnRows(queuedActionRows(action))

	actions, err := repo.ActionsByEntity(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(actions) != 1 {
		t.Fatalf("expected 1 action, got %d", len(actions))
	}
}

func TestQueueRepository_MarkInFlight_ExpandsIDs(t *testing.T) {
	repo, mock, db := newTestQueueRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE action_queue SET status").
		WithArgs(models.StatusInFlight, "id-1", "id-2").
		WillReturnResult(sqlmock.NewResult(0, 2))

	if err := repo.MarkInFlight(context.Background(), []string{"id-1", "id-2"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestQueueRepository_MarkInFlight_NoIDs(t *testing.T) {
	repo, mock, db := newTestQueueRepo(t)
	defer db.Close()

	// no expectations registered: the call must not touch the database
	if err := repo.MarkInFlight(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestQueueRepository_MarkSucceeded_DeletesRow(t *testing.T) {
	repo, mock, db := newTestQueueRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM action_queue").
		WithArgs("id-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.MarkSucceeded(context.Background(), "id-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestQueueRepository_Reschedule_Success(t *testing.T) {
	repo, mock, db := newTestQueueRepo(t)
	defer db.Close()

	next := time.Now().Add(4 * time.Second)

	mock.ExpectExec("UPDATE action_queue SET").
		WithArgs(models.StatusPending, 2, next, "connection refused", "id-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Reschedule(context.Background(), "id-1", 2, next, "connection refused"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestQueueRepository_Reschedule_NotFound(t *testing.T) {
	repo, mock, db := newTestQueueRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE action_queue SET").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Reschedule(context.Background(), "missing", 1, time.Now(), "boom")
	if !errors.Is(err, ErrActionNotFound) {
		t.Fatalf("expected ErrActionNotFound, got %v", err)
	}
}

func TestQueueRepository_MarkFailed_Success(t *testing.T) {
	repo, mock, db := newTestQueueRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE action_queue SET").
		WithArgs(models.StatusFailed, 8, "server rejected action", "id-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.MarkFailed(context.Background(), "id-1", 8, "server rejected action"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestQueueRepository_ResetInFlight_ReturnsCount(t *testing.T) {
	repo, mock, db := newTestQueueRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE action_queue").
		WithArgs(models.StatusPending, models.StatusInFlight).
		WillReturnResult(sqlmock.NewResult(0, 3))

	reset, err := repo.ResetInFlight(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reset != 3 {
		t.Errorf("expected 3 reset actions, got %d", reset)
	}
}

func TestQueueRepository_FailedActions_Success(t *testing.T) {
	repo, mock, db := newTestQueueRepo(t)
	defer db.Close()

	failed := testQueuedAction()
	failed.Status = models.StatusFailed
	reason := "version conflict"
	failed.LastError = &reason

	mock.ExpectQuery("SELECT (.+) FROM action_queue WHERE status").
		WithArgs(models.StatusFailed).
		WillReturnRows(queuedActionRows(failed))

	actions, err := repo.FailedActions(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(actions) != 1 {
		t.Fatalf("expected 1 action, got %d", len(actions))
	}
	if actions[0].LastError == nil || *actions[0].LastError != reason {
		t.Errorf("expected LastError %q, got %v", reason, actions[0].LastError)
	}
}

func TestQueueRepository_RetryFailed_Success(t *testing.T) {
	repo, mock, db := newTestQueueRepo(t)
	defer db.Close()

	now := time.Now()

	mock.ExpectExec("UPDATE action_queue SET").
		WithArgs(models.StatusPending, now, "id-1", models.StatusFailed).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.RetryFailed(context.Background(), "id-1", now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestQueueRepository_RetryFailed_NotFailed(t *testing.T) {
	repo, mock, db := newTestQueueRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE action_queue SET").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.RetryFailed(context.Background(), "id-1", time.Now())
	if !errors.Is(err, ErrActionNotFound) {
		t.Fatalf("expected ErrActionNotFound, got %v", err)
	}
}

func TestQueueRepository_RebaseEntity_Success(t *testing.T) {
	repo, mock, db := newTestQueueRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE action_queue SET base_version").
		WithArgs(int64(9), "doc-1").
		WillReturnResult(sqlmock.NewResult(0, 3))

	if err := repo.RebaseEntity(context.Background(), "doc-1", 9); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestQueueRepository_DeleteEntity_ReturnsCount(t *testing.T) {
	repo, mock, db := newTestQueueRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM action_queue WHERE entity_id").
		WithArgs("doc-1").
		WillReturnResult(sqlmock.NewResult(0, 2))

	deleted, err := repo.DeleteEntity(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != 2 {
		t.Errorf("expected 2 deleted, got %d", deleted)
	}
}

func TestQueueRepository_Counts_AggregatesStatuses(t *testing.T) {
	repo, mock, db := newTestQueueRepo(t)
	defer db.Close()

	oldest := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT status, COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow(int(models.StatusPending), 5).
			AddRow(int(models.StatusInFlight), 1).
			AddRow(int(models.StatusFailed), 2))
	mock.ExpectQuery("SELECT MIN").
		WithArgs(models.StatusPending).
		WillReturnRows(sqlmock.NewRows([]string{"min"}).AddRow(oldest))

	stats, err := repo.Counts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Pending != 5 || stats.InFlight != 1 || stats.Failed != 2 {
		t.Errorf("unexpected counts: %+v", stats)
	}
	if stats.OldestPending == nil || !stats.OldestPending.Equal(oldest) {
		t.Errorf("expected oldest %v, got %v", oldest, stats.OldestPending)
	}
}

func TestQueueRepository_Counts_EmptyQueue(t *testing.T) {
	repo, mock, db := newTestQueueRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT status, COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}))
	mock.ExpectQuery("SELECT MIN").
		WithArgs(models.StatusPending).
		WillReturnRows(sqlmock.NewRows([]string{"min"}).AddRow(nil))

	stats, err := repo.Counts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Pending != 0 || stats.InFlight != 0 || stats.Failed != 0 {
		t.Errorf("expected zero counts, got %+v", stats)
	}
	if stats.OldestPending != nil {
		t.Errorf("expected nil OldestPending, got %v", stats.OldestPending)
	}
}
