package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-fit-keeper/internal/logger"
	"github.com/MKhiriev/go-fit-keeper/models"
)

func newTestConflictRepo(t *testing.T) (*conflictAuditRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &conflictAuditRepository{
		DB:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func conflictColumns() []string {
	return []string{
		"id", "user_id", "category", "category_id", "local_modified_at",
		"remote_modified_at", "winner", "strategy", "detected_at", "pending",
	}
}

func TestSaveConflict_Success(t *testing.T) {
	repo, mock, db := newTestConflictRepo(t)
	defer db.Close()

	conflict := models.ConflictRecord{
		ID:               "c-1",
		UserID:           "user-1",
		Category:         models.CategoryWorkouts,
		CategoryID:       "w-1",
		LocalModifiedAt:  time.Now().Add(-time.Minute),
		RemoteModifiedAt: time.Now(),
		Winner:           models.WinnerRemote,
		Strategy:         models.StrategyAuto,
		DetectedAt:       time.Now(),
	}

	mock.ExpectExec("INSERT INTO conflict_audit").
		WithArgs(
			conflict.ID, conflict.UserID, "workouts", conflict.CategoryID,
			sqlmock.AnyArg(), sqlmock.AnyArg(), "remote", "auto",
			sqlmock.AnyArg(), false,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SaveConflict(context.Background(), conflict); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetPendingConflicts_Success(t *testing.T) {
	repo, mock, db := newTestConflictRepo(t)
	defer db.Close()

	rows := sqlmock.NewRows(conflictColumns()).
		AddRow("c-1", "user-1", "workouts", "w-1", time.Now(), time.Now(), "", "manual", time.Now(), true)

	mock.ExpectQuery("SELECT(.|\n)+FROM conflict_audit").
		WithArgs("user-1").
		WillReturnRows(rows)

	conflicts, err := repo.GetPendingConflicts(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(conflicts) != 1 {
		t.Fatalf("expected 1 pending conflict, got %d", len(conflicts))
	}
	if conflicts[0].Strategy != models.StrategyManual {
		t.Errorf("expected manual strategy, got %s", conflicts[0].Strategy)
	}
	if !conflicts[0].Pending {
		t.Error("expected conflict to be pending")
	}
}

func TestResolveConflict_Success(t *testing.T) {
	repo, mock, db := newTestConflictRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE conflict_audit").
		WithArgs("local", "c-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.ResolveConflict(context.Background(), "c-1", models.WinnerLocal)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestResolveConflict_NotFound(t *testing.T) {
	repo, mock, db := newTestConflictRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE conflict_audit").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.ResolveConflict(context.Background(), "missing", models.WinnerRemote)
	if !errors.Is(err, ErrConflictNotFound) {
		t.Fatalf("expected ErrConflictNotFound, got %v", err)
	}
}
