package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-fit-keeper/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// LocalRecordRepository is the low-level repository for fitness data records
// stored in the on-device SQLite database.
type LocalRecordRepository interface {
	SaveRecord(ctx context.Context, record models.Record) error
	GetRecord(ctx context.Context, userID string, key models.RecordKey) (models.Record, error)
	GetAllRecords(ctx context.Context, userID string) ([]models.Record, error)
	GetRecordsByCategory(ctx context.Context, userID string, category models.DataCategory) ([]models.Record, error)
	GetDirtyRecords(ctx context.Context, userID string) ([]models.Record, error)
	MarkSynced(ctx context.Context, userID string, key models.RecordKey, syncedAt time.Time) error
	DeleteRecord(ctx context.Context, userID string, key models.RecordKey) error
	PurgeUserRecords(ctx context.Context, userID string) error
}

// KVStateRepository persists opaque engine state blobs (operation queue,
// delta-sync cursors, sessions, migration checkpoints) keyed by string.
type KVStateRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// ConflictAuditRepository records every detected sync conflict and its
// resolution for later inspection.
type ConflictAuditRepository interface {
	SaveConflict(ctx context.Context, conflict models.ConflictRecord) error
	GetPendingConflicts(ctx context.Context, userID string) ([]models.ConflictRecord, error)
	GetAllConflicts(ctx context.Context, userID string) ([]models.ConflictRecord, error)
	ResolveConflict(ctx context.Context, conflictID string, winner models.ConflictWinner) error
}
