package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-fit-keeper/internal/config"
	"github.com/MKhiriev/go-fit-keeper/internal/logger"
)

// ClientStorages groups all local storage repositories into a single value
// that can be passed around the service layer.
type ClientStorages struct {
	// RecordRepository is the SQLite-backed repository for fitness data
	// records stored locally on the device.
	RecordRepository LocalRecordRepository

	// StateRepository persists engine state blobs: the durable operation
	// queue, delta-sync cursors, the active session and migration
	// checkpoints.
	StateRepository KVStateRepository

	// ConflictRepository records detected sync conflicts for auditing.
	ConflictRepository ConflictAuditRepository
}

// NewClientStorages initialises the local storage layer using the supplied
// configuration and logger. It performs the following steps:
//  1. Opens an SQLite connection to the file path specified in cfg.DB.DSN,
//     creating the database file if it does not yet exist.
//  2. Runs pending schema migrations via [DB.MigrateLocal].
//  3. Constructs and returns a [ClientStorages] value wired to fresh
//     repositories sharing the same connection.
//
// Returns an error if the database connection cannot be established or if
// migration fails.
func NewClientStorages(cfg config.Storage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(context.Background(), cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.MigrateLocal(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		RecordRepository:   NewLocalRecordRepository(db, logger),
		StateRepository:    NewKVStateRepository(db, logger),
		ConflictRepository: NewConflictAuditRepository(db, logger),
	}, nil
}
