package store

import (
	"database/sql"

	"github.com/MKhiriev/go-fit-keeper/internal/logger"
	"github.com/MKhiriev/go-fit-keeper/migrations"
)

// DB wraps an open database handle together with the driver-specific error
// classifier and a logger. The same type backs both the local SQLite store
// and the direct Postgres remote backend.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// MigrateLocal applies the embedded SQLite schema migrations.
func (db *DB) MigrateLocal() error {
	return migrations.MigrateLocal(db.DB)
}

// MigrateRemote applies the embedded Postgres schema migrations.
func (db *DB) MigrateRemote() error {
	return migrations.MigrateRemote(db.DB)
}
