// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package migrations applies embedded schema migrations to the local
// SQLite database and, when the direct Postgres backend is used, to the
// remote database as well.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed local/*.sql remote/*.sql
var embedMigrations embed.FS

// MigrateLocal brings the on-device SQLite schema up to date.
func MigrateLocal(db *sql.DB) error {
	return up(db, "sqlite3", "local")
}

// MigrateRemote brings the remote Postgres schema up to date. Only used
// with the direct Postgres backend; REST deployments own their schema.
func MigrateRemote(db *sql.DB) error {
	return up(db, "pgx", "remote")
}

func up(db *sql.DB, dialect string, dir string) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
