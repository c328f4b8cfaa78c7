// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating with
// the remote fitness data store.
//
// The primary abstraction is [RemoteStore], which decouples the service layer
// from the underlying backend. The package ships two implementations: an
// HTTP/REST one speaking the PostgREST dialect ([NewRESTRemoteStore]) and a
// direct Postgres one ([NewPostgresRemoteStore]) for self-hosted deployments.
//
// Every remote failure is wrapped into a [models.SyncError] carrying a
// structured [models.ErrorKind], so that the retry executor can use
// [models.KindOf] to decide between retrying and surfacing the failure.
package adapter

import (
	"context"
	"time"

	"github.com/MKhiriev/go-fit-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_store_mock.go -package=mock

// RemoteStore defines backend-agnostic access to the remote copy of the user's
// fitness data. Implementations are responsible for serialisation,
// authentication header management, and mapping backend-level errors to
// [models.SyncError] values with the correct [models.ErrorKind].
type RemoteStore interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent authenticated requests. It should be called immediately
	// after a successful sign-in and cleared on sign-out.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Upsert writes one record to the remote table for its category,
	// inserting or replacing by the record key. Deletions propagate through
	// Upsert too: a record with Deleted set becomes a remote tombstone.
	Upsert(ctx context.Context, record models.Record) error

	// Fetch retrieves all remote records of one category for the user,
	// including tombstones, so that remote deletions can be applied locally.
	Fetch(ctx context.Context, userID string, category models.DataCategory) ([]models.Record, error)

	// FetchUpdatedSince retrieves only the records of one category whose
	// remote modification time is at or after since. Used by the delta
	// tracker to avoid full downloads on every cycle.
	FetchUpdatedSince(ctx context.Context, userID string, category models.DataCategory, since time.Time) ([]models.Record, error)

	// Delete marks one remote record as deleted without removing its row,
	// so other devices observe the tombstone.
	Delete(ctx context.Context, userID string, key models.RecordKey) error

	// DeleteAllForUser removes every remote row of every category for the
	// user. Only the migration engine calls this, during rollback.
	DeleteAllForUser(ctx context.Context, userID string) error

	// Ping probes remote reachability. A nil return means the backend
	// answered; the connectivity monitor treats any error as offline.
	Ping(ctx context.Context) error
}
