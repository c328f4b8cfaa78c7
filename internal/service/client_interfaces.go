// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-fit-keeper/models"
)

// QueueService is the durable FIFO queue of offline operations. Entries are
// persisted to the local state store before Enqueue returns, so an accepted
// operation survives a crash between enqueue and execution.
type QueueService interface {
	// Load restores the queue from the local state store. Operations found
	// in the processing state are reset to pending. Missing or corrupt
	// stored state resets the queue to empty; Load never fails for either.
	Load(ctx context.Context) error

	// Enqueue appends the operation and persists the queue before
	// returning. Operations with the Critical flag additionally signal
	// the kick channel so the drain loop runs without waiting for the
	// next scheduled pass.
	Enqueue(ctx context.Context, op models.OperationRecord) error

	// Update replaces the stored operation with the same ID and persists
	// the queue. The drain loop uses it to publish retry-count and status
	// transitions.
	Update(ctx context.Context, op models.OperationRecord) error

	// Remove deletes the operations with the given ids and persists the
	// queue. Unknown ids are ignored.
	Remove(ctx context.Context, ids ...string) error

	// Pending returns the operations eligible for execution, in FIFO order.
	Pending() []models.OperationRecord

	// Failed returns the operations that exhausted their retry budget.
	// They are kept for user attention but never executed again.
	Failed() []models.OperationRecord

	// Len returns the number of pending operations.
	Len() int

	// Kick returns the channel signalled when a critical operation is
	// enqueued. The channel has a buffer of one; signals coalesce.
	Kick() <-chan struct{}
}

// ExecutorService executes one queued operation against the remote store,
// applying the retry backoff delay derived from the operation's RetryCount.
type ExecutorService interface {
	// Execute replays op remotely. When op.RetryCount > 0 it first sleeps
	// min(BaseDelay × 2^(RetryCount−1), MaxDelay); the sleep is cut short
	// by context cancellation. A nil return means the remote store
	// confirmed the mutation and the local copy was marked synced.
	Execute(ctx context.Context, op models.OperationRecord) error
}

// WriteResult reports how a database-first write propagated.
type WriteResult struct {
	// Queued is true when the remote call failed with a network-kind
	// error and the operation was placed on the durable queue instead.
	Queued bool

	// OperationID identifies the queued operation, empty when the write
	// reached the remote store directly.
	OperationID string
}

// CoordinatorService is the database-first synchronization coordinator:
// every write lands locally first, then propagates to the remote store
// directly or through the durable queue.
type CoordinatorService interface {
	// SyncToRemote stamps the record with refreshed sync metadata, saves
	// it locally, and attempts the direct remote upsert. A network-kind
	// remote failure enqueues the operation and returns a queued
	// WriteResult with a nil error; any other failure kind is returned
	// to the caller unqueued.
	SyncToRemote(ctx context.Context, record models.Record) (WriteResult, error)

	// SyncFromRemote returns the record, serving the local copy while its
	// last remote read is younger than the configured cache TTL. On a
	// stale cache it fetches remotely, reconciles divergent copies via
	// the conflict service, persists the winner and returns it. On a
	// network-kind fetch failure it falls back to the local copy when one
	// exists. Concurrent syncs of the same record return
	// ErrSyncInProgress to all but one caller.
	SyncFromRemote(ctx context.Context, userID string, key models.RecordKey) (models.Record, error)

	// Delete soft-deletes the record locally and propagates the tombstone
	// remotely with the same queue fallback as SyncToRemote.
	Delete(ctx context.Context, userID string, key models.RecordKey) (WriteResult, error)
}

// ConflictService resolves divergent copies of one record and keeps the
// audit trail of every resolution.
type ConflictService interface {
	// Resolve picks the winning copy according to the configured strategy
	// and records the outcome in the conflict audit log. Under the auto
	// strategy the copy with the strictly newer LastModifiedAt wins; ties
	// and missing timestamps resolve in favor of the remote copy. The
	// manual strategy keeps the remote copy and leaves the audit entry
	// pending explicit acknowledgement.
	Resolve(ctx context.Context, local, remote models.Record) (models.Record, error)

	// PendingConflicts lists manual-strategy conflicts awaiting
	// acknowledgement for the user.
	PendingConflicts(ctx context.Context, userID string) ([]models.ConflictRecord, error)

	// Acknowledge settles a pending conflict with the caller's chosen
	// winner.
	Acknowledge(ctx context.Context, conflictID string, winner models.ConflictWinner) error
}

// DeltaService tracks per-category sync watermarks and performs
// incremental downloads of remotely changed records.
type DeltaService interface {
	// Refresh fetches the records of one category modified remotely at or
	// after the stored watermark, reconciles them against local copies,
	// and advances the watermark to the greatest observed modification
	// time. Records whose payload checksum matches the stored one are
	// skipped without a local write.
	Refresh(ctx context.Context, userID string, category models.DataCategory) (models.SyncedItems, error)

	// LastSync returns the stored watermark per category for the user.
	// Categories never synchronized are absent from the map.
	LastSync(ctx context.Context, userID string) (map[models.DataCategory]time.Time, error)
}

// ConnectivityMonitor observes remote reachability with periodic probes
// and notifies subscribers on state transitions.
type ConnectivityMonitor interface {
	// Start launches the probe loop. It returns immediately; probing
	// stops when ctx is cancelled or Stop is called.
	Start(ctx context.Context)

	// Stop terminates the probe loop.
	Stop()

	// Online reports the last observed reachability.
	Online() bool

	// Subscribe registers a callback invoked on every reachability
	// transition. Callbacks run on the monitor goroutine and must not
	// block.
	Subscribe(fn func(online bool))
}

// SessionService manages the locally persisted authentication state.
// Token issuance belongs to the remote auth layer; this service only
// stores tokens, extracts the user id, and fires sign-in side effects.
type SessionService interface {
	// SignIn stores the token, extracts the user id from its subject
	// claim, persists the session and arms the remote store with the
	// token. Registered sign-in callbacks fire afterwards.
	SignIn(ctx context.Context, token string) (models.Session, error)

	// SignOut clears the active session and the remote store token.
	// Queued operations keep their owner tags and drain on the owner's
	// next sign-in.
	SignOut(ctx context.Context) error

	// Restore reloads a persisted session at startup. Returns
	// ErrNoActiveSession when none is stored.
	Restore(ctx context.Context) (models.Session, error)

	// Active returns the current session; ok is false when signed out.
	Active() (session models.Session, ok bool)

	// OnSignIn registers a callback fired after every successful SignIn
	// or Restore.
	OnSignIn(fn func(ctx context.Context, session models.Session))
}

// SyncService orchestrates full synchronization cycles over the queue,
// the delta tracker and the coordinator.
type SyncService interface {
	// DrainQueue executes every pending operation once, in FIFO order.
	// Operations failing retryably are re-queued for the next drain;
	// operations out of retry budget are marked failed and listed in the
	// result. DrainQueue never returns an error for per-operation
	// failures.
	DrainQueue(ctx context.Context) (models.SyncResult, error)

	// SyncAll drains the queue and then refreshes every data category
	// for the user, in the fixed category order.
	SyncAll(ctx context.Context, userID string) (models.SyncResult, error)

	// Status snapshots the engine state for the control API and the
	// terminal UI.
	Status(ctx context.Context) (models.EngineStatus, error)
}

// AppInfoService exposes build metadata about the running application.
type AppInfoService interface {
	// GetAppVersion returns the configured application version string.
	GetAppVersion(ctx context.Context) string
}

// MigrationService runs the one-shot local-to-remote migration pipeline.
type MigrationService interface {
	// Migrate runs the full weighted step pipeline for the user. It
	// fails fast with ErrNoLocalData when the local store holds no
	// records for the user, and with ErrMigrationAlreadyRunning when an
	// attempt is already in flight. The returned context carries the
	// final status and the accumulated error and warning lists.
	Migrate(ctx context.Context, userID string) (models.MigrationContext, error)

	// Resume reloads a checkpointed attempt and continues from the first
	// step not yet completed.
	Resume(ctx context.Context, migrationID string) (models.MigrationContext, error)

	// Rollback undoes the remote writes of a failed attempt by replaying
	// the rollback handlers of its completed upload steps. Rollback
	// failures accumulate as warnings.
	Rollback(ctx context.Context, migrationID string) (models.MigrationContext, error)

	// Progress returns the latest progress snapshot of an attempt.
	Progress(ctx context.Context, migrationID string) (models.MigrationProgress, error)

	// Subscribe registers a callback invoked after every step transition
	// of any attempt.
	Subscribe(fn func(models.MigrationProgress))
}
