package models

import "time"

// EngineStatus is the snapshot served by the local control API and
// rendered by the terminal status screen.
type EngineStatus struct {
	// Online reports the last observed reachability of the remote store.
	Online bool `json:"online"`

	// ActiveUserID is the signed-in user, empty when signed out.
	ActiveUserID string `json:"active_user_id,omitempty"`

	// QueueLength is the number of operations waiting in the durable
	// queue, failed operations excluded.
	QueueLength int `json:"queue_length"`

	// FailedOperations lists operations that exhausted their retry
	// budget and await user attention.
	FailedOperations []OperationRecord `json:"failed_operations,omitempty"`

	// LastSync maps each data category to its delta watermark.
	LastSync map[DataCategory]time.Time `json:"last_sync,omitempty"`

	// PendingConflicts is the number of manual-strategy conflicts
	// awaiting explicit resolution.
	PendingConflicts int `json:"pending_conflicts"`
}

// SyncTriggerResponse is returned by the control API when a manual
// synchronization is requested.
type SyncTriggerResponse struct {
	// Result carries the counters and error list of the cycle.
	Result SyncResult `json:"result"`
}

// MigrationStartRequest asks the control API to begin or resume a
// migration for a user.
type MigrationStartRequest struct {
	// UserID is the owner of the local data to migrate.
	UserID string `json:"user_id"`

	// ResumeID optionally names a checkpointed attempt to resume
	// instead of starting a fresh one.
	ResumeID string `json:"resume_id,omitempty"`
}

// MigrationStartResponse acknowledges an accepted migration request.
type MigrationStartResponse struct {
	// MigrationID identifies the started or resumed attempt.
	MigrationID string `json:"migration_id"`

	// Status is the attempt's lifecycle state at response time.
	Status MigrationStatus `json:"status"`
}
