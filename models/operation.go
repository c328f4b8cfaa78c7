// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// OperationType defines the kind of mutation an enqueued operation
// replays against the remote store.
type OperationType string

const (
	// OpCreate inserts a record that does not yet exist remotely.
	OpCreate OperationType = "create"

	// OpUpdate overwrites the remote copy of an existing record.
	OpUpdate OperationType = "update"

	// OpDelete removes (soft-deletes) the remote copy of a record.
	OpDelete OperationType = "delete"
)

// Valid reports whether the operation type is one of the known values.
func (t OperationType) Valid() bool {
	return t == OpCreate || t == OpUpdate || t == OpDelete
}

// OperationStatus tracks an operation through the queue lifecycle.
type OperationStatus string

const (
	// StatusPending marks an operation waiting for execution.
	StatusPending OperationStatus = "pending"

	// StatusProcessing marks an operation currently being executed.
	// Operations found in this state on startup are reset to pending:
	// a crash mid-execution must not strand them.
	StatusProcessing OperationStatus = "processing"

	// StatusCompleted marks an operation whose remote call succeeded.
	StatusCompleted OperationStatus = "completed"

	// StatusFailed marks an operation that exhausted its retry budget.
	StatusFailed OperationStatus = "failed"
)

// Terminal reports whether the status is an end state.
func (s OperationStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// OperationRecord is one entry of the durable offline operation queue.
// Entries survive process restarts and are executed in FIFO order.
type OperationRecord struct {
	// ID is the unique identifier of the queued operation.
	ID string `json:"id"`

	// Type is the mutation kind to replay remotely.
	Type OperationType `json:"type"`

	// Category and CategoryID identify the affected record.
	Category   DataCategory `json:"category"`
	CategoryID string       `json:"category_id"`

	// UserID is the owner of the affected record.
	UserID string `json:"user_id"`

	// Payload is the record content captured at enqueue time.
	// Empty for delete operations.
	Payload []byte `json:"payload,omitempty"`

	// EnqueuedAt is the moment the operation entered the queue.
	EnqueuedAt time.Time `json:"enqueued_at"`

	// LastModifiedAt is the record modification time captured at
	// enqueue time, forwarded to the remote store for conflict checks.
	LastModifiedAt time.Time `json:"last_modified_at"`

	// Critical marks operations that should not wait for the next
	// scheduled drain: the engine drains immediately when online.
	Critical bool `json:"critical,omitempty"`

	// RetryCount is the number of executions attempted so far.
	// Persisted, so the retry budget survives restarts.
	RetryCount int `json:"retry_count"`

	// Status is the current queue lifecycle state.
	Status OperationStatus `json:"status"`

	// LastError describes the most recent failure, empty on success.
	LastError string `json:"last_error,omitempty"`
}

// RecordKey returns the identity of the record the operation targets.
func (o OperationRecord) RecordKey() RecordKey {
	return RecordKey{Category: o.Category, CategoryID: o.CategoryID}
}

// CanRetry reports whether the operation has retry budget left
// under the given ceiling.
func (o OperationRecord) CanRetry(maxRetries int) bool {
	return o.RetryCount < maxRetries
}
