// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// MigrationStatus tracks a migration attempt through its lifecycle.
type MigrationStatus string

const (
	// MigrationPending marks a created but not yet started attempt.
	MigrationPending MigrationStatus = "pending"

	// MigrationRunning marks an attempt executing its step list.
	MigrationRunning MigrationStatus = "running"

	// MigrationCompleted marks a fully successful attempt. Non-critical
	// step failures downgrade to warnings and still end here.
	MigrationCompleted MigrationStatus = "completed"

	// MigrationFailed marks an attempt aborted by a critical step that
	// exhausted its retry budget.
	MigrationFailed MigrationStatus = "failed"

	// MigrationRolledBack marks an attempt whose uploads were undone
	// after a failure.
	MigrationRolledBack MigrationStatus = "rolled_back"
)

// Terminal reports whether the status is an end state.
func (s MigrationStatus) Terminal() bool {
	return s == MigrationCompleted || s == MigrationFailed || s == MigrationRolledBack
}

// MigrationStep describes one weighted step of the migration pipeline.
// Handlers are registered separately in the engine; this type carries
// only the declarative attributes persisted with checkpoints.
type MigrationStep struct {
	// Name uniquely identifies the step within the pipeline.
	Name string `json:"name"`

	// Description is the human-readable progress message for the step.
	Description string `json:"description"`

	// Weight is the step's share of total progress, in (0,1].
	// The pipeline's weights sum to 1.0.
	Weight float64 `json:"weight"`

	// Retryable steps are re-attempted with backoff on failure.
	Retryable bool `json:"retryable"`

	// Critical steps abort the whole migration once retries are
	// exhausted; non-critical failures downgrade to warnings.
	Critical bool `json:"critical"`
}

// MigrationContext is the full state of one migration attempt. It is
// persisted to the local state store after every completed step so an
// interrupted attempt can be resumed from its last checkpoint.
type MigrationContext struct {
	// MigrationID uniquely identifies the attempt.
	MigrationID string `json:"migration_id"`

	// UserID is the owner of the data being migrated.
	UserID string `json:"user_id"`

	// StartTime is the moment the attempt began.
	StartTime time.Time `json:"start_time"`

	// Status is the current lifecycle state of the attempt.
	Status MigrationStatus `json:"status"`

	// CurrentStep names the step executing or about to execute.
	CurrentStep string `json:"current_step,omitempty"`

	// CompletedSteps lists steps that finished successfully, in order.
	CompletedSteps []string `json:"completed_steps,omitempty"`

	// FailedSteps lists steps that exhausted their retry budget.
	FailedSteps []string `json:"failed_steps,omitempty"`

	// BackupKey is the local state key holding the pre-migration
	// snapshot, empty when backups are disabled.
	BackupKey string `json:"backup_key,omitempty"`

	// Uploaded counts the records written remotely per category,
	// used by the verify step and by rollback.
	Uploaded map[DataCategory]int `json:"uploaded,omitempty"`

	// Errors accumulates step failures that aborted the attempt.
	Errors []string `json:"errors,omitempty"`

	// Warnings accumulates non-critical failures, including rollback
	// failures, which never abort the attempt by themselves.
	Warnings []string `json:"warnings,omitempty"`
}

// StepCompleted reports whether the named step already finished in a
// previous run of this attempt. Resume uses it to skip ahead.
func (c *MigrationContext) StepCompleted(name string) bool {
	for _, done := range c.CompletedSteps {
		if done == name {
			return true
		}
	}
	return false
}

// MigrationProgress is the snapshot delivered to progress subscribers
// after every step transition.
type MigrationProgress struct {
	// MigrationID identifies the attempt the snapshot belongs to.
	MigrationID string `json:"migration_id"`

	// Status is the attempt's lifecycle state at snapshot time.
	Status MigrationStatus `json:"status"`

	// CurrentStep names the step the pipeline is working on.
	CurrentStep string `json:"current_step,omitempty"`

	// Percentage is the weighted completion in [0,100]. It is
	// non-decreasing across successive snapshots of one attempt.
	Percentage float64 `json:"percentage"`

	// Message is the human-readable description of the current step.
	Message string `json:"message,omitempty"`

	// Errors and Warnings mirror the attempt's accumulated lists.
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// LocalSnapshot is the full export of one user's local data consumed by
// the migration pipeline. The pipeline fails fast when the snapshot is
// empty: migrating a user with no local data is a caller mistake.
type LocalSnapshot struct {
	// UserID owns every record in the snapshot.
	UserID string `json:"user_id"`

	// Records groups the exported records by category.
	Records map[DataCategory][]Record `json:"records"`

	// ExportedAt is the moment the snapshot was taken.
	ExportedAt time.Time `json:"exported_at"`
}

// Empty reports whether the snapshot contains no records at all.
func (s LocalSnapshot) Empty() bool {
	for _, records := range s.Records {
		if len(records) > 0 {
			return false
		}
	}
	return true
}

// Count returns the total number of records across all categories.
func (s LocalSnapshot) Count() int {
	total := 0
	for _, records := range s.Records {
		total += len(records)
	}
	return total
}
