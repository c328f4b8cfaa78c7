// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ConflictStrategy selects how concurrent edits of the same record
// are reconciled when local and remote copies diverge.
type ConflictStrategy string

const (
	// StrategyAuto applies last-write-wins on LastModifiedAt:
	// the strictly newer copy wins, ties and missing timestamps
	// resolve in favor of the remote copy.
	StrategyAuto ConflictStrategy = "auto"

	// StrategyLocalWins always keeps the local copy.
	StrategyLocalWins ConflictStrategy = "local_wins"

	// StrategyRemoteWins always keeps the remote copy.
	StrategyRemoteWins ConflictStrategy = "remote_wins"

	// StrategyManual keeps the remote copy but records the conflict
	// for explicit resolution by the caller.
	StrategyManual ConflictStrategy = "manual"
)

// Valid reports whether the strategy is one of the known values.
func (s ConflictStrategy) Valid() bool {
	switch s {
	case StrategyAuto, StrategyLocalWins, StrategyRemoteWins, StrategyManual:
		return true
	}
	return false
}

// ConflictWinner names which copy of a record was kept.
type ConflictWinner string

const (
	WinnerLocal  ConflictWinner = "local"
	WinnerRemote ConflictWinner = "remote"
)

// ConflictRecord is the audit entry produced every time two copies of
// a record diverged and one side was chosen. Conflicts resolved under
// StrategyManual additionally stay pending until acknowledged.
type ConflictRecord struct {
	// ID is the unique identifier of the conflict entry.
	ID string `json:"id"`

	// UserID owns the conflicting record.
	UserID string `json:"user_id"`

	// Category and CategoryID identify the conflicting record.
	Category   DataCategory `json:"category"`
	CategoryID string       `json:"category_id"`

	// LocalModifiedAt and RemoteModifiedAt are the two competing
	// modification timestamps at resolution time.
	LocalModifiedAt  time.Time `json:"local_modified_at"`
	RemoteModifiedAt time.Time `json:"remote_modified_at"`

	// Winner names the copy that was kept.
	Winner ConflictWinner `json:"winner"`

	// Strategy is the resolution strategy that produced the outcome.
	Strategy ConflictStrategy `json:"strategy"`

	// DetectedAt is the moment the divergence was observed.
	DetectedAt time.Time `json:"detected_at"`

	// Pending marks manual-strategy conflicts awaiting explicit
	// resolution. Auto-resolved conflicts are never pending.
	Pending bool `json:"pending"`
}
