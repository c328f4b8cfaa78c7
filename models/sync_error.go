// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"fmt"
)

// ErrorKind is the structured classification of a failed remote
// operation. It is produced at the remote-call boundary (HTTP status
// mapping in the adapter, driver error codes in the store) so that
// retry policy never depends on error message text.
type ErrorKind string

const (
	// KindNetwork covers connectivity loss and timeouts. Retryable.
	KindNetwork ErrorKind = "network"

	// KindValidation covers malformed or missing required data.
	// Not retryable; surfaced to the caller immediately.
	KindValidation ErrorKind = "validation"

	// KindConflict marks a divergence detected during reconciliation.
	// Resolved automatically, not retried.
	KindConflict ErrorKind = "conflict"

	// KindPermission marks writes rejected by the remote store.
	// Not retryable.
	KindPermission ErrorKind = "permission"

	// KindQuota marks remote rate or storage limits. Not retryable.
	KindQuota ErrorKind = "quota"

	// KindUnknown is the catch-all. Treated as retryable so that
	// unclassified transient failures never drop queued work.
	KindUnknown ErrorKind = "unknown"
)

// Retryable reports whether operations failing with this kind should
// be re-queued for another attempt.
func (k ErrorKind) Retryable() bool {
	return k == KindNetwork || k == KindUnknown
}

// SyncError wraps a remote-call failure together with its classification
// and the operation context that produced it.
type SyncError struct {
	// Kind is the structured classification of the failure.
	Kind ErrorKind

	// Op names the remote operation that failed (e.g. "upsert", "fetch").
	Op string

	// Category is the data category the operation targeted, when known.
	Category DataCategory

	// Err is the underlying transport or driver error.
	Err error
}

// Error implements the error interface.
func (e *SyncError) Error() string {
	if e.Category != "" {
		return fmt.Sprintf("%s %s: %s: %v", e.Op, e.Category, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *SyncError) Unwrap() error {
	return e.Err
}

// NewSyncError constructs a classified SyncError.
func NewSyncError(kind ErrorKind, op string, category DataCategory, err error) *SyncError {
	return &SyncError{Kind: kind, Op: op, Category: category, Err: err}
}

// KindOf extracts the ErrorKind from err. Errors that did not originate
// at the remote boundary classify as KindUnknown; nil classifies as "".
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}

	var syncErr *SyncError
	if errors.As(err, &syncErr) {
		return syncErr.Kind
	}

	return KindUnknown
}

// IsNetworkError reports whether err carries the network classification.
func IsNetworkError(err error) bool {
	return KindOf(err) == KindNetwork
}
