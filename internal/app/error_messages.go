// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// go-fit-keeper control API handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or log entries to describe the outcome of an operation.
// Keeping them in one place ensures consistent wording throughout the API.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails basic validation (e.g. missing required fields).
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInternalServerError is returned when an unexpected failure occurs
	// that the caller cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgNoActiveSession is returned when an operation requires a signed-in
	// user but the engine has no session.
	MsgNoActiveSession = "no active session"

	// MsgNoUserIDProvided is returned when a migration request names neither
	// a user to migrate nor a checkpointed attempt to resume.
	MsgNoUserIDProvided = "no user ID provided"

	// MsgSessionFailed is returned when a sign-in token cannot be verified
	// or the session cannot be persisted.
	MsgSessionFailed = "error establishing session"

	// MsgSignOutFailed is returned when the persisted session cannot be
	// cleared.
	MsgSignOutFailed = "error clearing session"

	// MsgSyncFailed is returned when a manually triggered synchronization
	// cycle cannot run at all (as opposed to completing with per-operation
	// errors, which still yields a 200 with the error list).
	MsgSyncFailed = "error running full sync"

	// MsgStatusFailed is returned when the engine status snapshot cannot be
	// assembled.
	MsgStatusFailed = "error assembling engine status"

	// MsgConflictsFailed is returned when pending conflicts cannot be
	// listed.
	MsgConflictsFailed = "error listing pending conflicts"

	// MsgUnknownConflictWinner is returned when an acknowledgement names a
	// winner other than local or remote.
	MsgUnknownConflictWinner = "winner must be local or remote"

	// MsgAcknowledgeFailed is returned when a conflict acknowledgement
	// cannot be recorded.
	MsgAcknowledgeFailed = "error acknowledging conflict"

	// MsgMigrationFailed is returned when a migration attempt did not
	// complete. The response body still carries the attempt's identity so
	// the caller can resume or roll it back.
	MsgMigrationFailed = "migration did not complete"

	// MsgMigrationProgressFailed is returned when a progress snapshot
	// cannot be loaded for the named attempt.
	MsgMigrationProgressFailed = "error loading migration progress"

	// MsgRollbackFailed is returned when a rollback of an attempt's
	// uploads cannot run.
	MsgRollbackFailed = "error rolling back migration"
)
