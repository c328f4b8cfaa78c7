package service

import "errors"

var (
	// ErrSyncInProgress is returned to the loser of a per-record sync
	// race; exactly one caller performs the remote call.
	ErrSyncInProgress = errors.New("sync already in progress for this record")

	// ErrNoActiveSession is returned when an operation requires a
	// signed-in user and none is present.
	ErrNoActiveSession = errors.New("no active session")

	// ErrInvalidToken is returned when a sign-in token carries no
	// usable subject claim.
	ErrInvalidToken = errors.New("invalid session token")

	// ErrNoLocalData is returned when a migration is requested for a
	// user with an empty local store. Not retryable.
	ErrNoLocalData = errors.New("no local data to migrate")

	// ErrMigrationNotFound is returned when a resume or rollback names
	// a migration id with no persisted checkpoint.
	ErrMigrationNotFound = errors.New("migration not found")

	// ErrMigrationAlreadyRunning is returned when a second migration is
	// requested while one is still in flight.
	ErrMigrationAlreadyRunning = errors.New("migration already running")

	// ErrMigrationNotResumable is returned when the named attempt is in
	// a state that resume cannot continue from.
	ErrMigrationNotResumable = errors.New("migration is not resumable")

	// ErrRecordRequired is returned when a sync is requested for a
	// record with no category or id.
	ErrRecordRequired = errors.New("record category and id are required")

	// ErrVersionIsNotSpecified is returned when the application version
	// is missing from the configuration.
	ErrVersionIsNotSpecified = errors.New("version is not specified")
)
