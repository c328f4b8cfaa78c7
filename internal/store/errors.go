package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrRecordNotFound is returned when a query or update targets a data
	// record (identified by category and category_id for a user) that does
	// not exist in the local database.
	ErrRecordNotFound = errors.New("record was not found")

	// ErrRecordNotSaved is returned when an INSERT or UPDATE of one or more
	// records completes without error but the number of affected rows is
	// zero, indicating that no data was actually persisted.
	ErrRecordNotSaved = errors.New("record was not saved")

	// ErrStateNotFound is returned when a key-value state lookup produces an
	// empty result set. Callers usually treat this as "no state yet" rather
	// than a hard failure.
	ErrStateNotFound = errors.New("state key was not found")

	// ErrConflictNotFound is returned when a conflict resolution targets an
	// audit entry that does not exist or is no longer pending.
	ErrConflictNotFound = errors.New("conflict record was not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a prepared DML
	// statement (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan record row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan record rows")
)
