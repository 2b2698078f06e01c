package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrNoUserWasFound is returned when a query expected to match at least
	// one live (non-soft-deleted) user record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrEmailAlreadyExists is returned when an INSERT or UPDATE violates
	// the unique index on the e-mail column.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrUsernameAlreadyExists is returned when an INSERT or UPDATE violates
	// the unique index on the username column.
	ErrUsernameAlreadyExists = errors.New("username already exists")

	// ErrRefreshTokenConflict is returned when persisting a refresh token
	// violates the unique index on the refresh_token column, i.e. another
	// user row already holds the same value. With 64 bytes of entropy this
	// indicates a logic error or a lost race, never a birthday collision
	// worth retrying silently.
	ErrRefreshTokenConflict = errors.New("refresh token already held by another user")

	// ErrUserNotUpdated is returned when an UPDATE targeting a single user
	// row affects zero rows, meaning the user vanished (or was soft-deleted)
	// between read and write.
	ErrUserNotUpdated = errors.New("user row was not updated")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommittingTransaction is returned when committing an open
	// transaction fails. The transaction is considered rolled back at this
	// point.
	ErrCommittingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan user row")
)
