package store

import (
	"context"
	"time"

	"github.com/baliestri/calliope/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store.go -package=mock

// UserRepository provides access to persisted user accounts.
//
// All lookup methods only consider live records: rows whose deleted_at
// column is set are treated as absent and yield [ErrNoUserWasFound].
//
// When called inside [UnitOfWork.Do], methods run on the open transaction,
// and row lookups that feed a subsequent write acquire a row lock so that
// concurrent refresh-token rotations serialise instead of racing.
type UserRepository interface {
	// ExistsByEmail reports whether a live user holds the given e-mail.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// ExistsByUsername reports whether a live user holds the given username.
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// FindByUsernameOrEmail returns the live user whose username or e-mail
	// equals identifier.
	FindByUsernameOrEmail(ctx context.Context, identifier string) (models.User, error)

	// FindByID returns the live user with the given ID.
	FindByID(ctx context.Context, userID string) (models.User, error)

	// FindByRefreshToken returns the live user currently holding the given
	// refresh token. Inside a transaction the matched row is locked FOR
	// UPDATE until commit.
	FindByRefreshToken(ctx context.Context, refreshToken string) (models.User, error)

	// CreateUser persists a new user record.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// UpdateUser persists every mutable column of an existing user record.
	// Returns [ErrUserNotUpdated] when no live row matches the user ID.
	UpdateUser(ctx context.Context, user models.User) (models.User, error)

	// ClearExpiredRefreshTokens removes refresh tokens whose expiry is at or
	// before now and reports how many rows were affected.
	ClearExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error)
}

// UnitOfWork runs a function inside a single database transaction.
type UnitOfWork interface {
	// Do begins a transaction, invokes fn with a transaction-carrying
	// context, and commits if fn returns nil or rolls back otherwise.
	// Repository calls made with the provided context join the transaction.
	// A nested Do joins the already open transaction instead of starting a
	// new one. Transient failures (serialization, deadlock, connection
	// loss) are retried a bounded number of times.
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
