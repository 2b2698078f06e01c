package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/baliestri/calliope/internal/logger"
	"github.com/baliestri/calliope/models"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles user account creation and lookup against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// ExistsByEmail reports whether a live user row holds the given e-mail.
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email", email)
}

// ExistsByUsername reports whether a live user row holds the given username.
func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "username", username)
}

func (r *userRepository) exists(ctx context.Context, column, value string) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUserExistsQuery(column, value)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.exists").Msg("error building query")
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var one int
	err = r.db.executor(ctx).QueryRowContext(ctx, query, args...).Scan(&one)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	case err != nil:
		log.Err(err).Str("func", "*userRepository.exists").Str("column", column).Msg("error querying existence")
		return false, fmt.Errorf("unexpected DB error: %w", err)
	}
	return true, nil
}

// FindByUsernameOrEmail retrieves the live user whose username or e-mail
// matches identifier.
//
// Error handling:
//   - empty result set → [ErrNoUserWasFound];
//   - any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) FindByUsernameOrEmail(ctx context.Context, identifier string) (models.User, error) {
	query, args, err := buildFindUserByIdentifierQuery(identifier, false)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return r.findOne(ctx, "*userRepository.FindByUsernameOrEmail", query, args)
}

// FindByID retrieves the live user with the given ID.
func (r *userRepository) FindByID(ctx context.Context, userID string) (models.User, error) {
	query, args, err := buildFindUserQuery(sq.Eq{"user_id": userID}, false)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return r.findOne(ctx, "*userRepository.FindByID", query, args)
}

// FindByRefreshToken retrieves the live user currently holding the given
// refresh token. Inside a transaction the row is locked FOR UPDATE, so a
// concurrent rotation of the same token blocks here and then observes
// [ErrNoUserWasFound] once the winner commits.
func (r *userRepository) FindByRefreshToken(ctx context.Context, refreshToken string) (models.User, error) {
	query, args, err := buildFindUserQuery(sq.Eq{"refresh_token": refreshToken}, inTransaction(ctx))
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return r.findOne(ctx, "*userRepository.FindByRefreshToken", query, args)
}

func (r *userRepository) findOne(ctx context.Context, funcName, query string, args []any) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.executor(ctx).QueryRowContext(ctx, query, args...)

	user, err := scanUser(row)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.User{}, ErrNoUserWasFound
	case err != nil:
		log.Err(err).Str("func", funcName).Msg("error querying user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// CreateUser persists a new user record. The caller supplies every column,
// including the identifier and timestamps.
//
// Error handling:
//   - unique_violation on the e-mail index → [ErrEmailAlreadyExists];
//   - unique_violation on the username index → [ErrUsernameAlreadyExists];
//   - any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertUserQuery(user)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error building query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.executor(ctx).ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")
		if domainErr := uniqueViolationError(err); domainErr != nil {
			return models.User{}, domainErr
		}
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// UpdateUser persists every mutable column of an existing live user row.
//
// Error handling:
//   - zero rows affected → [ErrUserNotUpdated];
//   - unique_violation on the refresh token index → [ErrRefreshTokenConflict];
//   - unique_violation on e-mail or username → matching sentinel;
//   - any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateUserQuery(user)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateUser").Msg("error building query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.executor(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateUser").Msg("error updating user")
		if domainErr := uniqueViolationError(err); domainErr != nil {
			return models.User{}, domainErr
		}
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return models.User{}, ErrUserNotUpdated
	}

	return user, nil
}

// ClearExpiredRefreshTokens removes every refresh token whose expiry is at
// or before now and reports how many sessions were swept.
func (r *userRepository) ClearExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildClearExpiredRefreshTokensQuery(now)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ClearExpiredRefreshTokens").Msg("error building query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.executor(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ClearExpiredRefreshTokens").Msg("error clearing expired refresh tokens")
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}
	return affected, nil
}

// scanUser reads one users-table row in [userColumns] order. Nullable
// columns collapse onto their zero values.
func scanUser(row *sql.Row) (models.User, error) {
	var (
		user           models.User
		refreshToken   sql.NullString
		refreshExpires sql.NullTime
		deletedAt      sql.NullTime
	)

	err := row.Scan(
		&user.UserID,
		&user.FirstName,
		&user.LastName,
		&user.Username,
		&user.Email,
		&user.Password.Hash,
		&user.Password.Salt,
		&refreshToken,
		&refreshExpires,
		&user.CreatedAt,
		&user.UpdatedAt,
		&deletedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, err
		}
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	user.RefreshToken = refreshToken.String
	user.RefreshTokenExpiresAt = refreshExpires.Time
	user.DeletedAt = deletedAt.Time
	return user, nil
}
