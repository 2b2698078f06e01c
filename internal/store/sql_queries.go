package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/baliestri/calliope/models"
)

// psql builds queries with PostgreSQL-style $N placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// userColumns lists every column of the users table in scan order.
// Keep in sync with scanUser.
var userColumns = []string{
	"user_id",
	"first_name",
	"last_name",
	"username",
	"email",
	"password_hash",
	"password_salt",
	"refresh_token",
	"refresh_token_expires_at",
	"created_at",
	"updated_at",
	"deleted_at",
}

// notDeleted restricts queries to live rows.
var notDeleted = sq.Eq{"deleted_at": nil}

func buildUserExistsQuery(column, value string) (string, []any, error) {
	return psql.
		Select("1").
		From((models.User{}).TableName()).
		Where(sq.Eq{column: value}).
		Where(notDeleted).
		Limit(1).
		ToSql()
}

func buildFindUserQuery(pred sq.Sqlizer, forUpdate bool) (string, []any, error) {
	builder := psql.
		Select(userColumns...).
		From((models.User{}).TableName()).
		Where(pred).
		Where(notDeleted)
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}
	return builder.ToSql()
}

func buildFindUserByIdentifierQuery(identifier string, forUpdate bool) (string, []any, error) {
	return buildFindUserQuery(sq.Or{
		sq.Eq{"username": identifier},
		sq.Eq{"email": identifier},
	}, forUpdate)
}

func buildInsertUserQuery(user models.User) (string, []any, error) {
	return psql.
		Insert(user.TableName()).
		Columns(
			"user_id",
			"first_name",
			"last_name",
			"username",
			"email",
			"password_hash",
			"password_salt",
			"refresh_token",
			"refresh_token_expires_at",
			"created_at",
			"updated_at",
		).
		Values(
			user.UserID,
			user.FirstName,
			user.LastName,
			user.Username,
			user.Email,
			user.Password.Hash,
			user.Password.Salt,
			nullString(user.RefreshToken),
			nullTime(user.RefreshTokenExpiresAt),
			user.CreatedAt,
			user.UpdatedAt,
		).
		ToSql()
}

func buildUpdateUserQuery(user models.User) (string, []any, error) {
	return psql.
		Update(user.TableName()).
		Set("first_name", user.FirstName).
		Set("last_name", user.LastName).
		Set("username", user.Username).
		Set("email", user.Email).
		Set("password_hash", user.Password.Hash).
		Set("password_salt", user.Password.Salt).
		Set("refresh_token", nullString(user.RefreshToken)).
		Set("refresh_token_expires_at", nullTime(user.RefreshTokenExpiresAt)).
		Set("updated_at", user.UpdatedAt).
		Set("deleted_at", nullTime(user.DeletedAt)).
		Where(sq.Eq{"user_id": user.UserID}).
		Where(notDeleted).
		ToSql()
}

func buildClearExpiredRefreshTokensQuery(now time.Time) (string, []any, error) {
	return psql.
		Update((models.User{}).TableName()).
		Set("refresh_token", nil).
		Set("refresh_token_expires_at", nil).
		Set("updated_at", now).
		Where(sq.NotEq{"refresh_token": nil}).
		Where(sq.LtOrEq{"refresh_token_expires_at": now}).
		ToSql()
}

// nullString maps the empty string onto SQL NULL.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// nullTime maps the zero time onto SQL NULL.
func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
