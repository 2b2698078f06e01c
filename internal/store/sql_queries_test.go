package store

import (
	"strings"
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baliestri/calliope/models"
)

func Test_buildUserExistsQuery(t *testing.T) {
	query, args, err := buildUserExistsQuery("email", "jane@x.com")
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "select 1")
	require.Contains(t, q, "from users")
	require.Contains(t, q, "email")
	require.Contains(t, q, "deleted_at is null")
	require.Contains(t, q, "limit 1")

	// placeholder format should be $1 (Postgres)
	require.Contains(t, query, "$1")

	require.Len(t, args, 1)
	assert.Equal(t, "jane@x.com", args[0])
}

func Test_buildFindUserByIdentifierQuery(t *testing.T) {
	tests := []struct {
		name      string
		forUpdate bool
	}{
		{name: "plain select", forUpdate: false},
		{name: "select for update", forUpdate: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildFindUserByIdentifierQuery("jdoe", tt.forUpdate)
			require.NoError(t, err)

			q := strings.ToLower(query)

			// every column must be selected in scan order
			for _, col := range userColumns {
				require.Contains(t, q, col)
			}

			require.Contains(t, q, "from users")
			require.Contains(t, q, "username")
			require.Contains(t, q, "email")
			require.Contains(t, q, "deleted_at is null")
			assert.Equal(t, tt.forUpdate, strings.HasSuffix(query, "FOR UPDATE"))

			// identifier is bound once per matched column
			require.Len(t, args, 2)
			assert.Equal(t, "jdoe", args[0])
			assert.Equal(t, "jdoe", args[1])
		})
	}
}

func Test_buildFindUserQuery_ByRefreshToken(t *testing.T) {
	query, args, err := buildFindUserQuery(sq.Eq{"refresh_token": "opaque"}, true)
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "refresh_token")
	require.True(t, strings.HasSuffix(query, "FOR UPDATE"))

	require.Len(t, args, 1)
	assert.Equal(t, "opaque", args[0])
}

func Test_buildInsertUserQuery(t *testing.T) {
	now := time.Now()
	user := models.User{
		UserID:    "0192aeef-0000-7000-8000-000000000001",
		FirstName: "Jane",
		LastName:  "Doe",
		Username:  "jdoe",
		Email:     "jane@x.com",
		Password:  models.PasswordRecord{Hash: []byte{1}, Salt: []byte{2}},
		CreatedAt: now,
		UpdatedAt: now,
	}

	query, args, err := buildInsertUserQuery(user)
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "insert into users")
	require.Contains(t, q, "password_hash")
	require.Contains(t, q, "password_salt")
	require.Contains(t, query, "$11")

	require.Len(t, args, 11)
	assert.Equal(t, user.UserID, args[0])

	// a user registered without a session carries NULL token columns
	assert.Nil(t, args[7])
	assert.Nil(t, args[8])
}

func Test_buildUpdateUserQuery(t *testing.T) {
	now := time.Now()
	user := models.User{
		UserID:                "0192aeef-0000-7000-8000-000000000001",
		FirstName:             "Jane",
		LastName:              "Doe",
		Username:              "jdoe",
		Email:                 "jane@x.com",
		Password:              models.PasswordRecord{Hash: []byte{1}, Salt: []byte{2}},
		RefreshToken:          "opaque",
		RefreshTokenExpiresAt: now.Add(time.Hour),
		UpdatedAt:             now,
	}

	query, args, err := buildUpdateUserQuery(user)
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "update users")
	require.Contains(t, q, "refresh_token")
	require.Contains(t, q, "refresh_token_expires_at")
	require.Contains(t, q, "user_id")
	require.Contains(t, q, "deleted_at is null")

	// 10 SET columns plus the user_id predicate
	require.Len(t, args, 11)
	assert.Equal(t, user.UserID, args[len(args)-1])
}

func Test_buildClearExpiredRefreshTokensQuery(t *testing.T) {
	now := time.Now()

	query, args, err := buildClearExpiredRefreshTokensQuery(now)
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "update users")
	require.Contains(t, q, "refresh_token = $1")
	require.Contains(t, q, "refresh_token_expires_at = $2")
	require.Contains(t, q, "refresh_token is not null")
	require.Contains(t, q, "refresh_token_expires_at <=")

	// both token columns are nulled, then updated_at and the expiry bound
	require.Len(t, args, 4)
	assert.Nil(t, args[0])
	assert.Nil(t, args[1])
	assert.Equal(t, now, args[2])
	assert.Equal(t, now, args[3])
}
