package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_SetRefreshToken_Success(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	u := User{UserID: "u-1"}

	err := u.SetRefreshToken("token-value", now.Add(7*24*time.Hour), now)

	require.NoError(t, err)
	assert.Equal(t, "token-value", u.RefreshToken)
	assert.Equal(t, now.Add(7*24*time.Hour), u.RefreshTokenExpiresAt)
	assert.Equal(t, now, u.UpdatedAt)
}

func TestUser_SetRefreshToken_ReplacesPrevious(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	u := User{UserID: "u-1"}
	require.NoError(t, u.SetRefreshToken("old", now.Add(time.Hour), now))

	err := u.SetRefreshToken("new", now.Add(2*time.Hour), now)

	require.NoError(t, err)
	assert.Equal(t, "new", u.RefreshToken)
	assert.Equal(t, now.Add(2*time.Hour), u.RefreshTokenExpiresAt)
}

// TestUser_SetRefreshToken_RejectsInvalidExpiry checks that past, zero and
// sentinel expiries are rejected and that the record is left untouched.
func TestUser_SetRefreshToken_RejectsInvalidExpiry(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		expiresAt time.Time
	}{
		{name: "zero value", expiresAt: time.Time{}},
		{name: "in the past", expiresAt: now.Add(-time.Minute)},
		{name: "exactly now", expiresAt: now},
		{name: "max sentinel", expiresAt: time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := User{UserID: "u-1"}
			require.NoError(t, u.SetRefreshToken("live", now.Add(time.Hour), now))
			before := u

			err := u.SetRefreshToken("replacement", tt.expiresAt, now)

			require.ErrorIs(t, err, ErrInvalidRefreshTokenExpiry)
			assert.Equal(t, before, u, "record must not be mutated on rejection")
		})
	}
}

func TestUser_SetRefreshToken_RejectsDeletedUser(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	u := User{UserID: "u-1"}
	u.MarkAsDeleted(now)
	before := u

	err := u.SetRefreshToken("token-value", now.Add(time.Hour), now)

	require.ErrorIs(t, err, ErrUserIsDeleted)
	assert.Equal(t, before, u, "record must not be mutated on rejection")
}

func TestUser_ClearRefreshToken_ClearsBothFields(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	u := User{UserID: "u-1"}
	require.NoError(t, u.SetRefreshToken("live", now.Add(time.Hour), now))

	u.ClearRefreshToken(now.Add(time.Minute))

	assert.Empty(t, u.RefreshToken)
	assert.True(t, u.RefreshTokenExpiresAt.IsZero())
	assert.Equal(t, now.Add(time.Minute), u.UpdatedAt)
}

func TestUser_HasLiveRefreshToken(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	u := User{UserID: "u-1"}
	assert.False(t, u.HasLiveRefreshToken(now), "no token set")

	require.NoError(t, u.SetRefreshToken("live", now.Add(time.Hour), now))
	assert.True(t, u.HasLiveRefreshToken(now))
	assert.False(t, u.HasLiveRefreshToken(now.Add(2*time.Hour)), "expired")
}

func TestUser_MarkAsDeleted(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	u := User{UserID: "u-1"}

	require.False(t, u.IsDeleted())
	u.MarkAsDeleted(now)

	assert.True(t, u.IsDeleted())
	assert.Equal(t, now, u.DeletedAt)
}
