package models

import (
	"errors"
	"time"
)

// Field length bounds enforced by the request validators.
const (
	FirstNameMinLength = 2
	FirstNameMaxLength = 20
	LastNameMinLength  = 2
	LastNameMaxLength  = 30
	UsernameMinLength  = 3
	UsernameMaxLength  = 15
)

// maxExpiryYear rejects max-sentinel expiries (the largest representable
// calendar instant in most serialization formats lands in year 9999).
const maxExpiryYear = 9999

// ErrInvalidRefreshTokenExpiry is returned by [User.SetRefreshToken] when
// the supplied expiry is zero, a sentinel instant, or not strictly in the
// future. The user record is left unmodified.
var ErrInvalidRefreshTokenExpiry = errors.New("refresh token expiry must be strictly in the future")

// ErrUserIsDeleted is returned by [User.SetRefreshToken] when the account
// has been soft-deleted: a deleted account can never hold a live session.
var ErrUserIsDeleted = errors.New("user is deleted")

// User represents an account entity used for authentication.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the opaque 128-bit identifier of the user, generated once
	// at registration time and immutable afterwards. Serialized as a UUID
	// string.
	UserID string `json:"-"`

	// FirstName is the user's given name, 2 to 20 characters.
	FirstName string `json:"first_name"`

	// LastName is the user's family name, 2 to 30 characters.
	LastName string `json:"last_name"`

	// Username is the unique user handle, 3 to 15 alphanumeric characters.
	Username string `json:"username"`

	// Email is the unique, syntactically valid e-mail address of the user.
	Email string `json:"email"`

	// Password is the derived hash and salt of the user's password.
	// Opaque outside the crypto package; never serialized.
	Password PasswordRecord `json:"-"`

	// RefreshToken is the single live opaque refresh token of the user,
	// empty when no session is active. Always set and cleared together
	// with RefreshTokenExpiresAt.
	RefreshToken string `json:"-"`

	// RefreshTokenExpiresAt is the instant the refresh token stops being
	// accepted. Zero when no refresh token is set.
	RefreshTokenExpiresAt time.Time `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is bumped on every mutating operation.
	UpdatedAt time.Time `json:"updated_at"`

	// DeletedAt marks the record logically deleted when non-zero.
	// Soft-deleted users are excluded from all lookups.
	DeletedAt time.Time `json:"-"`
}

// SetRefreshToken associates a new refresh token and its expiry with the
// user, replacing any previous one. Both fields are updated together so
// the both-or-neither invariant holds at all times.
//
// The expiry must be strictly after now; zero values and min/max sentinel
// instants are rejected with [ErrInvalidRefreshTokenExpiry] and the record
// is left untouched. Soft-deleted accounts are rejected with
// [ErrUserIsDeleted].
func (u *User) SetRefreshToken(token string, expiresAt, now time.Time) error {
	if u.IsDeleted() {
		return ErrUserIsDeleted
	}
	if expiresAt.IsZero() || !expiresAt.After(now) || expiresAt.Year() >= maxExpiryYear {
		return ErrInvalidRefreshTokenExpiry
	}

	u.RefreshToken = token
	u.RefreshTokenExpiresAt = expiresAt
	u.UpdatedAt = now
	return nil
}

// ClearRefreshToken removes the user's refresh token and its expiry
// together, ending the active session.
func (u *User) ClearRefreshToken(now time.Time) {
	u.RefreshToken = ""
	u.RefreshTokenExpiresAt = time.Time{}
	u.UpdatedAt = now
}

// HasLiveRefreshToken reports whether the user holds a refresh token that
// has not expired as of now.
func (u *User) HasLiveRefreshToken(now time.Time) bool {
	return u.RefreshToken != "" && u.RefreshTokenExpiresAt.After(now)
}

// MarkAsDeleted soft-deletes the user. The record remains in storage but
// is invisible to every lookup and uniqueness check.
func (u *User) MarkAsDeleted(now time.Time) {
	u.DeletedAt = now
	u.UpdatedAt = now
}

// IsDeleted reports whether the user has been soft-deleted.
func (u *User) IsDeleted() bool {
	return !u.DeletedAt.IsZero()
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
