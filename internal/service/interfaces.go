package service

import (
	"context"
	"time"

	"github.com/baliestri/calliope/models"
)

// RegistrationService creates new user accounts.
type RegistrationService interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)
}

// AuthSessionService drives the session lifecycle: credential verification,
// token renewal and revocation, and the profile and account-deletion
// operations available to authenticated calls.
type AuthSessionService interface {
	SignIn(ctx context.Context, req models.SignInRequest) (models.Session, error)
	Renew(ctx context.Context, accessToken, refreshToken string) (models.Session, error)
	SignOut(ctx context.Context, refreshToken string) error
	Profile(ctx context.Context, userID string) (models.User, error)
	DeleteAccount(ctx context.Context, userID string) error
}

// TokenProvider issues and inspects signed access tokens.
type TokenProvider interface {
	// Issue signs a fresh access token for the user.
	Issue(user models.User) (models.AccessToken, error)

	// Validate reports whether tokenString is a currently valid access
	// token: correctly signed, unexpired, and carrying the expected issuer
	// and audience.
	Validate(tokenString string) bool

	// ExtractIdentity returns the user ID and username embedded in a
	// correctly signed access token. Expiry is deliberately not checked:
	// renewal accepts an expired access token as long as its signature
	// still proves who it was issued to.
	ExtractIdentity(tokenString string) (userID, username string, err error)
}

// RefreshTokenService mints opaque refresh tokens and checks their expiry
// against the persisted session state.
type RefreshTokenService interface {
	// Issue generates a fresh opaque token and installs it on the user
	// together with its expiry, replacing any previous session.
	Issue(user *models.User) (models.RefreshToken, error)

	// Validate reports whether the user's persisted refresh token is still
	// live. Returns [ErrRefreshTokenExpired] when it is not.
	Validate(user models.User) error
}

// IDGenerator produces unique identifiers for new records.
type IDGenerator interface {
	Generate() string
}

// Clock abstracts the current time so expiry logic is testable.
type Clock interface {
	Now() time.Time
}
