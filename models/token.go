package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessToken is a short-lived, stateless, signed credential proving
// identity for a bounded window. It is never persisted; validity is
// determined purely by signature and expiry.
type AccessToken struct {
	// Value is the compact JWS serialization of the token
	// (base64url-encoded header.payload.signature).
	Value string `json:"access_token"`

	// ExpiresAt is the instant the token stops being valid.
	ExpiresAt time.Time `json:"access_token_expires_at"`
}

// RefreshToken is a long-lived, opaque, server-tracked credential used to
// mint new access tokens. A user holds at most one live refresh token at
// any time; issuing a new one invalidates the previous one.
type RefreshToken struct {
	// Value is the opaque random token string.
	Value string `json:"refresh_token"`

	// ExpiresAt is the instant the token stops being accepted.
	ExpiresAt time.Time `json:"refresh_token_expires_at"`
}

// AccessTokenClaims is the JWT claim set embedded in every access token.
//
// The subject carries the user ID, "unique_name" the display username, and
// "jti" a fresh UUID per token for replay auditing (not enforced
// server-side).
type AccessTokenClaims struct {
	// Username is the display claim, mapped to "unique_name" on the wire.
	Username string `json:"unique_name"`

	jwt.RegisteredClaims
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t AccessToken) String() string {
	return t.Value
}
