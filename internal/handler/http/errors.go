package http

import "errors"

// refreshTokenHeader carries the opaque refresh token on the renew
// endpoint.
const refreshTokenHeader = "RefreshToken"

// Sentinel errors used when parsing authentication headers. Callers can
// match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned when the incoming request
	// does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is present but does not carry a bearer token.
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyRefreshTokenHeader is returned when the "RefreshToken" header
	// is absent or empty on an endpoint that requires it.
	ErrEmptyRefreshTokenHeader = errors.New("empty `RefreshToken` header")
)
