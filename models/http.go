package models

import "time"

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// RegisterResponse is returned on successful registration.
type RegisterResponse struct {
	UserID string `json:"user_id"`
}

// SignInRequest is the body of POST /api/auth/sign-in. Identifier accepts
// either a username or an e-mail address.
type SignInRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// SessionResponse is returned by sign-in and renew: the user identity plus
// a freshly issued access/refresh token pair.
type SessionResponse struct {
	UserID                string    `json:"user_id"`
	AccessToken           string    `json:"access_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshToken          string    `json:"refresh_token"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
}

// SignOutRequest is the body of POST /api/auth/sign-out.
type SignOutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// MessageResponse is a generic success payload with a human-readable text.
type MessageResponse struct {
	Message string `json:"message"`
}

// ProfileResponse is returned by GET /api/auth/me for the authenticated
// user.
type ProfileResponse struct {
	UserID    string `json:"user_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	Email     string `json:"email"`
}
