package service

import "errors"

var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrEmailAlreadyInUse    = errors.New("email already in use")
	ErrUsernameAlreadyInUse = errors.New("username already in use")

	ErrAccessTokenInvalid  = errors.New("access token is invalid")
	ErrRefreshTokenInvalid = errors.New("refresh token is invalid")
	ErrRefreshTokenExpired = errors.New("refresh token is expired")
	ErrTokenCreationFailed = errors.New("token creation failed")
	ErrUserNotFound        = errors.New("user not found")

	ErrCouldNotRegister     = errors.New("could not register user")
	ErrCouldNotSignIn       = errors.New("could not sign in user")
	ErrCouldNotRenewTokens  = errors.New("could not renew tokens")
	ErrCouldNotRevokeTokens = errors.New("could not revoke tokens")
	ErrCouldNotDeleteUser   = errors.New("could not delete user")
)
