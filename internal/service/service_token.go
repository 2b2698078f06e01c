package service

import (
	"fmt"
	"time"

	"github.com/baliestri/calliope/internal/config"
	"github.com/baliestri/calliope/internal/utils"
	"github.com/baliestri/calliope/models"
)

// tokenProvider is the concrete implementation of [TokenProvider]. Access
// tokens are HMAC-SHA256 signed JWTs carrying the user ID, username, a
// unique token ID and the configured issuer and audience.
type tokenProvider struct {
	// signKey is the HMAC secret used to sign and verify access tokens.
	signKey string

	// issuer is the "iss" claim embedded in every issued token. Tokens
	// whose issuer does not match are rejected during validation.
	issuer string

	// audience is the "aud" claim embedded in every issued token.
	audience string

	// accessTokenTTL controls how long a newly issued access token remains
	// valid.
	accessTokenTTL time.Duration

	clock Clock
}

// NewTokenProvider constructs a [TokenProvider] from the auth
// configuration.
//
// The returned provider is safe for concurrent use; all state is read-only
// after construction.
func NewTokenProvider(cfg config.AuthConfig, clock Clock) TokenProvider {
	return &tokenProvider{
		signKey:        cfg.TokenSignKey,
		issuer:         cfg.TokenIssuer,
		audience:       cfg.TokenAudience,
		accessTokenTTL: cfg.AccessTokenTTL,
		clock:          clock,
	}
}

// Issue signs a fresh access token for the given user.
func (p *tokenProvider) Issue(user models.User) (models.AccessToken, error) {
	token, err := utils.GenerateJWTToken(p.issuer, p.audience, user.UserID, user.Username, p.clock.Now(), p.accessTokenTTL, p.signKey)
	if err != nil {
		return models.AccessToken{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// Validate reports whether tokenString is a currently valid access token.
func (p *tokenProvider) Validate(tokenString string) bool {
	return utils.ValidateJWTToken(tokenString, p.signKey, p.issuer, p.audience, p.clock.Now)
}

// ExtractIdentity returns the identity claims of a correctly signed access
// token without checking expiry. Any signature or shape failure is
// normalised to [ErrAccessTokenInvalid] so that callers do not need to
// inspect low-level JWT errors.
func (p *tokenProvider) ExtractIdentity(tokenString string) (string, string, error) {
	userID, username, err := utils.ExtractIdentityFromJWT(tokenString, p.signKey)
	if err != nil {
		return "", "", ErrAccessTokenInvalid
	}

	return userID, username, nil
}
