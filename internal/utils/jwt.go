package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/baliestri/calliope/models"
)

// GenerateJWTToken creates a signed HMAC-SHA256 access token.
//
// The token includes the following claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Audience  (aud): the intended consumer of the token
//   - Subject   (sub): the user ID
//   - "unique_name":   the display username
//   - ID        (jti): a fresh UUID per token, for replay auditing
//   - IssuedAt  (iat): now
//   - ExpiresAt (exp): now plus tokenDuration
//
// All parameters are required. Returns an error if any of them are empty
// or zero.
func GenerateJWTToken(issuer, audience, userID, username string, now time.Time, tokenDuration time.Duration, signKey string) (models.AccessToken, error) {
	if issuer == "" || audience == "" || userID == "" || username == "" || tokenDuration == 0 || signKey == "" {
		return models.AccessToken{}, errors.New("invalid params for generating JWT token")
	}

	expiresAt := now.Add(tokenDuration)
	claims := models.AccessTokenClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Audience:  jwt.ClaimStrings{audience},
			Subject:   userID,
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.AccessToken{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return models.AccessToken{Value: tokenString, ExpiresAt: expiresAt}, nil
}

// ValidateJWTToken verifies the signature, issuer, audience and expiry of
// the given token string against the provided clock.
//
// Any failure (malformed input, wrong signing method, bad signature,
// wrong issuer or audience, expired) yields false. No error detail is
// surfaced: an access token is either valid or it is not.
func ValidateJWTToken(tokenString, signKey, issuer, audience string, now func() time.Time) bool {
	token, err := jwt.ParseWithClaims(tokenString, &models.AccessTokenClaims{}, func(token *jwt.Token) (any, error) {
		return []byte(signKey), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
		jwt.WithTimeFunc(now),
		jwt.WithExpirationRequired(),
	)

	return err == nil && token.Valid
}

// ExtractIdentityFromJWT returns the subject (user ID) and "unique_name"
// (username) claims of the given token string.
//
// The signature is verified so forged tokens are rejected, but claim
// validation, notably expiry, is skipped: the renewal flow accepts an
// already-expired access token as the identity carrier, while the refresh
// token supplies the actual proof of authorization.
//
// Returns an error if the token cannot be parsed, the signature does not
// verify, or either claim is absent.
func ExtractIdentityFromJWT(tokenString, signKey string) (string, string, error) {
	claims := &models.AccessTokenClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(signKey), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return "", "", fmt.Errorf("error occurred parsing token: %w", err)
	}

	if claims.Subject == "" || claims.Username == "" {
		return "", "", errors.New("identity claims are missing from token")
	}

	return claims.Subject, claims.Username, nil
}

// ParseBearerToken extracts the token value from an "Authorization" header
// of the form "Bearer <token>".
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Split(strings.TrimSpace(authorizationHeader), " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
