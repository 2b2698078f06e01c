package service

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"time"

	"github.com/baliestri/calliope/internal/config"
	"github.com/baliestri/calliope/models"
)

// refreshTokenByteLength is the entropy of a freshly minted refresh token.
const refreshTokenByteLength = 64

// refreshTokenService is the concrete implementation of
// [RefreshTokenService]. Refresh tokens are opaque base64-encoded random
// strings; their state lives entirely on the user record.
type refreshTokenService struct {
	// refreshTokenTTL controls how long a newly issued refresh token stays
	// accepted for renewal.
	refreshTokenTTL time.Duration

	clock Clock
	rand  io.Reader
}

// NewRefreshTokenService constructs a [RefreshTokenService] from the auth
// configuration.
func NewRefreshTokenService(cfg config.AuthConfig, clock Clock) RefreshTokenService {
	return &refreshTokenService{
		refreshTokenTTL: cfg.RefreshTokenTTL,
		clock:           clock,
		rand:            rand.Reader,
	}
}

// Issue mints a fresh opaque token and installs it on the user together
// with its expiry, replacing any previous session.
func (s *refreshTokenService) Issue(user *models.User) (models.RefreshToken, error) {
	buf := make([]byte, refreshTokenByteLength)
	if _, err := io.ReadFull(s.rand, buf); err != nil {
		return models.RefreshToken{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	now := s.clock.Now()
	token := models.RefreshToken{
		Value:     base64.StdEncoding.EncodeToString(buf),
		ExpiresAt: now.Add(s.refreshTokenTTL),
	}

	if err := user.SetRefreshToken(token.Value, token.ExpiresAt, now); err != nil {
		return models.RefreshToken{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// Validate reports whether the user's persisted refresh token is still
// live.
func (s *refreshTokenService) Validate(user models.User) error {
	if !user.HasLiveRefreshToken(s.clock.Now()) {
		return ErrRefreshTokenExpired
	}
	return nil
}
