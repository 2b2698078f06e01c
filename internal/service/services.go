package service

import (
	"github.com/baliestri/calliope/internal/config"
	"github.com/baliestri/calliope/internal/crypto"
	"github.com/baliestri/calliope/internal/logger"
	"github.com/baliestri/calliope/internal/store"
	"github.com/baliestri/calliope/internal/utils"
)

type Services struct {
	RegistrationService RegistrationService
	AuthSessionService  AuthSessionService
	TokenProvider       TokenProvider
}

func NewServices(repositories *store.Repositories, cfg config.AuthConfig, logger *logger.Logger) (*Services, error) {
	clock := NewSystemClock()

	hasher, err := crypto.NewPasswordHasher(crypto.DefaultParams())
	if err != nil {
		return nil, err
	}

	accessTokens := NewTokenProvider(cfg, clock)
	refreshTokens := NewRefreshTokenService(cfg, clock)

	authService, err := NewAuthService(repositories.UserRepository, repositories.UnitOfWork, hasher, accessTokens, refreshTokens, clock, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		RegistrationService: NewRegistrationService(repositories.UserRepository, repositories.UnitOfWork, hasher, &utils.UUIDGenerator{}, clock, logger),
		AuthSessionService:  authService,
		TokenProvider:       accessTokens,
	}, nil
}
