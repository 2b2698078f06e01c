package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/baliestri/calliope/internal/crypto"
	"github.com/baliestri/calliope/internal/logger"
	"github.com/baliestri/calliope/internal/store"
	"github.com/baliestri/calliope/models"
)

// registrationService is the concrete implementation of
// [RegistrationService]. It creates user accounts with Argon2id-hashed
// passwords and server-assigned identifiers.
type registrationService struct {
	userRepository store.UserRepository
	unitOfWork     store.UnitOfWork
	hasher         crypto.PasswordHasher
	ids            IDGenerator
	clock          Clock
	logger         *logger.Logger
}

// NewRegistrationService constructs a [RegistrationService] wired to the
// given repository, unit of work, password hasher and identifier generator.
func NewRegistrationService(userRepository store.UserRepository, unitOfWork store.UnitOfWork, hasher crypto.PasswordHasher, ids IDGenerator, clock Clock, logger *logger.Logger) RegistrationService {
	return &registrationService{
		userRepository: userRepository,
		unitOfWork:     unitOfWork,
		hasher:         hasher,
		ids:            ids,
		clock:          clock,
		logger:         logger,
	}
}

// Register creates a new user account.
//
// Uniqueness is checked e-mail first, then username, so a request clashing
// on both reports the e-mail conflict. The same check is enforced again by
// the database unique indexes; a lost race surfaces as the matching
// conflict sentinel rather than a duplicate row. The insert itself runs
// inside a unit of work, so a failed registration never leaves a partial
// record behind.
//
// Returns the persisted user or:
//   - [ErrEmailAlreadyInUse] if a live account holds the e-mail;
//   - [ErrUsernameAlreadyInUse] if a live account holds the username;
//   - [ErrCouldNotRegister] wrapping any storage or hashing failure.
func (s *registrationService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	emailTaken, err := s.userRepository.ExistsByEmail(ctx, req.Email)
	if err != nil {
		log.Err(err).Str("func", "*registrationService.Register").Msg("email uniqueness check failed")
		return models.User{}, fmt.Errorf("%w: %w", ErrCouldNotRegister, err)
	}
	if emailTaken {
		return models.User{}, ErrEmailAlreadyInUse
	}

	usernameTaken, err := s.userRepository.ExistsByUsername(ctx, req.Username)
	if err != nil {
		log.Err(err).Str("func", "*registrationService.Register").Msg("username uniqueness check failed")
		return models.User{}, fmt.Errorf("%w: %w", ErrCouldNotRegister, err)
	}
	if usernameTaken {
		return models.User{}, ErrUsernameAlreadyInUse
	}

	record, err := s.hasher.Generate(req.Password)
	if err != nil {
		log.Err(err).Str("func", "*registrationService.Register").Msg("password hashing failed")
		return models.User{}, fmt.Errorf("%w: %w", ErrCouldNotRegister, err)
	}

	now := s.clock.Now()
	user := models.User{
		UserID:    s.ids.Generate(),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Email:     req.Email,
		Password:  record,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var registeredUser models.User
	err = s.unitOfWork.Do(ctx, func(ctx context.Context) error {
		registeredUser, err = s.userRepository.CreateUser(ctx, user)
		return err
	})
	if err != nil {
		log.Err(err).Str("func", "*registrationService.Register").Str("username", req.Username).Msg("user creation ended with error")
		switch {
		case errors.Is(err, store.ErrEmailAlreadyExists):
			return models.User{}, ErrEmailAlreadyInUse
		case errors.Is(err, store.ErrUsernameAlreadyExists):
			return models.User{}, ErrUsernameAlreadyInUse
		}
		return models.User{}, fmt.Errorf("%w: %w", ErrCouldNotRegister, err)
	}

	log.Info().Str("user_id", registeredUser.UserID).Str("username", registeredUser.Username).Msg("user registered")
	return registeredUser, nil
}
