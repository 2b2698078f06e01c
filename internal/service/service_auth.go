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

// dummyPassword feeds the hash-verification path taken when a sign-in
// identifier matches no account, so both outcomes cost one Argon2id
// derivation.
const dummyPassword = "calliope-dummy-credential"

// authService is the concrete implementation of [AuthSessionService].
// It verifies credentials, issues token pairs, and rotates or revokes the
// single live refresh token a user may hold.
type authService struct {
	userRepository store.UserRepository
	unitOfWork     store.UnitOfWork
	hasher         crypto.PasswordHasher
	accessTokens   TokenProvider
	refreshTokens  RefreshTokenService
	clock          Clock

	// dummyRecord is a throwaway password record verified against whenever
	// the identifier matches no account, keeping the unknown-user and
	// wrong-password paths indistinguishable by timing.
	dummyRecord models.PasswordRecord

	logger *logger.Logger
}

// NewAuthService constructs an [AuthSessionService] wired to the given
// repository, unit of work and token services.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, unitOfWork store.UnitOfWork, hasher crypto.PasswordHasher, accessTokens TokenProvider, refreshTokens RefreshTokenService, clock Clock, logger *logger.Logger) (AuthSessionService, error) {
	dummyRecord, err := hasher.Generate(dummyPassword)
	if err != nil {
		return nil, fmt.Errorf("generating dummy password record: %w", err)
	}

	return &authService{
		userRepository: userRepository,
		unitOfWork:     unitOfWork,
		hasher:         hasher,
		accessTokens:   accessTokens,
		refreshTokens:  refreshTokens,
		clock:          clock,
		dummyRecord:    dummyRecord,
		logger:         logger,
	}, nil
}

// SignIn authenticates a user by username or e-mail plus password and
// issues a fresh token pair. Any previous session is replaced: a user
// holds at most one live refresh token. The replacement is persisted
// inside a single transaction, so a failed sign-in never leaves a
// half-rotated session behind.
//
// Unknown identifiers and wrong passwords both collapse to
// [ErrInvalidCredentials]; the response never reveals which part failed.
func (a *authService) SignIn(ctx context.Context, req models.SignInRequest) (models.Session, error) {
	log := logger.FromContext(ctx)

	user, err := a.userRepository.FindByUsernameOrEmail(ctx, req.Identifier)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			a.hasher.Verify(req.Password, a.dummyRecord)
			return models.Session{}, ErrInvalidCredentials
		}
		log.Err(err).Str("func", "*authService.SignIn").Msg("user lookup failed")
		return models.Session{}, fmt.Errorf("%w: %w", ErrCouldNotSignIn, err)
	}

	if !a.hasher.Verify(req.Password, user.Password) {
		log.Warn().Str("func", "*authService.SignIn").Str("user_id", user.UserID).Msg("wrong password")
		return models.Session{}, ErrInvalidCredentials
	}

	var session models.Session
	err = a.unitOfWork.Do(ctx, func(ctx context.Context) error {
		session, err = a.issueSession(ctx, user)
		return err
	})
	if err != nil {
		log.Err(err).Str("func", "*authService.SignIn").Str("user_id", user.UserID).Msg("session issue failed")
		return models.Session{}, fmt.Errorf("%w: %w", ErrCouldNotSignIn, err)
	}

	log.Info().Str("user_id", session.User.UserID).Msg("user signed in")
	return session, nil
}

// Renew rotates a session: it validates the presented refresh token,
// proves who the caller is from the access token's signature, and issues a
// fresh pair while atomically invalidating the old refresh token.
//
// The access token may be expired; only its signature and embedded
// identity are checked. The whole rotation runs inside one transaction
// with the user row locked, so of two concurrent renewals with the same
// refresh token exactly one succeeds and the other observes the token as
// already rotated.
//
// Returns the new session or:
//   - [ErrRefreshTokenInvalid] when the token matches no live session;
//   - [ErrRefreshTokenExpired] when the persisted session has lapsed;
//   - [ErrAccessTokenInvalid] when the access token is malformed, carries
//     a bad signature, or belongs to a different user;
//   - [ErrCouldNotRenewTokens] wrapping any storage failure.
func (a *authService) Renew(ctx context.Context, accessToken, refreshToken string) (models.Session, error) {
	log := logger.FromContext(ctx)

	var session models.Session
	err := a.unitOfWork.Do(ctx, func(ctx context.Context) error {
		user, err := a.userRepository.FindByRefreshToken(ctx, refreshToken)
		if err != nil {
			if errors.Is(err, store.ErrNoUserWasFound) {
				return ErrRefreshTokenInvalid
			}
			return fmt.Errorf("%w: %w", ErrCouldNotRenewTokens, err)
		}

		if err := a.refreshTokens.Validate(user); err != nil {
			return err
		}

		userID, _, err := a.accessTokens.ExtractIdentity(accessToken)
		if err != nil {
			return err
		}
		if userID != user.UserID {
			log.Warn().Str("func", "*authService.Renew").Str("user_id", user.UserID).Msg("access token identity mismatch")
			return ErrAccessTokenInvalid
		}

		session, err = a.issueSession(ctx, user)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrCouldNotRenewTokens, err)
		}
		return nil
	})
	if err != nil {
		return models.Session{}, err
	}

	log.Info().Str("user_id", session.User.UserID).Msg("session renewed")
	return session, nil
}

// SignOut revokes the session holding the presented refresh token. The
// token and its expiry are cleared together, so a revoked token can never
// renew again.
//
// Returns [ErrRefreshTokenInvalid] when the token matches no live session,
// or [ErrCouldNotRevokeTokens] wrapping any storage failure.
func (a *authService) SignOut(ctx context.Context, refreshToken string) error {
	log := logger.FromContext(ctx)

	err := a.unitOfWork.Do(ctx, func(ctx context.Context) error {
		user, err := a.userRepository.FindByRefreshToken(ctx, refreshToken)
		if err != nil {
			if errors.Is(err, store.ErrNoUserWasFound) {
				return ErrRefreshTokenInvalid
			}
			return fmt.Errorf("%w: %w", ErrCouldNotRevokeTokens, err)
		}

		user.ClearRefreshToken(a.clock.Now())
		if _, err := a.userRepository.UpdateUser(ctx, user); err != nil {
			return fmt.Errorf("%w: %w", ErrCouldNotRevokeTokens, err)
		}

		log.Info().Str("user_id", user.UserID).Msg("user signed out")
		return nil
	})
	return err
}

// DeleteAccount soft-deletes the authenticated user's account. The record
// is marked deleted and its refresh token revoked in one transaction;
// afterwards the account is invisible to every lookup and its username and
// e-mail become available again.
//
// Returns [ErrUserNotFound] when no live account matches userID, or
// [ErrCouldNotDeleteUser] wrapping any storage failure.
func (a *authService) DeleteAccount(ctx context.Context, userID string) error {
	log := logger.FromContext(ctx)

	err := a.unitOfWork.Do(ctx, func(ctx context.Context) error {
		user, err := a.userRepository.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, store.ErrNoUserWasFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("%w: %w", ErrCouldNotDeleteUser, err)
		}

		now := a.clock.Now()
		user.ClearRefreshToken(now)
		user.MarkAsDeleted(now)
		if _, err := a.userRepository.UpdateUser(ctx, user); err != nil {
			return fmt.Errorf("%w: %w", ErrCouldNotDeleteUser, err)
		}

		log.Info().Str("user_id", user.UserID).Msg("user account deleted")
		return nil
	})
	return err
}

// Profile returns the account of an authenticated user.
func (a *authService) Profile(ctx context.Context, userID string) (models.User, error) {
	user, err := a.userRepository.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("unexpected storage error: %w", err)
	}
	return user, nil
}

// issueSession mints a fresh token pair for user and persists the rotated
// refresh token.
func (a *authService) issueSession(ctx context.Context, user models.User) (models.Session, error) {
	accessToken, err := a.accessTokens.Issue(user)
	if err != nil {
		return models.Session{}, err
	}

	refreshToken, err := a.refreshTokens.Issue(&user)
	if err != nil {
		return models.Session{}, err
	}

	updatedUser, err := a.userRepository.UpdateUser(ctx, user)
	if err != nil {
		return models.Session{}, err
	}

	return models.Session{
		User:         updatedUser,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
