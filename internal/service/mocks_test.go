package service

import (
	"context"
	"testing"
	"time"

	"github.com/baliestri/calliope/internal/config"
	"github.com/baliestri/calliope/internal/crypto"
	"github.com/baliestri/calliope/models"
)

// ─────────────────────────────────────────────
// Mock: store.UserRepository
// ─────────────────────────────────────────────

type mockUserRepository struct {
	existsByEmailFn         func(ctx context.Context, email string) (bool, error)
	existsByUsernameFn      func(ctx context.Context, username string) (bool, error)
	findByUsernameOrEmailFn func(ctx context.Context, identifier string) (models.User, error)
	findByIDFn              func(ctx context.Context, userID string) (models.User, error)
	findByRefreshTokenFn    func(ctx context.Context, refreshToken string) (models.User, error)
	createUserFn            func(ctx context.Context, user models.User) (models.User, error)
	updateUserFn            func(ctx context.Context, user models.User) (models.User, error)
	clearExpiredFn          func(ctx context.Context, now time.Time) (int64, error)
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.existsByEmailFn != nil {
		return m.existsByEmailFn(ctx, email)
	}
	return false, nil
}

func (m *mockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if m.existsByUsernameFn != nil {
		return m.existsByUsernameFn(ctx, username)
	}
	return false, nil
}

func (m *mockUserRepository) FindByUsernameOrEmail(ctx context.Context, identifier string) (models.User, error) {
	if m.findByUsernameOrEmailFn != nil {
		return m.findByUsernameOrEmailFn(ctx, identifier)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, userID string) (models.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, userID)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) FindByRefreshToken(ctx context.Context, refreshToken string) (models.User, error) {
	if m.findByRefreshTokenFn != nil {
		return m.findByRefreshTokenFn(ctx, refreshToken)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(ctx, user)
	}
	return user, nil
}

func (m *mockUserRepository) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	if m.updateUserFn != nil {
		return m.updateUserFn(ctx, user)
	}
	return user, nil
}

func (m *mockUserRepository) ClearExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error) {
	if m.clearExpiredFn != nil {
		return m.clearExpiredFn(ctx, now)
	}
	return 0, nil
}

// ─────────────────────────────────────────────
// Mock: store.UnitOfWork
// ─────────────────────────────────────────────

// mockUnitOfWork runs the callback directly; calls counts invocations.
type mockUnitOfWork struct {
	calls int
	doFn  func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	if m.doFn != nil {
		return m.doFn(ctx, fn)
	}
	return fn(ctx)
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// fixedClock is a [Clock] pinned to an instant; Advance moves it forward.
type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

func (c *fixedClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		TokenSignKey:    "test-sign-key",
		TokenIssuer:     "calliope-test",
		TokenAudience:   "calliope-test",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 720 * time.Hour,
	}
}

// newTestHasher uses deliberately cheap Argon2id parameters so the suite
// stays fast.
func newTestHasher(t *testing.T) crypto.PasswordHasher {
	t.Helper()
	hasher, err := crypto.NewPasswordHasher(crypto.Params{
		Time:    1,
		Memory:  8 * 1024,
		Threads: 2,
		KeyLen:  16,
		SaltLen: 16,
	})
	if err != nil {
		t.Fatalf("failed to create test hasher: %v", err)
	}
	return hasher
}
