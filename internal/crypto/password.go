package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"

	"github.com/baliestri/calliope/models"
)

// ErrInvalidParams is returned by [NewPasswordHasher] when the Argon2id
// tuning parameters are unusable. Parameter misconfiguration is a
// startup-time failure; Generate and Verify never re-validate per call.
var ErrInvalidParams = errors.New("invalid argon2id parameters")

// Params holds the Argon2id tuning parameters. They are stored in the
// hasher so they can be adjusted per deployment target; tests use much
// cheaper settings than production.
type Params struct {
	// Time is the number of iterations over the memory.
	Time uint32
	// Memory is the memory cost in KiB.
	Memory uint32
	// Threads is the degree of parallelism.
	Threads uint8
	// KeyLen is the length of the derived hash in bytes.
	KeyLen uint32
	// SaltLen is the length of the random salt in bytes, minimum 16.
	SaltLen uint32
}

// DefaultParams returns the production Argon2id parameters:
//   - parallelism: 8 threads
//   - iterations:  4
//   - memory cost: 1 GiB
//   - hash length: 16 bytes
//   - salt length: 16 bytes
func DefaultParams() Params {
	return Params{
		Time:    4,
		Memory:  1024 * 1024, // 1 GiB
		Threads: 8,
		KeyLen:  16,
		SaltLen: 16,
	}
}

// passwordHasher is the private Argon2id implementation of [PasswordHasher].
type passwordHasher struct {
	params Params
}

// NewPasswordHasher constructs a [PasswordHasher] with the given Argon2id
// parameters. Returns [ErrInvalidParams] if any parameter is zero or the
// salt length is below 16 bytes; callers are expected to treat that as a
// fatal startup error.
func NewPasswordHasher(params Params) (PasswordHasher, error) {
	if params.Time == 0 || params.Memory == 0 || params.Threads == 0 || params.KeyLen == 0 {
		return nil, fmt.Errorf("%w: time, memory, threads and key length must be positive", ErrInvalidParams)
	}
	if params.SaltLen < 16 {
		return nil, fmt.Errorf("%w: salt length must be at least 16 bytes", ErrInvalidParams)
	}

	return &passwordHasher{params: params}, nil
}

// Generate implements [PasswordHasher]. It reads a fresh salt from the OS
// CSPRNG and derives the hash with Argon2id using the configured
// parameters. A salt is never reused across calls.
func (h *passwordHasher) Generate(rawPassword string) (models.PasswordRecord, error) {
	salt := make([]byte, h.params.SaltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return models.PasswordRecord{}, fmt.Errorf("error reading random salt: %w", err)
	}

	hash := argon2.IDKey(
		[]byte(rawPassword),
		salt,
		h.params.Time,
		h.params.Memory,
		h.params.Threads,
		h.params.KeyLen,
	)

	return models.PasswordRecord{Hash: hash, Salt: salt}, nil
}

// Verify implements [PasswordHasher]. It re-derives the hash with the
// stored salt and the same parameters, then compares in constant time.
// Returns true iff the hashes are equal; a mismatch never produces an
// error.
func (h *passwordHasher) Verify(rawPassword string, record models.PasswordRecord) bool {
	if record.IsZero() {
		return false
	}

	candidate := argon2.IDKey(
		[]byte(rawPassword),
		record.Salt,
		h.params.Time,
		h.params.Memory,
		h.params.Threads,
		h.params.KeyLen,
	)

	return subtle.ConstantTimeCompare(candidate, record.Hash) == 1
}
