package crypto

import "github.com/baliestri/calliope/models"

// PasswordHasher derives and verifies salted password hashes.
//
// Implementations must draw a fresh random salt on every Generate call and
// must compare hashes in constant time during Verify.
type PasswordHasher interface {
	// Generate derives a password record (hash plus the salt it was
	// derived with) from the raw password.
	Generate(rawPassword string) (models.PasswordRecord, error)

	// Verify reports whether rawPassword matches the stored record.
	// A mismatch is not an error: the result is simply false.
	Verify(rawPassword string, record models.PasswordRecord) bool
}
