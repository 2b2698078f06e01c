package models

// PasswordRecord is the stored representation of a user password: the
// KDF-derived hash and the random salt it was derived with. The record is
// opaque everywhere except the crypto package, which produces and verifies
// it.
type PasswordRecord struct {
	Hash []byte
	Salt []byte
}

// IsZero reports whether the record carries no credential material.
func (p PasswordRecord) IsZero() bool {
	return len(p.Hash) == 0 && len(p.Salt) == 0
}
