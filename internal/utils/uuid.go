package utils

import "github.com/google/uuid"

// UUIDGenerator produces unique identifiers for newly created entities.
// UUIDv7 is preferred for its time-ordered layout (index-friendly in
// Postgres); plain v4 is the fallback if the monotonic source fails.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
