package store

import "github.com/baliestri/calliope/internal/logger"

// Repositories bundles every storage-layer dependency handed to the service
// layer.
type Repositories struct {
	UserRepository UserRepository
	UnitOfWork     UnitOfWork
}

// NewRepositories wires all repositories over a single database connection.
func NewRepositories(db *DB, log *logger.Logger) *Repositories {
	return &Repositories{
		UserRepository: NewUserRepository(db, log),
		UnitOfWork:     NewUnitOfWork(db, log),
	}
}
