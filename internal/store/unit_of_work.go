package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/baliestri/calliope/internal/logger"
)

// maxTxAttempts bounds how many times a transaction is retried after a
// transient failure (serialization conflict, deadlock, connection loss).
const maxTxAttempts = 3

// txContextKey carries the open *sql.Tx through the context passed to the
// unit-of-work callback.
type txContextKey struct{}

// txFromContext returns the transaction carried by ctx, or nil.
func txFromContext(ctx context.Context) *sql.Tx {
	tx, _ := ctx.Value(txContextKey{}).(*sql.Tx)
	return tx
}

// inTransaction reports whether ctx carries an open transaction.
func inTransaction(ctx context.Context) bool {
	return txFromContext(ctx) != nil
}

// sqlUnitOfWork is the PostgreSQL-backed implementation of [UnitOfWork].
type sqlUnitOfWork struct {
	db     *DB
	logger *logger.Logger
}

// NewUnitOfWork constructs a [UnitOfWork] over the provided connection.
func NewUnitOfWork(db *DB, logger *logger.Logger) UnitOfWork {
	logger.Debug().Msg("creating sql unit of work")
	return &sqlUnitOfWork{
		db:     db,
		logger: logger,
	}
}

// Do runs fn inside a transaction. Repository calls made with the context
// passed to fn join that transaction. When ctx already carries an open
// transaction, fn joins it and commit stays with the outermost Do.
//
// Retryable failures restart the whole transaction with a fresh fn
// invocation, up to [maxTxAttempts] attempts. Domain errors returned by fn
// roll back and propagate unchanged.
func (u *sqlUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTransaction(ctx) {
		return fn(ctx)
	}

	log := logger.FromContext(ctx)

	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = u.run(ctx, fn)
		if err == nil {
			return nil
		}
		if u.db.errorClassificator.Classify(err) != Retryable {
			return err
		}
		log.Warn().Err(err).Int("attempt", attempt).Msg("retryable transaction failure")
	}
	return err
}

func (u *sqlUnitOfWork) run(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	txCtx := context.WithValue(ctx, txContextKey{}, tx)
	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			logger.FromContext(ctx).Err(rbErr).Msg("transaction rollback failed")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommittingTransaction, err)
	}
	return nil
}
