package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/baliestri/calliope/internal/logger"
)

func newTestUnitOfWork(t *testing.T) (UnitOfWork, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	uow := NewUnitOfWork(&DB{DB: db, logger: logger.Nop(), errorClassificator: NewPostgresErrorClassifier()}, logger.Nop())
	return uow, mock, db
}

func TestUnitOfWork_CommitsOnSuccess(t *testing.T) {
	uow, mock, db := newTestUnitOfWork(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	var sawTx bool
	err := uow.Do(context.Background(), func(ctx context.Context) error {
		sawTx = inTransaction(ctx)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sawTx {
		t.Error("expected callback context to carry the open transaction")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUnitOfWork_RollsBackOnCallbackError(t *testing.T) {
	uow, mock, db := newTestUnitOfWork(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	sentinel := errors.New("domain failure")
	err := uow.Do(context.Background(), func(ctx context.Context) error {
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected callback error to propagate unchanged, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUnitOfWork_NestedDoJoinsOpenTransaction(t *testing.T) {
	uow, mock, db := newTestUnitOfWork(t)
	defer db.Close()

	// a single begin/commit pair despite two Do levels
	mock.ExpectBegin()
	mock.ExpectCommit()

	var innerCalls int
	err := uow.Do(context.Background(), func(ctx context.Context) error {
		return uow.Do(ctx, func(ctx context.Context) error {
			innerCalls++
			if !inTransaction(ctx) {
				t.Error("expected nested callback to run inside the outer transaction")
			}
			return nil
		})
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if innerCalls != 1 {
		t.Errorf("expected 1 inner invocation, got %d", innerCalls)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUnitOfWork_RetriesSerializationFailure(t *testing.T) {
	uow, mock, db := newTestUnitOfWork(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectCommit()

	attempts := 0
	err := uow.Do(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts == 1 {
			return &pgconn.PgError{Code: pgerrcode.SerializationFailure}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", attempts)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUnitOfWork_DoesNotRetryDomainErrors(t *testing.T) {
	uow, mock, db := newTestUnitOfWork(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	attempts := 0
	err := uow.Do(context.Background(), func(ctx context.Context) error {
		attempts++
		return ErrNoUserWasFound
	})
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("expected a single attempt, got %d", attempts)
	}
}

func TestUnitOfWork_GivesUpAfterMaxAttempts(t *testing.T) {
	uow, mock, db := newTestUnitOfWork(t)
	defer db.Close()

	for range maxTxAttempts {
		mock.ExpectBegin()
		mock.ExpectRollback()
	}

	attempts := 0
	err := uow.Do(context.Background(), func(ctx context.Context) error {
		attempts++
		return &pgconn.PgError{Code: pgerrcode.DeadlockDetected}
	})

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.DeadlockDetected {
		t.Fatalf("expected the deadlock error to surface, got %v", err)
	}
	if attempts != maxTxAttempts {
		t.Errorf("expected %d attempts, got %d", maxTxAttempts, attempts)
	}
}
