package simpletxmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/lib/pq"

	"github.com/m04kA/RC-FacilityService/pkg/dbmetrics"
)

const (
	maxSerializableRetries = 3
	retryBaseBackoff       = 50 * time.Millisecond

	pgCodeSerializationFailure = "40001"
	pgCodeDeadlockDetected     = "40P01"
)

var (
	// ErrBeginTx возвращается при ошибке старта транзакции
	ErrBeginTx = errors.New("simpletxmanager: failed to begin transaction")

	// ErrCommitTx возвращается при ошибке коммита
	ErrCommitTx = errors.New("simpletxmanager: failed to commit transaction")

	// ErrSerializationConflict возвращается после исчерпания повторов
	ErrSerializationConflict = errors.New("simpletxmanager: serialization conflict after retries")
)

// TransactionManager вариант transaction manager для обычного *sql.DB
// (когда метрики выключены). Семантика идентична pkg/txmanager.
type TransactionManager struct {
	db *sql.DB
}

// NewTransactionManager создает новый transaction manager
func NewTransactionManager(db *sql.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.runOnce(ctx, &sql.TxOptions{}, fn)
}

// DoReadOnly выполняет fn в read-only транзакции
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.runOnce(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

// DoSerializable выполняет fn в сериализуемой транзакции с повторами
// на serialization failure / deadlock
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var lastErr error
	for attempt := 0; attempt <= maxSerializableRetries; attempt++ {
		if attempt > 0 {
			backoff := retryBaseBackoff * time.Duration(1<<(attempt-1))
			jitter := time.Duration(rand.Int63n(int64(backoff) / 2))

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff + jitter):
			}
		}

		lastErr = m.runOnce(ctx, opts, fn)
		if lastErr == nil {
			return nil
		}
		if !isRetryable(lastErr) {
			return lastErr
		}
	}

	return fmt.Errorf("%w: %v", ErrSerializationConflict, lastErr)
}

func (m *TransactionManager) runOnce(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginTx, err)
	}

	txCtx := dbmetrics.WithTx(ctx, &dbmetrics.SqlTxWrapper{Tx: tx})

	if err := fn(txCtx); err != nil {
		_ = tx.Rollback()
		return err
	}

	// Ошибка драйвера остается в цепочке: isRetryable должен видеть
	// код PostgreSQL и после оборачивания
	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%w: %w", ErrCommitTx, err)
	}

	return nil
}

func isRetryable(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}

	switch string(pqErr.Code) {
	case pgCodeSerializationFailure, pgCodeDeadlockDetected:
		return true
	default:
		return false
	}
}
