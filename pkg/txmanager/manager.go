package txmanager

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
	// maxSerializableRetries максимальное число повторов сериализуемой транзакции
	maxSerializableRetries = 3

	// retryBaseBackoff базовая задержка перед повтором (растёт экспоненциально)
	retryBaseBackoff = 50 * time.Millisecond

	// Коды ошибок PostgreSQL, при которых транзакцию имеет смысл повторить
	pgCodeSerializationFailure = "40001"
	pgCodeDeadlockDetected     = "40P01"
)

var (
	// ErrBeginTx возвращается при ошибке старта транзакции
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommitTx возвращается при ошибке коммита
	ErrCommitTx = errors.New("txmanager: failed to commit transaction")

	// ErrSerializationConflict возвращается, когда сериализуемая транзакция
	// не прошла после всех повторов из-за конфликта с конкурентной транзакцией
	ErrSerializationConflict = errors.New("txmanager: serialization conflict after retries")
)

// TransactionManager управляет транзакциями поверх dbmetrics.DB.
// Транзакция передаётся вниз по стеку через контекст (dbmetrics.WithTx),
// репозитории подхватывают её через dbmetrics.GetExecutor.
type TransactionManager struct {
	db *dbmetrics.DB
}

// NewTransactionManager создает новый transaction manager
func NewTransactionManager(db *dbmetrics.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию (Read Committed)
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.runOnce(ctx, &sql.TxOptions{}, fn)
}

// DoReadOnly выполняет fn в read-only транзакции
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.runOnce(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

// DoSerializable выполняет fn в сериализуемой транзакции.
// При serialization failure / deadlock повторяет до maxSerializableRetries раз
// с экспоненциальной задержкой, после чего возвращает ErrSerializationConflict.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	// Если транзакция уже открыта выше по стеку - просто выполняем fn в ней
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

	txCtx := dbmetrics.WithTx(ctx, tx)

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

// isRetryable проверяет, что ошибка - транзиентный конфликт PostgreSQL
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
