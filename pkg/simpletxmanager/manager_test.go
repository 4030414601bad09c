package simpletxmanager

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConn отдает подготовленный список ошибок коммита, по одной на транзакцию
type fakeConn struct {
	mu         sync.Mutex
	begins     int
	commitErrs []error
}

func (c *fakeConn) Prepare(query string) (driver.Stmt, error) {
	return nil, errors.New("not supported")
}

func (c *fakeConn) Close() error { return nil }

func (c *fakeConn) Begin() (driver.Tx, error) {
	return c.BeginTx(context.Background(), driver.TxOptions{})
}

func (c *fakeConn) BeginTx(ctx context.Context, opts driver.TxOptions) (driver.Tx, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.begins++
	var commitErr error
	if len(c.commitErrs) > 0 {
		commitErr = c.commitErrs[0]
		c.commitErrs = c.commitErrs[1:]
	}
	return &fakeTx{commitErr: commitErr}, nil
}

type fakeTx struct {
	commitErr error
}

func (t *fakeTx) Commit() error   { return t.commitErr }
func (t *fakeTx) Rollback() error { return nil }

type fakeConnector struct {
	conn *fakeConn
}

func (c *fakeConnector) Connect(ctx context.Context) (driver.Conn, error) { return c.conn, nil }
func (c *fakeConnector) Driver() driver.Driver                            { return nil }

func newTestManager(commitErrs ...error) (*TransactionManager, *fakeConn) {
	conn := &fakeConn{commitErrs: commitErrs}
	db := sql.OpenDB(&fakeConnector{conn: conn})
	db.SetMaxOpenConns(1)
	return NewTransactionManager(db), conn
}

func serializationFailure() error {
	return &pq.Error{Code: "40001", Message: "could not serialize access due to concurrent update"}
}

func TestDoSerializable_RetriesSerializationFailureOnCommit(t *testing.T) {
	m, conn := newTestManager(serializationFailure(), serializationFailure())

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, conn.begins)
	assert.Equal(t, 3, calls)
}

func TestDoSerializable_ExhaustsRetries(t *testing.T) {
	m, conn := newTestManager(
		serializationFailure(), serializationFailure(),
		serializationFailure(), serializationFailure(),
	)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return nil
	})

	assert.ErrorIs(t, err, ErrSerializationConflict)
	assert.Equal(t, maxSerializableRetries+1, conn.begins)
}

func TestDoSerializable_RetriesWrappedCallbackConflict(t *testing.T) {
	// Ошибка драйвера, обернутая репозиторием и usecase, остается повторяемой
	m, conn := newTestManager()

	errExec := errors.New("reservation.repository: failed to execute query")
	errInternal := errors.New("reserve_slot: internal error")

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		if calls == 1 {
			repoErr := fmt.Errorf("%w: GetActiveByFacilityAndDate - execute query: %w", errExec, serializationFailure())
			return fmt.Errorf("%w: failed to get reservations: %w", errInternal, repoErr)
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, conn.begins)
}

func TestDoSerializable_NonRetryableCommitError(t *testing.T) {
	m, conn := newTestManager(&pq.Error{Code: "23505"})

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return nil
	})

	assert.ErrorIs(t, err, ErrCommitTx)
	assert.NotErrorIs(t, err, ErrSerializationConflict)
	assert.Equal(t, 1, conn.begins)
}

func TestDoSerializable_CallbackErrorNotRetried(t *testing.T) {
	m, conn := newTestManager()
	wantErr := errors.New("validation failed")

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return wantErr
	})

	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, 1, conn.begins)
}
