package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TourBookingService/pkg/dbmetrics"
)

type fakeTx struct{}

func (t *fakeTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (t *fakeTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (t *fakeTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

func (t *fakeTx) Commit() error   { return nil }
func (t *fakeTx) Rollback() error { return nil }

type fakeBeginner struct {
	beginErr error
}

func (b *fakeBeginner) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	if b.beginErr != nil {
		return nil, b.beginErr
	}
	return &fakeTx{}, nil
}

func serializationFailure() error {
	return &pq.Error{Code: "40001", Message: "could not serialize access due to concurrent update"}
}

// layeredWrap повторяет цепочку обёрток репозитория и usecase-а
// поверх ошибки драйвера.
func layeredWrap(err error) error {
	errExecQuery := errors.New("booking: failed to execute query")
	repoErr := fmt.Errorf("%w: GetActiveByTour - execute query: %w", errExecQuery, err)
	errInternal := errors.New("create_booking: internal error")
	return fmt.Errorf("%w: failed to get bookings: %w", errInternal, repoErr)
}

func TestDoSerializable_RetriesOnSerializationFailure(t *testing.T) {
	m := NewTransactionManager(&fakeBeginner{})

	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return serializationFailure()
	})

	require.Error(t, err)
	assert.Equal(t, maxSerializableRetries, attempts)

	var pqErr *pq.Error
	require.True(t, errors.As(err, &pqErr))
	assert.Equal(t, pq.ErrorCode(pgSerializationFailure), pqErr.Code)
}

func TestDoSerializable_RetriesWrappedSerializationFailure(t *testing.T) {
	m := NewTransactionManager(&fakeBeginner{})

	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return layeredWrap(serializationFailure())
	})

	require.Error(t, err)
	assert.Equal(t, maxSerializableRetries, attempts,
		"обёрнутая в слои 40001 должна распознаваться и повторяться")

	var pqErr *pq.Error
	require.True(t, errors.As(err, &pqErr))
	assert.Equal(t, pq.ErrorCode(pgSerializationFailure), pqErr.Code)
}

func TestDoSerializable_SucceedsAfterRetry(t *testing.T) {
	m := NewTransactionManager(&fakeBeginner{})

	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts == 1 {
			return layeredWrap(serializationFailure())
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestDoSerializable_OtherErrorNotRetried(t *testing.T) {
	m := NewTransactionManager(&fakeBeginner{})

	sentinel := errors.New("boom")
	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return layeredWrap(sentinel)
	})

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
	assert.True(t, errors.Is(err, sentinel))
}

func TestDoSerializable_OtherPqErrorNotRetried(t *testing.T) {
	m := NewTransactionManager(&fakeBeginner{})

	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return layeredWrap(&pq.Error{Code: "23505", Constraint: "bookings_reference_key"})
	})

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestDoSerializable_BeginErrorReturned(t *testing.T) {
	beginErr := errors.New("connection refused")
	m := NewTransactionManager(&fakeBeginner{beginErr: beginErr})

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		t.Fatal("fn не должна вызываться при ошибке begin")
		return nil
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, beginErr))
}
