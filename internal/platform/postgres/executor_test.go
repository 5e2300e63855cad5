package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getapet/server/internal/store"
)

const (
	testQuery  = `SELECT id, username FROM users WHERE username = $1`
	testInsert = `INSERT INTO favorites (user_id, ad_id) VALUES ($1, $2)`
)

// newTestExecutor returns an executor over a sqlmock database with sleeping
// replaced by a recorder, so retry tests finish instantly.
func newTestExecutor(t *testing.T) (*Executor, sqlmock.Sqlmock, *[]time.Duration) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})

	e := NewExecutor(db, nil)
	var slept []time.Duration
	e.sleep = func(d time.Duration) {
		slept = append(slept, d)
	}
	return e, mock, &slept
}

func expectAttempt(mock sqlmock.Sqlmock, query string) *sqlmock.ExpectedPrepare {
	mock.ExpectBegin()
	return mock.ExpectPrepare(regexp.QuoteMeta(query))
}

func TestExecutorQuery_Success(t *testing.T) {
	e, mock, slept := newTestExecutor(t)

	rows := sqlmock.NewRows([]string{"id", "username"}).AddRow(int64(7), "alice")
	expectAttempt(mock, testQuery).
		ExpectQuery().
		WithArgs("alice").
		WillReturnRows(rows)
	mock.ExpectCommit()

	result, err := e.Query(context.Background(), testQuery, "alice")
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, int64(7), result[0]["id"])
	assert.Equal(t, "alice", result[0]["username"])
	assert.Empty(t, *slept)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecutorQuery_NoRows(t *testing.T) {
	e, mock, _ := newTestExecutor(t)

	expectAttempt(mock, testQuery).
		ExpectQuery().
		WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}))
	mock.ExpectCommit()

	result, err := e.Query(context.Background(), testQuery, "nobody")
	require.NoError(t, err)
	assert.Empty(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecutorUpdate_Success(t *testing.T) {
	e, mock, _ := newTestExecutor(t)

	expectAttempt(mock, testInsert).
		ExpectExec().
		WithArgs(1, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	affected, err := e.Update(context.Background(), testInsert, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecutorUpdate_ConflictIsNotRetried(t *testing.T) {
	e, mock, slept := newTestExecutor(t)

	pgErr := &pgconn.PgError{
		Code:   "23505",
		Detail: "Key (username)=(alice) already exists.",
	}
	expectAttempt(mock, testInsert).
		ExpectExec().
		WithArgs(1, 2).
		WillReturnError(pgErr)
	mock.ExpectRollback()

	_, err := e.Update(context.Background(), testInsert, 1, 2)
	require.Error(t, err)
	assert.True(t, store.IsConflict(err))

	var conflict *store.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "username", conflict.Column)
	assert.Equal(t, "alice", conflict.Value)

	assert.Empty(t, *slept, "conflicts must not be retried")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecutorQuery_RecoverableFailureIsRetried(t *testing.T) {
	e, mock, slept := newTestExecutor(t)

	connErr := &pgconn.PgError{Code: "08006"}
	for i := 0; i < 2; i++ {
		expectAttempt(mock, testQuery).
			ExpectQuery().
			WithArgs("alice").
			WillReturnError(connErr)
		mock.ExpectRollback()
	}
	expectAttempt(mock, testQuery).
		ExpectQuery().
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(int64(7), "alice"))
	mock.ExpectCommit()

	result, err := e.Query(context.Background(), testQuery, "alice")
	require.NoError(t, err)
	require.Len(t, result, 1)

	require.Len(t, *slept, 2)
	for i, d := range *slept {
		unit := baseDelay << (i + 1)
		assert.GreaterOrEqual(t, d, unit/2, "delay %d below jitter floor", i)
		assert.Less(t, d, unit, "delay %d above jitter ceiling", i)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecutorQuery_RetriesExhausted(t *testing.T) {
	e, mock, slept := newTestExecutor(t)

	connErr := &pgconn.PgError{Code: "08006"}
	for i := 0; i <= maxRetries; i++ {
		expectAttempt(mock, testQuery).
			ExpectQuery().
			WithArgs("alice").
			WillReturnError(connErr)
		mock.ExpectRollback()
	}

	_, err := e.Query(context.Background(), testQuery, "alice")
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrExecutionFailed)
	assert.False(t, store.IsConflict(err))
	assert.Len(t, *slept, maxRetries)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecutorUpdate_TerminalFailureRollsBack(t *testing.T) {
	e, mock, slept := newTestExecutor(t)

	pgErr := &pgconn.PgError{Code: "42703", Message: "column does not exist"}
	expectAttempt(mock, testInsert).
		ExpectExec().
		WithArgs(1, 2).
		WillReturnError(pgErr)
	mock.ExpectRollback()

	_, err := e.Update(context.Background(), testInsert, 1, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrExecutionFailed)
	assert.Empty(t, *slept)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecutorUpdate_RollbackFailure(t *testing.T) {
	e, mock, _ := newTestExecutor(t)

	pgErr := &pgconn.PgError{Code: "42703", Message: "column does not exist"}
	expectAttempt(mock, testInsert).
		ExpectExec().
		WithArgs(1, 2).
		WillReturnError(pgErr)
	mock.ExpectRollback().WillReturnError(errors.New("connection lost"))

	_, err := e.Update(context.Background(), testInsert, 1, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrRollbackFailed)

	var rbErr *store.RollbackError
	require.ErrorAs(t, err, &rbErr)
	assert.ErrorContains(t, rbErr.RollbackErr, "connection lost")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecutorQuery_ContextCancellationIsNotRetried(t *testing.T) {
	e, mock, slept := newTestExecutor(t)

	expectAttempt(mock, testQuery).
		ExpectQuery().
		WithArgs("alice").
		WillReturnError(context.Canceled)
	mock.ExpectRollback()

	_, err := e.Query(context.Background(), testQuery, "alice")
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrExecutionFailed)
	assert.Empty(t, *slept, "cancellation must not be retried")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBackoffDelay_Bounds(t *testing.T) {
	e := &Executor{}

	for retry := 1; retry <= 10; retry++ {
		d := baseDelay << retry
		if d > maxBackoff || d <= 0 {
			d = maxBackoff
		}
		for i := 0; i < 50; i++ {
			got := e.backoffDelay(retry)
			assert.GreaterOrEqual(t, got, d/2)
			assert.Less(t, got, d)
			assert.LessOrEqual(t, got, maxBackoff)
		}
	}
}

func TestIsRecoverable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"connection exception", &pgconn.PgError{Code: "08006"}, true},
		{"admin shutdown", &pgconn.PgError{Code: "57P01"}, true},
		{"cannot connect", &pgconn.PgError{Code: "57P03"}, true},
		{"unique violation", &pgconn.PgError{Code: "23505"}, false},
		{"undefined column", &pgconn.PgError{Code: "42703"}, false},
		{"context canceled", context.Canceled, false},
		{"deadline exceeded", context.DeadlineExceeded, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, isRecoverable(tc.err))
		})
	}
}
