package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/getapet/server/internal/platform/logger"
	"github.com/getapet/server/internal/store"
)

const (
	// maxRetries bounds the number of re-executions after a recoverable
	// failure. After exhaustion the failure escalates as an execution error.
	maxRetries = 3

	// baseDelay is the backoff unit. The delay before retry n is
	// baseDelay<<n with uniform jitter in [d/2, d).
	baseDelay = 1 * time.Second

	// maxBackoff caps a single backoff sleep.
	maxBackoff = 30 * time.Second
)

// stmtOp consumes a prepared statement bound to an open transaction and
// produces the operation result: a page of rows for queries, an affected-row
// count for updates.
type stmtOp[T any] func(ctx context.Context, stmt *sql.Stmt) (T, error)

// Executor executes parameterized SQL statements against a pooled PostgreSQL
// database. Each call acquires a connection, opens a transaction, runs the
// statement and commits; recoverable failures are retried from scratch with
// backoff, conflicts and terminal failures propagate as classified store
// errors. The Executor is safe for concurrent use.
type Executor struct {
	db     *sql.DB
	logger *slog.Logger

	// sleep is time.Sleep outside of tests.
	sleep func(time.Duration)
}

// NewExecutor creates an Executor over the given pooled database handle.
// If log is nil the process default logger is used.
func NewExecutor(db *sql.DB, log *slog.Logger) *Executor {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Executor{
		db:     db,
		logger: log.With(slog.String("component", "executor")),
		sleep:  time.Sleep,
	}
}

// Query runs a parameterized query and returns every result row as an
// unordered column name to value map.
func (e *Executor) Query(ctx context.Context, query string, args ...any) ([]store.Row, error) {
	return execute(ctx, e, query, args, func(ctx context.Context, stmt *sql.Stmt) ([]store.Row, error) {
		rows, err := stmt.QueryContext(ctx, args...)
		if err != nil {
			return nil, err
		}
		defer func() {
			if cerr := rows.Close(); cerr != nil {
				e.logger.Error("failed to close rows", slog.String("error", cerr.Error()))
			}
		}()

		cols, err := rows.Columns()
		if err != nil {
			return nil, err
		}

		var results []store.Row
		for rows.Next() {
			values := make([]any, len(cols))
			ptrs := make([]any, len(cols))
			for i := range values {
				ptrs[i] = &values[i]
			}
			if err := rows.Scan(ptrs...); err != nil {
				return nil, err
			}
			row := make(store.Row, len(cols))
			for i, col := range cols {
				row[col] = values[i]
			}
			results = append(results, row)
		}
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return results, nil
	})
}

// Update runs a parameterized insert, update or delete and returns the
// number of affected rows.
func (e *Executor) Update(ctx context.Context, query string, args ...any) (int64, error) {
	return execute(ctx, e, query, args, func(ctx context.Context, stmt *sql.Stmt) (int64, error) {
		result, err := stmt.ExecContext(ctx, args...)
		if err != nil {
			return 0, err
		}
		return result.RowsAffected()
	})
}

// execute runs one logical operation with the full retry cycle. Each attempt
// uses a fresh connection and transaction; a recoverable failure sleeps and
// re-enters the loop until the retry budget is spent.
func execute[T any](
	ctx context.Context,
	e *Executor,
	query string,
	args []any,
	op stmtOp[T],
) (T, error) {
	var zero T
	log := logger.FromContextOrDefault(ctx, e.logger)

	for retry := 0; ; retry++ {
		result, err := attempt(ctx, e, query, args, op)
		if err == nil {
			return result, nil
		}

		// Already classified by the attempt (conflict, rollback failure,
		// wrapped execution failure): propagate as-is.
		if store.IsConflict(err) ||
			errors.Is(err, store.ErrRollbackFailed) ||
			errors.Is(err, store.ErrExecutionFailed) {
			return zero, err
		}

		// Conflicts surfacing outside an open transaction (e.g. at commit
		// with deferred constraints) are still conflicts.
		if isUniqueViolation(err) {
			log.Info("constraint conflict", slog.String("error", err.Error()))
			return zero, store.NewConflictError(uniqueViolationDetail(err), err)
		}

		if isRecoverable(err) {
			if retry < maxRetries {
				delay := e.backoffDelay(retry + 1)
				log.Warn("recoverable failure, retrying operation",
					slog.Int("retry", retry+1),
					slog.Duration("backoff", delay),
					slog.String("error", err.Error()))
				e.sleep(delay)
				continue
			}
			log.Error("retries exhausted",
				slog.Int("attempts", retry+1),
				slog.String("error", err.Error()))
			return zero, fmt.Errorf("%w: retries exhausted: %w", store.ErrExecutionFailed, err)
		}

		return zero, fmt.Errorf("%w: %w", store.ErrExecutionFailed, err)
	}
}

// attempt performs a single pass of the operation lifecycle: acquire a
// connection from the pool, begin a transaction (implicit auto-commit off),
// prepare the statement, run the handler, commit. The statement and the
// connection are released on every exit path.
func attempt[T any](
	ctx context.Context,
	e *Executor,
	query string,
	args []any,
	op stmtOp[T],
) (T, error) {
	var zero T
	log := logger.FromContextOrDefault(ctx, e.logger)

	conn, err := e.db.Conn(ctx)
	if err != nil {
		return zero, err
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Error("failed to release connection", slog.String("error", cerr.Error()))
		}
	}()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return zero, err
	}

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return zero, e.classifyInTx(ctx, tx, err)
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			log.Error("failed to close statement", slog.String("error", cerr.Error()))
		}
	}()

	result, err := op(ctx, stmt)
	if err != nil {
		return zero, e.classifyInTx(ctx, tx, err)
	}

	if err := tx.Commit(); err != nil {
		return zero, err
	}
	return result, nil
}

// classifyInTx resolves a failure that occurred while a transaction is open.
// Conflicts and recoverable errors roll back quietly and propagate for the
// caller to handle; anything else attempts a rollback and escalates as an
// execution failure, or as a rollback failure when the rollback itself fails.
func (e *Executor) classifyInTx(ctx context.Context, tx *sql.Tx, err error) error {
	log := logger.FromContextOrDefault(ctx, e.logger)

	if isUniqueViolation(err) {
		_ = tx.Rollback()
		log.Info("constraint conflict", slog.String("error", err.Error()))
		return store.NewConflictError(uniqueViolationDetail(err), err)
	}

	if isRecoverable(err) {
		_ = tx.Rollback()
		return err
	}

	log.Error("non-recoverable failure, attempting rollback", slog.String("error", err.Error()))
	if rbErr := tx.Rollback(); rbErr != nil {
		log.Error("rollback failed",
			slog.String("rollback_error", rbErr.Error()),
			slog.String("original_error", err.Error()))
		return &store.RollbackError{RollbackErr: rbErr, Cause: err}
	}
	log.Info("transaction rolled back")
	return fmt.Errorf("%w: %w", store.ErrExecutionFailed, err)
}

// backoffDelay computes the sleep before the given retry: an exponentially
// growing delay with uniform jitter in [d/2, d), capped at maxBackoff.
func (e *Executor) backoffDelay(retryCount int) time.Duration {
	d := baseDelay << retryCount
	if d > maxBackoff || d <= 0 {
		d = maxBackoff
	}
	half := d / 2
	return half + time.Duration(rand.Int64N(int64(half)))
}
