package postgres

import (
	"context"
	"database/sql/driver"
	"errors"
	"io"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes relevant to failure classification.
const (
	// uniqueViolationCode is the PostgreSQL error code for unique constraint
	// violations.
	uniqueViolationCode = "23505"

	// connectionExceptionClass is the two-character SQLSTATE class covering
	// connection failures (08000, 08003, 08006, ...).
	connectionExceptionClass = "08"

	// adminShutdownCode and crashShutdownCode are raised when the server is
	// going away; the operation is expected to succeed against a fresh
	// connection once the pool re-establishes one.
	adminShutdownCode = "57P01"
	crashShutdownCode = "57P02"
	cannotConnectCode = "57P03"
)

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// uniqueViolationDetail returns the driver diagnostic detail for a unique
// violation ("Key (col)=(value) already exists."), or "" when unavailable.
func uniqueViolationDetail(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Detail
	}
	return ""
}

// isRecoverable reports whether err is a transient connection or transport
// failure that is expected to succeed when the whole operation is retried on
// a fresh connection. Context cancellation is never recoverable: the caller
// has given up.
func isRecoverable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if strings.HasPrefix(pgErr.Code, connectionExceptionClass) {
			return true
		}
		switch pgErr.Code {
		case adminShutdownCode, crashShutdownCode, cannotConnectCode:
			return true
		}
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	return false
}
