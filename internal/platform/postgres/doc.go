// Package postgres implements the query-execution engine on top of a pooled
// PostgreSQL connection. Every logical operation runs under its own
// connection and transaction, failures are classified into retryable,
// conflict and terminal categories, and retryable failures are re-executed
// with randomized exponential backoff.
package postgres
