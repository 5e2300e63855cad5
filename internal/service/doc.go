// Package service implements the marketplace business operations on top of
// the query-execution engine: registration, login, ad lifecycle, favorites
// and paginated listings. The service is stateless between calls; all
// concurrency correctness comes from storage-level constraints and the
// per-operation transaction in the execution layer.
package service
