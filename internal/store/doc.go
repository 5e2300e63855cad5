// Package store defines the data-access contracts shared between the
// query-execution layer and the domain services: the Row type produced by
// queries and the error taxonomy every database operation resolves into.
package store
