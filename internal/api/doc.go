// Package api contains the HTTP handlers that translate transport requests
// into domain service calls and service results into responses. All business
// rules live below this layer.
package api
