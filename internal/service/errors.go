package service

import "errors"

// ErrNotAllowed is returned when the claimed identity does not match a
// stored principal. It is an authorization rejection, distinct from both
// validation and database failures.
var ErrNotAllowed = errors.New("not allowed")
