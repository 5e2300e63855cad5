package domain

import (
	"errors"
	"fmt"
)

// Validation errors. These are detected before any database call and are
// never retried.
var (
	ErrValidation   = errors.New("validation failed")
	ErrInvalidEmail = fmt.Errorf("%w: invalid email", ErrValidation)
	ErrInvalidPhone = fmt.Errorf("%w: invalid phone number", ErrValidation)
)
