package services

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks input the client must fix.
	ErrValidation = errors.New("validation error")
	// ErrInvalidTransition is a validation error for a disallowed status change.
	ErrInvalidTransition = fmt.Errorf("%w: invalid status transition", ErrValidation)
	// ErrDuplicateEmail is returned when registering an email that is taken.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidCredentials never says which of email or password was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrNotFound is returned for missing records and for records owned by
	// someone else.
	ErrNotFound = errors.New("not found")
)
