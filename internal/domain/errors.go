// Package domain defines shared models and sentinel errors used across
// services and handlers. Callers match these values with errors.Is.
package domain

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrNotFound   = errors.New("not found")
	ErrEmailTaken = errors.New("user already exists")

	// Service-level errors.
	ErrValidation         = errors.New("validation error")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")

	// Auth errors (missing, malformed, badly signed, or expired token).
	ErrInvalidToken = errors.New("invalid token")
)

type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func (e *validationError) Is(target error) bool { return target == ErrValidation }

// Validationf builds an error that carries a caller-facing message and
// matches ErrValidation under errors.Is.
func Validationf(format string, args ...any) error {
	return &validationError{msg: fmt.Sprintf(format, args...)}
}
