package service

import (
	"errors"
	"fmt"

	"faculty-portal-api/internal/models"
)

// The four error kinds every workflow failure maps to. Handlers
// translate them to HTTP outcomes; nothing else escapes the service.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidState = errors.New("invalid state")
	ErrValidation   = errors.New("validation failed")
)

func notFound(what string) error {
	return fmt.Errorf("%s: %w", what, ErrNotFound)
}

func forbidden(reason string) error {
	return fmt.Errorf("%s: %w", reason, ErrForbidden)
}

func invalidState(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidState)
}

func validation(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrValidation)
}

// lockedErr is the terminal-task rejection. Kept distinct so the
// message always names the completed state.
func lockedErr() error {
	return invalidState("task is locked (%s)", models.StatusCompleted)
}
