package usecase

import (
	"errors"
	"strings"
)

var (
	ErrDuplicateUser      = errors.New("username or email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrNoteNotFound       = errors.New("note not found")
	ErrInvalidNoteID      = errors.New("invalid note id")
)

// ValidationError is returned for input the caller can fix. Message is
// safe to show to clients.
type ValidationError struct {
	Message string
	Details []string
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.Details, ", ")
}

func invalid(message string, details ...string) *ValidationError {
	return &ValidationError{Message: message, Details: details}
}
