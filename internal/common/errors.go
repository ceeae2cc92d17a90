// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Error kinds. Concrete error values match these with errors.Is.
var (
	// ErrValidation marks input that failed a domain rule.
	ErrValidation = errors.New("validation failed")
	// ErrStorage marks a rejected read or write against the persistent store.
	ErrStorage = errors.New("storage failure")
	// ErrFormat marks an import document that could not be parsed.
	ErrFormat = errors.New("invalid document format")

	// ErrMissingConfig is returned when a required setting is absent.
	ErrMissingConfig = errors.New("missing configuration")
	// ErrInvalidConfig is returned when a setting has an unusable value.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ValidationError reports which field broke which rule. No state is mutated
// when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrValidation, e.Reason)
	}
	return fmt.Sprintf("%s: %s %s", ErrValidation, e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError builds a ValidationError.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// StorageError wraps a failure of the key-value store.
type StorageError struct {
	Err error
	Op  string // "read" or "write"
	Key string
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %s %q: %v", ErrStorage, e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrStorage) match.
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

// FormatError reports an import document that is not structured data at all.
type FormatError struct {
	Err error
}

func (e *FormatError) Error() string {
	if e.Err == nil {
		return ErrFormat.Error()
	}
	return fmt.Sprintf("%s: %v", ErrFormat, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrFormat) match.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// UserMessage turns any ledger error into the one-line text shown to the user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		if validationErr.Field == "" {
			return validationErr.Reason
		}
		return fmt.Sprintf("%s %s", validationErr.Field, validationErr.Reason)
	}

	switch {
	case errors.Is(err, ErrFormat):
		return "import failed: the file is not a valid ledger document"
	case errors.Is(err, ErrStorage):
		return "the change could not be saved"
	}

	return err.Error()
}
