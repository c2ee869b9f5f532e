package errors

import (
	goerrors "errors"
	"fmt"
)

// ErrorType represents different types of errors in the system
type ErrorType string

const (
	// ErrorTypeNotFound indicates a target entity was absent
	ErrorTypeNotFound ErrorType = "NOT_FOUND"

	// ErrorTypeValidation indicates missing or malformed caller-supplied fields
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypePersistence indicates a storage operation failed
	ErrorTypePersistence ErrorType = "PERSISTENCE"

	// ErrorTypeExternalSync indicates the calendar provider failed
	ErrorTypeExternalSync ErrorType = "EXTERNAL_SYNC"

	// ErrorTypeSend indicates a notification channel failed
	ErrorTypeSend ErrorType = "SEND"
)

// AppError represents an application error
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
	}
}

// NewPersistenceError creates a new persistence error
func NewPersistenceError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypePersistence,
		Message: message,
		Err:     err,
	}
}

// NewExternalSyncError creates a new external sync error
func NewExternalSyncError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeExternalSync,
		Message: message,
		Err:     err,
	}
}

// NewSendError creates a new notification channel error
func NewSendError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeSend,
		Message: message,
		Err:     err,
	}
}

// IsType reports whether err is an AppError of the given type
func IsType(err error, t ErrorType) bool {
	var appErr *AppError
	if goerrors.As(err, &appErr) {
		return appErr.Type == t
	}
	return false
}

// IsNotFound reports whether err is a not found error
func IsNotFound(err error) bool {
	return IsType(err, ErrorTypeNotFound)
}
