package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	ErrInternal     ErrorCode = "INTERNAL_ERROR"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrUnauthorized ErrorCode = "UNAUTHORIZED"

	// Quiz specific errors
	ErrCourseNotFound   ErrorCode = "COURSE_NOT_FOUND"
	ErrSessionNotFound  ErrorCode = "SESSION_NOT_FOUND"
	ErrCourseExists     ErrorCode = "COURSE_EXISTS"
	ErrAlreadyFinalized ErrorCode = "ALREADY_FINALIZED"
	ErrSessionConflict  ErrorCode = "SESSION_CONFLICT"
	ErrLLMServiceError  ErrorCode = "LLM_SERVICE_ERROR"
)

// ErrCacheMiss is returned by Cache implementations when a key is absent.
var ErrCacheMiss = errors.New("cache miss")

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Helper functions for common errors
func NewNotFoundError(message string) *DomainError {
	return NewError(ErrNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(ErrInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(ErrInternal, message, err)
}

func NewUnauthorizedError(message string) *DomainError {
	return NewError(ErrUnauthorized, message, nil)
}

func NewCourseNotFoundError(courseID string) *DomainError {
	return NewError(ErrCourseNotFound, fmt.Sprintf("Course %s not found", courseID), nil)
}

func NewSessionNotFoundError() *DomainError {
	return NewError(ErrSessionNotFound, "session not found", nil)
}

func NewCourseExistsError(courseID string) *DomainError {
	return NewError(ErrCourseExists, fmt.Sprintf("Course %s already exists", courseID), nil)
}

func NewAlreadyFinalizedError() *DomainError {
	return NewError(ErrAlreadyFinalized, "session already finalized", nil)
}

// NewSessionConflictError reports a lost optimistic-update race on a session record.
func NewSessionConflictError(username, courseID string) *DomainError {
	return NewError(ErrSessionConflict,
		fmt.Sprintf("concurrent update on session (%s, %s)", username, courseID), nil)
}

func NewLLMServiceError(err error) *DomainError {
	return NewError(ErrLLMServiceError, "Failed to process with LLM service", err)
}
