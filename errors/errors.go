package errors

import (
	"fmt"
	"net/http"
)

// TaskErrorType categorizes different kinds of request failures
type TaskErrorType string

const (
	ValidationError TaskErrorType = "validation"
	NotFoundError   TaskErrorType = "not_found"
	InternalError   TaskErrorType = "internal"
)

// TaskError provides structured error information with an HTTP status code.
// Only Message reaches the client; Type and Code drive logging and the
// response status.
type TaskError struct {
	Type    TaskErrorType `json:"type"`
	Message string        `json:"message"`
	Code    int           `json:"code"`
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Constructor functions for common error types
func NewValidationError(message string) *TaskError {
	return &TaskError{
		Type:    ValidationError,
		Message: message,
		Code:    http.StatusBadRequest,
	}
}

func NewNotFoundError(message string) *TaskError {
	return &TaskError{
		Type:    NotFoundError,
		Message: message,
		Code:    http.StatusNotFound,
	}
}

func NewInternalError(message string) *TaskError {
	return &TaskError{
		Type:    InternalError,
		Message: message,
		Code:    http.StatusInternalServerError,
	}
}
