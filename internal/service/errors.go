package service

import (
	"errors"
	"fmt"

	"github.com/taskhub/taskhub-api/internal/store"
)

// Common service errors - sentinel errors used across service implementations.
// The API layer maps these to HTTP status codes.
var (
	// ErrTaskNotFound indicates the task does not exist. Maps to 404.
	ErrTaskNotFound = errors.New("task not found")

	// ErrBlogPostNotFound indicates the blog post does not exist. Maps to 404.
	ErrBlogPostNotFound = errors.New("blog post not found")

	// ErrNothingToUpdate indicates a partial update carried no fields. Maps to 400.
	ErrNothingToUpdate = errors.New("no fields to update")
)

// ServiceError wraps unexpected errors with the service and operation that
// produced them.
type ServiceError struct {
	Service   string
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s failed: %s: %v", e.Service, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s service %s failed: %s", e.Service, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// wrapError returns known sentinel errors directly and wraps anything else
// in a ServiceError.
func wrapError(service, operation, message string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, store.ErrTaskNotFound):
		return ErrTaskNotFound
	case errors.Is(err, store.ErrBlogPostNotFound):
		return ErrBlogPostNotFound
	case errors.Is(err, ErrTaskNotFound),
		errors.Is(err, ErrBlogPostNotFound),
		errors.Is(err, ErrNothingToUpdate):
		return err
	}

	return &ServiceError{
		Service:   service,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
