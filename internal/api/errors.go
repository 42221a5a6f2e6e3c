package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/taskhub/taskhub-api/internal/api/shared"
	"github.com/taskhub/taskhub-api/internal/domain"
	"github.com/taskhub/taskhub-api/internal/generation"
	"github.com/taskhub/taskhub-api/internal/platform/pokeapi"
	"github.com/taskhub/taskhub-api/internal/service"
	"github.com/taskhub/taskhub-api/internal/service/auth"
	"github.com/taskhub/taskhub-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Caller gave up or a dependency could not serve the request
	case errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, store.ErrUnavailable):
		return http.StatusServiceUnavailable

	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrWrongAudience),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, service.ErrBlogPostNotFound),
		errors.Is(err, store.ErrNotFound),
		errors.Is(err, pokeapi.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, domain.ErrEmailAlreadyRegistered),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, service.ErrNothingToUpdate),
		errors.Is(err, generation.ErrEmptyPrompt),
		errors.Is(err, shared.ErrEmptyBody):
		return http.StatusBadRequest

	// Upstream failures
	case errors.Is(err, pokeapi.ErrUpstream),
		errors.Is(err, generation.ErrContentBlocked),
		errors.Is(err, generation.ErrInvalidResponse),
		errors.Is(err, generation.ErrTransientFailure),
		errors.Is(err, generation.ErrToolLimitExceeded):
		return http.StatusBadGateway

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	// Handle nil error
	if err == nil {
		return "An unexpected error occurred"
	}

	var validationErr *domain.ValidationError

	switch {
	case errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, store.ErrUnavailable):
		return "Service temporarily unavailable, please try again"

	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrWrongAudience),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, domain.ErrInvalidCredentials):
		return "Invalid email or password"

	// Identity provider rejections
	case errors.Is(err, domain.ErrWeakPassword):
		return "Password should be at least 6 characters"

	case errors.Is(err, domain.ErrInvalidEmail):
		return "Invalid email format"

	case errors.Is(err, domain.ErrEmailAlreadyRegistered):
		return "Email already registered"

	// Not found errors
	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, service.ErrBlogPostNotFound),
		errors.Is(err, store.ErrBlogPostNotFound):
		return "Blog post not found"

	case errors.Is(err, pokeapi.ErrNotFound):
		return "Pokemon not found"

	// Bad request errors
	case errors.As(err, &validationErr):
		return validationErr.Error()

	case errors.Is(err, service.ErrNothingToUpdate):
		return "No fields to update"

	case errors.Is(err, generation.ErrEmptyPrompt):
		return "Prompt is required"

	case errors.Is(err, shared.ErrEmptyBody):
		return "Request body is required"

	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid input"

	// Upstream failures
	case errors.Is(err, pokeapi.ErrUpstream):
		return "Failed to reach the Pokemon API"

	case errors.Is(err, generation.ErrContentBlocked):
		return "The language model declined to answer"

	case errors.Is(err, generation.ErrInvalidResponse),
		errors.Is(err, generation.ErrToolLimitExceeded):
		return "The language model returned an unusable response"

	case errors.Is(err, generation.ErrTransientFailure):
		return "The language model is unavailable, please try again"

	// Default case for unknown errors
	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message naming the first failing field.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("Invalid %s: %s", fe.Field(), getValidationTagMessage(fe.Tag()))
	}

	// Fall back to a generic validation error message
	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	case "datetime":
		return "invalid date"
	default:
		return "validation failed"
	}
}

// respondWithServiceError writes the status and sanitized message for err.
// fallback replaces the generic message for unexpected (500) failures.
func respondWithServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
