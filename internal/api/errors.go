package api

import (
	"errors"
	"net/http"

	"github.com/mercato-api/mercato/internal/domain"
	"github.com/mercato-api/mercato/internal/platform/google"
	"github.com/mercato-api/mercato/internal/service/auth"
	"github.com/mercato-api/mercato/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, google.ErrAuthFailed):
		return http.StatusUnauthorized

	// Not found errors
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Duplicate and conflict errors
	case store.IsDuplicateError(err),
		errors.Is(err, store.ErrCategoryInUse):
		return http.StatusBadRequest

	// Validation errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrEmptyEmail),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrMissingCredential),
		errors.Is(err, domain.ErrEmptyName),
		errors.Is(err, domain.ErrNegativePrice),
		errors.Is(err, domain.ErrInvalidCategoryID):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message based
// on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, google.ErrAuthFailed):
		return "External authentication failed"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrCategoryNotFound):
		return "Category not found"

	case errors.Is(err, store.ErrProductNotFound):
		return "Product not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, store.ErrGoogleIDExists):
		return "Google account already linked"

	case errors.Is(err, store.ErrCategoryNameExists):
		return "Category name already exists"

	case errors.Is(err, store.ErrProductNameExists):
		return "Product name already exists"

	case errors.Is(err, store.ErrCategoryInUse):
		return "Category has products attached"

	default:
		return "An unexpected error occurred"
	}
}
