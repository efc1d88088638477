package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyEmail is returned when an email address is missing.
	ErrEmptyEmail = errors.New("email cannot be empty")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrMissingCredential is returned when a user has neither a password
	// hash nor a linked Google identity. Every account is created through
	// exactly one of the two paths, so this never holds for a stored user.
	ErrMissingCredential = errors.New("user must have a password or a linked Google account")

	// ErrEmptyName is returned when a required name field is empty.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrNegativePrice is returned when a product price is below zero.
	ErrNegativePrice = errors.New("price cannot be negative")

	// ErrInvalidCategoryID is returned when a product references a
	// non-positive category ID.
	ErrInvalidCategoryID = errors.New("invalid category ID")
)
