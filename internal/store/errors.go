package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. Entity-specific variants below wrap it.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g., a user with the same email).
	ErrDuplicate = errors.New("entity already exists")

	// Entity-specific "not found" errors

	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrCategoryNotFound indicates that the requested category does not exist.
	ErrCategoryNotFound = fmt.Errorf("%w: category", ErrNotFound)

	// ErrProductNotFound indicates that the requested product does not exist.
	ErrProductNotFound = fmt.Errorf("%w: product", ErrNotFound)

	// Entity-specific "duplicate" errors, surfaced when the database's
	// uniqueness constraints reject a write. Concurrent creations race on
	// these constraints; exactly one writer wins and the rest observe the
	// named error rather than a raw constraint violation.

	// ErrEmailExists indicates that a user with the given email already exists.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)

	// ErrGoogleIDExists indicates that the Google subject identifier is
	// already linked to another account.
	ErrGoogleIDExists = fmt.Errorf("%w: google id", ErrDuplicate)

	// ErrCategoryNameExists indicates that a category with the given name
	// already exists.
	ErrCategoryNameExists = fmt.Errorf("%w: category name", ErrDuplicate)

	// ErrProductNameExists indicates that a product with the given name
	// already exists.
	ErrProductNameExists = fmt.Errorf("%w: product name", ErrDuplicate)

	// ErrCategoryInUse indicates that a category still has products attached
	// and cannot be deleted.
	ErrCategoryInUse = errors.New("category has products attached")
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
