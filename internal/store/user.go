package store

import (
	"context"
	"database/sql"

	"github.com/mercato-api/mercato/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store and assigns its ID.
	// The user must carry an already-hashed password or a Google identity.
	// Returns ErrEmailExists if the email is already taken, or
	// ErrGoogleIDExists if the Google identity is already linked elsewhere.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByGoogleID retrieves a user by the Google subject identifier.
	// Returns ErrUserNotFound if no account is linked to that identity.
	GetByGoogleID(ctx context.Context, googleID string) (*domain.User, error)

	// Update modifies an existing user's details. The caller must provide a
	// complete user object. Returns ErrUserNotFound if the user does not
	// exist and ErrEmailExists when updating to a taken email.
	Update(ctx context.Context, user *domain.User) error

	// WithTx returns a UserStore bound to the provided transaction so that
	// multiple operations can run atomically. The transaction is created and
	// managed by the caller.
	WithTx(tx *sql.Tx) UserStore
}
