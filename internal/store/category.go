package store

import (
	"context"

	"github.com/mercato-api/mercato/internal/domain"
)

// CategoryStore defines the interface for category data persistence.
type CategoryStore interface {
	// Create saves a new category and assigns its ID.
	// Returns ErrCategoryNameExists if the name is already taken.
	Create(ctx context.Context, category *domain.Category) error

	// GetByID retrieves a category by its unique ID.
	// Returns ErrCategoryNotFound if the category does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Category, error)

	// GetByName retrieves a category by its name.
	// Returns ErrCategoryNotFound if the category does not exist.
	GetByName(ctx context.Context, name string) (*domain.Category, error)

	// List returns all categories.
	List(ctx context.Context) ([]domain.Category, error)

	// Update modifies an existing category.
	// Returns ErrCategoryNotFound if the category does not exist and
	// ErrCategoryNameExists when renaming to a taken name.
	Update(ctx context.Context, category *domain.Category) error

	// Delete removes a category by its ID.
	// Returns ErrCategoryNotFound if the category does not exist.
	Delete(ctx context.Context, id int64) error
}
