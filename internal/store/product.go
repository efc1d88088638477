package store

import (
	"context"

	"github.com/mercato-api/mercato/internal/domain"
)

// ProductFilter narrows List results. Nil fields apply no constraint.
type ProductFilter struct {
	MinPrice    *float64
	MaxPrice    *float64
	CategoryIDs []int64
}

// ProductStore defines the interface for product data persistence.
type ProductStore interface {
	// Create saves a new product and assigns its ID.
	// Returns ErrProductNameExists if the name is already taken.
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by its unique ID.
	// Returns ErrProductNotFound if the product does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Product, error)

	// GetByName retrieves a product by its name.
	// Returns ErrProductNotFound if the product does not exist.
	GetByName(ctx context.Context, name string) (*domain.Product, error)

	// List returns products matching the filter.
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, error)

	// ListByCategory returns all products belonging to the category.
	ListByCategory(ctx context.Context, categoryID int64) ([]domain.Product, error)

	// Update modifies an existing product.
	// Returns ErrProductNotFound if the product does not exist and
	// ErrProductNameExists when renaming to a taken name.
	Update(ctx context.Context, product *domain.Product) error

	// Delete removes a product by its ID.
	// Returns ErrProductNotFound if the product does not exist.
	Delete(ctx context.Context, id int64) error
}
