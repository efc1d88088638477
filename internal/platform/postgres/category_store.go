package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mercato-api/mercato/internal/domain"
	"github.com/mercato-api/mercato/internal/platform/logger"
	"github.com/mercato-api/mercato/internal/redact"
	"github.com/mercato-api/mercato/internal/store"
)

// CategoryStore implements the store.CategoryStore interface using a
// PostgreSQL database as the storage backend.
type CategoryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewCategoryStore creates a new PostgreSQL implementation of the
// CategoryStore interface. If logger is nil, a default logger is used.
func NewCategoryStore(db store.DBTX, logger *slog.Logger) *CategoryStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &CategoryStore{
		db:     db,
		logger: logger.With(slog.String("component", "category_store")),
	}
}

// Ensure CategoryStore implements store.CategoryStore interface
var _ store.CategoryStore = (*CategoryStore)(nil)

// Create implements store.CategoryStore.Create.
func (s *CategoryStore) Create(ctx context.Context, category *domain.Category) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := category.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO categories (name, description)
		VALUES ($1, $2)
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query, category.Name, category.Description).
		Scan(&category.ID)
	if err != nil {
		log.Warn("failed to create category", "error", redact.Error(err), "name", category.Name)
		return mapError(err, store.ErrCategoryNotFound)
	}

	return nil
}

// GetByID implements store.CategoryStore.GetByID.
func (s *CategoryStore) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	query := `
		SELECT id, name, COALESCE(description, '')
		FROM categories
		WHERE id = $1
	`
	var category domain.Category
	err := s.db.QueryRowContext(ctx, query, id).
		Scan(&category.ID, &category.Name, &category.Description)
	if err != nil {
		return nil, mapError(err, store.ErrCategoryNotFound)
	}

	return &category, nil
}

// GetByName implements store.CategoryStore.GetByName.
func (s *CategoryStore) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	query := `
		SELECT id, name, COALESCE(description, '')
		FROM categories
		WHERE name = $1
	`
	var category domain.Category
	err := s.db.QueryRowContext(ctx, query, name).
		Scan(&category.ID, &category.Name, &category.Description)
	if err != nil {
		return nil, mapError(err, store.ErrCategoryNotFound)
	}

	return &category, nil
}

// List implements store.CategoryStore.List.
func (s *CategoryStore) List(ctx context.Context) ([]domain.Category, error) {
	query := `
		SELECT id, name, COALESCE(description, '')
		FROM categories
		ORDER BY id
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var categories []domain.Category
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.Description); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}

	return categories, rows.Err()
}

// Update implements store.CategoryStore.Update.
func (s *CategoryStore) Update(ctx context.Context, category *domain.Category) error {
	if err := category.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE categories
		SET name = $1, description = $2
		WHERE id = $3
	`
	result, err := s.db.ExecContext(ctx, query, category.Name, category.Description, category.ID)
	if err != nil {
		return mapError(err, store.ErrCategoryNotFound)
	}

	return checkRowsAffected(result, store.ErrCategoryNotFound)
}

// Delete implements store.CategoryStore.Delete. A category that still has
// products attached is protected by the foreign key and surfaces as
// store.ErrCategoryInUse.
func (s *CategoryStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: category %d", store.ErrCategoryInUse, id)
		}
		return mapError(err, store.ErrCategoryNotFound)
	}

	return checkRowsAffected(result, store.ErrCategoryNotFound)
}
