package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mercato-api/mercato/internal/domain"
	"github.com/mercato-api/mercato/internal/platform/logger"
	"github.com/mercato-api/mercato/internal/redact"
	"github.com/mercato-api/mercato/internal/store"
)

// ProductStore implements the store.ProductStore interface using a
// PostgreSQL database as the storage backend.
type ProductStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewProductStore creates a new PostgreSQL implementation of the
// ProductStore interface. If logger is nil, a default logger is used.
func NewProductStore(db store.DBTX, logger *slog.Logger) *ProductStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &ProductStore{
		db:     db,
		logger: logger.With(slog.String("component", "product_store")),
	}
}

// Ensure ProductStore implements store.ProductStore interface
var _ store.ProductStore = (*ProductStore)(nil)

// Create implements store.ProductStore.Create.
func (s *ProductStore) Create(ctx context.Context, product *domain.Product) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := product.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO products (name, description, price, category_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := s.db.QueryRowContext(
		ctx,
		query,
		product.Name,
		product.Description,
		product.Price,
		product.CategoryID,
	).Scan(&product.ID)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: category %d", store.ErrCategoryNotFound, product.CategoryID)
		}
		log.Warn("failed to create product", "error", redact.Error(err), "name", product.Name)
		return mapError(err, store.ErrProductNotFound)
	}

	return nil
}

// GetByID implements store.ProductStore.GetByID.
func (s *ProductStore) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := selectProduct + ` WHERE id = $1`
	return s.scanProduct(ctx, query, id)
}

// GetByName implements store.ProductStore.GetByName.
func (s *ProductStore) GetByName(ctx context.Context, name string) (*domain.Product, error) {
	query := selectProduct + ` WHERE name = $1`
	return s.scanProduct(ctx, query, name)
}

// List implements store.ProductStore.List. The filter's nil fields apply no
// constraint; the WHERE clause is assembled from the present ones.
func (s *ProductStore) List(ctx context.Context, filter store.ProductFilter) ([]domain.Product, error) {
	var (
		conditions []string
		args       []any
	)

	if filter.MinPrice != nil {
		args = append(args, *filter.MinPrice)
		conditions = append(conditions, fmt.Sprintf("price >= $%d", len(args)))
	}
	if filter.MaxPrice != nil {
		args = append(args, *filter.MaxPrice)
		conditions = append(conditions, fmt.Sprintf("price <= $%d", len(args)))
	}
	if len(filter.CategoryIDs) > 0 {
		placeholders := make([]string, 0, len(filter.CategoryIDs))
		for _, id := range filter.CategoryIDs {
			args = append(args, id)
			placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
		}
		conditions = append(conditions, "category_id IN ("+strings.Join(placeholders, ", ")+")")
	}

	query := selectProduct
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id"

	return s.queryProducts(ctx, query, args...)
}

// ListByCategory implements store.ProductStore.ListByCategory.
func (s *ProductStore) ListByCategory(ctx context.Context, categoryID int64) ([]domain.Product, error) {
	query := selectProduct + ` WHERE category_id = $1 ORDER BY id`
	return s.queryProducts(ctx, query, categoryID)
}

// Update implements store.ProductStore.Update.
func (s *ProductStore) Update(ctx context.Context, product *domain.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE products
		SET name = $1, description = $2, price = $3, category_id = $4
		WHERE id = $5
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		product.Name,
		product.Description,
		product.Price,
		product.CategoryID,
		product.ID,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: category %d", store.ErrCategoryNotFound, product.CategoryID)
		}
		return mapError(err, store.ErrProductNotFound)
	}

	return checkRowsAffected(result, store.ErrProductNotFound)
}

// Delete implements store.ProductStore.Delete.
func (s *ProductStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return mapError(err, store.ErrProductNotFound)
	}

	return checkRowsAffected(result, store.ErrProductNotFound)
}

const selectProduct = `
	SELECT id, name, COALESCE(description, ''), COALESCE(price, 0), category_id
	FROM products`

func (s *ProductStore) scanProduct(ctx context.Context, query string, arg any) (*domain.Product, error) {
	var product domain.Product
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.CategoryID,
	)
	if err != nil {
		return nil, mapError(err, store.ErrProductNotFound)
	}

	return &product, nil
}

func (s *ProductStore) queryProducts(ctx context.Context, query string, args ...any) ([]domain.Product, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var products []domain.Product
	for rows.Next() {
		var product domain.Product
		err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Description,
			&product.Price,
			&product.CategoryID,
		)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	return products, rows.Err()
}
