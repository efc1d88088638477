package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mercato-api/mercato/internal/store"
)

// PostgreSQL error codes.
const (
	// uniqueViolationCode is the PostgreSQL error code for unique constraint violations.
	uniqueViolationCode = "23505"

	// foreignKeyViolationCode is the PostgreSQL error code for foreign key violations.
	foreignKeyViolationCode = "23503"
)

// Constraint names from the schema migrations. Unique violations carry the
// constraint that was hit, which lets the store surface a precise error.
const (
	constraintUsersEmail    = "uq_users_email"
	constraintUsersGoogleID = "ix_users_google_id"
	constraintCategoryName  = "uq_categories_name"
	constraintProductName   = "uq_products_name"
)

// knownConstraints maps schema constraint names to the store errors they
// surface as.
var knownConstraints = map[string]error{
	constraintUsersEmail:    store.ErrEmailExists,
	constraintUsersGoogleID: store.ErrGoogleIDExists,
	constraintCategoryName:  store.ErrCategoryNameExists,
	constraintProductName:   store.ErrProductNameExists,
}

// mapError translates a database error into the corresponding store error,
// wrapping the original for debugging. notFound names the sentinel used for
// sql.ErrNoRows (e.g. store.ErrUserNotFound).
func mapError(err error, notFound error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		if mapped, ok := knownConstraints[pgErr.ConstraintName]; ok {
			return fmt.Errorf("%w: %v", mapped, err)
		}
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	}

	return err
}

// IsUniqueViolation checks if the given error is a PostgreSQL unique
// constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// IsForeignKeyViolation checks if the given error is a PostgreSQL foreign key
// constraint violation.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode
}

// checkRowsAffected returns notFound when an UPDATE or DELETE touched no
// rows, which indicates the target record does not exist.
func checkRowsAffected(result sql.Result, notFound error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return notFound
	}

	return nil
}
