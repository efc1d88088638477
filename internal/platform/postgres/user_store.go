package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/mercato-api/mercato/internal/domain"
	"github.com/mercato-api/mercato/internal/platform/logger"
	"github.com/mercato-api/mercato/internal/redact"
	"github.com/mercato-api/mercato/internal/store"
)

// UserStore implements the store.UserStore interface using a PostgreSQL
// database as the storage backend.
type UserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewUserStore creates a new PostgreSQL implementation of the UserStore
// interface. It accepts a database connection or transaction that should be
// initialized and managed by the caller. If logger is nil, a default logger
// is used.
func NewUserStore(db store.DBTX, logger *slog.Logger) *UserStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &UserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure UserStore implements store.UserStore interface
var _ store.UserStore = (*UserStore)(nil)

// Create implements store.UserStore.Create.
// The database assigns the surrogate ID; uniqueness of email and google_id
// is enforced atomically by the schema constraints, so a concurrent
// duplicate insert surfaces as store.ErrEmailExists or
// store.ErrGoogleIDExists rather than a raw constraint violation.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO users (email, password, google_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := s.db.QueryRowContext(
		ctx,
		query,
		user.Email,
		nullString(user.HashedPassword),
		nullString(user.GoogleID),
	).Scan(&user.ID)

	if err != nil {
		mapped := mapError(err, store.ErrUserNotFound)
		if store.IsDuplicateError(mapped) {
			log.Warn("duplicate user on create", "error", redact.Error(err))
		} else {
			log.Error("failed to create user", "error", redact.Error(err))
		}
		return mapped
	}

	log.Info("user created", "user_id", user.ID, "via_google", user.GoogleID != "")
	return nil
}

// GetByID implements store.UserStore.GetByID.
func (s *UserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `
		SELECT id, email, password, google_id
		FROM users
		WHERE id = $1
	`
	return s.scanUser(ctx, query, id)
}

// GetByEmail implements store.UserStore.GetByEmail.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, email, password, google_id
		FROM users
		WHERE email = $1
	`
	return s.scanUser(ctx, query, email)
}

// GetByGoogleID implements store.UserStore.GetByGoogleID.
func (s *UserStore) GetByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	query := `
		SELECT id, email, password, google_id
		FROM users
		WHERE google_id = $1
	`
	return s.scanUser(ctx, query, googleID)
}

// Update implements store.UserStore.Update.
func (s *UserStore) Update(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE users
		SET email = $1, password = $2, google_id = $3
		WHERE id = $4
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		user.Email,
		nullString(user.HashedPassword),
		nullString(user.GoogleID),
		user.ID,
	)
	if err != nil {
		mapped := mapError(err, store.ErrUserNotFound)
		log.Error("failed to update user", "error", redact.Error(err), "user_id", user.ID)
		return mapped
	}

	return checkRowsAffected(result, store.ErrUserNotFound)
}

// WithTx implements store.UserStore.WithTx.
func (s *UserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &UserStore{
		db:     tx,
		logger: s.logger,
	}
}

func (s *UserStore) scanUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	var (
		user     domain.User
		password sql.NullString
		googleID sql.NullString
	)

	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&password,
		&googleID,
	)
	if err != nil {
		return nil, mapError(err, store.ErrUserNotFound)
	}

	user.HashedPassword = password.String
	user.GoogleID = googleID.String

	return &user, nil
}

// nullString maps the domain's empty-string-means-absent convention onto the
// schema's nullable columns.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
