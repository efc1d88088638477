package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/mercato-api/mercato/internal/config"
	"github.com/mercato-api/mercato/internal/platform/cache"
	"github.com/mercato-api/mercato/internal/platform/google"
	"github.com/mercato-api/mercato/internal/platform/hunter"
	"github.com/mercato-api/mercato/internal/platform/postgres"
	"github.com/mercato-api/mercato/internal/service/auth"
	"github.com/mercato-api/mercato/internal/store"
)

// application holds the wired dependencies of the server. Everything is
// constructed once at startup; handlers receive interfaces, not concrete
// platform types.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB
	cache  *cache.Cache

	userStore     store.UserStore
	categoryStore store.CategoryStore
	productStore  store.ProductStore

	tokenService    auth.TokenService
	passwordService auth.PasswordService

	googleClient  *google.Client
	emailVerifier *hunter.Client
}

// newApplication connects to the database and builds the stores, services,
// and outbound clients from configuration.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	db, err := setupAppDatabase(cfg, logger)
	if err != nil {
		return nil, err
	}

	readCache, err := cache.New(cfg.Cache, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create read cache: %w", err)
	}

	tokenService, err := auth.NewTokenService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	return &application{
		config:          cfg,
		logger:          logger,
		db:              db,
		cache:           readCache,
		userStore:       postgres.NewUserStore(db, logger),
		categoryStore:   postgres.NewCategoryStore(db, logger),
		productStore:    postgres.NewProductStore(db, logger),
		tokenService:    tokenService,
		passwordService: auth.NewBcryptService(cfg.Auth.BcryptCost),
		googleClient:    google.NewClient(cfg.Google, logger),
		emailVerifier:   hunter.NewClient(cfg.Hunter, logger),
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.cache != nil {
		if err := app.cache.Close(); err != nil {
			app.logger.Error("Failed to close cache", "error", err)
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Failed to close database connection", "error", err)
		}
	}
}
