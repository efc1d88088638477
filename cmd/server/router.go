package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mercato-api/mercato/internal/api"
	apiMiddleware "github.com/mercato-api/mercato/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. Catalog reads are public; catalog writes require a valid
// bearer token.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceID)

	authHandler := api.NewAuthHandler(
		app.userStore,
		app.tokenService,
		app.passwordService,
		app.emailVerifier,
	)
	googleHandler := api.NewGoogleHandler(app.googleClient, app.userStore, app.tokenService)
	categoryHandler := api.NewCategoryHandler(app.categoryStore, app.cache)
	productHandler := api.NewProductHandler(app.productStore, app.cache)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.tokenService, app.userStore)

	r.Route("/api/v1", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/signup", authHandler.SignUp)
		r.Post("/auth/signin", authHandler.SignIn)
		r.Get("/auth/google/login", googleHandler.Login)
		r.Get("/auth/google/callback", googleHandler.Callback)

		// Catalog reads (public)
		r.Get("/categories", categoryHandler.List)
		r.Get("/categories/{id}", categoryHandler.Get)
		r.Get("/categories/{id}/products", productHandler.ListByCategory)
		r.Get("/products", productHandler.List)
		r.Get("/products/{id}", productHandler.Get)

		// Catalog writes (protected)
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/categories", categoryHandler.Create)
			r.Patch("/categories/{id}", categoryHandler.Update)
			r.Delete("/categories/{id}", categoryHandler.Delete)

			r.Post("/products", productHandler.Create)
			r.Patch("/products/{id}", productHandler.Update)
			r.Delete("/products/{id}", productHandler.Delete)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := app.db.PingContext(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("database unavailable"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return r
}
