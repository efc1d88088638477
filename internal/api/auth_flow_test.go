package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mercato-api/mercato/internal/api/middleware"
	"github.com/mercato-api/mercato/internal/api/shared"
	"github.com/mercato-api/mercato/internal/config"
	"github.com/mercato-api/mercato/internal/service/auth"
)

// TestAuthFlow exercises the full path with the real token service: sign-up,
// sign-in, a protected request resolving the principal, and rejection once
// the token has expired.
func TestAuthFlow(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := &now

	tokenService, err := auth.NewTokenServiceWithClock(config.AuthConfig{
		JWTSecret:            "test-jwt-secret-that-is-32-chars-long",
		TokenLifetimeMinutes: 30,
	}, func() time.Time { return *clock })
	require.NoError(t, err)

	users := newFakeUserStore()
	authHandler := NewAuthHandler(users, tokenService, newTestPasswordService(), nil)
	authMiddleware := middleware.NewAuthMiddleware(tokenService, users)

	r := chi.NewRouter()
	r.Post("/auth/signup", authHandler.SignUp)
	r.Post("/auth/signin", authHandler.SignIn)
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		r.Get("/whoami", func(w http.ResponseWriter, req *http.Request) {
			principal, ok := shared.PrincipalFromContext(req.Context())
			require.True(t, ok)
			shared.RespondWithJSON(w, req, http.StatusOK, UserResponse{
				ID:    principal.ID,
				Email: principal.Email,
			})
		})
	})

	// Sign up.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/signup",
		signUpBody(t, "a@x.com", "secret123")))
	require.Equal(t, http.StatusCreated, w.Code)

	var created UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "a@x.com", created.Email)

	// Sign in with the same credentials.
	signIn := httptest.NewRequest(http.MethodPost, "/auth/signin",
		signInBody("a@x.com", "secret123"))
	signIn.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, signIn)
	require.Equal(t, http.StatusOK, w.Code)

	var token TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &token))
	require.NotEmpty(t, token.AccessToken)

	// The token resolves to the created account on a protected route.
	whoami := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	whoami.Header.Set("Authorization", "Bearer "+token.AccessToken)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, whoami)
	require.Equal(t, http.StatusOK, w.Code)

	var resolved UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resolved))
	assert.Equal(t, created.ID, resolved.ID)

	// A wrong password is a uniform 401.
	badSignIn := httptest.NewRequest(http.MethodPost, "/auth/signin",
		signInBody("a@x.com", "wrong"))
	badSignIn.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, badSignIn)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")

	// Past expiry the same token is rejected with a challenge.
	*clock = now.Add(31 * time.Minute)
	expired := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	expired.Header.Set("Authorization", "Bearer "+token.AccessToken)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, expired)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
}
