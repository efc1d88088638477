// Package middleware contains the HTTP middleware applied by the router.
package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mercato-api/mercato/internal/api/shared"
	"github.com/mercato-api/mercato/internal/redact"
	"github.com/mercato-api/mercato/internal/service/auth"
	"github.com/mercato-api/mercato/internal/store"
)

// AuthMiddleware is the identity resolver guarding protected routes. For
// every request it validates the bearer token and then resolves the subject
// against the user store; a valid token whose account no longer exists is
// rejected the same way as an invalid one. Resolution is performed fresh on
// each request, never cached.
type AuthMiddleware struct {
	tokenService auth.TokenService
	userStore    store.UserStore
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(tokenService auth.TokenService, userStore store.UserStore) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
		userStore:    userStore,
	}
}

// Authenticate validates JWT tokens from the Authorization header, loads the
// referenced account, and adds it to the request context as the principal.
// Every failure mode produces the same 401 with a bearer challenge.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithChallenge(w, r, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			shared.RespondWithChallenge(w, r, "Invalid authorization format")
			return
		}

		// Signature verification always precedes trusting any claim.
		claims, err := m.tokenService.ValidateToken(r.Context(), parts[1])
		if err != nil {
			if !errors.Is(err, auth.ErrInvalidToken) && !errors.Is(err, auth.ErrExpiredToken) {
				slog.Error("failed to validate token", "error", redact.Error(err))
			}
			shared.RespondWithChallenge(w, r, "Invalid or expired token")
			return
		}

		user, err := m.userStore.GetByID(r.Context(), claims.UserID)
		if err != nil {
			// A deleted account after issuance is a legitimate race; token
			// validity alone is never sufficient.
			if !errors.Is(err, store.ErrUserNotFound) {
				slog.Error("failed to resolve principal", "error", redact.Error(err),
					"user_id", claims.UserID)
				shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
				return
			}
			shared.RespondWithChallenge(w, r, "Invalid or expired token")
			return
		}

		ctx := shared.WithPrincipal(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
