package api

import (
	"errors"
	"net/http"

	"github.com/mercato-api/mercato/internal/api/shared"
	"github.com/mercato-api/mercato/internal/domain"
	"github.com/mercato-api/mercato/internal/platform/hunter"
	"github.com/mercato-api/mercato/internal/platform/logger"
	"github.com/mercato-api/mercato/internal/redact"
	"github.com/mercato-api/mercato/internal/service/auth"
	"github.com/mercato-api/mercato/internal/store"
)

// Messages returned by the auth endpoints. InvalidCredentials is shared by
// every sign-in failure mode so responses cannot be used to probe which
// emails are registered.
const (
	msgInvalidCredentials = "Invalid credentials"
	msgEmailExists        = "Email already exists"
	msgEmailRejected      = "The email address provided is not valid."
)

// AuthHandler handles local account creation and credential sign-in.
type AuthHandler struct {
	userStore       store.UserStore
	tokenService    auth.TokenService
	passwordService auth.PasswordService
	emailVerifier   *hunter.Client
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
// emailVerifier may be nil, in which case no deliverability check runs.
func NewAuthHandler(
	userStore store.UserStore,
	tokenService auth.TokenService,
	passwordService auth.PasswordService,
	emailVerifier *hunter.Client,
) *AuthHandler {
	return &AuthHandler{
		userStore:       userStore,
		tokenService:    tokenService,
		passwordService: passwordService,
		emailVerifier:   emailVerifier,
	}
}

// SignUp handles POST /auth/signup. On success the new account is returned
// without any credential material; no token is issued, the client signs in
// separately.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	var req SignUpRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid email or password format")
		return
	}

	if h.emailVerifier != nil {
		ok, err := h.emailVerifier.Check(ctx, req.Email)
		if err != nil {
			// The verifier being down must not lock out sign-ups.
			log.Warn("email verification unavailable, accepting address",
				"error", redact.Error(err))
		} else if !ok {
			shared.RespondWithError(w, r, http.StatusBadRequest, msgEmailRejected)
			return
		}
	}

	hashedPassword, err := h.passwordService.Hash(req.Password)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to create user", err)
		return
	}

	user, err := domain.NewLocalUser(req.Email, hashedPassword)
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	if err := h.userStore.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			shared.RespondWithError(w, r, http.StatusBadRequest, msgEmailExists)
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to create user", err)
		return
	}

	log.Info("user registered", "user_id", user.ID)

	shared.RespondWithJSON(w, r, http.StatusCreated, UserResponse{
		ID:    user.ID,
		Email: user.Email,
	})
}

// SignIn handles POST /auth/signin. The request body is form-encoded with
// username and password fields, where username carries the email address.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	if err := r.ParseForm(); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	email := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if email == "" || password == "" {
		shared.RespondWithChallenge(w, r, msgInvalidCredentials)
		return
	}

	user, err := h.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			// Indistinguishable from a wrong password on purpose.
			shared.RespondWithChallenge(w, r, msgInvalidCredentials)
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to sign in", err)
		return
	}

	// OAuth-only accounts have no local password and cannot sign in here.
	if !user.HasPassword() {
		shared.RespondWithChallenge(w, r, msgInvalidCredentials)
		return
	}

	if err := h.passwordService.Compare(user.HashedPassword, password); err != nil {
		shared.RespondWithChallenge(w, r, msgInvalidCredentials)
		return
	}

	token, err := h.tokenService.GenerateToken(ctx, user.ID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to sign in", err)
		return
	}

	log.Info("user signed in", "user_id", user.ID)

	shared.RespondWithJSON(w, r, http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}
