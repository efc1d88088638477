package api

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"time"

	"github.com/mercato-api/mercato/internal/api/shared"
	"github.com/mercato-api/mercato/internal/domain"
	"github.com/mercato-api/mercato/internal/platform/google"
	"github.com/mercato-api/mercato/internal/platform/logger"
	"github.com/mercato-api/mercato/internal/service/auth"
	"github.com/mercato-api/mercato/internal/store"
)

// stateCookieName carries the OAuth state between the login redirect and the
// provider callback. The cookie is short-lived and single-use.
const stateCookieName = "oauth_state"

// GoogleHandler implements the Google OAuth sign-in flow: a login endpoint
// that redirects to the provider's consent page, and a callback endpoint that
// exchanges the authorization code, provisions an account on first sign-in,
// and issues an access token.
type GoogleHandler struct {
	client       *google.Client
	userStore    store.UserStore
	tokenService auth.TokenService
}

// NewGoogleHandler creates a new GoogleHandler with the given dependencies.
func NewGoogleHandler(
	client *google.Client,
	userStore store.UserStore,
	tokenService auth.TokenService,
) *GoogleHandler {
	return &GoogleHandler{
		client:       client,
		userStore:    userStore,
		tokenService: tokenService,
	}
}

// Login handles GET /auth/google/login. It stores a random state value in a
// cookie and redirects the client to Google's consent page.
func (h *GoogleHandler) Login(w http.ResponseWriter, r *http.Request) {
	state, err := generateState()
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to start authentication", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.client.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// Callback handles GET /auth/google/callback. A state mismatch or any
// provider-side failure yields a 401; provisioning failures a 500.
func (h *GoogleHandler) Callback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	cookie, err := r.Cookie(stateCookieName)
	if err != nil || cookie.Value == "" || cookie.Value != r.URL.Query().Get("state") {
		shared.RespondWithChallenge(w, r, "Invalid OAuth state")
		return
	}

	// Single use: clear the state cookie regardless of outcome.
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	code := r.URL.Query().Get("code")
	if code == "" {
		shared.RespondWithChallenge(w, r, "Missing authorization code")
		return
	}

	token, err := h.client.Exchange(ctx, code)
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	info, err := h.client.UserInfo(ctx, token)
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	user, err := h.resolveUser(r, info)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to sign in", err)
		return
	}

	accessToken, err := h.tokenService.GenerateToken(ctx, user.ID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to sign in", err)
		return
	}

	log.Info("user signed in via google", "user_id", user.ID)

	shared.RespondWithJSON(w, r, http.StatusOK, TokenResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
	})
}

// resolveUser finds the account linked to the Google identity, provisioning
// one on first sign-in. Lookup is by the provider's subject identifier only;
// an existing local account with the same email stays separate.
func (h *GoogleHandler) resolveUser(r *http.Request, info *google.UserInfo) (*domain.User, error) {
	ctx := r.Context()

	user, err := h.userStore.GetByGoogleID(ctx, info.ID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		return nil, err
	}

	user, err = domain.NewGoogleUser(info.Email, info.ID)
	if err != nil {
		return nil, err
	}

	if err := h.userStore.Create(ctx, user); err != nil {
		// Two concurrent first sign-ins can race on creation; the loser reads
		// the winner's row.
		if errors.Is(err, store.ErrGoogleIDExists) {
			return h.userStore.GetByGoogleID(ctx, info.ID)
		}
		return nil, err
	}

	logger.FromContext(ctx).Info("provisioned account from google identity", "user_id", user.ID)
	return user, nil
}

// generateState creates a random state value for CSRF protection.
func generateState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
