// Package google implements the Google OAuth flow boundary: redirect URL
// construction, authorization-code exchange, and userinfo retrieval. The
// rest of the application only sees the normalized UserInfo value.
package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/mercato-api/mercato/internal/config"
	"github.com/mercato-api/mercato/internal/platform/logger"
	"github.com/mercato-api/mercato/internal/redact"
	"golang.org/x/oauth2"
)

// Default Google endpoints, overridable for tests.
const (
	defaultAuthURL     = "https://accounts.google.com/o/oauth2/auth"
	defaultTokenURL    = "https://oauth2.googleapis.com/token"
	defaultUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

// ErrAuthFailed indicates the provider rejected the exchange or the userinfo
// request failed. Callers treat every provider-side failure uniformly.
var ErrAuthFailed = errors.New("external authentication failed")

// UserInfo is the normalized identity returned by Google for an
// authenticated user. ID is the provider's stable subject identifier.
type UserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Client talks to Google's OAuth token and userinfo endpoints.
type Client struct {
	oauth       *oauth2.Config
	userInfoURL string
	httpClient  *http.Client
	logger      *slog.Logger
}

// Option customizes a Client, primarily for tests.
type Option func(*Client)

// WithEndpoints overrides the provider endpoints. Used by tests to point the
// client at a local fake.
func WithEndpoints(authURL, tokenURL, userInfoURL string) Option {
	return func(c *Client) {
		c.oauth.Endpoint = oauth2.Endpoint{AuthURL: authURL, TokenURL: tokenURL}
		c.userInfoURL = userInfoURL
	}
}

// NewClient creates a Google OAuth client from configuration.
// If log is nil, a default logger is used.
func NewClient(cfg config.GoogleConfig, log *slog.Logger, opts ...Option) *Client {
	if log == nil {
		log = slog.Default()
	}

	c := &Client{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  defaultAuthURL,
				TokenURL: defaultTokenURL,
			},
		},
		userInfoURL: defaultUserInfoURL,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		logger:      log.With(slog.String("component", "google_oauth")),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// AuthCodeURL returns the Google consent page URL for the given state.
func (c *Client) AuthCodeURL(state string) string {
	return c.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange trades the authorization code for provider tokens.
func (c *Client) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	token, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		log.Warn("authorization code exchange failed", "error", redact.Error(err))
		return nil, fmt.Errorf("%w: code exchange: %v", ErrAuthFailed, err)
	}

	return token, nil
}

// UserInfo fetches the authenticated user's identity from Google.
func (c *Client) UserInfo(ctx context.Context, token *oauth2.Token) (*UserInfo, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build userinfo request: %v", ErrAuthFailed, err)
	}
	token.SetAuthHeader(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("userinfo request failed", "error", redact.Error(err))
		return nil, fmt.Errorf("%w: userinfo request: %v", ErrAuthFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Warn("userinfo returned non-200",
			"status", resp.StatusCode,
			"body", redact.String(string(body)))
		return nil, fmt.Errorf("%w: userinfo status %d", ErrAuthFailed, resp.StatusCode)
	}

	var info UserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("%w: decode userinfo: %v", ErrAuthFailed, err)
	}

	if info.ID == "" || info.Email == "" {
		return nil, fmt.Errorf("%w: userinfo missing id or email", ErrAuthFailed)
	}

	return &info, nil
}
