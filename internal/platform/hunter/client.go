// Package hunter wraps the hunter.io email verifier API. Sign-up treats the
// verdict as an authoritative single shot: no retries, no caching.
package hunter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/mercato-api/mercato/internal/config"
	"github.com/mercato-api/mercato/internal/platform/logger"
	"github.com/mercato-api/mercato/internal/redact"
)

const defaultBaseURL = "https://api.hunter.io/v2/email-verifier"

// Client calls the hunter.io email verifier.
// With an empty API key the client is disabled and accepts every address.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option customizes a Client, primarily for tests.
type Option func(*Client)

// WithBaseURL overrides the verifier endpoint. Used by tests to point the
// client at a local fake.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// NewClient creates a hunter.io client from configuration.
// If log is nil, a default logger is used.
func NewClient(cfg config.HunterConfig, log *slog.Logger, opts ...Option) *Client {
	if log == nil {
		log = slog.Default()
	}

	c := &Client{
		apiKey:     cfg.APIKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     log.With(slog.String("component", "hunter_client")),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// verifierResponse mirrors the fields of the hunter.io payload we care about.
type verifierResponse struct {
	Data struct {
		Status string `json:"status"`
		Result string `json:"result"`
	} `json:"data"`
}

// Check reports whether the address is considered deliverable.
// Returns an error only when the service itself cannot be reached or answers
// with a non-200 status; a reachable "undeliverable" verdict is (false, nil).
func (c *Client) Check(ctx context.Context, email string) (bool, error) {
	if c.apiKey == "" {
		return true, nil
	}

	log := logger.FromContextOrDefault(ctx, c.logger)

	query := url.Values{}
	query.Set("email", email)
	query.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return false, fmt.Errorf("failed to build email verifier request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("email verifier request failed", "error", redact.Error(err))
		return false, fmt.Errorf("email verifier request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		log.Warn("email verifier returned non-200", "status", resp.StatusCode)
		return false, fmt.Errorf("email verifier returned status %d", resp.StatusCode)
	}

	var payload verifierResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return false, fmt.Errorf("failed to decode email verifier response: %w", err)
	}

	switch payload.Data.Result {
	case "deliverable", "risky":
		return true, nil
	default:
		log.Debug("email rejected by verifier",
			"status", payload.Data.Status,
			"result", payload.Data.Result)
		return false, nil
	}
}
