package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"zenfolio/internal/models"
)

// DefaultBaseURL is the public deployments API
const DefaultBaseURL = "https://api.vercel.com"

// Client handles communication with the deployments API
type Client struct {
	// Base URL of the API server
	BaseURL string

	// Bearer token sent with every request
	AuthToken string

	// HTTP client; no timeout unless the caller sets one
	client *http.Client

	// Token store used by Login and Logout
	tokenStore *models.TokenStore

	logger *zap.Logger

	// applied to a copy of client so shared clients are left alone
	timeout time.Duration
}

// Option customises a Client
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.client = h
		}
	}
}

// WithToken sets the token explicitly, taking precedence over the store
func WithToken(token string) Option {
	return func(c *Client) {
		if t := strings.TrimSpace(token); t != "" {
			c.AuthToken = t
		}
	}
}

// WithLogger sets the logger used for request diagnostics
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTimeout bounds each request
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// NewClient creates a new API client. The token is read from tokenStore
// unless WithToken is given.
func NewClient(baseURL string, tokenStore *models.TokenStore, opts ...Option) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	token := ""
	if tokenStore != nil {
		storedToken, err := tokenStore.GetToken()
		if err == nil {
			token = storedToken
		}
	}

	c := &Client{
		BaseURL:    baseURL,
		AuthToken:  token,
		tokenStore: tokenStore,
		client:     &http.Client{},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.client
		hc.Timeout = c.timeout
		c.client = &hc
	}
	return c
}

// get performs one authenticated GET and classifies the outcome:
// 401/403 become AuthenticationError, other non-2xx statuses RequestError,
// and transport failures NetworkError.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if c.AuthToken == "" {
		return nil, models.ErrNotLoggedIn
	}

	endpoint := c.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.AuthToken)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("api request", zap.String("method", req.Method), zap.String("path", path), zap.String("query", req.URL.RawQuery))

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("api request failed", zap.String("path", path), zap.Error(err))
		return nil, &models.NetworkError{Err: err}
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			c.logger.Warn("failed to close response body", zap.Error(err))
		}
	}(resp.Body)

	c.logger.Debug("api response", zap.String("path", path), zap.Int("status", resp.StatusCode))

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &models.AuthenticationError{StatusCode: resp.StatusCode}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &models.RequestError{StatusCode: resp.StatusCode, StatusText: statusText(resp)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &models.NetworkError{Err: fmt.Errorf("error reading response body: %w", err)}
	}
	return body, nil
}

// statusText returns the reason phrase of the response
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}
