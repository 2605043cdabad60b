// Package ploi is a typed HTTP client for the Ploi control-panel API.
//
// It covers the slice of the API this tool drives: servers, system users,
// sites, databases, certificates, repositories, environment files, file
// backups, and remote WP-CLI execution. It uses a direct HTTP client
// rather than a generated SDK to keep the dependency tree light and the
// error mapping under our control.
package ploi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/uldin-nl/hostctl/internal/domain"
	"github.com/uldin-nl/hostctl/internal/services/auth"
)

const (
	defaultBaseURL = "https://ploi.io/api"
	requestTimeout = 30 * time.Second

	// TokenStore is the keychain entry the API token is stored under.
	TokenStore = "ploi"
)

// Client talks to the Ploi API using a Bearer token.
type Client struct {
	token   string
	baseURL string
	client  *http.Client
}

// New creates a Client with the given API token.
func New(token string) *Client {
	return &Client{
		token:   token,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

// FromStore creates a Client with the token from the local keychain.
func FromStore(store auth.Store) (*Client, error) {
	token, err := store.GetToken(TokenStore)
	if err != nil {
		return nil, fmt.Errorf("ploi auth: token not found (run 'hostctl auth login'): %w", err)
	}
	return New(token), nil
}

// SetBaseURL overrides the API base URL. Intended for testing.
func (c *Client) SetBaseURL(u string) { c.baseURL = u }

// envelope is the standard Ploi response wrapper. Error is set on API-level
// failures; Message carries human-readable info on some mutations.
type envelope[T any] struct {
	Data    T      `json:"data"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// listMeta holds pagination info from list responses.
type listMeta struct {
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
}

// apiError maps an HTTP status and response error text to a domain
// sentinel, preserving the panel-provided message.
func apiError(httpStatus int, errText, message string) error {
	if httpStatus < 400 && errText == "" {
		return nil
	}

	msg := errText
	if msg == "" {
		msg = message
	}
	if msg == "" {
		msg = http.StatusText(httpStatus)
	}

	switch httpStatus {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", domain.ErrUnauthorized, msg)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", domain.ErrNotFound, msg)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", domain.ErrRateLimited, msg)
	case http.StatusConflict, http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", domain.ErrConflict, msg)
	}

	return fmt.Errorf("ploi: %s", msg)
}

// doJSON performs an HTTP request against the API and decodes the JSON
// response into out. It returns the HTTP status code for error mapping.
func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any) (int, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("ploi: failed to encode request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return 0, fmt.Errorf("ploi: failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("ploi: request failed: %w", err)
	}
	defer resp.Body.Close()

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if resp.StatusCode >= 400 {
			// Error bodies are not always JSON; the status is enough.
			return resp.StatusCode, nil
		}
		return resp.StatusCode, fmt.Errorf("ploi: failed to decode response: %w", err)
	}

	return resp.StatusCode, nil
}

// call is the common request path: perform the request, then map the
// envelope and status to a domain error.
func call[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var out envelope[T]
	status, err := c.doJSON(ctx, method, path, body, &out)
	if err != nil {
		var zero T
		return zero, err
	}
	if apiErr := apiError(status, out.Error, out.Message); apiErr != nil {
		var zero T
		return zero, apiErr
	}
	return out.Data, nil
}
