package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mcoot/pairings-web/internal/identity"
)

// Client is an HTTP client for the API
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new API client
func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// APIError represents an error response from the API
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an API error
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// RequestError is returned for every non-2xx response
type RequestError struct {
	Status int
	APIError
}

func (e *RequestError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("HTTP %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

// Do performs an HTTP request
func (c *Client) Do(ctx context.Context, method, path string, body, result any) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("request", slog.String("method", method), slog.String("url", url))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug("response", slog.Int("status", resp.StatusCode), slog.Int("bytes", len(respBody)))

	if resp.StatusCode >= 400 {
		var errResp ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error.Code != "" {
			return &RequestError{Status: resp.StatusCode, APIError: errResp.Error}
		}
		return &RequestError{Status: resp.StatusCode, APIError: APIError{Message: strings.TrimSpace(string(respBody))}}
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

// Get performs a GET request
func (c *Client) Get(ctx context.Context, path string, result any) error {
	return c.Do(ctx, http.MethodGet, path, nil, result)
}

// Post performs a POST request
func (c *Client) Post(ctx context.Context, path string, body, result any) error {
	return c.Do(ctx, http.MethodPost, path, body, result)
}

// Patch performs a PATCH request
func (c *Client) Patch(ctx context.Context, path string, body, result any) error {
	return c.Do(ctx, http.MethodPatch, path, body, result)
}

// parseRef parses a reference given on the command line. A reference is
// "<uuid>", "<uuid>/<proof>" or a web link such as "/tournament/<uuid>/<proof>/".
func parseRef(kind, ref string) (identity.Identity, error) {
	fragment := strings.Trim(ref, "/")
	if i := strings.Index(fragment, "://"); i >= 0 {
		fragment = fragment[i+3:]
		if j := strings.Index(fragment, "/"); j >= 0 {
			fragment = fragment[j+1:]
		}
	}
	if k, rest, ok := strings.Cut(fragment, "/"); ok && k == kind {
		fragment = rest
	}

	id, err := identity.ParseFragment(fragment)
	if err != nil {
		return identity.Identity{}, fmt.Errorf("invalid %s reference %q: %w", kind, ref, err)
	}
	return id, nil
}

// resourcePath builds "/api/v1/<kind>s/<ref>" for a command line reference
func resourcePath(kind, ref string) (string, error) {
	id, err := parseRef(kind, ref)
	if err != nil {
		return "", err
	}
	return apiPath(kind, id), nil
}

// signedPath is resourcePath for operations that need the entity's proof
func signedPath(kind, ref, action string) (string, error) {
	id, err := parseRef(kind, ref)
	if err != nil {
		return "", err
	}
	if !id.HasProof() {
		return "", fmt.Errorf("%s needs the %s's proof: pass \"<uuid>/<proof>\"", action, kind)
	}
	return apiPath(kind, id) + "/" + action, nil
}

func apiPath(kind string, id identity.Identity) string {
	return "/api/v1/" + kind + "s/" + id.LinkFragment()
}
