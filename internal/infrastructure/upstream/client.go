// internal/infrastructure/upstream/client.go
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/your-org/storefront-bff/internal/config"
)

type contextKey int

const tokenContextKey contextKey = iota

// WithToken returns a context carrying the caller's bearer token. Gateway
// calls forward it upstream; the upstream API is the one doing authorization.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey, token)
}

// TokenFromContext extracts the bearer token placed by WithToken
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenContextKey).(string)
	return token
}

// APIError is a rejection from the upstream API. Message carries the server's
// own wording so it can be surfaced verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// envelope is the upstream response wrapper
type envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Error      string          `json:"error"`
	Pagination *Pagination     `json:"pagination,omitempty"`
}

// Pagination is the upstream's list metadata, returned alongside data
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

// Client is the JSON client for the upstream commerce API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates an upstream API client
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: cfg.Upstream.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Upstream.RequestTimeout,
		},
	}
}

// do performs one request against the upstream API. A non-2xx response
// becomes an *APIError carrying the server's message; transport failures are
// returned wrapped. On success the envelope's data payload is decoded into
// out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, headers map[string]string, body, out interface{}) error {
	_, err := c.doPaginated(ctx, method, path, headers, body, out)
	return err
}

// doPaginated is do plus the envelope's pagination metadata, for list calls
func (c *Client) doPaginated(ctx context.Context, method, path string, headers map[string]string, body, out interface{}) (*Pagination, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token := TokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read upstream response: %w", err)
	}

	var env envelope
	if len(respBody) > 0 {
		// A body that is not the standard envelope is tolerated; the
		// status code still decides success below.
		_ = json.Unmarshal(respBody, &env)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := env.Error
		if message == "" {
			message = env.Message
		}
		if message == "" {
			message = fmt.Sprintf("upstream returned status %d", resp.StatusCode)
		}
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    message,
		}
	}

	if out != nil {
		data := env.Data
		if data == nil {
			data = respBody
		}
		if err := json.Unmarshal(data, out); err != nil {
			return nil, fmt.Errorf("failed to decode upstream response: %w", err)
		}
	}

	return env.Pagination, nil
}
