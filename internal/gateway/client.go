package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrUnreachable marks network-level failures (no connectivity, DNS,
// refused connections, timeouts). Callers check it with errors.Is; every
// other failure is a server-side UpstreamError.
var ErrUnreachable = errors.New("remote api unreachable")

// UpstreamError is a non-2xx response from the remote API, with the
// upstream message preserved for user-facing reporting.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("remote api error (status %d): %s", e.StatusCode, e.Message)
}

type tokenContextKey struct{}

// WithToken attaches the caller's bearer token to the context; the client
// forwards it to the remote API on every request.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey{}, token)
}

// Client is a thin HTTP wrapper over the storefront API. It classifies
// transport vs upstream failures and nothing else: no retries, no caching.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FileURL builds the absolute URL of an uploaded file. Files are never
// fetched by this client; the URL is handed to the view layer as-is.
func (c *Client) FileURL(filename string) string {
	return fmt.Sprintf("%s/api/file/%s", c.baseURL, filename)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	var reqBody io.Reader

	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token, ok := ctx.Value(tokenContextKey{}).(string); ok && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// A canceled or expired caller context is not a connectivity
		// failure and must not trigger the cache fallback.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &UpstreamError{
			StatusCode: resp.StatusCode,
			Message:    upstreamMessage(respBody),
		}
	}

	return respBody, nil
}

// upstreamMessage extracts the API's {"message": ...} error body, falling
// back to the raw body when it is not JSON.
func upstreamMessage(body []byte) string {
	var parsed struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		return parsed.Message
	}
	return string(body)
}
