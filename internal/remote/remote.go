// Package remote holds the JSON-over-HTTP plumbing shared by the Toggl,
// Jira and Tempo clients.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// ReadError reports a failed read from a remote service.
type ReadError struct {
	URL    string
	Status int // 0 if no response was received
	Body   string
	Err    error
}

func (e *ReadError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("failed to get %s: status %d: %s", e.URL, e.Status, e.Body)
	}
	return fmt.Sprintf("failed to get %s: %v", e.URL, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError reports a failed write to a remote service.
type WriteError struct {
	URL    string
	Status int
	Body   string
	Err    error
}

func (e *WriteError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("failed to post %s: status %d: %s", e.URL, e.Status, e.Body)
	}
	return fmt.Sprintf("failed to post %s: %v", e.URL, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Authorizer decorates an outgoing request with credentials.
type Authorizer func(*http.Request)

// BasicAuth returns an Authorizer setting HTTP basic auth.
func BasicAuth(user, password string) Authorizer {
	return func(req *http.Request) {
		req.SetBasicAuth(user, password)
	}
}

// Client performs JSON requests against one service.
type Client struct {
	HTTP      *http.Client
	Authorize Authorizer // may be nil when HTTP already authenticates
	Log       *slog.Logger
}

func (c *Client) logger() *slog.Logger {
	if c.Log == nil {
		return slog.Default()
	}
	return c.Log
}

// GetJSON sends a GET to endpoint and decodes a 200 response into out.
func (c *Client) GetJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &ReadError{URL: endpoint, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if c.Authorize != nil {
		c.Authorize(req)
	}

	c.logger().Debug("remote get", slog.String("url", endpoint))
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return &ReadError{URL: endpoint, Err: err}
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return &ReadError{URL: endpoint, Err: fmt.Errorf("reading response body: %w", err)}
	}
	if resp.StatusCode != http.StatusOK {
		return &ReadError{URL: endpoint, Status: resp.StatusCode, Body: string(body)}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &ReadError{URL: endpoint, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}

// PostJSON sends payload as JSON to endpoint. Any 2xx status is success.
func (c *Client) PostJSON(ctx context.Context, endpoint string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return &WriteError{URL: endpoint, Err: fmt.Errorf("marshal payload: %w", err)}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return &WriteError{URL: endpoint, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.Authorize != nil {
		c.Authorize(req)
	}

	c.logger().Debug("remote post", slog.String("url", endpoint))
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return &WriteError{URL: endpoint, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return &WriteError{URL: endpoint, Status: resp.StatusCode, Body: string(body)}
	}
	return nil
}
