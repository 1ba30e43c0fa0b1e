// Package gateway is the single point of translation between the
// client and the lottery backend. Read operations absorb failures
// into typed empty defaults so callers render a uniform "no data"
// state; write operations propagate failures, because a failed write
// must never be silently treated as success.
package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ayitek/borlette-pos/internal/appstate"
	"github.com/ayitek/borlette-pos/internal/offlinecache"
	"github.com/ayitek/borlette-pos/internal/shared/logger"
	"go.uber.org/zap"
)

// Client talks to the backend on behalf of the current agent session.
type Client struct {
	baseURL string
	http    *http.Client
	state   *appstate.State
	token   func() string // bearer credential from durable storage
}

func New(baseURL string, state *appstate.State, token func() string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		state:   state,
		token:   token,
	}
}

// APIError is a server-side failure: a non-success HTTP status or a
// business-level rejection inside a 200 response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend returned status %d", e.Status)
}

// writeResult is the business-success envelope every write endpoint
// returns. HTTP 200 alone does not imply success.
type writeResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (c *Client) newRequest(method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequest(method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// getJSON performs an authenticated GET. Network-first: a successful
// response refreshes the offline cache; a transport failure falls
// back to the last cached copy when one exists.
func (c *Client) getJSON(path string) ([]byte, error) {
	req, err := c.newRequest(http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if cached, ok := offlinecache.Get(path); ok {
			logger.Warn("Backend unreachable, serving cached response",
				zap.String("path", path), zap.Error(err))
			return cached, nil
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &APIError{Status: resp.StatusCode, Message: string(body)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if err := offlinecache.Put(path, body); err != nil {
		logger.Debug("Failed to store offline cache entry", zap.String("path", path), zap.Error(err))
	}
	return body, nil
}

// postJSON performs an authenticated POST and decodes the business
// envelope. The raw body is returned so callers can decode payload
// fields beyond the envelope.
func (c *Client) postJSON(path string, payload any) ([]byte, error) {
	return c.send(http.MethodPost, path, payload)
}

func (c *Client) send(method, path string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := c.newRequest(method, path, body)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := string(raw)
		var envelope writeResult
		if json.Unmarshal(raw, &envelope) == nil && envelope.Message != "" {
			msg = envelope.Message
		}
		return nil, &APIError{Status: resp.StatusCode, Message: msg}
	}

	// Business-failure check: a 200 whose envelope says success=false
	// is still a failure.
	var envelope writeResult
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("unexpected response shape: %w", err)
	}
	if !envelope.Success {
		return nil, &APIError{Status: resp.StatusCode, Message: envelope.Message}
	}
	return raw, nil
}
