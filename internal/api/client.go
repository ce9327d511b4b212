// client.go implements the authenticated HTTP gateway. Every call reads
// the stored credential, attaches it as a bearer token, and funnels
// authorization failures into the session invalidation path.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alprnalcri/dyslexia-cli/internal/store"
)

// Invalidator forces the active session to sign out. The client calls
// it after clearing the credential on an authorization failure, so it
// must be safe to invoke with no session signed in.
type Invalidator func(context.Context) error

// Client communicates with the Dyslexia Text Analyzer service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      *store.Store
	invalidate Invalidator
}

// NewClient creates a Client for the service at baseURL. The store
// supplies the bearer credential for each call; invalidate is fired
// when the service rejects it (may be nil).
func NewClient(baseURL string, timeout time.Duration, st *store.Store, invalidate Invalidator) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		store:      st,
		invalidate: invalidate,
	}
}

// Login exchanges form-encoded credentials for a session token.
// This is the one endpoint that never carries a bearer header; a 401
// here means bad credentials, not an expired session, so it surfaces as
// a RequestError without touching session state.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/token",
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("building login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Request-ID", uuid.New().String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &RequestError{Detail: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &RequestError{Status: resp.StatusCode, Detail: readDetail(resp.Body)}
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", fmt.Errorf("decoding token response: %w", err)
	}
	if tok.AccessToken == "" {
		return "", &RequestError{Status: resp.StatusCode, Detail: "no access token in response"}
	}

	return tok.AccessToken, nil
}

// Classify submits text for readability prediction.
func (c *Client) Classify(ctx context.Context, text string) (Prediction, error) {
	var pred Prediction
	err := c.call(ctx, http.MethodPost, "/predict/", nil, map[string]string{"text": text}, &pred)
	return pred, err
}

// Simplify requests an easier-to-read rewrite of text using the given
// method ("mt5" or "openai").
func (c *Client) Simplify(ctx context.Context, text, method string) (string, error) {
	query := url.Values{}
	query.Set("method", method)

	var result SimplifyResult
	if err := c.call(ctx, http.MethodPost, "/simplify/", query, map[string]string{"text": text}, &result); err != nil {
		return "", err
	}
	return result.Simplified, nil
}

// SaveHistory persists one completed analysis on the service.
func (c *Client) SaveHistory(ctx context.Context, entry HistoryEntry) error {
	return c.call(ctx, http.MethodPost, "/history/save", nil, entry, nil)
}

// History fetches the user's analysis history, newest last.
func (c *Client) History(ctx context.Context) ([]HistoryEntry, error) {
	var entries []HistoryEntry
	err := c.call(ctx, http.MethodGet, "/history/", nil, nil, &entries)
	return entries, err
}

// ClearHistory deletes the user's entire analysis history.
func (c *Client) ClearHistory(ctx context.Context) error {
	return c.call(ctx, http.MethodDelete, "/history/clear", nil, nil, nil)
}

// ExportHistory returns the user's history as a CSV document.
func (c *Client) ExportHistory(ctx context.Context) (string, error) {
	body, err := c.callRaw(ctx, http.MethodGet, "/history/export", nil, nil)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Statistics fetches the server-computed aggregate over the user's
// history.
func (c *Client) Statistics(ctx context.Context) (*Statistics, error) {
	var stats Statistics
	if err := c.call(ctx, http.MethodGet, "/statistics/", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Health checks service and database availability.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var h Health
	if err := c.call(ctx, http.MethodGet, "/health", nil, nil, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// call performs an authenticated JSON request and decodes the response
// into out (which may be nil for ack-only endpoints).
func (c *Client) call(ctx context.Context, method, path string, query url.Values, payload, out any) error {
	body, err := c.callRaw(ctx, method, path, query, payload)
	if err != nil {
		return err
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decoding %s response: %w", path, err)
		}
	}
	return nil
}

// callRaw performs an authenticated request and returns the raw
// response body. Authorization failures clear the stored credential
// before the invalidation hook fires, so a concurrent retry can never
// read a half-invalidated credential.
func (c *Client) callRaw(ctx context.Context, method, path string, query url.Values, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encoding %s request: %w", path, err)
		}
		reqBody = bytes.NewReader(data)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("building %s request: %w", path, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.New().String())

	token, present, err := c.store.Get(ctx, store.TokenKey)
	if err != nil {
		return nil, fmt.Errorf("reading credential: %w", err)
	}
	if present {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &RequestError{Detail: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized {
		rmErr := c.store.Remove(ctx, store.TokenKey)
		var invErr error
		if c.invalidate != nil {
			invErr = c.invalidate(ctx)
		}
		if rmErr != nil || invErr != nil {
			return nil, errors.Join(ErrUnauthorized, rmErr, invErr)
		}
		return nil, ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RequestError{Status: resp.StatusCode, Detail: readDetail(resp.Body)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", path, err)
	}
	return body, nil
}

// readDetail extracts the "detail" field from an error response body,
// falling back to the raw body text.
func readDetail(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(data) == 0 {
		return ""
	}

	var payload struct {
		Detail any `json:"detail"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && payload.Detail != nil {
		if s, ok := payload.Detail.(string); ok {
			return s
		}
		if detail, err := json.Marshal(payload.Detail); err == nil {
			return string(detail)
		}
	}

	return strings.TrimSpace(string(data))
}
