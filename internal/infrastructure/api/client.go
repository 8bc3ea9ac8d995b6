// Package api implements the HTTP gateway: the single point through which
// every other component reaches the RekaTrack backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rekaindo/rekatrack/internal/core/domain"
	"github.com/rekaindo/rekatrack/internal/core/ports"
	"github.com/rekaindo/rekatrack/internal/metrics"
)

// defaultTimeout bounds every call. A timeout surfaces as a generic network
// error and is never silently retried by the gateway itself.
const defaultTimeout = 15 * time.Second

// Client implements ports.Gateway over net/http. It attaches the bearer
// credential from the session store, normalises the success/error shape, and
// clears the stored token on a server-signalled 401.
type Client struct {
	baseURL string
	http    *http.Client
	store   ports.SessionStore
	log     zerolog.Logger
}

// Option tunes a Client.
type Option func(*Client)

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithTransport overrides the underlying round tripper, for tests.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.http.Transport = rt }
}

func NewClient(baseURL string, store ports.SessionStore, log zerolog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
		store:   store,
		log:     log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Call performs a JSON request against the backend.
func (c *Client) Call(ctx context.Context, method, path string, body any, headers map[string]string) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("gateway: encode body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("gateway: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, headers)
}

// Upload performs a multipart upload. The content type, including its
// boundary, is left to the multipart writer.
func (c *Client) Upload(ctx context.Context, path, field, filename string, r io.Reader) (json.RawMessage, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return nil, fmt.Errorf("gateway: build multipart: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("gateway: read upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("gateway: finish multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, fmt.Errorf("gateway: build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.do(req, nil)
}

func (c *Client) do(req *http.Request, headers map[string]string) (json.RawMessage, error) {
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	if session, ok, err := c.store.Get(req.Context()); err == nil && ok {
		req.Header.Set("Authorization", "Bearer "+session.Token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.GatewayRequestDuration.WithLabelValues(req.Method).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.GatewayRequestsTotal.WithLabelValues(req.Method, "0").Inc()
		c.log.Warn().Err(err).
			Str("request_id", requestID).
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Msg("transport failure")
		return nil, &domain.APIError{Status: 0, Message: "network error"}
	}
	defer resp.Body.Close()

	metrics.GatewayRequestsTotal.WithLabelValues(req.Method, strconv.Itoa(resp.StatusCode)).Inc()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.APIError{Status: 0, Message: "network error"}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		// Session teardown is a gateway side effect, not left to each
		// caller. Only the token goes; cached profile data stays until the
		// caller clears it. Clearing an already-cleared token is a no-op, so
		// concurrent in-flight calls each fail independently.
		if err := c.store.ClearToken(req.Context()); err != nil {
			c.log.Warn().Err(err).Str("request_id", requestID).Msg("failed to clear expired token")
		}
		return nil, &domain.APIError{
			Status:  http.StatusUnauthorized,
			Message: "session expired, please login again",
			Body:    raw,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.APIError{
			Status:  resp.StatusCode,
			Message: serverMessage(raw),
			Body:    raw,
		}
	}

	c.log.Debug().
		Str("request_id", requestID).
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Msg("gateway call")

	// Non-JSON success bodies are returned raw; callers treat them as a
	// data-shape error in their own validation.
	return raw, nil
}

// serverMessage extracts the server-provided message from an error body,
// falling back to a generic one.
func serverMessage(raw []byte) string {
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Message != "" {
		return envelope.Message
	}
	return "request failed"
}
