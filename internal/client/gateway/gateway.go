// Package gateway is the thin HTTP client every entity store calls through.
// It attaches the session's bearer token to outgoing requests, normalizes
// failures into APIError values, and turns a 401 from any endpoint into a
// forced session teardown for the whole application.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmskit/dmscli/internal/common"
	"github.com/dmskit/dmscli/internal/logging"
	"github.com/google/uuid"
)

// TokenSource supplies the current bearer token. An empty string means the
// request goes out unauthenticated. The session manager satisfies this.
type TokenSource interface {
	Token() string
}

// APIError is a normalized non-2xx response: the HTTP status plus the
// server-supplied message when one was present, a generic fallback otherwise.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

// Unwrap maps well-known statuses onto sentinel errors so callers can use
// errors.Is without inspecting status codes.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return common.ErrorUnauthorized
	case http.StatusNotFound:
		return common.ErrorNotFound
	}
	return nil
}

// Gateway issues REST calls against the backend API. Calls are independent:
// no caching, no deduplication, no retries. Many calls may be in flight at
// once; the gateway holds no per-request state.
type Gateway struct {
	baseURL string
	client  *http.Client
	tokens  TokenSource
	log     logging.Logger

	// onUnauthorized runs once per 401 response, whichever endpoint
	// produced it. Set by the application during wiring.
	onUnauthorized func(ctx context.Context)
}

func New(baseURL string, timeout time.Duration, tokens TokenSource, log logging.Logger) *Gateway {
	return &Gateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log,
	}
}

// OnUnauthorized registers the teardown hook invoked on any 401 response.
func (g *Gateway) OnUnauthorized(fn func(ctx context.Context)) {
	g.onUnauthorized = fn
}

func (g *Gateway) newRequest(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Request-Id", uuid.NewString())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := g.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// do sends the request and decodes a 2xx JSON body into out (skipped when
// out is nil). Non-2xx responses become *APIError; a 401 additionally fires
// the teardown hook. Transport failures map to common.ErrorUnavailable.
func (g *Gateway) do(req *http.Request, out any) error {
	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("%v: %w", err, common.ErrorUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Message: errorMessage(resp)}
		if resp.StatusCode == http.StatusUnauthorized {
			g.log.Warn(req.Context(), "request rejected as unauthorized, tearing down session",
				"method", req.Method, "url", req.URL.Path)
			if g.onUnauthorized != nil {
				g.onUnauthorized(req.Context())
			}
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %v: %w", err, common.ErrInvalidPayload)
	}
	return nil
}

// errorMessage extracts the conventional {"message": "..."} error body, with
// a generic fallback when the body is missing or not in that shape.
func errorMessage(resp *http.Response) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return fmt.Sprintf("request failed with status %d", resp.StatusCode)
}

func marshalBody(in any) (io.Reader, error) {
	raw, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(raw), nil
}

func (g *Gateway) getJSON(ctx context.Context, path string, out any) error {
	req, err := g.newRequest(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return err
	}
	return g.do(req, out)
}

func (g *Gateway) sendJSON(ctx context.Context, method, path string, in, out any) error {
	body, err := marshalBody(in)
	if err != nil {
		return err
	}
	req, err := g.newRequest(ctx, method, path, body, "application/json")
	if err != nil {
		return err
	}
	return g.do(req, out)
}

func (g *Gateway) delete(ctx context.Context, path string) error {
	req, err := g.newRequest(ctx, http.MethodDelete, path, nil, "")
	if err != nil {
		return err
	}
	return g.do(req, nil)
}
