// Package multilead implements the request gateway for the Multilead Open
// API: one authenticated HTTP call per invocation, with uniform translation
// of the outcome into either a decoded JSON payload or a classified error.
package multilead

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vanman2024/multilead-mcp/pkg/config"
)

// Client issues authenticated requests against the configured base URL. It
// holds no mutable state after construction and is safe for unlimited
// concurrent use; each call is independent, with no retries and no caching.
type Client struct {
	baseURL string
	apiKey  string
	timeout int
	debug   bool
	http    *http.Client
}

// New builds a gateway client from the configuration.
func New(cfg *config.Config) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		timeout: cfg.Timeout,
		debug:   cfg.Debug,
		http: &http.Client{
			Timeout: cfg.RequestTimeout(),
		},
	}
}

var allowedMethods = map[string]bool{
	http.MethodGet:    true,
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
}

// Execute performs one authenticated request and returns the decoded JSON
// payload. The endpoint is joined to the base URL with exactly one slash.
// List-valued query parameters must be pre-serialized by the caller into the
// wire format the API expects; the gateway does not know about array
// encodings. A nil body sends no request body.
//
// Status codes are checked before the body is parsed, so a non-2xx response
// with a malformed body never surfaces as a parse error. 204 responses yield
// a synthetic success payload.
func (c *Client) Execute(ctx context.Context, method, endpoint string, query url.Values, body any) (any, error) {
	if !allowedMethods[method] {
		return nil, newError(KindValidation, "unsupported HTTP method %q", method)
	}

	reqURL := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, wrapError(KindUnexpected, err, "failed to encode request body for %s", endpoint)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, wrapError(KindUnexpected, err, "failed to build request for %s", endpoint)
	}

	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}

	requestID := ""
	if c.debug {
		requestID = uuid.NewString()
		log.Debug("multilead request", "id", requestID, "method", method, "url", req.URL.String())
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.classifyTransport(err)
	}
	defer resp.Body.Close()

	if c.debug {
		log.Debug("multilead response", "id", requestID, "status", resp.StatusCode)
	}

	if apiErr := classifyStatus(resp.StatusCode, endpoint); apiErr != nil {
		// Drain so the connection can be reused.
		io.Copy(io.Discard, resp.Body)
		return nil, apiErr
	}

	if resp.StatusCode == http.StatusNoContent {
		return map[string]any{
			"success": true,
			"message": "Operation completed successfully",
		}, nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.classifyTransport(err)
	}

	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, wrapError(KindUnexpected, err, "failed to decode response from %s", endpoint)
	}

	return payload, nil
}

// classifyStatus maps a non-2xx status to its error, or returns nil for
// success statuses. The explicit cases take priority over the generic
// non-2xx mapping.
func classifyStatus(status int, endpoint string) *Error {
	switch {
	case status == http.StatusUnauthorized:
		return newError(KindAuthentication,
			"authentication failed; check your MULTILEAD_API_KEY (available at https://app.multilead.co/settings/api)")
	case status == http.StatusForbidden:
		return newError(KindPermission,
			"access forbidden; your API key may not have permission for this resource")
	case status == http.StatusNotFound:
		return newError(KindNotFound, "resource not found: %s", endpoint)
	case status == http.StatusTooManyRequests:
		return newError(KindRateLimited,
			"rate limit exceeded; wait before making more requests")
	case status >= 500:
		e := newError(KindServer, "Multilead API server error (%d); try again later", status)
		e.Status = status
		return e
	case status < 200 || status >= 300:
		e := newError(KindUpstream, "Multilead API returned unexpected status %d for %s", status, endpoint)
		e.Status = status
		return e
	}
	return nil
}

// classifyTransport maps an error from the HTTP round trip into the timeout,
// network, or unexpected categories.
func (c *Client) classifyTransport(err error) *Error {
	var already *Error
	if errors.As(err, &already) {
		return already
	}

	var netErr net.Error
	timedOut := errors.Is(err, context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout())
	if timedOut {
		return wrapError(KindTimeout, err,
			"request timed out after %d seconds; try increasing MULTILEAD_TIMEOUT", c.timeout)
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return wrapError(KindNetwork, err, "network error while connecting to the Multilead API")
	}

	return wrapError(KindUnexpected, err, "unexpected error during Multilead API request")
}

// BaseURL reports the normalized base URL the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}
