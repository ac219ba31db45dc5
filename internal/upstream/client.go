package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"rental-frontend/internal/domain"
	"rental-frontend/internal/logger"
	"rental-frontend/internal/metrics"
	"rental-frontend/internal/security"

	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// Client performs authenticated calls against the upstream APIs. Every
// request is built fresh and carries the bearer token for its target API;
// nothing is set on the shared transport.
type Client struct {
	baseURLs   map[domain.APIIdentity]string
	httpClient *http.Client
	tokens     security.TokenSource
}

type Option func(*Client)

// WithHTTPClient sets the client used for upstream calls
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// NewClient creates a new upstream client
func NewClient(baseURLs map[domain.APIIdentity]string, tokens security.TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURLs:   make(map[domain.APIIdentity]string, len(baseURLs)),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		tokens:     tokens,
	}
	for api, base := range baseURLs {
		c.baseURLs[api] = strings.TrimRight(base, "/")
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do sends method path?query to api with body encoded as JSON (when non-nil)
// and decodes a 2xx reply into out (when non-nil).
//
// Errors:
//   - token acquisition failures are returned unchanged (*domain.AuthError);
//   - non-2xx replies, including 401, are *domain.UpstreamError and are never
//     retried;
//   - a 2xx reply that is empty or does not decode into out is
//     *domain.DecodeError.
func (c *Client) Do(ctx context.Context, api domain.APIIdentity, method, path string, query url.Values, body, out any) error {
	base, ok := c.baseURLs[api]
	if !ok {
		return fmt.Errorf("no base url configured for %s api", api)
	}

	token, err := c.tokens.Token(ctx, api)
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	target := base + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := logger.RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set(RequestIDHeader, requestID)

	operation := method + " " + path
	logger.ExternalServiceCall(ctx, string(api), operation)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues(string(api)).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(string(api), method, "error").Inc()
		logger.ExternalServiceResult(ctx, string(api), operation, err)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	metrics.UpstreamRequestsTotal.WithLabelValues(string(api), method, strconv.Itoa(resp.StatusCode)).Inc()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.ExternalServiceResult(ctx, string(api), operation, err)
		return fmt.Errorf("%s %s: read body: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		upErr := &domain.UpstreamError{
			API:        api,
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(respBody)),
		}
		logger.ExternalServiceResult(ctx, string(api), operation, upErr, "status", resp.StatusCode)
		return upErr
	}
	logger.ExternalServiceResult(ctx, string(api), operation, nil, "status", resp.StatusCode)

	if out == nil {
		return nil
	}
	trimmed := bytes.TrimSpace(respBody)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return &domain.DecodeError{API: api, Path: path, Err: domain.ErrEmptyBody}
	}
	if err := json.Unmarshal(trimmed, out); err != nil {
		return &domain.DecodeError{API: api, Path: path, Err: err}
	}
	return nil
}

// IsEmptyBody reports whether err is a 2xx reply without a payload.
func IsEmptyBody(err error) bool {
	var decErr *domain.DecodeError
	return errors.As(err, &decErr) && errors.Is(decErr.Err, domain.ErrEmptyBody)
}

// IsNotFound reports whether err is an upstream 404.
func IsNotFound(err error) bool {
	var upErr *domain.UpstreamError
	return errors.As(err, &upErr) && upErr.StatusCode == http.StatusNotFound
}
