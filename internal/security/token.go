package security

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"rental-frontend/internal/domain"
	"rental-frontend/internal/logger"
	"rental-frontend/internal/metrics"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"
)

// DefaultRefreshMargin is how long before expiry a cached token is replaced.
const DefaultRefreshMargin = 5 * time.Minute

const tokenPath = "/api/Auth/token"

// TokenSource hands out bearer tokens for an upstream API.
type TokenSource interface {
	Token(ctx context.Context, api domain.APIIdentity) (string, error)
}

// Upstream is where and how to request tokens for one API identity.
type Upstream struct {
	BaseURL  string
	AuthCode string
}

// TokenCache keeps at most one credential per API identity and refreshes it
// once it is within the refresh margin of expiring. Concurrent misses for the
// same identity share a single token request.
type TokenCache struct {
	httpClient *http.Client
	upstreams  map[domain.APIIdentity]Upstream
	margin     time.Duration
	now        func() time.Time

	mu    sync.RWMutex
	creds map[domain.APIIdentity]domain.Credential
	group singleflight.Group
}

type Option func(*TokenCache)

// WithHTTPClient sets the client used for token requests
func WithHTTPClient(h *http.Client) Option {
	return func(c *TokenCache) { c.httpClient = h }
}

// WithRefreshMargin overrides DefaultRefreshMargin
func WithRefreshMargin(d time.Duration) Option {
	return func(c *TokenCache) { c.margin = d }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *TokenCache) { c.now = now }
}

// NewTokenCache creates a new token cache for the given upstreams
func NewTokenCache(upstreams map[domain.APIIdentity]Upstream, opts ...Option) *TokenCache {
	c := &TokenCache{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		upstreams:  make(map[domain.APIIdentity]Upstream, len(upstreams)),
		margin:     DefaultRefreshMargin,
		now:        time.Now,
		creds:      make(map[domain.APIIdentity]domain.Credential),
	}
	for api, u := range upstreams {
		u.BaseURL = strings.TrimRight(u.BaseURL, "/")
		c.upstreams[api] = u
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token returns a bearer token for api that will not expire within the
// refresh margin, requesting a new one from the upstream auth endpoint when
// needed. Failures are returned as *domain.AuthError and are not retried.
// A caller whose ctx ends gets ctx.Err() while the shared request carries on.
func (c *TokenCache) Token(ctx context.Context, api domain.APIIdentity) (string, error) {
	if cred, ok := c.cached(api); ok {
		metrics.TokenCacheHitsTotal.WithLabelValues(string(api)).Inc()
		return cred.Token, nil
	}

	// The shared request must not fail for every waiter just because the
	// first caller went away; each caller stops waiting on its own ctx.
	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(string(api), func() (any, error) {
		if cred, ok := c.cached(api); ok {
			return cred.Token, nil
		}
		cred, err := c.fetch(fetchCtx, api)
		if err != nil {
			return "", err
		}
		c.mu.Lock()
		c.creds[api] = cred
		c.mu.Unlock()
		return cred.Token, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", fmt.Errorf("waiting for %s api token: %w", api, ctx.Err())
	}
}

// Invalidate drops the cached credential for api.
func (c *TokenCache) Invalidate(api domain.APIIdentity) {
	c.mu.Lock()
	delete(c.creds, api)
	c.mu.Unlock()
}

func (c *TokenCache) cached(api domain.APIIdentity) (domain.Credential, bool) {
	c.mu.RLock()
	cred, ok := c.creds[api]
	c.mu.RUnlock()
	if !ok || !cred.ValidAt(c.now(), c.margin) {
		return domain.Credential{}, false
	}
	return cred, true
}

func (c *TokenCache) fetch(ctx context.Context, api domain.APIIdentity) (cred domain.Credential, err error) {
	upstream, ok := c.upstreams[api]
	if !ok {
		return domain.Credential{}, &domain.AuthError{API: api, Reason: "no upstream configured"}
	}

	logger.ExternalServiceCall(ctx, string(api), "token")
	defer func() {
		result := "ok"
		if err != nil {
			result = "error"
		}
		metrics.TokenRefreshesTotal.WithLabelValues(string(api), result).Inc()
		logger.ExternalServiceResult(ctx, string(api), "token", err, "expires_at", cred.ExpiresAt)
	}()

	body, err := json.Marshal(domain.TokenRequest{AuthCode: upstream.AuthCode})
	if err != nil {
		return domain.Credential{}, &domain.AuthError{API: api, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, upstream.BaseURL+tokenPath, bytes.NewReader(body))
	if err != nil {
		return domain.Credential{}, &domain.AuthError{API: api, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Credential{}, &domain.AuthError{API: api, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Credential{}, &domain.AuthError{API: api, StatusCode: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.Credential{}, &domain.AuthError{API: api, StatusCode: resp.StatusCode, Reason: strings.TrimSpace(string(respBody))}
	}

	var tr domain.TokenResponse
	if err := json.Unmarshal(respBody, &tr); err != nil {
		return domain.Credential{}, &domain.AuthError{API: api, StatusCode: resp.StatusCode, Reason: "unparseable token response", Err: err}
	}
	if strings.TrimSpace(tr.Token) == "" {
		return domain.Credential{}, &domain.AuthError{API: api, StatusCode: resp.StatusCode, Reason: "empty token"}
	}

	expiresAt, err := expiryOf(tr)
	if err != nil {
		return domain.Credential{}, &domain.AuthError{API: api, StatusCode: resp.StatusCode, Reason: "unusable token", Err: err}
	}

	return domain.Credential{Token: tr.Token, ExpiresAt: expiresAt}, nil
}

var errNoExpiry = errors.New("token response carries no expiry")

// expiryOf prefers the explicit expiresAt field and falls back to the exp
// claim when the token is a JWT. The signature is not checked: the token is
// opaque to this process and only the upstream validates it.
func expiryOf(tr domain.TokenResponse) (time.Time, error) {
	if tr.ExpiresAt != nil && !tr.ExpiresAt.IsZero() {
		return tr.ExpiresAt.Time, nil
	}
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(tr.Token, &claims); err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", errNoExpiry, err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, errNoExpiry
	}
	return claims.ExpiresAt.Time, nil
}
