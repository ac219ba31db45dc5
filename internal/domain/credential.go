package domain

import "time"

// APIIdentity names an upstream API. Each identity has its own credential.
type APIIdentity string

const (
	ContractsAPI APIIdentity = "contracts"
	CatalogsAPI  APIIdentity = "catalogs"
)

// Credential is a bearer token and the instant it stops being accepted.
type Credential struct {
	Token     string
	ExpiresAt time.Time
}

// ValidAt reports whether the credential can still be used at now with the
// given safety margin left before expiry.
func (c Credential) ValidAt(now time.Time, margin time.Duration) bool {
	return c.Token != "" && c.ExpiresAt.After(now.Add(margin))
}

// TokenRequest is the body posted to an upstream auth endpoint.
type TokenRequest struct {
	AuthCode string `json:"authCode"`
}

// TokenResponse is the upstream auth endpoint reply. ExpiresAt may be absent.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt *DateTime `json:"expiresAt,omitempty"`
}
