package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrAuthenticationFailure = errors.New("authentication failure")
	ErrUpstreamRejected      = errors.New("upstream rejected request")
	ErrValidationFailure     = errors.New("upstream validation failure")
	ErrProtocolViolation     = errors.New("upstream protocol violation")
	ErrIDMismatch            = errors.New("contract id does not match request id")
)

// AuthError is returned when a credential could not be obtained from an
// upstream auth endpoint. StatusCode is zero when the failure was not an HTTP
// status (transport error, unusable body).
type AuthError struct {
	API        APIIdentity
	StatusCode int
	Reason     string
	Err        error
}

func (e *AuthError) Error() string {
	msg := fmt.Sprintf("%s api token request failed", e.API)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *AuthError) Unwrap() error { return e.Err }

func (e *AuthError) Is(target error) bool { return target == ErrAuthenticationFailure }

// UpstreamError carries a non-2xx reply from a business endpoint. The body is
// forwarded as-is.
type UpstreamError struct {
	API        APIIdentity
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	msg := fmt.Sprintf("%s %s returned %d", e.Method, e.Path, e.StatusCode)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

func (e *UpstreamError) Is(target error) bool {
	switch target {
	case ErrUpstreamRejected:
		return true
	case ErrValidationFailure:
		return e.StatusCode == http.StatusBadRequest || e.StatusCode == http.StatusUnprocessableEntity
	}
	return false
}

// DecodeError reports a 2xx reply whose body does not match the expected shape.
type DecodeError struct {
	API  APIIdentity
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s api %s: unexpected response body: %v", e.API, e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrProtocolViolation }

// ErrEmptyBody is the cause of a DecodeError when a body was required.
var ErrEmptyBody = errors.New("empty body")
