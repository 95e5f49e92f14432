package trustdeck

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrMissingIdentifier is returned before any network call when an operation
// requires either an (id, idType) pair or a psn value and the caller
// supplied neither.
var ErrMissingIdentifier = errors.New("trustdeck: either id and idType or a psn value must be provided")

// ============================================================================
// TransportError - the request never produced a usable response
// ============================================================================

// TransportError reports that the HTTP call to the service could not be
// completed: DNS failure, connection refused, timeout, or a response body
// that could not be read or decoded. It is always surfaced, never downgraded
// to an empty result.
type TransportError struct {
	// Op names the operation that was attempted (e.g. "create domain")
	Op string

	// Err is the underlying failure
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("trustdeck: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying failure.
func (e *TransportError) Unwrap() error { return e.Err }

// ============================================================================
// ResponseError - the service answered, but not with a usable outcome
// ============================================================================

// ResponseError reports a status code the service returned that maps to a
// failure for the attempted operation, or that is undocumented for it.
type ResponseError struct {
	// Status is the HTTP status code the service returned
	Status int

	// Message is a human-readable description of what the status means for
	// the attempted operation
	Message string
}

// Error implements the error interface.
func (e *ResponseError) Error() string {
	return fmt.Sprintf("trustdeck: %s (status %d)", e.Message, e.Status)
}

// NotFound reports whether the error represents a 404 from the service.
func (e *ResponseError) NotFound() bool { return e.Status == http.StatusNotFound }

// unexpectedStatus builds the ResponseError for a status code that is not
// documented for the attempted operation. The literal code is carried, never
// a guessed meaning.
func unexpectedStatus(status int) *ResponseError {
	return &ResponseError{
		Status:  status,
		Message: fmt.Sprintf("unexpected status code %d (%s) in response", status, http.StatusText(status)),
	}
}

// ============================================================================
// Authentication errors
// ============================================================================

// AuthError reports that the initial token acquisition from the identity
// provider failed: unreachable provider or rejected credentials. A later
// call retries the acquisition.
type AuthError struct {
	Err error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	return fmt.Sprintf("trustdeck: authenticating against the identity provider failed: %v", e.Err)
}

// Unwrap returns the underlying failure.
func (e *AuthError) Unwrap() error { return e.Err }

// RefreshError reports that refreshing a previously acquired token failed.
// The stored token is left as it was, so a later call retries the refresh.
type RefreshError struct {
	Err error
}

// Error implements the error interface.
func (e *RefreshError) Error() string {
	return fmt.Sprintf("trustdeck: refreshing the access token failed: %v", e.Err)
}

// Unwrap returns the underlying failure.
func (e *RefreshError) Unwrap() error { return e.Err }
