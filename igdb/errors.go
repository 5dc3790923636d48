package igdb

import (
	"errors"
	"fmt"
)

// Validation errors for caller-supplied arguments.
var (
	ErrEmptyQuery   = errors.New("igdb: search query is empty")
	ErrInvalidLimit = errors.New("igdb: search limit must be positive")
	ErrInvalidID    = errors.New("igdb: game id must be positive")
)

// AuthConfigError indicates the credentials required for the
// client-credentials grant are missing from the configuration.
// It is never worth retrying.
type AuthConfigError struct {
	Missing string
}

func (e *AuthConfigError) Error() string {
	return fmt.Sprintf("igdb: missing credential: %s", e.Missing)
}

// AuthRequestError indicates the token endpoint was reached but the
// grant failed (rejected credentials, outage, malformed response).
type AuthRequestError struct {
	Status int
	Err    error
}

func (e *AuthRequestError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("igdb: token request failed with status %d: %v", e.Status, e.Err)
	}
	return fmt.Sprintf("igdb: token request failed: %v", e.Err)
}

func (e *AuthRequestError) Unwrap() error { return e.Err }

// UpstreamError indicates a transport failure, non-2xx status, or
// malformed JSON from the metadata endpoint.
type UpstreamError struct {
	Operation string
	Status    int
	Err       error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("igdb: %s failed with status %d: %v", e.Operation, e.Status, e.Err)
	}
	return fmt.Sprintf("igdb: %s failed: %v", e.Operation, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// NotFoundError indicates the upstream returned zero records for a
// specific-id lookup. Distinct from UpstreamError so callers can map
// it to a 404 instead of a generic failure.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("igdb: game %d not found", e.ID)
}
