package ovh

import (
	"errors"
	"fmt"
)

// ErrUnknownEndpoint is returned when an endpoint identifier is not in the
// fixed endpoint table.
var ErrUnknownEndpoint = errors.New("ovh: unknown endpoint")

// APIError represents a non-2xx response from the OVH API. The raw body is
// kept verbatim; OVH error bodies are JSON but their shape varies per
// endpoint.
type APIError struct {
	StatusCode int
	Body       []byte
}

// Error implements the error interface for APIError.
func (e *APIError) Error() string {
	return fmt.Sprintf("ovh: api error (status %d): %s", e.StatusCode, e.Body)
}

// MissingKeyError reports a required key absent from the configuration
// file.
type MissingKeyError struct {
	Key string
}

// Error implements the error interface for MissingKeyError.
func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("ovh: missing configuration key %q", e.Key)
}
