package registry

import (
	"errors"
	"fmt"
	"net/http"
)

// Common registry errors
var (
	// ErrNotFound is returned when a subject, version or config does not
	// exist in the registry. Every 404 response matches this sentinel via
	// errors.Is, so callers can treat absence as benign.
	ErrNotFound = errors.New("registry: not found")
)

// APIError is returned for any non-2xx registry response. It carries the
// HTTP status and an excerpt of the response body; the request URL and
// credentials are deliberately not included.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("schema registry returned status %d: %s", e.StatusCode, e.Body)
}

// Unwrap maps 404 responses onto the ErrNotFound sentinel.
func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	return nil
}

// IsNotFound checks if the error represents an absent subject, version or config.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
