package backend

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnreachable marks transport-level failures: the backend produced no
// response at all. Distinct from APIError, which is a server-reported error.
var ErrUnreachable = errors.New("backend unreachable")

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	// Message is the "error" field of the response body, when decodable.
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend: %d %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend: status %d", e.StatusCode)
}

// Unauthorized reports whether the backend rejected the caller's
// authentication. Any such response forces a logout upstream.
func (e *APIError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// IsUnauthorized reports whether err is a server-reported authentication
// rejection.
func IsUnauthorized(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Unauthorized()
}
