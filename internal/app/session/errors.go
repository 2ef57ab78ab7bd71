package session

import "errors"

// Error is an application-layer error that can be mapped to an HTTP response.
type Error struct {
	Status  int
	Code    string
	Message string
	Details map[string]any
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	return e.Code
}

// IsRevoked reports whether err marks a session that the backend rejected
// (forced logout already happened as a side effect).
func IsRevoked(err error) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Code == "SESSION_REVOKED"
}
