package sessionrepo

import (
	"context"
	"time"

	"github.com/revquotes/console/internal/domain"
)

// Record is the persistence shape for one browser session. It is an
// internal record, not an HTTP DTO: the web layer only ever sees
// domain.Session values built from it.
type Record struct {
	ID    domain.SessionID
	Token string
	// User is the cached profile; nil means not yet fetched.
	User *domain.UserProfile

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Repository provides durable storage for sessions (the server-side
// counterpart of the old client's localStorage token/user pair).
//
// Writes are atomic per record; there is no cross-record coordination.
type Repository interface {
	// Put stores a record, overwriting any existing record with the same ID.
	Put(ctx context.Context, rec Record) error

	Get(ctx context.Context, id domain.SessionID) (Record, error)

	// UpdateUser replaces only the cached profile, leaving the token
	// untouched. Used by profile refresh; last write wins.
	UpdateUser(ctx context.Context, id domain.SessionID, user domain.UserProfile, updatedAt time.Time) error

	// Delete removes a record. Deleting a missing record is not an error.
	Delete(ctx context.Context, id domain.SessionID) error
}
