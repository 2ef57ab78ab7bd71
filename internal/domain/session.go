package domain

import "time"

// UserProfile is the authenticated user's profile as served by the backend.
type UserProfile struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	// Phone is optional profile metadata; nil means unset.
	Phone *string
}

// AuthState is the two-phase authentication state of a session.
//
// A session is provisional as soon as a token is present; it becomes
// confirmed only after a profile fetch against the backend succeeds.
// Route guarding admits provisional sessions on purpose: invalid tokens
// are discovered by the first failing API call, not by the guard.
type AuthState int

const (
	AuthAnonymous AuthState = iota
	AuthProvisional
	AuthConfirmed
)

func (s AuthState) String() string {
	switch s {
	case AuthProvisional:
		return "provisional"
	case AuthConfirmed:
		return "confirmed"
	default:
		return "anonymous"
	}
}

// Session is the domain representation of one browser session.
//
// Invariant: Token and User are set and cleared together, except during
// the transient window where a token exists but the profile is still
// being fetched (or re-fetched) from the backend.
type Session struct {
	ID    SessionID
	Token string
	User  *UserProfile

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Authenticated reports whether a token is present. Presence is the only
// check performed client-side; validity is the backend's call.
func (s Session) Authenticated() bool { return s.Token != "" }
