package session

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/revquotes/console/internal/domain"
	"github.com/revquotes/console/internal/ports/out/backend"
	clockport "github.com/revquotes/console/internal/ports/out/clock"
	"github.com/revquotes/console/internal/ports/out/sessionrepo"
)

// Service owns the session lifecycle: login, logout, profile refresh and
// the two-phase auth state. It is the single writer of the session
// repository.
type Service struct {
	repo sessionrepo.Repository
	api  backend.Client
	clk  clockport.Clock

	newSessionID func() domain.SessionID
	logger       zerolog.Logger

	// confirmed tracks sessions whose profile fetch succeeded in this
	// process. Process-local on purpose: a restart demotes everyone back
	// to provisional until the next refresh round-trips.
	mu        sync.Mutex
	confirmed map[domain.SessionID]struct{}
}

func NewService(repo sessionrepo.Repository, api backend.Client, clk clockport.Clock, logger zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		api:  api,
		clk:  clk,
		newSessionID: func() domain.SessionID {
			return domain.SessionID(uuid.NewString())
		},
		logger:    logger,
		confirmed: make(map[domain.SessionID]struct{}),
	}
}

// NewSessionID mints an identifier for a fresh browser session.
func (s *Service) NewSessionID() domain.SessionID {
	return s.newSessionID()
}

// Login exchanges credentials for a token and stores the session. The
// backend's login response carries only the token, so the stored profile
// is a placeholder around the submitted email until RefreshUser replaces
// it — within one round trip in the normal case.
func (s *Service) Login(ctx context.Context, sid domain.SessionID, email, password string) (domain.Session, error) {
	token, err := s.api.Login(ctx, backend.Credentials{Email: email, Password: password})
	if err != nil {
		return domain.Session{}, loginError(err)
	}

	now := s.clk.Now()
	rec := sessionrepo.Record{
		ID:    sid,
		Token: token,
		User: &domain.UserProfile{
			ID:        "user-id-placeholder",
			Email:     email,
			FirstName: "User",
			LastName:  "",
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Put(ctx, rec); err != nil {
		return domain.Session{}, err
	}

	s.mu.Lock()
	delete(s.confirmed, sid)
	s.mu.Unlock()

	return toDomain(rec), nil
}

// Register creates an account. It never touches session state: the
// original flow sends the user to the login page afterwards.
func (s *Service) Register(ctx context.Context, reg backend.Registration) error {
	if err := s.api.Register(ctx, reg); err != nil {
		return registerError(err)
	}
	return nil
}

// Logout clears the session. Idempotent; never fails.
func (s *Service) Logout(ctx context.Context, sid domain.SessionID) {
	if err := s.repo.Delete(ctx, sid); err != nil && !errors.Is(err, sessionrepo.ErrNotFound) {
		s.logger.Warn().Err(err).Str("session", string(sid)).Msg("logout: delete failed")
	}
	s.mu.Lock()
	delete(s.confirmed, sid)
	s.mu.Unlock()
}

// RefreshUser validates the stored token against /auth/me and replaces
// the cached profile. No token means no-op. An authentication-rejected
// response forces logout and returns a SESSION_REVOKED error; any other
// failure leaves state unchanged and is returned for logging only.
//
// Concurrent refreshes for one session are not de-duplicated; the later
// repository write wins.
func (s *Service) RefreshUser(ctx context.Context, sid domain.SessionID) error {
	rec, err := s.repo.Get(ctx, sid)
	if errors.Is(err, sessionrepo.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if rec.Token == "" {
		return nil
	}

	profile, err := s.api.FetchProfile(ctx, rec.Token)
	if err != nil {
		if backend.IsUnauthorized(err) {
			s.Logout(ctx, sid)
			return &Error{Status: 401, Code: "SESSION_REVOKED", Message: "session rejected by backend"}
		}
		return err
	}

	if err := s.repo.UpdateUser(ctx, sid, profile, s.clk.Now()); err != nil {
		if errors.Is(err, sessionrepo.ErrNotFound) {
			// Logged out while the fetch was in flight; nothing to update.
			return nil
		}
		return err
	}

	s.mu.Lock()
	s.confirmed[sid] = struct{}{}
	s.mu.Unlock()
	return nil
}

// Current loads the session and classifies its auth state.
func (s *Service) Current(ctx context.Context, sid domain.SessionID) (domain.Session, domain.AuthState, error) {
	rec, err := s.repo.Get(ctx, sid)
	if errors.Is(err, sessionrepo.ErrNotFound) {
		return domain.Session{ID: sid}, domain.AuthAnonymous, nil
	}
	if err != nil {
		return domain.Session{}, domain.AuthAnonymous, err
	}
	sess := toDomain(rec)
	if !sess.Authenticated() {
		return sess, domain.AuthAnonymous, nil
	}

	s.mu.Lock()
	_, ok := s.confirmed[sid]
	s.mu.Unlock()
	if ok {
		return sess, domain.AuthConfirmed, nil
	}
	return sess, domain.AuthProvisional, nil
}

func toDomain(rec sessionrepo.Record) domain.Session {
	return domain.Session{
		ID:        rec.ID,
		Token:     rec.Token,
		User:      rec.User,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

func loginError(err error) error {
	var ae *backend.APIError
	if errors.As(err, &ae) {
		msg := ae.Message
		if msg == "" {
			msg = "Invalid email or password"
		}
		return &Error{Status: ae.StatusCode, Code: "LOGIN_FAILED", Message: msg}
	}
	return &Error{Status: 502, Code: "LOGIN_FAILED", Message: "Invalid email or password"}
}

func registerError(err error) error {
	var ae *backend.APIError
	if errors.As(err, &ae) {
		msg := ae.Message
		if msg == "" {
			msg = "Registration failed. Please try again."
		}
		return &Error{Status: ae.StatusCode, Code: "REGISTRATION_FAILED", Message: msg}
	}
	return &Error{Status: 502, Code: "REGISTRATION_FAILED", Message: "Registration failed. Please try again."}
}
