package webui

import (
	"context"
	"net/http"

	"github.com/revquotes/console/internal/app/session"
	"github.com/revquotes/console/internal/domain"
)

// sessionLoader resolves the session cookie on every request. Requests
// without a valid cookie get a fresh session ID minted and set, so the
// flow state has a stable key even before login.
//
// A provisional session triggers a background profile refresh; the page
// renders immediately with the cached profile and the next request sees
// the confirmed one. That keeps the guard optimistic: stale tokens are
// caught by the refresh or by the first failing API call, never by a
// blocking check on page load.
func (s *Server) sessionLoader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid, ok := s.Cookies.Read(r)
		if !ok {
			sid = s.Sessions.NewSessionID()
			if err := s.Cookies.Write(w, sid); err != nil {
				s.logger.Error().Err(err).Msg("session cookie write failed")
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
		}

		sess, state, err := s.Sessions.Current(r.Context(), sid)
		if err != nil {
			s.logger.Error().Err(err).Str("session", string(sid)).Msg("session load failed")
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		if state == domain.AuthProvisional {
			refreshCtx := context.WithoutCancel(r.Context())
			go func() {
				if err := s.Sessions.RefreshUser(refreshCtx, sid); err != nil && !session.IsRevoked(err) {
					s.logger.Warn().Err(err).Str("session", string(sid)).Msg("background profile refresh failed")
				}
			}()
		}

		next.ServeHTTP(w, r.WithContext(withSession(r.Context(), sess, state)))
	})
}

// requireAuth guards the dashboard subtree. Anonymous visitors are sent
// to the registration page, mirroring where a first-time visitor lands.
// Guarded pages are marked no-store so the browser back button cannot
// replay them after logout.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		sess, _ := SessionFromContext(r.Context())
		if !sess.Authenticated() {
			http.Redirect(w, r, "/register", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
