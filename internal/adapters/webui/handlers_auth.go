package webui

import (
	"errors"
	"net/http"
	"strings"

	"github.com/revquotes/console/internal/app/session"
	"github.com/revquotes/console/internal/domain"
	"github.com/revquotes/console/internal/ports/out/backend"
)

func (s *Server) getLogin(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "login", page{Title: "Sign In"})
}

func (s *Server) postLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")

	sess, _ := SessionFromContext(r.Context())
	if _, err := s.Sessions.Login(r.Context(), sess.ID, email, password); err != nil {
		s.render(w, http.StatusUnauthorized, "login", page{
			Title: "Sign In",
			Flash: userMessage(err, "Invalid email or password"),
			Email: email,
		})
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) getRegister(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "register", page{Title: "Create Account"})
}

func (s *Server) postRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	reg := backend.Registration{
		FirstName: domain.NormalizeHumanName(r.PostFormValue("first_name")),
		LastName:  domain.NormalizeHumanName(r.PostFormValue("last_name")),
		Email:     strings.TrimSpace(r.PostFormValue("email")),
		Password:  r.PostFormValue("password"),
	}

	if r.PostFormValue("password") != r.PostFormValue("confirm_password") {
		s.render(w, http.StatusUnprocessableEntity, "register", page{
			Title: "Create Account",
			Flash: "Passwords don't match",
			Email: reg.Email,
		})
		return
	}

	if err := s.Sessions.Register(r.Context(), reg); err != nil {
		s.render(w, http.StatusUnprocessableEntity, "register", page{
			Title: "Create Account",
			Flash: userMessage(err, "Registration failed. Please try again."),
			Email: reg.Email,
		})
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// postLogout clears flow state, the session record and the cookie before
// navigating, so no protected content can flash on the way out.
func (s *Server) postLogout(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())
	s.Flow.Reset(sess.ID)
	s.Sessions.Logout(r.Context(), sess.ID)
	s.Cookies.Clear(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// forceLogout handles an authentication-rejected backend response seen
// mid-action: the token is dead, so tear the session down and send the
// visitor back through the guard's landing route.
func (s *Server) forceLogout(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())
	s.Flow.Reset(sess.ID)
	s.Sessions.Logout(r.Context(), sess.ID)
	s.Cookies.Clear(w)
	http.Redirect(w, r, "/register", http.StatusSeeOther)
}

func userMessage(err error, fallback string) string {
	var ae *session.Error
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	return fallback
}
