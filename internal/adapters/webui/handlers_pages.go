package webui

import "net/http"

func (s *Server) getLanding(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())
	s.render(w, http.StatusOK, "landing", page{Title: "RevQuotes", User: sess.User})
}

// placeholderPage serves the not-yet-built sections with their
// "Coming Soon" copy inside the dashboard shell.
func (s *Server) placeholderPage(title, active string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := SessionFromContext(r.Context())
		s.render(w, http.StatusOK, "placeholder", page{
			Title:  title,
			Active: active,
			User:   sess.User,
		})
	}
}
