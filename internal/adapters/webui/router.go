package webui

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
)

// Routes builds the console's HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	// Health endpoint for infra checks; no session handling.
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(s.sessionLoader)

		r.Get("/", s.getLanding)
		r.Get("/login", s.getLogin)
		r.Get("/register", s.getRegister)

		// Credential-accepting endpoints get per-IP rate limiting.
		r.Group(func(r chi.Router) {
			if s.AuthRateLimit > 0 {
				r.Use(httprate.LimitByIP(s.AuthRateLimit, s.AuthRateWindow))
			}
			r.Post("/login", s.postLogin)
			r.Post("/register", s.postRegister)
		})

		r.Post("/logout", s.postLogout)

		r.Route("/dashboard", func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Get("/", s.flowPage("dashboard", "dashboard", "/dashboard"))
			r.Post("/quote", s.submitQuote("/dashboard"))
			r.Post("/book", s.confirmBooking("/dashboard"))
			r.Post("/recalculate", s.recalculate("/dashboard"))
			r.Post("/dismiss", s.dismiss("/dashboard"))

			r.Route("/calculator", func(r chi.Router) {
				r.Get("/", s.flowPage("calculator", "calculator", "/dashboard/calculator"))
				r.Post("/quote", s.submitQuote("/dashboard/calculator"))
				r.Post("/book", s.confirmBooking("/dashboard/calculator"))
				r.Post("/recalculate", s.recalculate("/dashboard/calculator"))
				r.Post("/dismiss", s.dismiss("/dashboard/calculator"))
			})

			r.Get("/deliveries", s.placeholderPage("Deliveries", "deliveries"))
			r.Get("/shipping", s.placeholderPage("Shipping", "shipping"))
			r.Get("/settings", s.placeholderPage("Settings", "settings"))
		})
	})

	return r
}
