package webui

import (
	"net/http"
	"strconv"

	"github.com/revquotes/console/internal/app/quoteflow"
	"github.com/revquotes/console/internal/domain"
	"github.com/revquotes/console/internal/ports/out/backend"
)

// flowPage renders a page that embeds the quote form, posting back to
// the action routes mounted under base.
func (s *Server) flowPage(name, active, base string) http.HandlerFunc {
	actions := flowActions{
		Quote:       base + "/quote",
		Book:        base + "/book",
		Recalculate: base + "/recalculate",
		Dismiss:     base + "/dismiss",
	}
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := SessionFromContext(r.Context())
		st := s.Flow.Get(sess.ID)
		s.render(w, http.StatusOK, name, page{
			Title:     "RevQuotes",
			Active:    active,
			User:      sess.User,
			Flow:      &st,
			Vehicles:  domain.VehicleTypes,
			Urgencies: domain.Urgencies,
			Actions:   actions,
		})
	}
}

// submitQuote handles the quote form POST for the page rooted at back.
// Outcomes live in flow state; the redirect re-renders whatever happened.
func (s *Server) submitQuote(back string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		in := quoteflow.SubmitInput{
			DistanceKM: parseFloat(r.PostFormValue("distance_km")),
			WeightKG:   parseFloat(r.PostFormValue("weight_kg")),
			Vehicle:    domain.VehicleType(r.PostFormValue("vehicle_type")),
			Urgency:    domain.Urgency(r.PostFormValue("urgency")),
		}

		sess, _ := SessionFromContext(r.Context())
		if _, err := s.Flow.SubmitQuote(r.Context(), sess.ID, sess.Token, in); err != nil {
			if backend.IsUnauthorized(err) {
				s.forceLogout(w, r)
				return
			}
			s.logger.Error().Err(err).Msg("quote submit failed")
		}
		http.Redirect(w, r, back, http.StatusSeeOther)
	}
}

func (s *Server) confirmBooking(back string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := SessionFromContext(r.Context())
		if _, err := s.Flow.ConfirmBooking(r.Context(), sess.ID, sess.Token); err != nil {
			if backend.IsUnauthorized(err) {
				s.forceLogout(w, r)
				return
			}
			s.logger.Error().Err(err).Msg("booking failed")
		}
		http.Redirect(w, r, back, http.StatusSeeOther)
	}
}

func (s *Server) recalculate(back string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := SessionFromContext(r.Context())
		s.Flow.Recalculate(sess.ID)
		http.Redirect(w, r, back, http.StatusSeeOther)
	}
}

func (s *Server) dismiss(back string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := SessionFromContext(r.Context())
		s.Flow.Dismiss(sess.ID)
		http.Redirect(w, r, back, http.StatusSeeOther)
	}
}

// parseFloat maps malformed numbers to 0; the flow rejects those with
// the same user-facing message as any other bad input.
func parseFloat(v string) float64 {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}
