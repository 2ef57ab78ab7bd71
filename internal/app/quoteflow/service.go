package quoteflow

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/revquotes/console/internal/domain"
	"github.com/revquotes/console/internal/ports/out/backend"
)

const (
	quoteFailedMessage   = "Failed to calculate price. Please check your inputs."
	bookingFailedMessage = "Failed to book delivery. Please try again."
)

// flow is one session's quoting state. gen counts submissions so that a
// slow response from an earlier submit cannot overwrite a newer one.
type flow struct {
	gen uint64

	distanceKM float64
	weightKG   float64
	vehicle    domain.VehicleType
	urgency    domain.Urgency

	phase   Phase
	quote   *domain.Quote
	booking *domain.DeliveryBooking
	errMsg  string
}

func newFlow() *flow {
	return &flow{
		phase:   Editing,
		vehicle: domain.VehicleBike,
		urgency: domain.UrgencyNormal,
	}
}

// Service drives the quote-then-book flow. State lives in process memory
// keyed by session; a restart drops everyone back to an empty form, which
// matches how the dashboard treats a page reload.
type Service struct {
	api    backend.Client
	logger zerolog.Logger

	mu    sync.Mutex
	flows map[domain.SessionID]*flow
}

func NewService(api backend.Client, logger zerolog.Logger) *Service {
	return &Service{
		api:    api,
		logger: logger,
		flows:  make(map[domain.SessionID]*flow),
	}
}

// Get returns the current flow snapshot for a session, creating an empty
// Editing flow on first sight.
func (s *Service) Get(sid domain.SessionID) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.flow(sid))
}

// SubmitQuote records the form values and asks the backend for a price.
// Validation and pricing failures land in State.ErrorMessage; the only
// non-nil error is an authentication rejection, which the caller must
// treat as a dead session.
func (s *Service) SubmitQuote(ctx context.Context, sid domain.SessionID, token string, in SubmitInput) (State, error) {
	s.mu.Lock()
	f := s.flow(sid)
	f.distanceKM = in.DistanceKM
	f.weightKG = in.WeightKG
	f.vehicle = in.Vehicle
	f.urgency = in.Urgency
	f.quote = nil
	f.booking = nil
	f.phase = Editing

	if in.DistanceKM <= 0 || in.WeightKG <= 0 || !in.Vehicle.Valid() || !in.Urgency.Valid() {
		f.errMsg = quoteFailedMessage
		st := snapshot(f)
		s.mu.Unlock()
		return st, nil
	}
	f.errMsg = ""
	f.gen++
	gen := f.gen
	s.mu.Unlock()

	quote, err := s.api.CalculateQuote(ctx, token, domain.QuoteRequest{
		DistanceKM: in.DistanceKM,
		WeightKG:   in.WeightKG,
		Vehicle:    in.Vehicle,
		Urgency:    in.Urgency,
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	if f.gen != gen {
		// A newer submit raced past this one; its outcome wins.
		return snapshot(f), nil
	}
	if err != nil {
		if backend.IsUnauthorized(err) {
			return snapshot(f), err
		}
		s.logger.Warn().Err(err).Str("session", string(sid)).Msg("quote calculation failed")
		f.errMsg = quoteFailedMessage
		return snapshot(f), nil
	}

	q := quote
	f.quote = &q
	f.phase = QuoteReady
	return snapshot(f), nil
}

// ConfirmBooking books the delivery for the quote on screen. Only valid
// from QuoteReady; calling it in any other phase is a no-op snapshot.
func (s *Service) ConfirmBooking(ctx context.Context, sid domain.SessionID, token string) (State, error) {
	s.mu.Lock()
	f := s.flow(sid)
	if f.phase != QuoteReady || f.quote == nil {
		st := snapshot(f)
		s.mu.Unlock()
		return st, nil
	}
	f.errMsg = ""
	gen := f.gen
	quoteID := f.quote.ID
	s.mu.Unlock()

	booking, err := s.api.BookDelivery(ctx, token, quoteID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if f.gen != gen {
		return snapshot(f), nil
	}
	if err != nil {
		if backend.IsUnauthorized(err) {
			return snapshot(f), err
		}
		s.logger.Warn().Err(err).Str("session", string(sid)).Str("quote", string(quoteID)).Msg("booking failed")
		f.errMsg = bookingFailedMessage
		return snapshot(f), nil
	}

	b := booking
	f.booking = &b
	f.phase = Booked
	return snapshot(f), nil
}

// Recalculate abandons the current quote and reopens the form with the
// same values filled in.
func (s *Service) Recalculate(sid domain.SessionID) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := s.flow(sid)
	f.gen++
	f.phase = Editing
	f.quote = nil
	f.booking = nil
	f.errMsg = ""
	return snapshot(f)
}

// Dismiss closes the booking confirmation and hands back an empty form.
func (s *Service) Dismiss(sid domain.SessionID) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := s.flow(sid)
	gen := f.gen + 1
	*f = *newFlow()
	f.gen = gen // keep counting so in-flight responses stay stale
	return snapshot(f)
}

// Reset drops all flow state for a session. Called on logout.
func (s *Service) Reset(sid domain.SessionID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.flows, sid)
}

// flow returns the session's flow, creating it if needed. Caller holds mu.
func (s *Service) flow(sid domain.SessionID) *flow {
	f, ok := s.flows[sid]
	if !ok {
		f = newFlow()
		s.flows[sid] = f
	}
	return f
}

// snapshot copies a flow into a caller-owned State. Caller holds mu.
func snapshot(f *flow) State {
	st := State{
		Phase:        f.phase,
		DistanceKM:   f.distanceKM,
		WeightKG:     f.weightKG,
		Vehicle:      f.vehicle,
		Urgency:      f.urgency,
		ErrorMessage: f.errMsg,
	}
	if f.quote != nil {
		q := *f.quote
		st.Quote = &q
	}
	if f.booking != nil {
		b := *f.booking
		st.Booking = &b
	}
	return st
}
