package quoteflow

import "github.com/revquotes/console/internal/domain"

// Phase is where a session's quoting flow currently stands.
type Phase string

const (
	// Editing: the form is open, no accepted quote. ErrorMessage may be set.
	Editing Phase = "editing"
	// QuoteReady: a price came back and is on screen awaiting confirmation.
	QuoteReady Phase = "quote_ready"
	// Booked: the delivery is booked and the confirmation overlay is up.
	Booked Phase = "booked"
)

// SubmitInput is the parsed quote form.
type SubmitInput struct {
	DistanceKM float64
	WeightKG   float64
	Vehicle    domain.VehicleType
	Urgency    domain.Urgency
}

// State is a snapshot of one session's flow, safe for the caller to keep.
type State struct {
	Phase Phase

	DistanceKM float64
	WeightKG   float64
	Vehicle    domain.VehicleType
	Urgency    domain.Urgency

	Quote   *domain.Quote
	Booking *domain.DeliveryBooking

	// ErrorMessage is the user-facing failure line for the last submit or
	// booking attempt; empty when the last attempt succeeded.
	ErrorMessage string
}
