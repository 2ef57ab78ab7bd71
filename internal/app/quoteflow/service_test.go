package quoteflow

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/revquotes/console/internal/adapters/fakebackend"
	"github.com/revquotes/console/internal/domain"
	"github.com/revquotes/console/internal/ports/out/backend"
)

const testToken = "tok-123"

func submit(distance, weight float64) SubmitInput {
	return SubmitInput{
		DistanceKM: distance,
		WeightKG:   weight,
		Vehicle:    domain.VehicleBike,
		Urgency:    domain.UrgencyNormal,
	}
}

func TestService_SubmitQuote_Success(t *testing.T) {
	t.Parallel()

	api := &fakebackend.Client{
		CalculateQuoteFn: func(_ context.Context, token string, req domain.QuoteRequest) (domain.Quote, error) {
			if token != testToken {
				t.Fatalf("token=%q", token)
			}
			if req.DistanceKM != 12.5 || req.WeightKG != 5.0 || req.Vehicle != domain.VehicleBike || req.Urgency != domain.UrgencyNormal {
				t.Fatalf("unexpected request: %+v", req)
			}
			return domain.Quote{ID: "q1", Price: 2500, Currency: "NGN"}, nil
		},
	}
	svc := NewService(api, zerolog.Nop())
	sid := domain.SessionID("s1")

	st, err := svc.SubmitQuote(context.Background(), sid, testToken, submit(12.5, 5.0))
	if err != nil {
		t.Fatalf("SubmitQuote err=%v", err)
	}
	if st.Phase != QuoteReady {
		t.Fatalf("phase=%v, want quote_ready", st.Phase)
	}
	if st.Quote == nil || st.Quote.ID != "q1" || st.Quote.Price != 2500 || st.Quote.Currency != "NGN" {
		t.Fatalf("quote=%+v", st.Quote)
	}
	if st.ErrorMessage != "" {
		t.Fatalf("errorMessage=%q, want empty", st.ErrorMessage)
	}
	if got := domain.FormatPrice(st.Quote.Currency, st.Quote.Price); got != "NGN 2,500" {
		t.Fatalf("display price=%q, want NGN 2,500", got)
	}
}

func TestService_SubmitQuote_RejectsBadInputsWithoutBackendCall(t *testing.T) {
	t.Parallel()

	calls := 0
	api := &fakebackend.Client{
		CalculateQuoteFn: func(context.Context, string, domain.QuoteRequest) (domain.Quote, error) {
			calls++
			return domain.Quote{}, nil
		},
	}
	svc := NewService(api, zerolog.Nop())

	st, err := svc.SubmitQuote(context.Background(), "s1", testToken, submit(0, 5.0))
	if err != nil {
		t.Fatalf("SubmitQuote err=%v", err)
	}
	if calls != 0 {
		t.Fatalf("backend called for invalid inputs")
	}
	if st.Phase != Editing || st.ErrorMessage != "Failed to calculate price. Please check your inputs." {
		t.Fatalf("state=%+v", st)
	}
}

func TestService_SubmitQuote_BackendFailureStaysEditing(t *testing.T) {
	t.Parallel()

	api := &fakebackend.Client{
		CalculateQuoteFn: func(context.Context, string, domain.QuoteRequest) (domain.Quote, error) {
			return domain.Quote{}, &backend.APIError{StatusCode: 422, Message: "weight out of range"}
		},
	}
	svc := NewService(api, zerolog.Nop())

	st, err := svc.SubmitQuote(context.Background(), "s1", testToken, submit(12.5, 5000))
	if err != nil {
		t.Fatalf("SubmitQuote err=%v", err)
	}
	if st.Phase != Editing {
		t.Fatalf("phase=%v, want editing", st.Phase)
	}
	if st.Quote != nil {
		t.Fatalf("quote must be nil after failure, got %+v", st.Quote)
	}
	if st.ErrorMessage != "Failed to calculate price. Please check your inputs." {
		t.Fatalf("errorMessage=%q", st.ErrorMessage)
	}
	if st.DistanceKM != 12.5 || st.WeightKG != 5000 {
		t.Fatalf("form values must survive the failure: %+v", st)
	}
}

func TestService_SubmitQuote_UnauthorizedBubblesUp(t *testing.T) {
	t.Parallel()

	api := &fakebackend.Client{
		CalculateQuoteFn: func(context.Context, string, domain.QuoteRequest) (domain.Quote, error) {
			return domain.Quote{}, &backend.APIError{StatusCode: 401, Message: "token expired"}
		},
	}
	svc := NewService(api, zerolog.Nop())

	_, err := svc.SubmitQuote(context.Background(), "s1", testToken, submit(12.5, 5.0))
	if !backend.IsUnauthorized(err) {
		t.Fatalf("err=%v, want unauthorized to bubble up", err)
	}
}

func TestService_ConfirmBooking_FromQuoteReady(t *testing.T) {
	t.Parallel()

	api := &fakebackend.Client{
		CalculateQuoteFn: func(context.Context, string, domain.QuoteRequest) (domain.Quote, error) {
			return domain.Quote{ID: "q1", Price: 2500, Currency: "NGN"}, nil
		},
		BookDeliveryFn: func(_ context.Context, token string, quoteID domain.QuoteID) (domain.DeliveryBooking, error) {
			if quoteID != "q1" {
				t.Fatalf("quoteID=%q", quoteID)
			}
			return domain.DeliveryBooking{ID: "d1", TrackingCode: "TRK123", Status: "booked", Message: "ok"}, nil
		},
	}
	svc := NewService(api, zerolog.Nop())
	sid := domain.SessionID("s1")
	ctx := context.Background()

	if _, err := svc.SubmitQuote(ctx, sid, testToken, submit(12.5, 5.0)); err != nil {
		t.Fatalf("SubmitQuote err=%v", err)
	}
	st, err := svc.ConfirmBooking(ctx, sid, testToken)
	if err != nil {
		t.Fatalf("ConfirmBooking err=%v", err)
	}
	if st.Phase != Booked {
		t.Fatalf("phase=%v, want booked", st.Phase)
	}
	if st.Booking == nil || st.Booking.ID != "d1" || st.Booking.TrackingCode != "TRK123" {
		t.Fatalf("booking=%+v", st.Booking)
	}
	if st.Quote == nil {
		t.Fatalf("quote must stay visible behind the confirmation")
	}
}

func TestService_ConfirmBooking_WithoutQuoteIsNoop(t *testing.T) {
	t.Parallel()

	calls := 0
	api := &fakebackend.Client{
		BookDeliveryFn: func(context.Context, string, domain.QuoteID) (domain.DeliveryBooking, error) {
			calls++
			return domain.DeliveryBooking{}, nil
		},
	}
	svc := NewService(api, zerolog.Nop())

	st, err := svc.ConfirmBooking(context.Background(), "s1", testToken)
	if err != nil {
		t.Fatalf("ConfirmBooking err=%v", err)
	}
	if calls != 0 {
		t.Fatalf("booking attempted without an accepted quote")
	}
	if st.Phase != Editing {
		t.Fatalf("phase=%v, want editing", st.Phase)
	}
}

func TestService_ConfirmBooking_FailureKeepsQuote(t *testing.T) {
	t.Parallel()

	api := &fakebackend.Client{
		CalculateQuoteFn: func(context.Context, string, domain.QuoteRequest) (domain.Quote, error) {
			return domain.Quote{ID: "q1", Price: 2500, Currency: "NGN"}, nil
		},
		BookDeliveryFn: func(context.Context, string, domain.QuoteID) (domain.DeliveryBooking, error) {
			return domain.DeliveryBooking{}, &backend.APIError{StatusCode: 409, Message: "quote expired"}
		},
	}
	svc := NewService(api, zerolog.Nop())
	sid := domain.SessionID("s1")
	ctx := context.Background()

	if _, err := svc.SubmitQuote(ctx, sid, testToken, submit(12.5, 5.0)); err != nil {
		t.Fatalf("SubmitQuote err=%v", err)
	}
	st, err := svc.ConfirmBooking(ctx, sid, testToken)
	if err != nil {
		t.Fatalf("ConfirmBooking err=%v", err)
	}
	if st.Phase != QuoteReady || st.Quote == nil {
		t.Fatalf("quote must survive a failed booking: %+v", st)
	}
	if st.ErrorMessage != "Failed to book delivery. Please try again." {
		t.Fatalf("errorMessage=%q", st.ErrorMessage)
	}
}

func TestService_Recalculate_KeepsFormValues(t *testing.T) {
	t.Parallel()

	api := &fakebackend.Client{
		CalculateQuoteFn: func(context.Context, string, domain.QuoteRequest) (domain.Quote, error) {
			return domain.Quote{ID: "q1", Price: 2500, Currency: "NGN"}, nil
		},
	}
	svc := NewService(api, zerolog.Nop())
	sid := domain.SessionID("s1")

	if _, err := svc.SubmitQuote(context.Background(), sid, testToken, submit(12.5, 5.0)); err != nil {
		t.Fatalf("SubmitQuote err=%v", err)
	}
	st := svc.Recalculate(sid)
	if st.Phase != Editing || st.Quote != nil {
		t.Fatalf("state=%+v, want editing without a quote", st)
	}
	if st.DistanceKM != 12.5 || st.WeightKG != 5.0 {
		t.Fatalf("form values must survive recalculate: %+v", st)
	}
}

func TestService_Dismiss_ResetsForm(t *testing.T) {
	t.Parallel()

	api := &fakebackend.Client{
		CalculateQuoteFn: func(context.Context, string, domain.QuoteRequest) (domain.Quote, error) {
			return domain.Quote{ID: "q1", Price: 2500, Currency: "NGN"}, nil
		},
		BookDeliveryFn: func(context.Context, string, domain.QuoteID) (domain.DeliveryBooking, error) {
			return domain.DeliveryBooking{ID: "d1", TrackingCode: "TRK123", Status: "booked"}, nil
		},
	}
	svc := NewService(api, zerolog.Nop())
	sid := domain.SessionID("s1")
	ctx := context.Background()

	if _, err := svc.SubmitQuote(ctx, sid, testToken, submit(12.5, 5.0)); err != nil {
		t.Fatalf("SubmitQuote err=%v", err)
	}
	if _, err := svc.ConfirmBooking(ctx, sid, testToken); err != nil {
		t.Fatalf("ConfirmBooking err=%v", err)
	}

	st := svc.Dismiss(sid)
	if st.Phase != Editing || st.Quote != nil || st.Booking != nil {
		t.Fatalf("dismiss must clear quote and booking: %+v", st)
	}
	if st.DistanceKM != 0 || st.WeightKG != 0 {
		t.Fatalf("dismiss must empty the form: %+v", st)
	}
	if st.Vehicle != domain.VehicleBike || st.Urgency != domain.UrgencyNormal {
		t.Fatalf("dismiss must restore defaults: %+v", st)
	}
}

func TestService_SubmitQuote_StaleResponseDiscarded(t *testing.T) {
	t.Parallel()

	var calls int32
	release := make(chan struct{})
	api := &fakebackend.Client{
		CalculateQuoteFn: func(context.Context, string, domain.QuoteRequest) (domain.Quote, error) {
			if atomic.AddInt32(&calls, 1) == 1 {
				<-release
				return domain.Quote{ID: "stale", Price: 1, Currency: "NGN"}, nil
			}
			return domain.Quote{ID: "fresh", Price: 2500, Currency: "NGN"}, nil
		},
	}
	svc := NewService(api, zerolog.Nop())
	sid := domain.SessionID("s1")
	ctx := context.Background()

	firstDone := make(chan State, 1)
	go func() {
		st, _ := svc.SubmitQuote(ctx, sid, testToken, submit(1, 1))
		firstDone <- st
	}()

	// Wait for the first request to reach the backend before racing it.
	for atomic.LoadInt32(&calls) == 0 {
		time.Sleep(time.Millisecond)
	}

	second, err := svc.SubmitQuote(ctx, sid, testToken, submit(12.5, 5.0))
	if err != nil {
		t.Fatalf("SubmitQuote err=%v", err)
	}
	if second.Quote == nil || second.Quote.ID != "fresh" {
		t.Fatalf("second submit quote=%+v", second.Quote)
	}

	close(release)
	first := <-firstDone

	if first.Quote == nil || first.Quote.ID != "fresh" {
		t.Fatalf("late response must not overwrite the newer quote, got %+v", first.Quote)
	}
	if st := svc.Get(sid); st.Quote == nil || st.Quote.ID != "fresh" || st.DistanceKM != 12.5 {
		t.Fatalf("flow state corrupted by stale response: %+v", st)
	}
}
