package backendhttp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revquotes/console/internal/domain"
	"github.com/revquotes/console/internal/ports/out/backend"
)

func TestClient_Login_SendsNoBearer(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ada@example.com", body["email"])
		assert.Equal(t, "hunter2", body["password"])

		_ = json.NewEncoder(w).Encode(map[string]string{"token": "tok-123"})
	}))
	defer srv.Close()

	c := New(srv.URL, 2*time.Second)
	token, err := c.Login(context.Background(), backend.Credentials{Email: "ada@example.com", Password: "hunter2"})
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)
}

func TestClient_FetchProfile_AttachesBearerAndDecodesPhone(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/me", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"id":"u-1","email":"ada@example.com","first_name":"Ada","last_name":"Obi","phone":"+234"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, 2*time.Second)
	profile, err := c.FetchProfile(context.Background(), "tok-123")
	require.NoError(t, err)
	assert.Equal(t, "u-1", profile.ID)
	assert.Equal(t, "ada@example.com", profile.Email)
	require.NotNil(t, profile.Phone)
	assert.Equal(t, "+234", *profile.Phone)
}

func TestClient_FetchProfile_OmittedPhoneStaysNil(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"u-1","email":"ada@example.com","first_name":"Ada","last_name":"Obi"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, 2*time.Second)
	profile, err := c.FetchProfile(context.Background(), "tok-123")
	require.NoError(t, err)
	assert.Nil(t, profile.Phone)
}

func TestClient_CalculateQuote_RoundTrip(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/quotes/calculate", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 12.5, body["distance_km"])
		assert.Equal(t, 5.0, body["weight_kg"])
		assert.Equal(t, "bike", body["vehicle_type"])
		assert.Equal(t, "normal", body["urgency"])
		assert.Equal(t, 0.0, body["weight_vol"])

		_, _ = w.Write([]byte(`{"quote_id":"q1","price":2500,"currency":"NGN"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, 2*time.Second)
	quote, err := c.CalculateQuote(context.Background(), "tok-123", domain.QuoteRequest{
		DistanceKM: 12.5,
		WeightKG:   5.0,
		Vehicle:    domain.VehicleBike,
		Urgency:    domain.UrgencyNormal,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteID("q1"), quote.ID)
	assert.Equal(t, 2500.0, quote.Price)
	assert.Equal(t, "NGN", quote.Currency)
}

func TestClient_BookDelivery_RoundTrip(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/deliveries", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "q1", body["quote_id"])

		_, _ = w.Write([]byte(`{"delivery_id":"d1","tracking_code":"TRK123","status":"booked","message":"ok"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, 2*time.Second)
	booking, err := c.BookDelivery(context.Background(), "tok-123", domain.QuoteID("q1"))
	require.NoError(t, err)
	assert.Equal(t, domain.DeliveryID("d1"), booking.ID)
	assert.Equal(t, "TRK123", booking.TrackingCode)
	assert.Equal(t, "booked", booking.Status)
	assert.Equal(t, "ok", booking.Message)
}

func TestClient_ServerErrorBecomesAPIError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"token expired"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, 2*time.Second)
	_, err := c.FetchProfile(context.Background(), "stale")
	require.Error(t, err)

	var apiErr *backend.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "token expired", apiErr.Message)
	assert.True(t, apiErr.Unauthorized())
	assert.True(t, backend.IsUnauthorized(err))
}

func TestClient_TransportFailureIsUnreachable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := New(srv.URL, time.Second)
	_, err := c.FetchProfile(context.Background(), "tok")
	require.Error(t, err)
	assert.True(t, errors.Is(err, backend.ErrUnreachable))

	var apiErr *backend.APIError
	assert.False(t, errors.As(err, &apiErr), "transport failure must not look like a server error")
}
