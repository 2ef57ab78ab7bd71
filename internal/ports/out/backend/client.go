package backend

import (
	"context"

	"github.com/revquotes/console/internal/domain"
)

// Credentials is the login payload for the backend's /auth/login endpoint.
type Credentials struct {
	Email    string
	Password string
}

// Registration is the payload for the backend's /auth/register endpoint.
type Registration struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// Client is the typed surface of the RevQuotes backend API. Every call is
// a single attempt: no retries, no caching. Calls that operate on behalf
// of a user take the raw bearer token; login/register never send one.
type Client interface {
	// Login exchanges credentials for a bearer token. The backend returns
	// only the token; the profile comes from FetchProfile.
	Login(ctx context.Context, creds Credentials) (string, error)

	Register(ctx context.Context, reg Registration) error

	FetchProfile(ctx context.Context, token string) (domain.UserProfile, error)

	CalculateQuote(ctx context.Context, token string, req domain.QuoteRequest) (domain.Quote, error)

	BookDelivery(ctx context.Context, token string, quoteID domain.QuoteID) (domain.DeliveryBooking, error)
}
