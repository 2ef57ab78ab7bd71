// Package fakebackend is a scriptable backend.Client for tests.
package fakebackend

import (
	"context"

	"github.com/revquotes/console/internal/domain"
	"github.com/revquotes/console/internal/ports/out/backend"
)

// Client implements backend.Client with overridable function fields.
// Unset fields succeed with zero values.
type Client struct {
	LoginFn          func(ctx context.Context, creds backend.Credentials) (string, error)
	RegisterFn       func(ctx context.Context, reg backend.Registration) error
	FetchProfileFn   func(ctx context.Context, token string) (domain.UserProfile, error)
	CalculateQuoteFn func(ctx context.Context, token string, req domain.QuoteRequest) (domain.Quote, error)
	BookDeliveryFn   func(ctx context.Context, token string, quoteID domain.QuoteID) (domain.DeliveryBooking, error)
}

var _ backend.Client = (*Client)(nil)

func (c *Client) Login(ctx context.Context, creds backend.Credentials) (string, error) {
	if c.LoginFn != nil {
		return c.LoginFn(ctx, creds)
	}
	return "fake-token", nil
}

func (c *Client) Register(ctx context.Context, reg backend.Registration) error {
	if c.RegisterFn != nil {
		return c.RegisterFn(ctx, reg)
	}
	return nil
}

func (c *Client) FetchProfile(ctx context.Context, token string) (domain.UserProfile, error) {
	if c.FetchProfileFn != nil {
		return c.FetchProfileFn(ctx, token)
	}
	return domain.UserProfile{}, nil
}

func (c *Client) CalculateQuote(ctx context.Context, token string, req domain.QuoteRequest) (domain.Quote, error) {
	if c.CalculateQuoteFn != nil {
		return c.CalculateQuoteFn(ctx, token, req)
	}
	return domain.Quote{}, nil
}

func (c *Client) BookDelivery(ctx context.Context, token string, quoteID domain.QuoteID) (domain.DeliveryBooking, error) {
	if c.BookDeliveryFn != nil {
		return c.BookDeliveryFn(ctx, token, quoteID)
	}
	return domain.DeliveryBooking{}, nil
}
