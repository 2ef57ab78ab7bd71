package backendhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/oapi-codegen/nullable"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/revquotes/console/internal/domain"
	"github.com/revquotes/console/internal/ports/out/backend"
)

// Client is the HTTP implementation of backend.Client. One request per
// call, no retries, no caching; the bearer token travels on every call
// except login/register.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type registerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// profileDTO is the /auth/me response shape. Phone is tri-state: the
// backend may omit it, null it, or set it.
type profileDTO struct {
	ID        string                    `json:"id"`
	Email     openapi_types.Email       `json:"email"`
	FirstName string                    `json:"first_name"`
	LastName  string                    `json:"last_name"`
	Phone     nullable.Nullable[string] `json:"phone,omitempty"`
}

type quoteRequestDTO struct {
	DistanceKM  float64 `json:"distance_km"`
	WeightKG    float64 `json:"weight_kg"`
	VehicleType string  `json:"vehicle_type"`
	Urgency     string  `json:"urgency"`
	WeightVol   float64 `json:"weight_vol"`
}

type quoteDTO struct {
	QuoteID  string         `json:"quote_id"`
	Price    float64        `json:"price"`
	Currency string         `json:"currency"`
	Details  map[string]any `json:"details,omitempty"`
}

type bookingRequestDTO struct {
	QuoteID string `json:"quote_id"`
}

type bookingDTO struct {
	DeliveryID   string `json:"delivery_id"`
	TrackingCode string `json:"tracking_code"`
	Status       string `json:"status"`
	Message      string `json:"message"`
}

type errorBody struct {
	Error string `json:"error"`
}

func (c *Client) Login(ctx context.Context, creds backend.Credentials) (string, error) {
	var out loginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", "", loginRequest{
		Email:    creds.Email,
		Password: creds.Password,
	}, &out)
	if err != nil {
		return "", err
	}
	return out.Token, nil
}

func (c *Client) Register(ctx context.Context, reg backend.Registration) error {
	return c.do(ctx, http.MethodPost, "/auth/register", "", registerRequest{
		FirstName: reg.FirstName,
		LastName:  reg.LastName,
		Email:     reg.Email,
		Password:  reg.Password,
	}, nil)
}

func (c *Client) FetchProfile(ctx context.Context, token string) (domain.UserProfile, error) {
	var dto profileDTO
	if err := c.do(ctx, http.MethodGet, "/auth/me", token, nil, &dto); err != nil {
		return domain.UserProfile{}, err
	}
	profile := domain.UserProfile{
		ID:        dto.ID,
		Email:     string(dto.Email),
		FirstName: dto.FirstName,
		LastName:  dto.LastName,
	}
	if v, err := dto.Phone.Get(); err == nil {
		profile.Phone = &v
	}
	return profile, nil
}

func (c *Client) CalculateQuote(ctx context.Context, token string, req domain.QuoteRequest) (domain.Quote, error) {
	var dto quoteDTO
	err := c.do(ctx, http.MethodPost, "/api/v1/quotes/calculate", token, quoteRequestDTO{
		DistanceKM:  req.DistanceKM,
		WeightKG:    req.WeightKG,
		VehicleType: string(req.Vehicle),
		Urgency:     string(req.Urgency),
		WeightVol:   req.WeightVol,
	}, &dto)
	if err != nil {
		return domain.Quote{}, err
	}
	return domain.Quote{
		ID:       domain.QuoteID(dto.QuoteID),
		Price:    dto.Price,
		Currency: dto.Currency,
		Details:  dto.Details,
	}, nil
}

func (c *Client) BookDelivery(ctx context.Context, token string, quoteID domain.QuoteID) (domain.DeliveryBooking, error) {
	var dto bookingDTO
	err := c.do(ctx, http.MethodPost, "/api/v1/deliveries", token, bookingRequestDTO{
		QuoteID: string(quoteID),
	}, &dto)
	if err != nil {
		return domain.DeliveryBooking{}, err
	}
	return domain.DeliveryBooking{
		ID:           domain.DeliveryID(dto.DeliveryID),
		TrackingCode: dto.TrackingCode,
		Status:       dto.Status,
		Message:      dto.Message,
	}, nil
}

// do issues one request. A non-2xx response becomes *backend.APIError;
// transport failures wrap backend.ErrUnreachable.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reqBody *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(b)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", backend.ErrUnreachable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &backend.APIError{StatusCode: resp.StatusCode}
		var eb errorBody
		if err := json.NewDecoder(resp.Body).Decode(&eb); err == nil {
			apiErr.Message = eb.Error
		}
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response body: %w", err)
		}
	}
	return nil
}
