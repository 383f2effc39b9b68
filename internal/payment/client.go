// Package payment talks to the hosted checkout provider.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"property-booking/pkg/utils"
)

type CheckoutRequest struct {
	InvoiceID   string `json:"invoice_id"`
	BookingID   string `json:"booking_id"`
	AmountCents int64  `json:"amount"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
	SuccessURL  string `json:"success_url,omitempty"`
	CancelURL   string `json:"cancel_url,omitempty"`
}

// CheckoutSession is the provider's hosted payment page.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type Gateway interface {
	CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
}

// Client is a JSON-over-HTTP Gateway.
type Client struct {
	baseURL    string
	apiKey     string
	currency   string
	successURL string
	cancelURL  string
	httpClient *http.Client
}

func NewClient(cfg utils.PaymentConfig) *Client {
	return &Client{
		baseURL:    cfg.CheckoutURL,
		apiKey:     cfg.APIKey,
		currency:   cfg.Currency,
		successURL: cfg.SuccessURL,
		cancelURL:  cfg.CancelURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// ToCents converts a display amount to minor units.
func ToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func (c *Client) CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("payment provider is not configured")
	}
	if req.Currency == "" {
		req.Currency = c.currency
	}
	if req.SuccessURL == "" {
		req.SuccessURL = c.successURL
	}
	if req.CancelURL == "" {
		req.CancelURL = c.cancelURL
	}

	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode checkout request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("build checkout request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("create checkout: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("create checkout: http %d", resp.StatusCode)
	}

	var session CheckoutSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("decode checkout session: %w", err)
	}
	if session.URL == "" {
		return nil, fmt.Errorf("checkout session %s has no url", session.ID)
	}

	return &session, nil
}
