// Package relay forwards website form submissions to GoHighLevel inbound
// webhooks.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"property-booking/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Form describes one relay target and how its payload is reshaped.
type Form struct {
	Name   string
	URL    string
	Source string
	Tag    string
}

const (
	FormContact        = "contact"
	FormLandlordLead   = "landlord_lead"
	FormContractorLead = "contractor_lead"
)

// Forms builds the three relay targets from config.
func Forms(cfg utils.GHLConfig) map[string]Form {
	return map[string]Form{
		FormContact: {
			Name:   FormContact,
			URL:    cfg.ContactURL,
			Source: "Website Contact Form",
		},
		FormLandlordLead: {
			Name:   FormLandlordLead,
			URL:    cfg.LandlordLeadURL,
			Source: "Landlord Signup",
			Tag:    "landlord",
		},
		FormContractorLead: {
			Name:   FormContractorLead,
			URL:    cfg.ContractorLeadURL,
			Source: "Contractor Signup",
			Tag:    "contractor",
		},
	}
}

// Reshape returns a copy of in with GoHighLevel contact fields filled in:
// a single "name" is split into first_name/last_name, "source" defaults to
// the form source and the form tag is appended to "tags".
func (f Form) Reshape(in map[string]any) map[string]any {
	out := make(map[string]any, len(in)+3)
	for k, v := range in {
		out[k] = v
	}

	if name, ok := in["name"].(string); ok {
		if _, has := in["first_name"]; !has {
			first, last, _ := strings.Cut(strings.TrimSpace(name), " ")
			out["first_name"] = first
			out["last_name"] = strings.TrimSpace(last)
		}
	}

	if _, has := in["source"]; !has && f.Source != "" {
		out["source"] = f.Source
	}

	if f.Tag != "" {
		var tags []any
		if existing, ok := in["tags"].([]any); ok {
			tags = append(tags, existing...)
		}
		out["tags"] = append(tags, f.Tag)
	}

	return out
}

// Client posts JSON payloads. It never retries.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *zap.Logger
}

func NewClient(cfg utils.GHLConfig, log *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RatePerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), max(cfg.Burst, 1))
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		limiter:    limiter,
		log:        log.With(zap.String("client", "ghl")),
	}
}

// Forward posts payload to url and fails on transport errors and non-2xx
// responses.
func (c *Client) Forward(ctx context.Context, url string, payload any) error {
	if url == "" {
		return fmt.Errorf("relay url is not configured")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("relay rate limit: %w", err)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode relay payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("build relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post to relay: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	c.log.Debug("Relay response",
		zap.Int("status", resp.StatusCode),
		zap.ByteString("body", body),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("relay responded with http %d", resp.StatusCode)
	}

	return nil
}
