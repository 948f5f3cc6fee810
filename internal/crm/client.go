// Package crm pushes prioritized leads to a CRM inbound webhook.
package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cloud-savings/internal/leads"
)

const defaultSource = "cloud-savings"

// Client posts leads as JSON to a webhook such as a HubSpot or Salesforce inbound endpoint.
type Client struct {
	WebhookURL string
	APIKey     string
	Source     string
	HTTPClient *http.Client
	now        func() time.Time
}

// NewClient constructs a Client with a 10s HTTP timeout.
func NewClient(webhookURL, apiKey string, opts ...func(*Client)) *Client {
	c := &Client{
		WebhookURL: webhookURL,
		APIKey:     apiKey,
		Source:     defaultSource,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) func(*Client) {
	return func(c *Client) {
		if hc != nil {
			c.HTTPClient = hc
		}
	}
}

// WithTimeout sets the HTTP timeout.
func WithTimeout(d time.Duration) func(*Client) {
	return func(c *Client) {
		if d > 0 {
			c.HTTPClient.Timeout = d
		}
	}
}

// WithSource overrides the source tag sent with every batch.
func WithSource(source string) func(*Client) {
	return func(c *Client) {
		if strings.TrimSpace(source) != "" {
			c.Source = source
		}
	}
}

type payload struct {
	Source string        `json:"source"`
	SentAt time.Time     `json:"sentAt"`
	Leads  []payloadLead `json:"leads"`
}

type payloadLead struct {
	Rank           int     `json:"rank"`
	CompanyName    string  `json:"companyName"`
	Industry       string  `json:"industry"`
	CloudProvider  string  `json:"cloudProvider"`
	CompanySize    int     `json:"companySize"`
	EstimatedSpend float64 `json:"estimatedSpendMUSD"`
	GrowthRate     int     `json:"growthRatePct"`
	ChurnRisk      int     `json:"churnRiskPct"`
	LeadScore      float64 `json:"leadScore"`
}

// SendLeads posts the batch in the given order. Any 2xx counts as accepted.
func (c *Client) SendLeads(ctx context.Context, batch []leads.Record) error {
	if c == nil {
		return errors.New("crm client is nil")
	}
	if strings.TrimSpace(c.WebhookURL) == "" {
		return errors.New("crm webhook url is not set")
	}

	body := payload{Source: c.Source, SentAt: c.now().UTC(), Leads: make([]payloadLead, 0, len(batch))}
	for i, r := range batch {
		body.Leads = append(body.Leads, payloadLead{
			Rank:           i + 1,
			CompanyName:    r.CompanyName,
			Industry:       string(r.Industry),
			CloudProvider:  string(r.CloudProvider),
			CompanySize:    r.CompanySize,
			EstimatedSpend: r.EstimatedSpend,
			GrowthRate:     r.GrowthRate,
			ChurnRisk:      r.ChurnRisk,
			LeadScore:      r.LeadScore,
		})
	}
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.WebhookURL, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("crm webhook non-2xx: %d: %s", resp.StatusCode, strings.TrimSpace(string(excerpt)))
	}
	return nil
}
