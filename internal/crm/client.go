package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"lendingleads_backend/platform/config"
	"lendingleads_backend/platform/logger"
)

const clientTimeout = 15 * time.Second

// Contact is the CRM contact upsert payload.
type Contact struct {
	FirstName    string            `json:"firstName"`
	Email        string            `json:"email"`
	Phone        string            `json:"phone,omitempty"`
	CompanyName  string            `json:"companyName,omitempty"`
	City         string            `json:"city,omitempty"`
	State        string            `json:"state,omitempty"`
	PostalCode   string            `json:"postalCode,omitempty"`
	LocationID   string            `json:"locationId"`
	Tags         []string          `json:"tags,omitempty"`
	CustomFields map[string]string `json:"customFields,omitempty"`
}

// Opportunity is the CRM pipeline entry payload.
type Opportunity struct {
	ContactID     string `json:"contactId"`
	LocationID    string `json:"locationId"`
	Name          string `json:"name"`
	MonetaryValue int    `json:"monetaryValue"`
	Status        string `json:"status"`
	Priority      string `json:"priority,omitempty"`
}

// Client talks to the CRM REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	locationID string
	log        *logger.Logger
}

// NewClient creates a CRM API client. Returns nil when the CRM is not
// configured; callers must treat a nil client as sync-disabled.
func NewClient(cfg config.CRMConfig, log *logger.Logger) *Client {
	if !cfg.IsCRMEnabled() {
		return nil
	}
	return &Client{
		httpClient: &http.Client{Timeout: clientTimeout},
		baseURL:    cfg.GetCRMBaseURL(),
		apiKey:     cfg.GetCRMAPIKey(),
		locationID: cfg.GetCRMLocationID(),
		log:        log,
	}
}

// UpsertContact creates or updates the contact and returns the CRM contact ID.
func (c *Client) UpsertContact(ctx context.Context, contact Contact) (string, error) {
	contact.LocationID = c.locationID

	var response struct {
		Contact struct {
			ID string `json:"id"`
		} `json:"contact"`
	}
	if err := c.post(ctx, "/contacts/upsert", contact, &response); err != nil {
		return "", fmt.Errorf("upsert CRM contact: %w", err)
	}
	return response.Contact.ID, nil
}

// CreateOpportunity adds the lead to the sales pipeline.
func (c *Client) CreateOpportunity(ctx context.Context, opportunity Opportunity) error {
	opportunity.LocationID = c.locationID

	if err := c.post(ctx, "/opportunities/", opportunity, nil); err != nil {
		return fmt.Errorf("create CRM opportunity: %w", err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.WebhookDelivery("crm"+path, 0, err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.WebhookDelivery("crm"+path, resp.StatusCode, nil)
		return fmt.Errorf("crm returned status %d", resp.StatusCode)
	}
	c.log.WebhookDelivery("crm"+path, resp.StatusCode, nil)

	if out == nil {
		return nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
