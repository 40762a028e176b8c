// Package ta7wila is the Go client for the Ta7wila payment aggregation API.
package ta7wila

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client is the Ta7wila API client.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option is a function that configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(client *Client) {
		client.httpClient.Timeout = d
	}
}

// NewClient creates a new Ta7wila API client.
//
// Parameters:
//   - baseURL: The API base URL (e.g., "https://api.ta7wila.com")
//   - token: A bearer access token obtained from the auth endpoints
func NewClient(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Store is a merchant store as returned by the API. The detail endpoint
// inlines the registered destinations.
type Store struct {
	SID            string        `json:"sid"`
	Name           string        `json:"name"`
	Slug           string        `json:"slug"`
	PaymentOptions []string      `json:"payment_options"`
	Status         string        `json:"status"`
	Destinations   []Destination `json:"destinations"`
}

// Destination is a registered payout destination on a store.
type Destination struct {
	SID     string `json:"sid"`
	Channel string `json:"channel"`
	Value   string `json:"value"`
	Active  bool   `json:"active"`
}

// Transaction is a provider transaction matched to a claim.
type Transaction struct {
	Ref         string    `json:"ref"`
	Channel     string    `json:"channel"`
	SenderValue string    `json:"sender_value"`
	SenderName  string    `json:"sender_name"`
	Amount      string    `json:"amount"`
	Status      string    `json:"status"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// Verification is a payment claim awaiting or past review.
type Verification struct {
	Ref         string       `json:"ref"`
	Channel     string       `json:"channel"`
	SenderValue string       `json:"sender_value"`
	Amount      string       `json:"amount"`
	Status      string       `json:"status"`
	Transaction *Transaction `json:"transaction,omitempty"`
}

// ClaimResult is the outcome of submitting a payment claim.
type ClaimResult struct {
	VerificationRef string       `json:"verification_ref"`
	Status          string       `json:"status"`
	Matched         bool         `json:"matched"`
	Transaction     *Transaction `json:"transaction,omitempty"`
}

// GetStore retrieves a store with its enabled payment options.
func (c *Client) GetStore(ctx context.Context, storeSID string) (*Store, error) {
	u := fmt.Sprintf("%s/api/v1/stores/%s", c.baseURL, url.PathEscape(storeSID))

	var store Store
	if err := c.doRequest(ctx, http.MethodGet, u, nil, nil, &store); err != nil {
		return nil, fmt.Errorf("get store: %w", err)
	}
	return &store, nil
}

// ListDestinations retrieves the destinations registered on a store,
// optionally filtered by channel.
func (c *Client) ListDestinations(ctx context.Context, storeSID, channel string) ([]Destination, error) {
	u := fmt.Sprintf("%s/api/v1/stores/%s/destinations", c.baseURL, url.PathEscape(storeSID))
	if channel != "" {
		u += "?channel=" + url.QueryEscape(channel)
	}

	var destinations []Destination
	if err := c.doRequest(ctx, http.MethodGet, u, nil, nil, &destinations); err != nil {
		return nil, fmt.Errorf("list destinations: %w", err)
	}
	return destinations, nil
}

// CheckVerification re-runs matching for a pending claim and returns its
// current state, including the matched transaction when one exists.
func (c *Client) CheckVerification(ctx context.Context, ref string) (*Verification, error) {
	u := fmt.Sprintf("%s/api/v1/verifications/%s/check", c.baseURL, url.PathEscape(ref))

	var v Verification
	if err := c.doRequest(ctx, http.MethodGet, u, nil, nil, &v); err != nil {
		return nil, fmt.Errorf("check verification: %w", err)
	}
	return &v, nil
}

// DecideVerification records the reviewer decision on a matched claim.
// Decision must be "verified" or "rejected".
func (c *Client) DecideVerification(ctx context.Context, ref, decision string) (*Verification, error) {
	u := fmt.Sprintf("%s/api/v1/verifications/%s/decide", c.baseURL, url.PathEscape(ref))

	body := map[string]any{"decision": decision}

	var v Verification
	if err := c.doRequest(ctx, http.MethodPost, u, body, nil, &v); err != nil {
		return nil, fmt.Errorf("decide verification: %w", err)
	}
	return &v, nil
}

// ListVerifications retrieves the paginated review queue.
func (c *Client) ListVerifications(ctx context.Context, page int) ([]Verification, error) {
	u := fmt.Sprintf("%s/api/v1/verifications?page=%s", c.baseURL, url.QueryEscape(strconv.Itoa(page)))

	var list struct {
		Items []Verification `json:"items"`
	}
	if err := c.doRequest(ctx, http.MethodGet, u, nil, nil, &list); err != nil {
		return nil, fmt.Errorf("list verifications: %w", err)
	}
	return list.Items, nil
}

// doRequest performs an HTTP request and decodes the response envelope.
func (c *Client) doRequest(ctx context.Context, method, url string, body any, headers map[string]string, result any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &RequestError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    DecodeErrorMessage(respBody),
			Body:       respBody,
		}
	}

	if result == nil {
		return nil
	}

	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	if !envelope.Success {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    DecodeErrorMessage(respBody),
			Body:       respBody,
		}
	}

	if len(envelope.Data) == 0 {
		return nil
	}

	if err := json.Unmarshal(envelope.Data, result); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}

	return nil
}
