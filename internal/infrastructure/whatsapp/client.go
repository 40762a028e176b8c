// Package whatsapp talks to the local WhatsApp bridge process that stores
// send sessions. The dashboard never reaches the bridge directly; the API
// proxies status, QR and messaging through this client.
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// SessionState reported by the bridge.
type SessionState string

const (
	StateDisconnected SessionState = "disconnected"
	StateWaitingScan  SessionState = "waiting_scan"
	StateConnected    SessionState = "connected"
)

// Status is a bridge session snapshot.
type Status struct {
	State       SessionState `json:"state"`
	QRCode      string       `json:"qr_code,omitempty"`
	QRIssuedAt  *time.Time   `json:"qr_issued_at,omitempty"`
	PhoneNumber string       `json:"phone_number,omitempty"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type ClientOption func(*Client)

func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetStatus fetches the current session state, including the active QR code
// while the session is waiting for a scan.
func (c *Client) GetStatus(ctx context.Context) (*Status, error) {
	var status Status
	if err := c.doRequest(ctx, http.MethodGet, "/session/status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// StartSession asks the bridge to begin a login session. The bridge responds
// with a QR code for the merchant to scan.
func (c *Client) StartSession(ctx context.Context) (*Status, error) {
	var status Status
	if err := c.doRequest(ctx, http.MethodPost, "/session/start", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// StopSession logs the bridge session out.
func (c *Client) StopSession(ctx context.Context) error {
	return c.doRequest(ctx, http.MethodPost, "/session/stop", nil, nil)
}

type sendMessageRequest struct {
	Mobile string `json:"mobile"`
	Body   string `json:"body"`
}

// SendMessage sends a text message through the connected session.
func (c *Client) SendMessage(ctx context.Context, mobile, body string) error {
	return c.doRequest(ctx, http.MethodPost, "/messages", &sendMessageRequest{
		Mobile: mobile,
		Body:   body,
	}, nil)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("bridge request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("bridge returned status %d: %s", resp.StatusCode, string(data))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode bridge response: %w", err)
		}
	}

	return nil
}
