// Package webhook delivers claim status events to merchant-configured URLs.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ta7wila/internal/shared/logger"
)

// Event is the payload posted to a store's webhook URL.
type Event struct {
	Type            string `json:"type"`
	VerificationRef string `json:"verification_ref"`
	Status          string `json:"status"`
	Amount          string `json:"amount"`
	Channel         string `json:"channel"`
	OccurredAt      string `json:"occurred_at"`
}

type Notifier struct {
	httpClient *http.Client
	logger     logger.Interface
}

type Option func(*Notifier)

func WithHTTPClient(c *http.Client) Option {
	return func(n *Notifier) {
		n.httpClient = c
	}
}

func NewNotifier(log logger.Interface, opts ...Option) *Notifier {
	n := &Notifier{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     log,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Send posts the event to the URL. Delivery is best effort; a non-2xx answer
// is an error for the caller to log, not to retry inline.
func (n *Notifier) Send(ctx context.Context, url string, event Event) error {
	if url == "" {
		return nil
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode webhook event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to deliver webhook: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook answered %d", resp.StatusCode)
	}

	n.logger.Debugw("webhook delivered", "url", url, "type", event.Type)
	return nil
}
