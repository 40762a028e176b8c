package ta7wila

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// TrustLevel selects the validation profile for a claim. Dashboard users are
// trusted with shorter InstaPay identifiers than anonymous checkout visitors.
type TrustLevel int

const (
	TrustDashboard TrustLevel = iota
	TrustPublic
)

const (
	instapayMinDashboard = 3
	instapayMinPublic    = 6
)

var (
	instapayPattern = regexp.MustCompile(`^[a-zA-Z0-9@._-]+$`)
	mobilePattern   = regexp.MustCompile(`^(010|011|012|015)\d{8}$`)
)

// ErrSubmissionInFlight is returned when an identical claim is already being
// submitted by this process.
var ErrSubmissionInFlight = errors.New("an identical claim submission is already in flight")

// FieldError is a validation failure scoped to a single claim field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Claim is a payment claim ready for submission.
type Claim struct {
	StoreSID       string
	Channel        string
	DestinationSID string
	SenderValue    string
	Amount         string
	Trust          TrustLevel
}

// Validate checks the claim locally. A claim that fails validation is never
// sent to the server.
func (c Claim) Validate() error {
	if c.DestinationSID == "" {
		return &FieldError{Field: "destination", Message: "select a destination first"}
	}
	if c.Channel == "" {
		return &FieldError{Field: "channel", Message: "select a payment channel"}
	}

	if err := c.validateSender(); err != nil {
		return err
	}

	if err := validateAmount(c.Amount); err != nil {
		return err
	}

	return nil
}

// validateAmount applies the same decimal rule the server enforces: digits
// with an optional fraction of at most two places, strictly positive.
func validateAmount(raw string) error {
	s := strings.TrimSpace(raw)
	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" && frac == "" {
		return &FieldError{Field: "amount", Message: "amount must be a number"}
	}
	if !isDigits(whole) || (frac != "" && !isDigits(frac)) {
		return &FieldError{Field: "amount", Message: "amount must be a number"}
	}
	if len(frac) > 2 {
		return &FieldError{Field: "amount", Message: "amount must have at most two decimal places"}
	}
	if strings.Trim(whole+frac, "0") == "" {
		return &FieldError{Field: "amount", Message: "amount must be greater than zero"}
	}
	return nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (c Claim) validateSender() error {
	value := strings.TrimSpace(c.SenderValue)
	if value == "" {
		return &FieldError{Field: "sender_value", Message: "sender identifier is required"}
	}

	if c.Channel == "instapay" {
		min := instapayMinDashboard
		if c.Trust == TrustPublic {
			min = instapayMinPublic
		}
		if len(value) < min {
			return &FieldError{
				Field:   "sender_value",
				Message: fmt.Sprintf("instapay identifier must be at least %d characters", min),
			}
		}
		if !instapayPattern.MatchString(value) {
			return &FieldError{
				Field:   "sender_value",
				Message: "instapay identifier may only contain letters, digits, and @._-",
			}
		}
		return nil
	}

	mobile := normalizeMobile(value)
	if !mobilePattern.MatchString(mobile) {
		return &FieldError{Field: "sender_value", Message: "invalid mobile number"}
	}
	return nil
}

// normalizeMobile strips spaces and the optional +2/002 country prefix so the
// local 11-digit form is validated and sent.
func normalizeMobile(raw string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, raw)
	cleaned = strings.TrimPrefix(cleaned, "+2")
	cleaned = strings.TrimPrefix(cleaned, "002")
	return cleaned
}

// ClaimSubmitter submits claims with local validation, per-claim
// idempotency keys, and an in-process single-flight guard so a double-click
// cannot race two identical claims to the server.
type ClaimSubmitter struct {
	client *Client

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewClaimSubmitter creates a submitter backed by the given client.
func NewClaimSubmitter(client *Client) *ClaimSubmitter {
	return &ClaimSubmitter{
		client:   client,
		inFlight: make(map[string]struct{}),
	}
}

// Submit validates the claim and posts it to the manual-check endpoint.
// Validation failures return before any network activity. An identical claim
// already in flight from this process returns ErrSubmissionInFlight.
func (s *ClaimSubmitter) Submit(ctx context.Context, claim Claim) (*ClaimResult, error) {
	if err := claim.Validate(); err != nil {
		return nil, err
	}

	key := claimKey(claim)
	s.mu.Lock()
	if _, exists := s.inFlight[key]; exists {
		s.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	s.inFlight[key] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inFlight, key)
		s.mu.Unlock()
	}()

	// the server derives the channel from the destination
	body := map[string]any{
		"destination_sid": claim.DestinationSID,
		"sender_value":    normalizedSender(claim),
		"amount":          claim.Amount,
	}

	u := fmt.Sprintf("%s/api/v1/stores/%s/manual-check", s.client.baseURL, url.PathEscape(claim.StoreSID))
	headers := map[string]string{"Idempotency-Key": uuid.NewString()}

	var result ClaimResult
	if err := s.client.doRequest(ctx, http.MethodPost, u, body, headers, &result); err != nil {
		return nil, fmt.Errorf("submit claim: %w", err)
	}
	return &result, nil
}

func normalizedSender(claim Claim) string {
	if claim.Channel == "instapay" {
		return strings.TrimSpace(claim.SenderValue)
	}
	return normalizeMobile(strings.TrimSpace(claim.SenderValue))
}

func claimKey(claim Claim) string {
	return strings.Join([]string{
		claim.StoreSID,
		claim.Channel,
		claim.DestinationSID,
		normalizedSender(claim),
		claim.Amount,
	}, "|")
}
