package store

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	vo "ta7wila/internal/domain/payment/valueobjects"
	"ta7wila/internal/shared/biztime"
	"ta7wila/internal/shared/id"
)

// Status of a store.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusInactive
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Store is a merchant application that receives payments. Its slug addresses
// the public checkout page; PaymentOptions controls which channels appear
// there.
type Store struct {
	dbID           uint
	sid            string
	ownerID        uint
	name           string
	slug           string
	status         Status
	paymentOptions []vo.ChannelKey
	instructions   string
	webhookURL     string
	createdAt      time.Time
	updatedAt      time.Time
}

// NewStore creates a store for a merchant. Instructions are raw markdown and
// are rendered at checkout time, not here.
func NewStore(ownerID uint, name, slug string, paymentOptions []vo.ChannelKey, instructions string) (*Store, error) {
	if ownerID == 0 {
		return nil, fmt.Errorf("owner ID is required")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("store name is required")
	}
	if len(name) > 120 {
		return nil, fmt.Errorf("store name must be at most 120 characters")
	}

	slug = strings.ToLower(strings.TrimSpace(slug))
	if err := validateSlug(slug); err != nil {
		return nil, err
	}

	opts, err := normalizePaymentOptions(paymentOptions)
	if err != nil {
		return nil, err
	}

	now := biztime.NowUTC()
	return &Store{
		sid:            id.MustGenerateWithPrefix(id.PrefixApplication, id.DefaultLength),
		ownerID:        ownerID,
		name:           name,
		slug:           slug,
		status:         StatusActive,
		paymentOptions: opts,
		instructions:   instructions,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

func validateSlug(slug string) error {
	if slug == "" {
		return fmt.Errorf("store slug is required")
	}
	if len(slug) < 3 || len(slug) > 64 {
		return fmt.Errorf("store slug must be between 3 and 64 characters")
	}
	if !slugPattern.MatchString(slug) {
		return fmt.Errorf("store slug may only contain lowercase letters, digits and hyphens")
	}
	return nil
}

func normalizePaymentOptions(options []vo.ChannelKey) ([]vo.ChannelKey, error) {
	if len(options) == 0 {
		return nil, fmt.Errorf("at least one payment option is required")
	}
	seen := make(map[vo.ChannelKey]struct{}, len(options))
	out := make([]vo.ChannelKey, 0, len(options))
	for _, opt := range options {
		if !opt.IsValid() {
			return nil, fmt.Errorf("unknown payment channel: %s", opt)
		}
		if _, dup := seen[opt]; dup {
			continue
		}
		seen[opt] = struct{}{}
		out = append(out, opt)
	}
	return out, nil
}

// UpdateDetails replaces name and instructions.
func (s *Store) UpdateDetails(name, instructions string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("store name is required")
	}
	if len(name) > 120 {
		return fmt.Errorf("store name must be at most 120 characters")
	}
	s.name = name
	s.instructions = instructions
	s.updatedAt = biztime.NowUTC()
	return nil
}

// UpdatePaymentOptions replaces the channel set shown at checkout.
func (s *Store) UpdatePaymentOptions(options []vo.ChannelKey) error {
	opts, err := normalizePaymentOptions(options)
	if err != nil {
		return err
	}
	s.paymentOptions = opts
	s.updatedAt = biztime.NowUTC()
	return nil
}

// SetWebhookURL sets the callback endpoint notified on verified claims.
func (s *Store) SetWebhookURL(url string) {
	s.webhookURL = strings.TrimSpace(url)
	s.updatedAt = biztime.NowUTC()
}

func (s *Store) Activate() {
	s.status = StatusActive
	s.updatedAt = biztime.NowUTC()
}

func (s *Store) Deactivate() {
	s.status = StatusInactive
	s.updatedAt = biztime.NowUTC()
}

func (s *Store) IsActive() bool {
	return s.status == StatusActive
}

// OffersChannel reports whether the store accepts payments via the channel.
func (s *Store) OffersChannel(channel vo.ChannelKey) bool {
	for _, opt := range s.paymentOptions {
		if opt == channel {
			return true
		}
	}
	return false
}

func (s *Store) DBID() uint                       { return s.dbID }
func (s *Store) SID() string                      { return s.sid }
func (s *Store) OwnerID() uint                    { return s.ownerID }
func (s *Store) Name() string                     { return s.name }
func (s *Store) Slug() string                     { return s.slug }
func (s *Store) Status() Status                   { return s.status }
func (s *Store) PaymentOptions() []vo.ChannelKey  { return s.paymentOptions }
func (s *Store) Instructions() string             { return s.instructions }
func (s *Store) WebhookURL() string               { return s.webhookURL }
func (s *Store) CreatedAt() time.Time             { return s.createdAt }
func (s *Store) UpdatedAt() time.Time             { return s.updatedAt }

// SetDBID sets the database ID after persistence.
func (s *Store) SetDBID(dbID uint) {
	s.dbID = dbID
}

// ReconstructStore rebuilds a Store from persistence.
func ReconstructStore(
	dbID uint,
	sid string,
	ownerID uint,
	name, slug string,
	status Status,
	paymentOptions []vo.ChannelKey,
	instructions, webhookURL string,
	createdAt, updatedAt time.Time,
) *Store {
	return &Store{
		dbID:           dbID,
		sid:            sid,
		ownerID:        ownerID,
		name:           name,
		slug:           slug,
		status:         status,
		paymentOptions: paymentOptions,
		instructions:   instructions,
		webhookURL:     webhookURL,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}
