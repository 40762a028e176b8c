package verification

import (
	"fmt"
	"time"

	vo "ta7wila/internal/domain/payment/valueobjects"
	"ta7wila/internal/shared/biztime"
	"ta7wila/internal/shared/id"
)

// Status of a verification request.
//
//	pending  → claim recorded, no transaction matched yet
//	matched  → a provider transaction is linked, awaiting reviewer decision
//	verified → reviewer confirmed the match
//	rejected → reviewer rejected the claim
//
// Decisions are only possible from matched; a decided verification is final.
type Status string

const (
	StatusPending  Status = "pending"
	StatusMatched  Status = "matched"
	StatusVerified Status = "verified"
	StatusRejected Status = "rejected"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusMatched, StatusVerified, StatusRejected:
		return true
	}
	return false
}

func (s Status) IsFinal() bool {
	return s == StatusVerified || s == StatusRejected
}

func (s Status) String() string {
	return string(s)
}

// Verification is a transaction claim submitted for matching: "I sent
// `amount` via `channel` from `sender` to destination `destinationID`".
// Claims are append-only; resubmission creates a new Verification rather
// than mutating a prior one.
type Verification struct {
	dbID          uint
	ref           string
	applicationID uint
	destinationID uint
	channel       vo.ChannelKey
	sender        vo.SenderIdentifier
	amount        vo.Money
	status        Status

	matchedTransactionID *uint
	matchedAt            *time.Time

	reviewerID *uint
	decidedAt  *time.Time

	createdAt time.Time
	updatedAt time.Time
}

// NewVerification records a fresh claim. Exactly one destination must be
// referenced; sender and amount are already validated value objects.
func NewVerification(
	applicationID, destinationID uint,
	sender vo.SenderIdentifier,
	amount vo.Money,
) (*Verification, error) {
	if applicationID == 0 {
		return nil, fmt.Errorf("application ID is required")
	}
	if destinationID == 0 {
		return nil, fmt.Errorf("a payment destination must be selected")
	}
	if sender.IsZero() {
		return nil, fmt.Errorf("sender identifier is required")
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive")
	}

	now := biztime.NowUTC()
	return &Verification{
		ref:           id.MustGenerateWithPrefix(id.PrefixVerification, id.DefaultLength),
		applicationID: applicationID,
		destinationID: destinationID,
		channel:       sender.Channel(),
		sender:        sender,
		amount:        amount,
		status:        StatusPending,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// AttachMatch links a provider transaction to the claim and moves the
// verification to matched. Only pending verifications can be matched.
func (v *Verification) AttachMatch(transactionDBID uint) error {
	if v.status != StatusPending {
		return fmt.Errorf("cannot attach match with status %s", v.status)
	}
	if transactionDBID == 0 {
		return fmt.Errorf("transaction ID is required")
	}

	now := biztime.NowUTC()
	v.matchedTransactionID = &transactionDBID
	v.matchedAt = &now
	v.status = StatusMatched
	v.updatedAt = now
	return nil
}

// Decide persists the reviewer's verdict. A decision requires a prior match;
// deciding a pending or already-decided verification is an error, which is
// what keeps the two-phase review flow ordered.
func (v *Verification) Decide(decision Status, reviewerID uint) error {
	if decision != StatusVerified && decision != StatusRejected {
		return fmt.Errorf("decision must be verified or rejected, got %s", decision)
	}
	if v.status.IsFinal() {
		return fmt.Errorf("verification %s is already %s", v.ref, v.status)
	}
	if v.status != StatusMatched {
		return fmt.Errorf("cannot decide before a transaction match (status %s)", v.status)
	}
	if reviewerID == 0 {
		return fmt.Errorf("reviewer ID is required")
	}

	now := biztime.NowUTC()
	v.status = decision
	v.reviewerID = &reviewerID
	v.decidedAt = &now
	v.updatedAt = now
	return nil
}

// IsMatched reports whether a provider transaction is linked.
func (v *Verification) IsMatched() bool {
	return v.matchedTransactionID != nil
}

func (v *Verification) DBID() uint                  { return v.dbID }
func (v *Verification) Ref() string                 { return v.ref }
func (v *Verification) ApplicationID() uint         { return v.applicationID }
func (v *Verification) DestinationID() uint         { return v.destinationID }
func (v *Verification) Channel() vo.ChannelKey      { return v.channel }
func (v *Verification) Sender() vo.SenderIdentifier { return v.sender }
func (v *Verification) Amount() vo.Money            { return v.amount }
func (v *Verification) Status() Status              { return v.status }
func (v *Verification) MatchedTransactionID() *uint { return v.matchedTransactionID }
func (v *Verification) MatchedAt() *time.Time       { return v.matchedAt }
func (v *Verification) ReviewerID() *uint           { return v.reviewerID }
func (v *Verification) DecidedAt() *time.Time       { return v.decidedAt }
func (v *Verification) CreatedAt() time.Time        { return v.createdAt }
func (v *Verification) UpdatedAt() time.Time        { return v.updatedAt }

// SetDBID sets the database ID after persistence.
func (v *Verification) SetDBID(dbID uint) {
	v.dbID = dbID
}

// ReconstructVerification rebuilds a Verification from persistence.
func ReconstructVerification(
	dbID uint,
	ref string,
	applicationID, destinationID uint,
	sender vo.SenderIdentifier,
	amount vo.Money,
	status Status,
	matchedTransactionID *uint,
	matchedAt *time.Time,
	reviewerID *uint,
	decidedAt *time.Time,
	createdAt, updatedAt time.Time,
) *Verification {
	return &Verification{
		dbID:                 dbID,
		ref:                  ref,
		applicationID:        applicationID,
		destinationID:        destinationID,
		channel:              sender.Channel(),
		sender:               sender,
		amount:               amount,
		status:               status,
		matchedTransactionID: matchedTransactionID,
		matchedAt:            matchedAt,
		reviewerID:           reviewerID,
		decidedAt:            decidedAt,
		createdAt:            createdAt,
		updatedAt:            updatedAt,
	}
}
