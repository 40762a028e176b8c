package transaction

import (
	"fmt"
	"time"

	vo "ta7wila/internal/domain/payment/valueobjects"
	"ta7wila/internal/shared/biztime"
	"ta7wila/internal/shared/id"
)

// Status of an ingested provider transaction. A transaction starts unclaimed
// and becomes claimed when a verification matches it; claimed transactions
// are never matched again.
type Status string

const (
	StatusUnclaimed Status = "unclaimed"
	StatusClaimed   Status = "claimed"
)

func (s Status) IsValid() bool {
	return s == StatusUnclaimed || s == StatusClaimed
}

func (s Status) String() string {
	return string(s)
}

// Transaction is a real incoming payment reported by the wallet/InstaPay
// provider callback. Claims are matched against these rows.
type Transaction struct {
	dbID          uint
	ref           string
	applicationID uint
	destinationID uint
	channel       vo.ChannelKey
	senderValue   string
	senderName    string
	amount        vo.Money
	status        Status
	occurredAt    time.Time

	metadata map[string]interface{}

	createdAt time.Time
	updatedAt time.Time
}

// NewTransaction records an incoming provider transaction in the matching pool.
func NewTransaction(
	applicationID, destinationID uint,
	channel vo.ChannelKey,
	senderValue, senderName string,
	amount vo.Money,
	occurredAt time.Time,
) (*Transaction, error) {
	if applicationID == 0 {
		return nil, fmt.Errorf("application ID is required")
	}
	if destinationID == 0 {
		return nil, fmt.Errorf("destination ID is required")
	}
	if !channel.IsValid() {
		return nil, fmt.Errorf("invalid payment channel: %s", channel)
	}
	if senderValue == "" {
		return nil, fmt.Errorf("sender value is required")
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive")
	}
	if occurredAt.IsZero() {
		occurredAt = biztime.NowUTC()
	}

	now := biztime.NowUTC()
	return &Transaction{
		ref:           id.MustGenerateWithPrefix(id.PrefixTransaction, id.DefaultLength),
		applicationID: applicationID,
		destinationID: destinationID,
		channel:       channel,
		senderValue:   vo.NormalizeMobile(senderValue),
		senderName:    senderName,
		amount:        amount,
		status:        StatusUnclaimed,
		occurredAt:    occurredAt.UTC(),
		metadata:      make(map[string]interface{}),
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// MarkClaimed links the transaction to the verification that matched it.
// A claimed transaction cannot be claimed twice.
func (t *Transaction) MarkClaimed(verificationRef string) error {
	if t.status == StatusClaimed {
		return fmt.Errorf("transaction %s is already claimed", t.ref)
	}
	t.status = StatusClaimed
	t.metadata["claimed_by"] = verificationRef
	t.updatedAt = biztime.NowUTC()
	return nil
}

func (t *Transaction) DBID() uint             { return t.dbID }
func (t *Transaction) Ref() string            { return t.ref }
func (t *Transaction) ApplicationID() uint    { return t.applicationID }
func (t *Transaction) DestinationID() uint    { return t.destinationID }
func (t *Transaction) Channel() vo.ChannelKey { return t.channel }
func (t *Transaction) SenderValue() string    { return t.senderValue }
func (t *Transaction) SenderName() string     { return t.senderName }
func (t *Transaction) Amount() vo.Money       { return t.amount }
func (t *Transaction) Status() Status         { return t.status }
func (t *Transaction) OccurredAt() time.Time  { return t.occurredAt }
func (t *Transaction) CreatedAt() time.Time   { return t.createdAt }
func (t *Transaction) UpdatedAt() time.Time   { return t.updatedAt }

func (t *Transaction) Metadata() map[string]interface{} {
	return t.metadata
}

// MergeMetadata records extra provider fields from a callback payload.
func (t *Transaction) MergeMetadata(extra map[string]interface{}) {
	for k, v := range extra {
		t.metadata[k] = v
	}
}

// SetDBID sets the database ID after persistence.
func (t *Transaction) SetDBID(dbID uint) {
	t.dbID = dbID
}

// ReconstructTransaction rebuilds a Transaction from persistence.
func ReconstructTransaction(
	dbID uint,
	ref string,
	applicationID, destinationID uint,
	channel vo.ChannelKey,
	senderValue, senderName string,
	amount vo.Money,
	status Status,
	occurredAt time.Time,
	metadata map[string]interface{},
	createdAt, updatedAt time.Time,
) *Transaction {
	if metadata == nil {
		metadata = make(map[string]interface{})
	}
	return &Transaction{
		dbID:          dbID,
		ref:           ref,
		applicationID: applicationID,
		destinationID: destinationID,
		channel:       channel,
		senderValue:   senderValue,
		senderName:    senderName,
		amount:        amount,
		status:        status,
		occurredAt:    occurredAt,
		metadata:      metadata,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}
