package payment

import (
	"fmt"
	"time"

	vo "ta7wila/internal/domain/payment/valueobjects"
	"ta7wila/internal/shared/biztime"
	"ta7wila/internal/shared/id"
)

// Destination is a payment receiving value a store has registered for a
// channel: a wallet mobile number or an InstaPay handle. Destinations are
// channel-scoped; a transaction claim must reference exactly one of them.
type Destination struct {
	dbID          uint
	sid           string
	applicationID uint
	channel       vo.ChannelKey
	value         string
	active        bool

	createdAt time.Time
	updatedAt time.Time
}

func NewDestination(applicationID uint, channel vo.ChannelKey, value string) (*Destination, error) {
	if applicationID == 0 {
		return nil, fmt.Errorf("application ID is required")
	}

	// Destination values follow the same format rules as sender identifiers.
	// Store owners configure them from the dashboard, so dashboard trust applies.
	ident, err := vo.NewSenderIdentifier(value, channel, vo.TrustDashboard)
	if err != nil {
		return nil, fmt.Errorf("invalid destination value: %w", err)
	}

	now := biztime.NowUTC()
	return &Destination{
		sid:           id.MustGenerateWithPrefix(id.PrefixDestination, id.DefaultLength),
		applicationID: applicationID,
		channel:       channel,
		value:         ident.Value(),
		active:        true,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// Deactivate hides the destination from pickers without breaking claims that
// already reference it.
func (d *Destination) Deactivate() {
	d.active = false
	d.updatedAt = biztime.NowUTC()
}

func (d *Destination) Activate() {
	d.active = true
	d.updatedAt = biztime.NowUTC()
}

func (d *Destination) DBID() uint              { return d.dbID }
func (d *Destination) SID() string             { return d.sid }
func (d *Destination) ApplicationID() uint     { return d.applicationID }
func (d *Destination) Channel() vo.ChannelKey  { return d.channel }
func (d *Destination) Value() string           { return d.value }
func (d *Destination) IsActive() bool          { return d.active }
func (d *Destination) CreatedAt() time.Time    { return d.createdAt }
func (d *Destination) UpdatedAt() time.Time    { return d.updatedAt }

// SetDBID sets the database ID after persistence.
func (d *Destination) SetDBID(dbID uint) {
	d.dbID = dbID
}

// ReconstructDestination rebuilds a Destination from persistence.
func ReconstructDestination(
	dbID uint,
	sid string,
	applicationID uint,
	channel vo.ChannelKey,
	value string,
	active bool,
	createdAt, updatedAt time.Time,
) *Destination {
	return &Destination{
		dbID:          dbID,
		sid:           sid,
		applicationID: applicationID,
		channel:       channel,
		value:         value,
		active:        active,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}
