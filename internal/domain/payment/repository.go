package payment

import (
	"context"

	vo "ta7wila/internal/domain/payment/valueobjects"
)

// DestinationRepository persists store payment destinations.
type DestinationRepository interface {
	Create(ctx context.Context, d *Destination) error
	Update(ctx context.Context, d *Destination) error
	GetByDBID(ctx context.Context, dbID uint) (*Destination, error)
	GetBySID(ctx context.Context, sid string) (*Destination, error)
	ListByApplication(ctx context.Context, applicationID uint) ([]*Destination, error)
	ListByApplicationAndChannel(ctx context.Context, applicationID uint, channel vo.ChannelKey) ([]*Destination, error)
}
