package transaction

import (
	"context"

	vo "ta7wila/internal/domain/payment/valueobjects"
)

// Repository persists ingested provider transactions.
type Repository interface {
	Create(ctx context.Context, t *Transaction) error
	Update(ctx context.Context, t *Transaction) error
	GetByDBID(ctx context.Context, dbID uint) (*Transaction, error)
	GetByRef(ctx context.Context, ref string) (*Transaction, error)

	// FindOldestUnclaimedMatch returns the oldest unclaimed transaction on
	// the given destination with the given sender value and exact amount,
	// or nil when nothing matches.
	FindOldestUnclaimedMatch(ctx context.Context, destinationID uint, senderValue string, amount vo.Money) (*Transaction, error)

	ListByApplication(ctx context.Context, applicationID uint, page, pageSize int) ([]*Transaction, int64, error)
}
