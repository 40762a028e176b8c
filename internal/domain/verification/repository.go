package verification

import (
	"context"
	"time"
)

// Repository defines persistence operations for verifications.
type Repository interface {
	Create(ctx context.Context, v *Verification) error
	Update(ctx context.Context, v *Verification) error
	GetByDBID(ctx context.Context, dbID uint) (*Verification, error)
	GetByRef(ctx context.Context, ref string) (*Verification, error)
	ListByApplication(ctx context.Context, applicationID uint, statuses []Status, offset, limit int) ([]*Verification, int64, error)
	ListOpen(ctx context.Context, offset, limit int) ([]*Verification, int64, error)

	// VerifiedTotals sums the verified claims of one store in a period,
	// returning claim count and gross amount in cents.
	VerifiedTotals(ctx context.Context, applicationID uint, from, to time.Time) (int64, int64, error)
}
