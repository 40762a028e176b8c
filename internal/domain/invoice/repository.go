package invoice

import (
	"context"
	"time"
)

// Repository defines persistence operations for invoices.
type Repository interface {
	Create(ctx context.Context, inv *Invoice) error
	Update(ctx context.Context, inv *Invoice) error
	GetByDBID(ctx context.Context, dbID uint) (*Invoice, error)
	GetByRef(ctx context.Context, ref string) (*Invoice, error)
	GetByApplicationAndPeriod(ctx context.Context, applicationID uint, periodStart time.Time) (*Invoice, error)
	ListByApplication(ctx context.Context, applicationID uint, offset, limit int) ([]*Invoice, int64, error)
}
