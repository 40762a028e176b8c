package invoice

import (
	"fmt"
	"time"

	vo "ta7wila/internal/domain/payment/valueobjects"
	"ta7wila/internal/shared/biztime"
	"ta7wila/internal/shared/id"
)

// Status of an invoice.
type Status string

const (
	StatusDraft  Status = "draft"
	StatusIssued Status = "issued"
	StatusPaid   Status = "paid"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusIssued, StatusPaid:
		return true
	}
	return false
}

// Invoice is a monthly settlement summary for one store: the verified claim
// volume for a billing period plus the platform fee. Periods are identified
// by the first day of the month in business-local time.
type Invoice struct {
	dbID          uint
	ref           string
	applicationID uint
	periodStart   time.Time
	periodEnd     time.Time
	claimCount    int
	grossAmount   vo.Money
	feeAmount     vo.Money
	status        Status
	issuedAt      *time.Time
	paidAt        *time.Time
	createdAt     time.Time
	updatedAt     time.Time
}

// NewInvoice creates a draft invoice for a store's billing month.
// feeBasisPoints is the platform commission in basis points (100 = 1%).
func NewInvoice(applicationID uint, periodStart time.Time, claimCount int, grossCents int64, feeBasisPoints int64, currency string) (*Invoice, error) {
	if applicationID == 0 {
		return nil, fmt.Errorf("application ID is required")
	}
	if claimCount < 0 {
		return nil, fmt.Errorf("claim count cannot be negative")
	}
	if grossCents < 0 {
		return nil, fmt.Errorf("gross amount cannot be negative")
	}
	if feeBasisPoints < 0 || feeBasisPoints > 10000 {
		return nil, fmt.Errorf("fee basis points must be between 0 and 10000")
	}

	gross := vo.NewMoney(grossCents, currency)
	fee := vo.NewMoney(grossCents*feeBasisPoints/10000, currency)

	year, month, _ := biztime.ToBizTimezone(periodStart).Date()
	now := biztime.NowUTC()
	return &Invoice{
		ref:           id.MustGenerateWithPrefix(id.PrefixInvoice, id.DefaultLength),
		applicationID: applicationID,
		periodStart:   biztime.StartOfMonthUTC(year, month),
		periodEnd:     biztime.EndOfMonthUTC(year, month),
		claimCount:    claimCount,
		grossAmount:   gross,
		feeAmount:     fee,
		status:        StatusDraft,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// Issue finalizes a draft so it can be sent to the merchant.
func (i *Invoice) Issue() error {
	if i.status != StatusDraft {
		return fmt.Errorf("only draft invoices can be issued (status %s)", i.status)
	}
	now := biztime.NowUTC()
	i.status = StatusIssued
	i.issuedAt = &now
	i.updatedAt = now
	return nil
}

// MarkPaid records settlement of an issued invoice.
func (i *Invoice) MarkPaid() error {
	if i.status != StatusIssued {
		return fmt.Errorf("only issued invoices can be marked paid (status %s)", i.status)
	}
	now := biztime.NowUTC()
	i.status = StatusPaid
	i.paidAt = &now
	i.updatedAt = now
	return nil
}

// NetAmountInCents is the merchant payout after the platform fee.
func (i *Invoice) NetAmountInCents() int64 {
	return i.grossAmount.AmountInCents() - i.feeAmount.AmountInCents()
}

func (i *Invoice) DBID() uint            { return i.dbID }
func (i *Invoice) Ref() string           { return i.ref }
func (i *Invoice) ApplicationID() uint   { return i.applicationID }
func (i *Invoice) PeriodStart() time.Time { return i.periodStart }
func (i *Invoice) PeriodEnd() time.Time  { return i.periodEnd }
func (i *Invoice) ClaimCount() int       { return i.claimCount }
func (i *Invoice) GrossAmount() vo.Money { return i.grossAmount }
func (i *Invoice) FeeAmount() vo.Money   { return i.feeAmount }
func (i *Invoice) Status() Status        { return i.status }
func (i *Invoice) IssuedAt() *time.Time  { return i.issuedAt }
func (i *Invoice) PaidAt() *time.Time    { return i.paidAt }
func (i *Invoice) CreatedAt() time.Time  { return i.createdAt }
func (i *Invoice) UpdatedAt() time.Time  { return i.updatedAt }

// SetDBID sets the database ID after persistence.
func (i *Invoice) SetDBID(dbID uint) {
	i.dbID = dbID
}

// ReconstructInvoice rebuilds an Invoice from persistence.
func ReconstructInvoice(
	dbID uint,
	ref string,
	applicationID uint,
	periodStart, periodEnd time.Time,
	claimCount int,
	grossAmount, feeAmount vo.Money,
	status Status,
	issuedAt, paidAt *time.Time,
	createdAt, updatedAt time.Time,
) *Invoice {
	return &Invoice{
		dbID:          dbID,
		ref:           ref,
		applicationID: applicationID,
		periodStart:   periodStart,
		periodEnd:     periodEnd,
		claimCount:    claimCount,
		grossAmount:   grossAmount,
		feeAmount:     feeAmount,
		status:        status,
		issuedAt:      issuedAt,
		paidAt:        paidAt,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}
