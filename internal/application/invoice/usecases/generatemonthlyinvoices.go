package usecases

import (
	"context"
	"time"

	"ta7wila/internal/domain/invoice"
	"ta7wila/internal/domain/store"
	"ta7wila/internal/domain/verification"
	"ta7wila/internal/shared/biztime"
	apperrors "ta7wila/internal/shared/errors"
	"ta7wila/internal/shared/logger"
)

type GenerateMonthlyInvoicesCommand struct {
	// Year and Month select the billing period in business time. Zero values
	// select the month before the current one.
	Year  int
	Month time.Month
}

type GenerateMonthlyInvoicesResult struct {
	Generated []*invoice.Invoice
	// Skipped counts stores with no verified claims in the period or with an
	// invoice already on record.
	Skipped int
}

// GenerateMonthlyInvoicesUseCase rolls the verified claims of each store into
// a draft invoice for one billing month. Running it twice for the same month
// is harmless; existing invoices are left alone.
type GenerateMonthlyInvoicesUseCase struct {
	storeRepo        store.Repository
	verificationRepo verification.Repository
	invoiceRepo      invoice.Repository
	logger           logger.Interface
	feeBasisPoints   int64
	currency         string
}

func NewGenerateMonthlyInvoicesUseCase(
	storeRepo store.Repository,
	verificationRepo verification.Repository,
	invoiceRepo invoice.Repository,
	log logger.Interface,
	feeBasisPoints int64,
	currency string,
) *GenerateMonthlyInvoicesUseCase {
	return &GenerateMonthlyInvoicesUseCase{
		storeRepo:        storeRepo,
		verificationRepo: verificationRepo,
		invoiceRepo:      invoiceRepo,
		logger:           log,
		feeBasisPoints:   feeBasisPoints,
		currency:         currency,
	}
}

func (uc *GenerateMonthlyInvoicesUseCase) Execute(ctx context.Context, cmd GenerateMonthlyInvoicesCommand) (*GenerateMonthlyInvoicesResult, error) {
	year, month := cmd.Year, cmd.Month
	if year == 0 || month == 0 {
		prev := biztime.ToBizTimezone(biztime.NowUTC()).AddDate(0, -1, 0)
		year, month, _ = prev.Date()
	}
	periodStart := biztime.StartOfMonthUTC(year, month)
	periodEnd := biztime.EndOfMonthUTC(year, month)

	result := &GenerateMonthlyInvoicesResult{}
	const pageSize = 100
	for offset := 0; ; offset += pageSize {
		stores, _, err := uc.storeRepo.List(ctx, offset, pageSize)
		if err != nil {
			return nil, err
		}
		if len(stores) == 0 {
			break
		}

		for _, st := range stores {
			inv, err := uc.generateForStore(ctx, st, periodStart, periodEnd)
			if err != nil {
				uc.logger.Errorw("failed to generate invoice",
					"error", err,
					"store_sid", st.SID(),
					"period", periodStart.Format("2006-01"),
				)
				return nil, err
			}
			if inv == nil {
				result.Skipped++
				continue
			}
			result.Generated = append(result.Generated, inv)
		}

		if len(stores) < pageSize {
			break
		}
	}

	uc.logger.Infow("monthly invoices generated",
		"period", periodStart.Format("2006-01"),
		"generated", len(result.Generated),
		"skipped", result.Skipped,
	)
	return result, nil
}

func (uc *GenerateMonthlyInvoicesUseCase) generateForStore(ctx context.Context, st *store.Store, periodStart, periodEnd time.Time) (*invoice.Invoice, error) {
	_, err := uc.invoiceRepo.GetByApplicationAndPeriod(ctx, st.DBID(), periodStart)
	if err == nil {
		return nil, nil
	}
	if appErr := apperrors.GetAppError(err); appErr == nil || appErr.Type != apperrors.ErrorTypeNotFound {
		return nil, err
	}

	claimCount, grossCents, err := uc.verificationRepo.VerifiedTotals(ctx, st.DBID(), periodStart, periodEnd)
	if err != nil {
		return nil, err
	}
	if claimCount == 0 {
		return nil, nil
	}

	inv, err := invoice.NewInvoice(st.DBID(), periodStart, int(claimCount), grossCents, uc.feeBasisPoints, uc.currency)
	if err != nil {
		return nil, err
	}
	if err := uc.invoiceRepo.Create(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}
