package usecases

import (
	"context"

	"ta7wila/internal/domain/invoice"
	"ta7wila/internal/domain/store"
	"ta7wila/internal/domain/user"
	"ta7wila/internal/infrastructure/email"
	"ta7wila/internal/shared/biztime"
	apperrors "ta7wila/internal/shared/errors"
	"ta7wila/internal/shared/logger"
	vo "ta7wila/internal/domain/payment/valueobjects"
)

type IssueInvoiceCommand struct {
	Ref string
}

type IssueInvoiceResult struct {
	Invoice *invoice.Invoice
}

// IssueInvoiceUseCase moves a draft invoice to issued and mails the store
// owner. Invoices already issued or paid are refused.
type IssueInvoiceUseCase struct {
	invoiceRepo invoice.Repository
	storeRepo   store.Repository
	userRepo    user.Repository
	emails      email.Service
	logger      logger.Interface
}

func NewIssueInvoiceUseCase(
	invoiceRepo invoice.Repository,
	storeRepo store.Repository,
	userRepo user.Repository,
	emails email.Service,
	log logger.Interface,
) *IssueInvoiceUseCase {
	return &IssueInvoiceUseCase{
		invoiceRepo: invoiceRepo,
		storeRepo:   storeRepo,
		userRepo:    userRepo,
		emails:      emails,
		logger:      log,
	}
}

func (uc *IssueInvoiceUseCase) Execute(ctx context.Context, cmd IssueInvoiceCommand) (*IssueInvoiceResult, error) {
	inv, err := uc.invoiceRepo.GetByRef(ctx, cmd.Ref)
	if err != nil {
		return nil, err
	}
	if err := inv.Issue(); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if err := uc.invoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}

	uc.logger.Infow("invoice issued", "invoice_ref", inv.Ref(), "application_id", inv.ApplicationID())

	if err := uc.notifyOwner(ctx, inv); err != nil {
		uc.logger.Warnw("failed to send invoice email", "error", err, "invoice_ref", inv.Ref())
	}
	return &IssueInvoiceResult{Invoice: inv}, nil
}

func (uc *IssueInvoiceUseCase) notifyOwner(ctx context.Context, inv *invoice.Invoice) error {
	st, err := uc.storeRepo.GetByDBID(ctx, inv.ApplicationID())
	if err != nil {
		return err
	}
	owner, err := uc.userRepo.GetByDBID(ctx, st.OwnerID())
	if err != nil {
		return err
	}

	net := vo.NewMoney(inv.NetAmountInCents(), inv.GrossAmount().Currency())
	return uc.emails.SendInvoiceIssuedEmail(
		owner.Email().String(),
		st.Name(),
		inv.Ref(),
		biztime.FormatInBizTimezone(inv.PeriodStart(), "January 2006"),
		net.String(),
	)
}

type MarkInvoicePaidCommand struct {
	Ref string
}

type MarkInvoicePaidResult struct {
	Invoice *invoice.Invoice
}

type MarkInvoicePaidUseCase struct {
	invoiceRepo invoice.Repository
	logger      logger.Interface
}

func NewMarkInvoicePaidUseCase(invoiceRepo invoice.Repository, log logger.Interface) *MarkInvoicePaidUseCase {
	return &MarkInvoicePaidUseCase{invoiceRepo: invoiceRepo, logger: log}
}

func (uc *MarkInvoicePaidUseCase) Execute(ctx context.Context, cmd MarkInvoicePaidCommand) (*MarkInvoicePaidResult, error) {
	inv, err := uc.invoiceRepo.GetByRef(ctx, cmd.Ref)
	if err != nil {
		return nil, err
	}
	if err := inv.MarkPaid(); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if err := uc.invoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}
	uc.logger.Infow("invoice paid", "invoice_ref", inv.Ref())
	return &MarkInvoicePaidResult{Invoice: inv}, nil
}
