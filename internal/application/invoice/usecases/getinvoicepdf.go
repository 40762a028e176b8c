package usecases

import (
	"context"

	"ta7wila/internal/domain/invoice"
	"ta7wila/internal/domain/store"
	"ta7wila/internal/infrastructure/pdf"
	apperrors "ta7wila/internal/shared/errors"
	"ta7wila/internal/shared/logger"
)

type GetInvoicePDFCommand struct {
	Ref          string
	ActorID      uint
	ActorIsAdmin bool
}

type GetInvoicePDFResult struct {
	Content  []byte
	Filename string
}

type GetInvoicePDFUseCase struct {
	invoiceRepo invoice.Repository
	storeRepo   store.Repository
	renderer    *pdf.InvoiceRenderer
	logger      logger.Interface
}

func NewGetInvoicePDFUseCase(
	invoiceRepo invoice.Repository,
	storeRepo store.Repository,
	renderer *pdf.InvoiceRenderer,
	log logger.Interface,
) *GetInvoicePDFUseCase {
	return &GetInvoicePDFUseCase{
		invoiceRepo: invoiceRepo,
		storeRepo:   storeRepo,
		renderer:    renderer,
		logger:      log,
	}
}

func (uc *GetInvoicePDFUseCase) Execute(ctx context.Context, cmd GetInvoicePDFCommand) (*GetInvoicePDFResult, error) {
	inv, err := uc.invoiceRepo.GetByRef(ctx, cmd.Ref)
	if err != nil {
		return nil, err
	}

	st, err := uc.storeRepo.GetByDBID(ctx, inv.ApplicationID())
	if err != nil {
		return nil, err
	}
	if !cmd.ActorIsAdmin && st.OwnerID() != cmd.ActorID {
		return nil, apperrors.NewForbiddenError("invoice belongs to another account")
	}

	content, filename, err := uc.renderer.Render(inv, st)
	if err != nil {
		uc.logger.Errorw("failed to render invoice PDF", "error", err, "invoice_ref", inv.Ref())
		return nil, apperrors.NewInternalError("failed to render invoice")
	}
	return &GetInvoicePDFResult{Content: content, Filename: filename}, nil
}
