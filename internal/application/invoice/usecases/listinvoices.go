package usecases

import (
	"context"

	"ta7wila/internal/domain/invoice"
	"ta7wila/internal/domain/store"
	apperrors "ta7wila/internal/shared/errors"
	"ta7wila/internal/shared/logger"
)

type ListInvoicesCommand struct {
	StoreSID     string
	ActorID      uint
	ActorIsAdmin bool
	Page         int
	PageSize     int
}

type ListInvoicesResult struct {
	Invoices []*invoice.Invoice
	Total    int64
	Page     int
	PageSize int
}

type ListInvoicesUseCase struct {
	invoiceRepo invoice.Repository
	storeRepo   store.Repository
	logger      logger.Interface
}

func NewListInvoicesUseCase(invoiceRepo invoice.Repository, storeRepo store.Repository, log logger.Interface) *ListInvoicesUseCase {
	return &ListInvoicesUseCase{invoiceRepo: invoiceRepo, storeRepo: storeRepo, logger: log}
}

func (uc *ListInvoicesUseCase) Execute(ctx context.Context, cmd ListInvoicesCommand) (*ListInvoicesResult, error) {
	if cmd.Page < 1 {
		cmd.Page = 1
	}
	if cmd.PageSize < 1 || cmd.PageSize > 100 {
		cmd.PageSize = 20
	}

	st, err := uc.storeRepo.GetBySID(ctx, cmd.StoreSID)
	if err != nil {
		return nil, err
	}
	if !cmd.ActorIsAdmin && st.OwnerID() != cmd.ActorID {
		return nil, apperrors.NewForbiddenError("store belongs to another account")
	}

	offset := (cmd.Page - 1) * cmd.PageSize
	items, total, err := uc.invoiceRepo.ListByApplication(ctx, st.DBID(), offset, cmd.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list invoices", "error", err, "store_sid", cmd.StoreSID)
		return nil, err
	}

	return &ListInvoicesResult{
		Invoices: items,
		Total:    total,
		Page:     cmd.Page,
		PageSize: cmd.PageSize,
	}, nil
}
