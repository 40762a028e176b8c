package usecases

import (
	"context"

	"ta7wila/internal/domain/transaction"
	"ta7wila/internal/shared/logger"
)

type ListTransactionsCommand struct {
	ApplicationID uint
	Page          int
	PageSize      int
}

type ListTransactionsResult struct {
	Transactions []*transaction.Transaction
	Total        int64
	Page         int
	PageSize     int
}

type ListTransactionsUseCase struct {
	transactionRepo transaction.Repository
	logger          logger.Interface
}

func NewListTransactionsUseCase(transactionRepo transaction.Repository, log logger.Interface) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{transactionRepo: transactionRepo, logger: log}
}

func (uc *ListTransactionsUseCase) Execute(ctx context.Context, cmd ListTransactionsCommand) (*ListTransactionsResult, error) {
	if cmd.Page < 1 {
		cmd.Page = 1
	}
	if cmd.PageSize < 1 || cmd.PageSize > 100 {
		cmd.PageSize = 20
	}

	items, total, err := uc.transactionRepo.ListByApplication(ctx, cmd.ApplicationID, cmd.Page, cmd.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list transactions", "error", err, "application_id", cmd.ApplicationID)
		return nil, err
	}

	return &ListTransactionsResult{
		Transactions: items,
		Total:        total,
		Page:         cmd.Page,
		PageSize:     cmd.PageSize,
	}, nil
}
