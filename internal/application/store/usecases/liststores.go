package usecases

import (
	"context"

	"ta7wila/internal/domain/store"
	"ta7wila/internal/shared/logger"
)

type ListStoresCommand struct {
	// OwnerID scopes the listing to one account. Zero lists every store and
	// is reserved for administrators.
	OwnerID  uint
	Page     int
	PageSize int
}

type ListStoresResult struct {
	Stores   []*store.Store
	Total    int64
	Page     int
	PageSize int
}

type ListStoresUseCase struct {
	storeRepo store.Repository
	logger    logger.Interface
}

func NewListStoresUseCase(storeRepo store.Repository, log logger.Interface) *ListStoresUseCase {
	return &ListStoresUseCase{storeRepo: storeRepo, logger: log}
}

func (uc *ListStoresUseCase) Execute(ctx context.Context, cmd ListStoresCommand) (*ListStoresResult, error) {
	if cmd.Page < 1 {
		cmd.Page = 1
	}
	if cmd.PageSize < 1 || cmd.PageSize > 100 {
		cmd.PageSize = 20
	}
	offset := (cmd.Page - 1) * cmd.PageSize

	var (
		stores []*store.Store
		total  int64
		err    error
	)
	if cmd.OwnerID == 0 {
		stores, total, err = uc.storeRepo.List(ctx, offset, cmd.PageSize)
	} else {
		stores, total, err = uc.storeRepo.ListByOwner(ctx, cmd.OwnerID, offset, cmd.PageSize)
	}
	if err != nil {
		uc.logger.Errorw("failed to list stores", "error", err, "owner_id", cmd.OwnerID)
		return nil, err
	}

	return &ListStoresResult{
		Stores:   stores,
		Total:    total,
		Page:     cmd.Page,
		PageSize: cmd.PageSize,
	}, nil
}
