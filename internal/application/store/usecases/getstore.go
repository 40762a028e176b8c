package usecases

import (
	"context"

	"ta7wila/internal/domain/payment"
	"ta7wila/internal/domain/store"
	apperrors "ta7wila/internal/shared/errors"
	"ta7wila/internal/shared/logger"
)

type GetStoreCommand struct {
	StoreSID     string
	ActorID      uint
	ActorIsAdmin bool
}

// GetStoreResult carries the store together with its payout destinations so
// the dashboard renders the detail screen from a single fetch.
type GetStoreResult struct {
	Store        *store.Store
	Destinations []*payment.Destination
}

type GetStoreUseCase struct {
	storeRepo       store.Repository
	destinationRepo payment.DestinationRepository
	logger          logger.Interface
}

func NewGetStoreUseCase(storeRepo store.Repository, destinationRepo payment.DestinationRepository, log logger.Interface) *GetStoreUseCase {
	return &GetStoreUseCase{storeRepo: storeRepo, destinationRepo: destinationRepo, logger: log}
}

func (uc *GetStoreUseCase) Execute(ctx context.Context, cmd GetStoreCommand) (*GetStoreResult, error) {
	st, err := uc.storeRepo.GetBySID(ctx, cmd.StoreSID)
	if err != nil {
		return nil, err
	}
	if !cmd.ActorIsAdmin && st.OwnerID() != cmd.ActorID {
		return nil, apperrors.NewForbiddenError("store belongs to another account")
	}

	destinations, err := uc.destinationRepo.ListByApplication(ctx, st.DBID())
	if err != nil {
		uc.logger.Errorw("failed to list store destinations", "error", err, "store_sid", st.SID())
		return nil, err
	}
	return &GetStoreResult{Store: st, Destinations: destinations}, nil
}
