package usecases

import (
	"context"

	"ta7wila/internal/domain/payment"
	vo "ta7wila/internal/domain/payment/valueobjects"
	"ta7wila/internal/domain/store"
	apperrors "ta7wila/internal/shared/errors"
	"ta7wila/internal/shared/logger"
)

type AddDestinationCommand struct {
	StoreSID     string
	ActorID      uint
	ActorIsAdmin bool
	Channel      string
	Value        string
}

type AddDestinationResult struct {
	Destination *payment.Destination
}

// AddDestinationUseCase registers a receiving wallet number or InstaPay handle
// on a store. The channel must be one of the store's enabled payment options.
type AddDestinationUseCase struct {
	storeRepo       store.Repository
	destinationRepo payment.DestinationRepository
	logger          logger.Interface
}

func NewAddDestinationUseCase(
	storeRepo store.Repository,
	destinationRepo payment.DestinationRepository,
	log logger.Interface,
) *AddDestinationUseCase {
	return &AddDestinationUseCase{storeRepo: storeRepo, destinationRepo: destinationRepo, logger: log}
}

func (uc *AddDestinationUseCase) Execute(ctx context.Context, cmd AddDestinationCommand) (*AddDestinationResult, error) {
	st, err := uc.requireStore(ctx, cmd.StoreSID, cmd.ActorID, cmd.ActorIsAdmin)
	if err != nil {
		return nil, err
	}

	channel := vo.ChannelKey(cmd.Channel)
	if !st.OffersChannel(channel) {
		return nil, apperrors.NewValidationError("channel is not enabled on this store")
	}

	d, err := payment.NewDestination(st.DBID(), channel, cmd.Value)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	existing, err := uc.destinationRepo.ListByApplicationAndChannel(ctx, st.DBID(), channel)
	if err != nil {
		return nil, err
	}
	for _, other := range existing {
		if other.Value() == d.Value() {
			return nil, apperrors.NewConflictError("destination is already registered on this store")
		}
	}

	if err := uc.destinationRepo.Create(ctx, d); err != nil {
		uc.logger.Errorw("failed to add destination", "error", err, "store_sid", cmd.StoreSID)
		return nil, err
	}

	uc.logger.Infow("destination added", "store_sid", st.SID(), "channel", channel, "destination_sid", d.SID())
	return &AddDestinationResult{Destination: d}, nil
}

func (uc *AddDestinationUseCase) requireStore(ctx context.Context, sid string, actorID uint, admin bool) (*store.Store, error) {
	st, err := uc.storeRepo.GetBySID(ctx, sid)
	if err != nil {
		return nil, err
	}
	if !admin && st.OwnerID() != actorID {
		return nil, apperrors.NewForbiddenError("store belongs to another account")
	}
	return st, nil
}

type ListDestinationsCommand struct {
	StoreSID     string
	ActorID      uint
	ActorIsAdmin bool
	// Channel filters the listing when set.
	Channel string
}

type ListDestinationsResult struct {
	Destinations []*payment.Destination
}

type ListDestinationsUseCase struct {
	storeRepo       store.Repository
	destinationRepo payment.DestinationRepository
	logger          logger.Interface
}

func NewListDestinationsUseCase(
	storeRepo store.Repository,
	destinationRepo payment.DestinationRepository,
	log logger.Interface,
) *ListDestinationsUseCase {
	return &ListDestinationsUseCase{storeRepo: storeRepo, destinationRepo: destinationRepo, logger: log}
}

func (uc *ListDestinationsUseCase) Execute(ctx context.Context, cmd ListDestinationsCommand) (*ListDestinationsResult, error) {
	st, err := uc.storeRepo.GetBySID(ctx, cmd.StoreSID)
	if err != nil {
		return nil, err
	}
	if !cmd.ActorIsAdmin && st.OwnerID() != cmd.ActorID {
		return nil, apperrors.NewForbiddenError("store belongs to another account")
	}

	var dests []*payment.Destination
	if cmd.Channel != "" {
		channel := vo.ChannelKey(cmd.Channel)
		if !channel.IsValid() {
			return nil, apperrors.NewValidationError("invalid payment channel: " + cmd.Channel)
		}
		dests, err = uc.destinationRepo.ListByApplicationAndChannel(ctx, st.DBID(), channel)
	} else {
		dests, err = uc.destinationRepo.ListByApplication(ctx, st.DBID())
	}
	if err != nil {
		return nil, err
	}
	return &ListDestinationsResult{Destinations: dests}, nil
}

type SetDestinationStatusCommand struct {
	StoreSID       string
	DestinationSID string
	ActorID        uint
	ActorIsAdmin   bool
	Active         bool
}

type SetDestinationStatusResult struct {
	Destination *payment.Destination
}

type SetDestinationStatusUseCase struct {
	storeRepo       store.Repository
	destinationRepo payment.DestinationRepository
	logger          logger.Interface
}

func NewSetDestinationStatusUseCase(
	storeRepo store.Repository,
	destinationRepo payment.DestinationRepository,
	log logger.Interface,
) *SetDestinationStatusUseCase {
	return &SetDestinationStatusUseCase{storeRepo: storeRepo, destinationRepo: destinationRepo, logger: log}
}

func (uc *SetDestinationStatusUseCase) Execute(ctx context.Context, cmd SetDestinationStatusCommand) (*SetDestinationStatusResult, error) {
	st, err := uc.storeRepo.GetBySID(ctx, cmd.StoreSID)
	if err != nil {
		return nil, err
	}
	if !cmd.ActorIsAdmin && st.OwnerID() != cmd.ActorID {
		return nil, apperrors.NewForbiddenError("store belongs to another account")
	}

	d, err := uc.destinationRepo.GetBySID(ctx, cmd.DestinationSID)
	if err != nil {
		return nil, err
	}
	if d.ApplicationID() != st.DBID() {
		return nil, apperrors.NewNotFoundError("payment destination not found")
	}

	if cmd.Active {
		d.Activate()
	} else {
		d.Deactivate()
	}
	if err := uc.destinationRepo.Update(ctx, d); err != nil {
		uc.logger.Errorw("failed to update destination status", "error", err, "destination_sid", cmd.DestinationSID)
		return nil, err
	}

	uc.logger.Infow("destination status updated", "destination_sid", d.SID(), "active", cmd.Active)
	return &SetDestinationStatusResult{Destination: d}, nil
}
