package usecases

import (
	"context"

	vo "ta7wila/internal/domain/payment/valueobjects"
	"ta7wila/internal/domain/store"
	apperrors "ta7wila/internal/shared/errors"
	"ta7wila/internal/shared/logger"
)

type UpdateStoreCommand struct {
	StoreSID string
	// ActorID must own the store unless ActorIsAdmin is set.
	ActorID      uint
	ActorIsAdmin bool

	Name           *string
	Instructions   *string
	PaymentOptions []string
	WebhookURL     *string
	Active         *bool
}

type UpdateStoreResult struct {
	Store *store.Store
}

type UpdateStoreUseCase struct {
	storeRepo store.Repository
	logger    logger.Interface
}

func NewUpdateStoreUseCase(storeRepo store.Repository, log logger.Interface) *UpdateStoreUseCase {
	return &UpdateStoreUseCase{storeRepo: storeRepo, logger: log}
}

func (uc *UpdateStoreUseCase) Execute(ctx context.Context, cmd UpdateStoreCommand) (*UpdateStoreResult, error) {
	st, err := uc.storeRepo.GetBySID(ctx, cmd.StoreSID)
	if err != nil {
		return nil, err
	}
	if !cmd.ActorIsAdmin && st.OwnerID() != cmd.ActorID {
		return nil, apperrors.NewForbiddenError("store belongs to another account")
	}

	if cmd.Name != nil || cmd.Instructions != nil {
		name := st.Name()
		if cmd.Name != nil {
			name = *cmd.Name
		}
		instructions := st.Instructions()
		if cmd.Instructions != nil {
			instructions = *cmd.Instructions
		}
		if err := st.UpdateDetails(name, instructions); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}

	if cmd.PaymentOptions != nil {
		options := make([]vo.ChannelKey, 0, len(cmd.PaymentOptions))
		for _, raw := range cmd.PaymentOptions {
			options = append(options, vo.ChannelKey(raw))
		}
		if err := st.UpdatePaymentOptions(options); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}

	if cmd.WebhookURL != nil {
		st.SetWebhookURL(*cmd.WebhookURL)
	}

	if cmd.Active != nil {
		if *cmd.Active {
			st.Activate()
		} else {
			st.Deactivate()
		}
	}

	if err := uc.storeRepo.Update(ctx, st); err != nil {
		uc.logger.Errorw("failed to update store", "error", err, "store_sid", cmd.StoreSID)
		return nil, err
	}

	uc.logger.Infow("store updated", "store_sid", st.SID())
	return &UpdateStoreResult{Store: st}, nil
}
