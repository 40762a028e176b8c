package usecases

import (
	"context"

	vo "ta7wila/internal/domain/payment/valueobjects"
	"ta7wila/internal/domain/store"
	apperrors "ta7wila/internal/shared/errors"
	"ta7wila/internal/shared/logger"
)

type CreateStoreCommand struct {
	OwnerID        uint
	Name           string
	Slug           string
	PaymentOptions []string
	Instructions   string
	WebhookURL     string
}

type CreateStoreResult struct {
	Store *store.Store
}

type CreateStoreUseCase struct {
	storeRepo store.Repository
	logger    logger.Interface
}

func NewCreateStoreUseCase(storeRepo store.Repository, log logger.Interface) *CreateStoreUseCase {
	return &CreateStoreUseCase{storeRepo: storeRepo, logger: log}
}

func (uc *CreateStoreUseCase) Execute(ctx context.Context, cmd CreateStoreCommand) (*CreateStoreResult, error) {
	taken, err := uc.storeRepo.ExistsBySlug(ctx, cmd.Slug)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.NewConflictError("store slug is already taken")
	}

	options := make([]vo.ChannelKey, 0, len(cmd.PaymentOptions))
	for _, raw := range cmd.PaymentOptions {
		options = append(options, vo.ChannelKey(raw))
	}

	st, err := store.NewStore(cmd.OwnerID, cmd.Name, cmd.Slug, options, cmd.Instructions)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if cmd.WebhookURL != "" {
		st.SetWebhookURL(cmd.WebhookURL)
	}

	if err := uc.storeRepo.Create(ctx, st); err != nil {
		uc.logger.Errorw("failed to create store", "error", err, "owner_id", cmd.OwnerID)
		return nil, err
	}

	uc.logger.Infow("store created", "store_sid", st.SID(), "slug", st.Slug(), "owner_id", cmd.OwnerID)
	return &CreateStoreResult{Store: st}, nil
}
