package usecases

import (
	"context"
	"time"

	"ta7wila/internal/domain/payment"
	vo "ta7wila/internal/domain/payment/valueobjects"
	"ta7wila/internal/domain/store"
	"ta7wila/internal/domain/transaction"
	apperrors "ta7wila/internal/shared/errors"
	"ta7wila/internal/shared/logger"
)

type IngestCallbackCommand struct {
	StoreSID string
	Channel  string
	// DestinationValue is the receiving wallet number or InstaPay handle the
	// provider reported the money landing on.
	DestinationValue string
	SenderValue      string
	SenderName       string
	Amount           string
	OccurredAt       time.Time
	Metadata         map[string]interface{}
}

type IngestCallbackResult struct {
	Transaction *transaction.Transaction
}

// IngestCallbackUseCase records a provider payment notification in the
// matching pool. The callback must name an active destination of the store,
// otherwise it is refused rather than silently attributed.
type IngestCallbackUseCase struct {
	storeRepo       store.Repository
	destinationRepo payment.DestinationRepository
	transactionRepo transaction.Repository
	logger          logger.Interface
	currency        string
}

func NewIngestCallbackUseCase(
	storeRepo store.Repository,
	destinationRepo payment.DestinationRepository,
	transactionRepo transaction.Repository,
	log logger.Interface,
	currency string,
) *IngestCallbackUseCase {
	return &IngestCallbackUseCase{
		storeRepo:       storeRepo,
		destinationRepo: destinationRepo,
		transactionRepo: transactionRepo,
		logger:          log,
		currency:        currency,
	}
}

func (uc *IngestCallbackUseCase) Execute(ctx context.Context, cmd IngestCallbackCommand) (*IngestCallbackResult, error) {
	st, err := uc.storeRepo.GetBySID(ctx, cmd.StoreSID)
	if err != nil {
		return nil, err
	}
	if !st.IsActive() {
		return nil, apperrors.NewValidationError("store is not active")
	}

	channel := vo.ChannelKey(cmd.Channel)
	if !channel.IsValid() {
		return nil, apperrors.NewValidationError("invalid payment channel: " + cmd.Channel)
	}

	amount, err := vo.ParseAmount(cmd.Amount, uc.currency)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	dest, err := uc.resolveDestination(ctx, st.DBID(), channel, cmd.DestinationValue)
	if err != nil {
		return nil, err
	}

	tx, err := transaction.NewTransaction(
		st.DBID(),
		dest.DBID(),
		channel,
		cmd.SenderValue,
		cmd.SenderName,
		amount,
		cmd.OccurredAt,
	)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	tx.MergeMetadata(cmd.Metadata)

	if err := uc.transactionRepo.Create(ctx, tx); err != nil {
		uc.logger.Errorw("failed to record provider transaction",
			"error", err,
			"store_sid", cmd.StoreSID,
			"channel", channel,
		)
		return nil, err
	}

	uc.logger.Infow("provider transaction recorded",
		"transaction_ref", tx.Ref(),
		"store_sid", cmd.StoreSID,
		"channel", channel,
		"amount", amount.String(),
	)
	return &IngestCallbackResult{Transaction: tx}, nil
}

func (uc *IngestCallbackUseCase) resolveDestination(ctx context.Context, appID uint, channel vo.ChannelKey, value string) (*payment.Destination, error) {
	candidates, err := uc.destinationRepo.ListByApplicationAndChannel(ctx, appID, channel)
	if err != nil {
		return nil, err
	}

	normalized := value
	if !channel.IsInstapay() {
		normalized = vo.NormalizeMobile(value)
	}
	for _, d := range candidates {
		if d.Value() == normalized {
			return d, nil
		}
	}
	return nil, apperrors.NewNotFoundError("no active destination matches the callback")
}
