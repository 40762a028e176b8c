package mappers

import (
	"fmt"

	vo "ta7wila/internal/domain/payment/valueobjects"
	"ta7wila/internal/domain/transaction"
	"ta7wila/internal/infrastructure/persistence/models"
)

func TransactionToModel(t *transaction.Transaction) *models.TransactionModel {
	model := &models.TransactionModel{
		ID:            t.DBID(),
		Ref:           t.Ref(),
		ApplicationID: t.ApplicationID(),
		DestinationID: t.DestinationID(),
		Channel:       t.Channel().String(),
		SenderValue:   t.SenderValue(),
		SenderName:    t.SenderName(),
		Amount:        t.Amount().AmountInCents(),
		Currency:      t.Amount().Currency(),
		Status:        t.Status().String(),
		OccurredAt:    t.OccurredAt(),
		CreatedAt:     t.CreatedAt(),
		UpdatedAt:     t.UpdatedAt(),
	}

	if len(t.Metadata()) > 0 {
		model.Metadata = t.Metadata()
	}

	return model
}

func TransactionToDomain(model *models.TransactionModel) (*transaction.Transaction, error) {
	channel, err := vo.NewChannelKey(model.Channel)
	if err != nil {
		return nil, fmt.Errorf("invalid stored channel: %w", err)
	}

	status := transaction.Status(model.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid transaction status: %s", model.Status)
	}

	return transaction.ReconstructTransaction(
		model.ID,
		model.Ref,
		model.ApplicationID,
		model.DestinationID,
		channel,
		model.SenderValue,
		model.SenderName,
		vo.NewMoney(model.Amount, model.Currency),
		status,
		model.OccurredAt,
		model.Metadata,
		model.CreatedAt,
		model.UpdatedAt,
	), nil
}
