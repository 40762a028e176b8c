package mappers

import (
	"fmt"

	vo "ta7wila/internal/domain/payment/valueobjects"
	"ta7wila/internal/domain/verification"
	"ta7wila/internal/infrastructure/persistence/models"
)

func VerificationToModel(v *verification.Verification) *models.VerificationModel {
	return &models.VerificationModel{
		ID:                   v.DBID(),
		Ref:                  v.Ref(),
		ApplicationID:        v.ApplicationID(),
		DestinationID:        v.DestinationID(),
		Channel:              v.Channel().String(),
		SenderValue:          v.Sender().Value(),
		Amount:               v.Amount().AmountInCents(),
		Currency:             v.Amount().Currency(),
		Status:               v.Status().String(),
		MatchedTransactionID: v.MatchedTransactionID(),
		MatchedAt:            v.MatchedAt(),
		ReviewerID:           v.ReviewerID(),
		DecidedAt:            v.DecidedAt(),
		CreatedAt:            v.CreatedAt(),
		UpdatedAt:            v.UpdatedAt(),
	}
}

func VerificationToDomain(model *models.VerificationModel) (*verification.Verification, error) {
	channel, err := vo.NewChannelKey(model.Channel)
	if err != nil {
		return nil, fmt.Errorf("invalid stored channel: %w", err)
	}

	// Stored sender values were normalized and validated on write; rebuild
	// without re-running public trust checks.
	sender := vo.ReconstructSenderIdentifier(model.SenderValue, channel)

	status := verification.Status(model.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid verification status: %s", model.Status)
	}

	return verification.ReconstructVerification(
		model.ID,
		model.Ref,
		model.ApplicationID,
		model.DestinationID,
		sender,
		vo.NewMoney(model.Amount, model.Currency),
		status,
		model.MatchedTransactionID,
		model.MatchedAt,
		model.ReviewerID,
		model.DecidedAt,
		model.CreatedAt,
		model.UpdatedAt,
	), nil
}
