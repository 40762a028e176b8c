package mappers

import (
	"fmt"

	"ta7wila/internal/domain/payment"
	vo "ta7wila/internal/domain/payment/valueobjects"
	"ta7wila/internal/infrastructure/persistence/models"
)

func DestinationToModel(d *payment.Destination) *models.DestinationModel {
	return &models.DestinationModel{
		ID:            d.DBID(),
		SID:           d.SID(),
		ApplicationID: d.ApplicationID(),
		Channel:       d.Channel().String(),
		Value:         d.Value(),
		Active:        d.IsActive(),
		CreatedAt:     d.CreatedAt(),
		UpdatedAt:     d.UpdatedAt(),
	}
}

func DestinationToDomain(model *models.DestinationModel) (*payment.Destination, error) {
	channel, err := vo.NewChannelKey(model.Channel)
	if err != nil {
		return nil, fmt.Errorf("invalid stored channel: %w", err)
	}

	return payment.ReconstructDestination(
		model.ID,
		model.SID,
		model.ApplicationID,
		channel,
		model.Value,
		model.Active,
		model.CreatedAt,
		model.UpdatedAt,
	), nil
}
