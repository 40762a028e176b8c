package mappers

import (
	"encoding/json"
	"fmt"

	"ta7wila/internal/domain/payment/valueobjects"
	"ta7wila/internal/domain/store"
	"ta7wila/internal/infrastructure/persistence/models"
)

func StoreToModel(s *store.Store) (*models.StoreModel, error) {
	keys := make([]string, len(s.PaymentOptions()))
	for i, opt := range s.PaymentOptions() {
		keys[i] = opt.String()
	}
	optionsJSON, err := json.Marshal(keys)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payment options: %w", err)
	}

	return &models.StoreModel{
		ID:             s.DBID(),
		SID:            s.SID(),
		OwnerID:        s.OwnerID(),
		Name:           s.Name(),
		Slug:           s.Slug(),
		Status:         string(s.Status()),
		PaymentOptions: optionsJSON,
		Instructions:   s.Instructions(),
		WebhookURL:     s.WebhookURL(),
		CreatedAt:      s.CreatedAt(),
		UpdatedAt:      s.UpdatedAt(),
	}, nil
}

func StoreToDomain(model *models.StoreModel) (*store.Store, error) {
	status := store.Status(model.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid store status: %s", model.Status)
	}

	var keys []string
	if len(model.PaymentOptions) > 0 {
		if err := json.Unmarshal(model.PaymentOptions, &keys); err != nil {
			return nil, fmt.Errorf("failed to decode payment options: %w", err)
		}
	}
	options := make([]valueobjects.ChannelKey, 0, len(keys))
	for _, key := range keys {
		channel, err := valueobjects.NewChannelKey(key)
		if err != nil {
			return nil, fmt.Errorf("invalid stored payment option: %w", err)
		}
		options = append(options, channel)
	}

	return store.ReconstructStore(
		model.ID,
		model.SID,
		model.OwnerID,
		model.Name,
		model.Slug,
		status,
		options,
		model.Instructions,
		model.WebhookURL,
		model.CreatedAt,
		model.UpdatedAt,
	), nil
}
