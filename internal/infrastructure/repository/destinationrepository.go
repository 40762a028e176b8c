package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"ta7wila/internal/domain/payment"
	vo "ta7wila/internal/domain/payment/valueobjects"
	"ta7wila/internal/infrastructure/persistence/mappers"
	"ta7wila/internal/infrastructure/persistence/models"
	"ta7wila/internal/shared/db"
	apperrors "ta7wila/internal/shared/errors"
)

type DestinationRepository struct {
	db *gorm.DB
}

func NewDestinationRepository(db *gorm.DB) *DestinationRepository {
	return &DestinationRepository{db: db}
}

func (r *DestinationRepository) Create(ctx context.Context, d *payment.Destination) error {
	model := mappers.DestinationToModel(d)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create destination: %w", err)
	}

	d.SetDBID(model.ID)
	return nil
}

func (r *DestinationRepository) Update(ctx context.Context, d *payment.Destination) error {
	model := mappers.DestinationToModel(d)

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.DestinationModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"active":     model.Active,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update destination: %w", result.Error)
	}
	return nil
}

func (r *DestinationRepository) GetByDBID(ctx context.Context, dbID uint) (*payment.Destination, error) {
	var model models.DestinationModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, dbID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("payment destination not found")
		}
		return nil, fmt.Errorf("failed to get destination: %w", err)
	}

	return mappers.DestinationToDomain(&model)
}

func (r *DestinationRepository) GetBySID(ctx context.Context, sid string) (*payment.Destination, error) {
	var model models.DestinationModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("sid = ?", sid).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("payment destination not found")
		}
		return nil, fmt.Errorf("failed to get destination by sid: %w", err)
	}

	return mappers.DestinationToDomain(&model)
}

func (r *DestinationRepository) ListByApplication(ctx context.Context, applicationID uint) ([]*payment.Destination, error) {
	var destModels []models.DestinationModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("application_id = ?", applicationID).
		Order("created_at ASC").
		Find(&destModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list destinations: %w", err)
	}

	return r.toDomain(destModels)
}

func (r *DestinationRepository) ListByApplicationAndChannel(ctx context.Context, applicationID uint, channel vo.ChannelKey) ([]*payment.Destination, error) {
	var destModels []models.DestinationModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("application_id = ? AND channel = ? AND active = ?", applicationID, channel.String(), true).
		Order("created_at ASC").
		Find(&destModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list destinations by channel: %w", err)
	}

	return r.toDomain(destModels)
}

func (r *DestinationRepository) toDomain(destModels []models.DestinationModel) ([]*payment.Destination, error) {
	destinations := make([]*payment.Destination, len(destModels))
	for i := range destModels {
		d, err := mappers.DestinationToDomain(&destModels[i])
		if err != nil {
			return nil, err
		}
		destinations[i] = d
	}
	return destinations, nil
}
