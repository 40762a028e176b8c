package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"ta7wila/internal/domain/store"
	"ta7wila/internal/infrastructure/persistence/mappers"
	"ta7wila/internal/infrastructure/persistence/models"
	"ta7wila/internal/shared/db"
	apperrors "ta7wila/internal/shared/errors"
)

type StoreRepository struct {
	db *gorm.DB
}

func NewStoreRepository(db *gorm.DB) *StoreRepository {
	return &StoreRepository{db: db}
}

func (r *StoreRepository) Create(ctx context.Context, s *store.Store) error {
	model, err := mappers.StoreToModel(s)
	if err != nil {
		return err
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("store slug is already taken")
		}
		return fmt.Errorf("failed to create store: %w", err)
	}

	s.SetDBID(model.ID)
	return nil
}

func (r *StoreRepository) Update(ctx context.Context, s *store.Store) error {
	model, err := mappers.StoreToModel(s)
	if err != nil {
		return err
	}

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.StoreModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":            model.Name,
			"status":          model.Status,
			"payment_options": model.PaymentOptions,
			"instructions":    model.Instructions,
			"webhook_url":     model.WebhookURL,
			"updated_at":      model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update store: %w", result.Error)
	}
	return nil
}

func (r *StoreRepository) GetByDBID(ctx context.Context, dbID uint) (*store.Store, error) {
	var model models.StoreModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, dbID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("store not found")
		}
		return nil, fmt.Errorf("failed to get store: %w", err)
	}

	return mappers.StoreToDomain(&model)
}

func (r *StoreRepository) GetBySID(ctx context.Context, sid string) (*store.Store, error) {
	return r.getByColumn(ctx, "sid", sid)
}

func (r *StoreRepository) GetBySlug(ctx context.Context, slug string) (*store.Store, error) {
	return r.getByColumn(ctx, "slug", slug)
}

func (r *StoreRepository) getByColumn(ctx context.Context, column, value string) (*store.Store, error) {
	var model models.StoreModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where(column+" = ?", value).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("store not found")
		}
		return nil, fmt.Errorf("failed to get store by %s: %w", column, err)
	}

	return mappers.StoreToDomain(&model)
}

func (r *StoreRepository) ListByOwner(ctx context.Context, ownerID uint, offset, limit int) ([]*store.Store, int64, error) {
	return r.list(ctx, db.GetTxFromContext(ctx, r.db).Where("owner_id = ?", ownerID), offset, limit)
}

func (r *StoreRepository) List(ctx context.Context, offset, limit int) ([]*store.Store, int64, error) {
	return r.list(ctx, db.GetTxFromContext(ctx, r.db), offset, limit)
}

func (r *StoreRepository) list(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*store.Store, int64, error) {
	var total int64
	if err := tx.Model(&models.StoreModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count stores: %w", err)
	}

	var storeModels []models.StoreModel
	if err := tx.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&storeModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list stores: %w", err)
	}

	stores := make([]*store.Store, len(storeModels))
	for i := range storeModels {
		s, err := mappers.StoreToDomain(&storeModels[i])
		if err != nil {
			return nil, 0, err
		}
		stores[i] = s
	}

	return stores, total, nil
}

func (r *StoreRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64

	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.StoreModel{}).
		Where("slug = ?", slug).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check store slug: %w", err)
	}

	return count > 0, nil
}
