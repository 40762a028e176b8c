package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"ta7wila/internal/domain/verification"
	"ta7wila/internal/infrastructure/persistence/mappers"
	"ta7wila/internal/infrastructure/persistence/models"
	"ta7wila/internal/shared/db"
	apperrors "ta7wila/internal/shared/errors"
)

type VerificationRepository struct {
	db *gorm.DB
}

func NewVerificationRepository(db *gorm.DB) *VerificationRepository {
	return &VerificationRepository{db: db}
}

func (r *VerificationRepository) Create(ctx context.Context, v *verification.Verification) error {
	model := mappers.VerificationToModel(v)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create verification: %w", err)
	}

	v.SetDBID(model.ID)
	return nil
}

func (r *VerificationRepository) Update(ctx context.Context, v *verification.Verification) error {
	model := mappers.VerificationToModel(v)

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.VerificationModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"status":                 model.Status,
			"matched_transaction_id": model.MatchedTransactionID,
			"matched_at":             model.MatchedAt,
			"reviewer_id":            model.ReviewerID,
			"decided_at":             model.DecidedAt,
			"updated_at":             model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update verification: %w", result.Error)
	}
	return nil
}

func (r *VerificationRepository) GetByDBID(ctx context.Context, dbID uint) (*verification.Verification, error) {
	var model models.VerificationModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, dbID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("verification not found")
		}
		return nil, fmt.Errorf("failed to get verification: %w", err)
	}

	return mappers.VerificationToDomain(&model)
}

func (r *VerificationRepository) GetByRef(ctx context.Context, ref string) (*verification.Verification, error) {
	var model models.VerificationModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("ref = ?", ref).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("verification not found")
		}
		return nil, fmt.Errorf("failed to get verification by ref: %w", err)
	}

	return mappers.VerificationToDomain(&model)
}

func (r *VerificationRepository) ListByApplication(ctx context.Context, applicationID uint, statuses []verification.Status, offset, limit int) ([]*verification.Verification, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).
		Model(&models.VerificationModel{}).
		Where("application_id = ?", applicationID)

	if len(statuses) > 0 {
		values := make([]string, len(statuses))
		for i, s := range statuses {
			values[i] = s.String()
		}
		query = query.Where("status IN ?", values)
	}

	return r.page(query, offset, limit)
}

// ListOpen returns verifications awaiting admin action across all stores,
// pending first, oldest first.
func (r *VerificationRepository) ListOpen(ctx context.Context, offset, limit int) ([]*verification.Verification, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).
		Model(&models.VerificationModel{}).
		Where("status IN ?", []string{
			verification.StatusPending.String(),
			verification.StatusMatched.String(),
		})

	return r.page(query, offset, limit)
}

func (r *VerificationRepository) VerifiedTotals(ctx context.Context, applicationID uint, from, to time.Time) (int64, int64, error) {
	var result struct {
		ClaimCount int64
		GrossCents int64
	}

	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.VerificationModel{}).
		Select("COUNT(*) AS claim_count, COALESCE(SUM(amount), 0) AS gross_cents").
		Where("application_id = ? AND status = ? AND decided_at >= ? AND decided_at <= ?",
			applicationID, verification.StatusVerified.String(), from, to).
		Scan(&result).Error
	if err != nil {
		return 0, 0, fmt.Errorf("failed to sum verified claims: %w", err)
	}

	return result.ClaimCount, result.GrossCents, nil
}

func (r *VerificationRepository) page(query *gorm.DB, offset, limit int) ([]*verification.Verification, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count verifications: %w", err)
	}

	var vModels []models.VerificationModel
	if err := query.
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&vModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list verifications: %w", err)
	}

	verifications := make([]*verification.Verification, len(vModels))
	for i := range vModels {
		v, err := mappers.VerificationToDomain(&vModels[i])
		if err != nil {
			return nil, 0, err
		}
		verifications[i] = v
	}

	return verifications, total, nil
}
