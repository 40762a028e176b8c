package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"ta7wila/internal/domain/invoice"
	"ta7wila/internal/infrastructure/persistence/mappers"
	"ta7wila/internal/infrastructure/persistence/models"
	"ta7wila/internal/shared/db"
	apperrors "ta7wila/internal/shared/errors"
)

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

func (r *InvoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	model := mappers.InvoiceToModel(inv)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("invoice already exists for this period")
		}
		return fmt.Errorf("failed to create invoice: %w", err)
	}

	inv.SetDBID(model.ID)
	return nil
}

func (r *InvoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	model := mappers.InvoiceToModel(inv)

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.InvoiceModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"claim_count":  model.ClaimCount,
			"gross_amount": model.GrossAmount,
			"fee_amount":   model.FeeAmount,
			"status":       model.Status,
			"issued_at":    model.IssuedAt,
			"paid_at":      model.PaidAt,
			"updated_at":   model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update invoice: %w", result.Error)
	}
	return nil
}

func (r *InvoiceRepository) GetByDBID(ctx context.Context, dbID uint) (*invoice.Invoice, error) {
	var model models.InvoiceModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, dbID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("invoice not found")
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	return mappers.InvoiceToDomain(&model)
}

func (r *InvoiceRepository) GetByRef(ctx context.Context, ref string) (*invoice.Invoice, error) {
	var model models.InvoiceModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("ref = ?", ref).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("invoice not found")
		}
		return nil, fmt.Errorf("failed to get invoice by ref: %w", err)
	}

	return mappers.InvoiceToDomain(&model)
}

func (r *InvoiceRepository) GetByApplicationAndPeriod(ctx context.Context, applicationID uint, periodStart time.Time) (*invoice.Invoice, error) {
	var model models.InvoiceModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("application_id = ? AND period_start = ?", applicationID, periodStart).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("invoice not found")
		}
		return nil, fmt.Errorf("failed to get invoice by period: %w", err)
	}

	return mappers.InvoiceToDomain(&model)
}

func (r *InvoiceRepository) ListByApplication(ctx context.Context, applicationID uint, offset, limit int) ([]*invoice.Invoice, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var total int64
	if err := tx.Model(&models.InvoiceModel{}).
		Where("application_id = ?", applicationID).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count invoices: %w", err)
	}

	var invModels []models.InvoiceModel
	if err := tx.
		Where("application_id = ?", applicationID).
		Order("period_start DESC").
		Offset(offset).
		Limit(limit).
		Find(&invModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list invoices: %w", err)
	}

	invoices := make([]*invoice.Invoice, len(invModels))
	for i := range invModels {
		inv, err := mappers.InvoiceToDomain(&invModels[i])
		if err != nil {
			return nil, 0, err
		}
		invoices[i] = inv
	}

	return invoices, total, nil
}
