package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	vo "ta7wila/internal/domain/payment/valueobjects"
	"ta7wila/internal/domain/transaction"
	"ta7wila/internal/infrastructure/persistence/mappers"
	"ta7wila/internal/infrastructure/persistence/models"
	"ta7wila/internal/shared/db"
	apperrors "ta7wila/internal/shared/errors"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, t *transaction.Transaction) error {
	model := mappers.TransactionToModel(t)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	t.SetDBID(model.ID)
	return nil
}

func (r *TransactionRepository) Update(ctx context.Context, t *transaction.Transaction) error {
	model := mappers.TransactionToModel(t)

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.TransactionModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"status":     model.Status,
			"metadata":   model.Metadata,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update transaction: %w", result.Error)
	}
	return nil
}

func (r *TransactionRepository) GetByDBID(ctx context.Context, dbID uint) (*transaction.Transaction, error) {
	var model models.TransactionModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, dbID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("transaction not found")
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	return mappers.TransactionToDomain(&model)
}

func (r *TransactionRepository) GetByRef(ctx context.Context, ref string) (*transaction.Transaction, error) {
	var model models.TransactionModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("ref = ?", ref).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("transaction not found")
		}
		return nil, fmt.Errorf("failed to get transaction by ref: %w", err)
	}

	return mappers.TransactionToDomain(&model)
}

func (r *TransactionRepository) FindOldestUnclaimedMatch(ctx context.Context, destinationID uint, senderValue string, amount vo.Money) (*transaction.Transaction, error) {
	var model models.TransactionModel

	err := db.GetTxFromContext(ctx, r.db).
		Where("destination_id = ? AND sender_value = ? AND amount = ? AND currency = ? AND status = ?",
			destinationID, senderValue, amount.AmountInCents(), amount.Currency(), transaction.StatusUnclaimed.String()).
		Order("occurred_at ASC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find matching transaction: %w", err)
	}

	return mappers.TransactionToDomain(&model)
}

func (r *TransactionRepository) ListByApplication(ctx context.Context, applicationID uint, page, pageSize int) ([]*transaction.Transaction, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var total int64
	if err := tx.Model(&models.TransactionModel{}).
		Where("application_id = ?", applicationID).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	var txModels []models.TransactionModel
	if err := tx.
		Where("application_id = ?", applicationID).
		Order("occurred_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&txModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}

	transactions := make([]*transaction.Transaction, len(txModels))
	for i := range txModels {
		t, err := mappers.TransactionToDomain(&txModels[i])
		if err != nil {
			return nil, 0, err
		}
		transactions[i] = t
	}

	return transactions, total, nil
}
