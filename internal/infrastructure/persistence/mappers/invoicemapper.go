package mappers

import (
	"fmt"

	"ta7wila/internal/domain/invoice"
	vo "ta7wila/internal/domain/payment/valueobjects"
	"ta7wila/internal/infrastructure/persistence/models"
)

func InvoiceToModel(inv *invoice.Invoice) *models.InvoiceModel {
	return &models.InvoiceModel{
		ID:            inv.DBID(),
		Ref:           inv.Ref(),
		ApplicationID: inv.ApplicationID(),
		PeriodStart:   inv.PeriodStart(),
		PeriodEnd:     inv.PeriodEnd(),
		ClaimCount:    inv.ClaimCount(),
		GrossAmount:   inv.GrossAmount().AmountInCents(),
		FeeAmount:     inv.FeeAmount().AmountInCents(),
		Currency:      inv.GrossAmount().Currency(),
		Status:        string(inv.Status()),
		IssuedAt:      inv.IssuedAt(),
		PaidAt:        inv.PaidAt(),
		CreatedAt:     inv.CreatedAt(),
		UpdatedAt:     inv.UpdatedAt(),
	}
}

func InvoiceToDomain(model *models.InvoiceModel) (*invoice.Invoice, error) {
	status := invoice.Status(model.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid invoice status: %s", model.Status)
	}

	return invoice.ReconstructInvoice(
		model.ID,
		model.Ref,
		model.ApplicationID,
		model.PeriodStart,
		model.PeriodEnd,
		model.ClaimCount,
		vo.NewMoney(model.GrossAmount, model.Currency),
		vo.NewMoney(model.FeeAmount, model.Currency),
		status,
		model.IssuedAt,
		model.PaidAt,
		model.CreatedAt,
		model.UpdatedAt,
	), nil
}
