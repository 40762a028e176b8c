package models

import (
	"time"
)

type InvoiceModel struct {
	ID            uint      `gorm:"primaryKey"`
	Ref           string    `gorm:"uniqueIndex;size:32;not null"`
	ApplicationID uint      `gorm:"uniqueIndex:idx_invoices_app_period;not null"`
	PeriodStart   time.Time `gorm:"uniqueIndex:idx_invoices_app_period;not null"`
	PeriodEnd     time.Time `gorm:"not null"`
	ClaimCount    int       `gorm:"not null"`
	GrossAmount   int64     `gorm:"not null"`
	FeeAmount     int64     `gorm:"not null"`
	Currency      string    `gorm:"size:10;not null;default:'EGP'"`
	Status        string    `gorm:"size:20;not null;index"`
	IssuedAt      *time.Time
	PaidAt        *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (InvoiceModel) TableName() string {
	return "invoices"
}
