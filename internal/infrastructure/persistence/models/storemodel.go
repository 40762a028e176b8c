package models

import (
	"time"

	"gorm.io/datatypes"
)

type StoreModel struct {
	ID             uint   `gorm:"primaryKey"`
	SID            string `gorm:"column:sid;uniqueIndex;size:32;not null"`
	OwnerID        uint   `gorm:"index;not null"`
	Name           string `gorm:"size:120;not null"`
	Slug           string `gorm:"uniqueIndex;size:64;not null"`
	Status         string `gorm:"size:20;not null;default:'active'"`
	PaymentOptions datatypes.JSON `gorm:"column:payment_options"`
	Instructions   string `gorm:"type:text"`
	WebhookURL     string `gorm:"size:500"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (StoreModel) TableName() string {
	return "stores"
}
