package models

import (
	"time"
)

type VerificationModel struct {
	ID                   uint   `gorm:"primaryKey"`
	Ref                  string `gorm:"uniqueIndex;size:32;not null"`
	ApplicationID        uint   `gorm:"index;not null"`
	DestinationID        uint   `gorm:"index;not null"`
	Channel              string `gorm:"size:20;not null"`
	SenderValue          string `gorm:"size:120;not null"`
	Amount               int64  `gorm:"not null"`
	Currency             string `gorm:"size:10;not null;default:'EGP'"`
	Status               string `gorm:"size:20;not null;index"`
	MatchedTransactionID *uint  `gorm:"index"`
	MatchedAt            *time.Time
	ReviewerID           *uint
	DecidedAt            *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (VerificationModel) TableName() string {
	return "verifications"
}
