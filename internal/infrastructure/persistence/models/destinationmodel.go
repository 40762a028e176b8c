package models

import (
	"time"
)

type DestinationModel struct {
	ID            uint   `gorm:"primaryKey"`
	SID           string `gorm:"column:sid;uniqueIndex;size:32;not null"`
	ApplicationID uint   `gorm:"index:idx_destinations_app_channel;not null"`
	Channel       string `gorm:"index:idx_destinations_app_channel;size:20;not null"`
	Value         string `gorm:"size:120;not null"`
	Active        bool   `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (DestinationModel) TableName() string {
	return "payment_destinations"
}
