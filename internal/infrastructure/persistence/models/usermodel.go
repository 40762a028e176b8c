package models

import (
	"time"
)

type UserModel struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Name         string `gorm:"size:120;not null"`
	Mobile       string `gorm:"size:20"`
	Role         string `gorm:"size:20;not null;index"`
	Status       string `gorm:"size:20;not null;default:'active'"`
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (UserModel) TableName() string {
	return "users"
}
