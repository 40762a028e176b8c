package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

type TransactionModel struct {
	ID            uint   `gorm:"primaryKey"`
	Ref           string `gorm:"uniqueIndex;size:32;not null"`
	ApplicationID uint   `gorm:"index;not null"`
	DestinationID uint   `gorm:"index:idx_transactions_match;not null"`
	Channel       string `gorm:"size:20;not null"`
	SenderValue   string `gorm:"index:idx_transactions_match;size:120;not null"`
	SenderName    string `gorm:"size:120"`
	Amount        int64  `gorm:"index:idx_transactions_match;not null"`
	Currency      string `gorm:"size:10;not null;default:'EGP'"`
	Status        string `gorm:"size:20;not null;index"`
	OccurredAt    time.Time `gorm:"not null"`
	Metadata      JSONB  `gorm:"type:json"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (TransactionModel) TableName() string {
	return "provider_transactions"
}

type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = make(map[string]interface{})
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, j)
}
