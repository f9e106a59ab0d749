package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Payment struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	ClientID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	RequestID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Method          string          `gorm:"type:varchar(30);not null"`
	TransactionRef  string          `gorm:"type:varchar(100);not null"`
	ReceiptPath     string          `gorm:"type:text"`
	Status          string          `gorm:"type:varchar(20);not null;default:'processing';index"`
	RejectionReason string          `gorm:"type:text"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}
