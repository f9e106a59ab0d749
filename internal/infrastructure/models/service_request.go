package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ServiceRequest struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	ClientID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ServiceType     string          `gorm:"type:varchar(100);not null"`
	Status          string          `gorm:"type:varchar(20);not null;default:'pending';index"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	RejectionReason string          `gorm:"type:text"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}
