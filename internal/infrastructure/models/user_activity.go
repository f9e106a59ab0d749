package models

import (
	"time"

	"github.com/google/uuid"
)

type UserActivity struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Type        string    `gorm:"type:varchar(40);not null"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"index"`
}
