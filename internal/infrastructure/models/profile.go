package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Profile struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Email              string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	FullName           string    `gorm:"type:varchar(100);not null"`
	Phone              string    `gorm:"type:varchar(30)"`
	BusinessName       string    `gorm:"type:varchar(255)"`
	TIN                string    `gorm:"type:varchar(50)"`
	AccountType        string    `gorm:"type:varchar(50)"`
	AvatarPath         string    `gorm:"type:text"`
	VerificationStatus string    `gorm:"type:varchar(20);not null;default:'unverified'"`
	Role               string    `gorm:"type:varchar(20);not null;default:'client'"`
	PasswordHash       string    `gorm:"type:varchar(255)"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeletedAt          gorm.DeletedAt `gorm:"index"`
}
