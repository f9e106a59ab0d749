package models

import (
	"time"

	"github.com/google/uuid"
)

type RequestDocument struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	OwnerID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	RequestID   *uuid.UUID `gorm:"type:uuid;index"`
	FilePath    string     `gorm:"type:text;not null"`
	FileName    string     `gorm:"type:varchar(255);not null"`
	FileSize    int64      `gorm:"not null;default:0"`
	ContentType string     `gorm:"type:varchar(100)"`
	CreatedAt   time.Time
}
