package entities

import (
	"time"

	"github.com/google/uuid"
)

// RequestDocument represents an uploaded file's metadata row.
// The blob itself lives in storage under FilePath.
type RequestDocument struct {
	ID          uuid.UUID  `json:"id"`
	OwnerID     uuid.UUID  `json:"ownerId"`
	RequestID   *uuid.UUID `json:"requestId,omitempty"`
	FilePath    string     `json:"-"`
	FileName    string     `json:"fileName"`
	FileSize    int64      `json:"fileSize"`
	ContentType string     `json:"contentType"`
	CreatedAt   time.Time  `json:"createdAt"`
}
