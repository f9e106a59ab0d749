package entities

import (
	"time"

	"github.com/google/uuid"
)

// ActivityType represents dashboard activity feed entry types
type ActivityType string

const (
	ActivityServiceRequest   ActivityType = "service_request"
	ActivityPaymentSubmitted ActivityType = "payment_submitted"
	ActivityPaymentVerified  ActivityType = "payment_verified"
	ActivityPaymentRejected  ActivityType = "payment_rejected"
	ActivityDocumentUploaded ActivityType = "document_uploaded"
	ActivityStatusUpdated    ActivityType = "status_updated"
)

// UserActivity represents one activity feed row
type UserActivity struct {
	ID          uuid.UUID    `json:"id"`
	UserID      uuid.UUID    `json:"userId"`
	Type        ActivityType `json:"type"`
	Description string       `json:"description"`
	CreatedAt   time.Time    `json:"createdAt"`
}
