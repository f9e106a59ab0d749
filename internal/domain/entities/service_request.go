package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// RequestStatus represents service request status
type RequestStatus string

const (
	RequestStatusPending        RequestStatus = "pending"
	RequestStatusInProgress     RequestStatus = "in-progress"
	RequestStatusReview         RequestStatus = "review"
	RequestStatusCompleted      RequestStatus = "completed"
	RequestStatusRequiresAction RequestStatus = "requires-action"
)

// ValidRequestStatus reports whether s is a known request status
func ValidRequestStatus(s RequestStatus) bool {
	switch s {
	case RequestStatusPending, RequestStatusInProgress, RequestStatusReview,
		RequestStatusCompleted, RequestStatusRequiresAction:
		return true
	}
	return false
}

// ServiceRequest represents a client's tax-service job
type ServiceRequest struct {
	ID              uuid.UUID       `json:"id"`
	ClientID        uuid.UUID       `json:"clientId"`
	ServiceType     string          `json:"serviceType"`
	Status          RequestStatus   `json:"status"`
	Amount          decimal.Decimal `json:"amount"`
	RejectionReason null.String     `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
	DeletedAt       *time.Time      `json:"-"`
}

// CreateRequestInput represents input for a new service request
type CreateRequestInput struct {
	ServiceType string `json:"serviceType" binding:"required,min=2,max=100"`
	Amount      string `json:"amount" binding:"required"`
}

// UpdateRequestStatusInput represents an admin status override
type UpdateRequestStatusInput struct {
	Status RequestStatus `json:"status" binding:"required"`
	Reason string        `json:"reason,omitempty"`
}
