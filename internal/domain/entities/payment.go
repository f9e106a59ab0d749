package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// PaymentMethod represents a supported mobile-money provider
type PaymentMethod string

const (
	PaymentMethodOrangeMoney  PaymentMethod = "orange_money"
	PaymentMethodMTNMomo      PaymentMethod = "mtn_momo"
	PaymentMethodExpressUnion PaymentMethod = "express_union"
)

// ValidPaymentMethod reports whether m is a known provider
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentMethodOrangeMoney, PaymentMethodMTNMomo, PaymentMethodExpressUnion:
		return true
	}
	return false
}

// PaymentStatus represents payment verification status
type PaymentStatus string

const (
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusVerified   PaymentStatus = "verified"
	PaymentStatusRejected   PaymentStatus = "rejected"
)

// MinTransactionRefLen is the minimum accepted length of a client-supplied
// transaction reference. References are trust-based self-reports and are
// never checked against the provider's ledger.
const MinTransactionRefLen = 8

// Payment represents a client-reported mobile-money transfer
type Payment struct {
	ID              uuid.UUID       `json:"id"`
	ClientID        uuid.UUID       `json:"clientId"`
	RequestID       uuid.UUID       `json:"requestId"`
	Amount          decimal.Decimal `json:"amount"`
	Method          PaymentMethod   `json:"method"`
	TransactionRef  string          `json:"transactionRef"`
	ReceiptPath     string          `json:"receiptPath,omitempty"`
	Status          PaymentStatus   `json:"status"`
	RejectionReason null.String     `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
	DeletedAt       *time.Time      `json:"-"`
}

// SubmitPaymentInput represents the receipt-upload step of the wizard.
// The receipt image arrives as a multipart file alongside these fields.
type SubmitPaymentInput struct {
	RequestID      string `form:"requestId" binding:"required"`
	Method         string `form:"method" binding:"required"`
	TransactionRef string `form:"transactionRef" binding:"required"`
	Amount         string `form:"amount" binding:"required"`
}

// RejectPaymentInput represents an admin rejection
type RejectPaymentInput struct {
	Reason string `json:"reason" binding:"required"`
}

// PaymentMethodInfo is the wizard's method/instructions payload
type PaymentMethodInfo struct {
	ID            PaymentMethod `json:"id"`
	Name          string        `json:"name"`
	AccountNumber string        `json:"accountNumber"`
	AccountName   string        `json:"accountName"`
}

// PaymentFilter narrows admin payment listings and exports
type PaymentFilter struct {
	Status PaymentStatus
	Search string
}
