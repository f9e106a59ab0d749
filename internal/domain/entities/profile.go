package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// ProfileRole represents portal roles
type ProfileRole string

const (
	ProfileRoleClient ProfileRole = "client"
	ProfileRoleAdmin  ProfileRole = "admin"
)

// VerificationStatus represents profile verification status
type VerificationStatus string

const (
	VerificationUnverified VerificationStatus = "unverified"
	VerificationPending    VerificationStatus = "pending"
	VerificationVerified   VerificationStatus = "verified"
)

// Profile represents the application-level user record
type Profile struct {
	ID                 uuid.UUID          `json:"id"`
	Email              string             `json:"email"`
	FullName           string             `json:"fullName"`
	Phone              null.String        `json:"phone,omitempty"`
	BusinessName       null.String        `json:"businessName,omitempty"`
	TIN                null.String        `json:"tin,omitempty"`
	AccountType        null.String        `json:"accountType,omitempty"`
	AvatarPath         null.String        `json:"avatarPath,omitempty"`
	VerificationStatus VerificationStatus `json:"verificationStatus"`
	Role               ProfileRole        `json:"role"`
	PasswordHash       string             `json:"-"`
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
	DeletedAt          *time.Time         `json:"-"`
}

// RegisterInput represents input for account registration
type RegisterInput struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	FullName     string `json:"fullName" binding:"required,min=2,max=100"`
	Phone        string `json:"phone,omitempty"`
	BusinessName string `json:"businessName,omitempty"`
	AccountType  string `json:"accountType,omitempty"`
}

// LoginInput represents input for login
type LoginInput struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	UseSession bool   `json:"useSession"` // If true, store tokens in Redis and return SessionID
}

// GoogleSignInInput represents input for the Google OAuth exchange
type GoogleSignInInput struct {
	Code string `json:"code" binding:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	AccessToken  string   `json:"accessToken,omitempty"`
	RefreshToken string   `json:"refreshToken,omitempty"`
	SessionID    string   `json:"sessionId,omitempty"`
	Profile      *Profile `json:"profile"`
}

// UpdateProfileInput represents input for profile updates
type UpdateProfileInput struct {
	FullName     string `json:"fullName,omitempty"`
	Phone        string `json:"phone,omitempty"`
	BusinessName string `json:"businessName,omitempty"`
	TIN          string `json:"tin,omitempty"`
}
