package models

import (
	"time"

	"github.com/google/uuid"
)

// Staff roles. Customers authenticate separately via OTP and carry RoleCustomer.
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleFinance    = "finance"
	RoleCustomer   = "customer"
)

// User represents a staff user of the admin console
type User struct {
	BaseModel
	Email       string     `gorm:"unique;not null" json:"email" validate:"required,email"`
	Password    string     `gorm:"not null" json:"-"`
	Name        string     `gorm:"not null" json:"name" validate:"required"`
	Phone       string     `json:"phone"`
	Role        string     `gorm:"not null" json:"role" validate:"required,oneof=super_admin admin finance"`
	IsActive    bool       `gorm:"default:true" json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at"`
}

// OTPCode represents a one-time login code issued to a customer phone
type OTPCode struct {
	BaseModel
	Phone      string     `gorm:"not null;index" json:"phone"`
	Code       string     `gorm:"not null" json:"-"`
	ExpiresAt  time.Time  `gorm:"not null" json:"expires_at"`
	ConsumedAt *time.Time `json:"consumed_at"`
	Attempts   int        `gorm:"default:0" json:"attempts"`
}

// Consumed reports whether the code has already been used
func (o *OTPCode) Consumed() bool {
	return o.ConsumedAt != nil
}

// UpdateProfileRequest represents a request to update user profile
type UpdateProfileRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone"`
}

// ChangePasswordRequest represents a request to change user password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

// CreateUserRequest represents an admin request to create a staff user
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone"`
	Role     string `json:"role" validate:"required,oneof=super_admin admin finance"`
}

// RequestOTPRequest asks for a login code to be sent to a phone
type RequestOTPRequest struct {
	Phone string `json:"phone" validate:"required"`
}

// VerifyOTPRequest submits the received login code
type VerifyOTPRequest struct {
	Phone string `json:"phone" validate:"required"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
	Name  string `json:"name"`
}

// ActivityLog records an auditable action in the system
type ActivityLog struct {
	BaseModel
	ActorID    *uuid.UUID `gorm:"type:uuid;index" json:"actor_id"`
	ActorName  string     `json:"actor_name"`
	ActorRole  string     `json:"actor_role"`
	Action     string     `gorm:"not null;index" json:"action"`
	Resource   string     `gorm:"not null" json:"resource"`
	ResourceID *uuid.UUID `gorm:"type:uuid" json:"resource_id"`
	Detail     string     `json:"detail"`
	Severity   string     `gorm:"default:'info'" json:"severity"`
	IPAddress  string     `json:"ip_address"`
}

// Activity log actions
const (
	ActionLogin          = "login"
	ActionOTPIssued      = "otp_issued"
	ActionOTPVerified    = "otp_verified"
	ActionCreated        = "created"
	ActionUpdated        = "updated"
	ActionDeleted        = "deleted"
	ActionStatusChanged  = "status_changed"
	ActionScheduleSaved  = "schedule_saved"
	ActionOrderPlaced    = "order_placed"
	ActionPaymentUpdated = "payment_updated"
)
