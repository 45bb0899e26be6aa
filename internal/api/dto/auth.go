package dto

import (
	ierr "github.com/ardentinvoicing/ardent/internal/errors"
	"github.com/ardentinvoicing/ardent/internal/types"
)

// SignupRequest registers a new SME user together with their tenant
type SignupRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	BusinessName string `json:"business_name" binding:"required"`
	ContactPhone string `json:"contact_phone,omitempty"`
	Country      string `json:"country,omitempty"`
}

func (r *SignupRequest) Validate() error {
	if r.Email == "" || r.Password == "" {
		return ierr.NewError("missing credentials").
			WithHint("email and password are required").
			Mark(ierr.ErrValidation)
	}
	if len(r.Password) < 8 {
		return ierr.NewError("password too short").
			WithHint("password must be at least 8 characters").
			Mark(ierr.ErrValidation)
	}
	if r.BusinessName == "" {
		return ierr.NewError("missing business name").
			WithHint("business_name is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// LoginRequest authenticates an existing user
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (r *LoginRequest) Validate() error {
	if r.Email == "" || r.Password == "" {
		return ierr.NewError("missing credentials").
			WithHint("email and password are required").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// AuthResponse carries the session token and the signed-in user's view
type AuthResponse struct {
	Token    string                 `json:"token"`
	UserID   string                 `json:"user_id"`
	TenantID string                 `json:"tenant_id,omitempty"`
	Email    string                 `json:"email"`
	Role     types.UserRole         `json:"role"`
	Tier     types.SubscriptionTier `json:"subscription_tier"`
}
