package user

import (
	"context"

	"github.com/ardentinvoicing/ardent/internal/types"
)

// User represents an account on the platform. SME users own a tenant;
// super admins have no tenant scoping; clients only pay invoices.
type User struct {
	ID                 string                       `json:"id" gorm:"primaryKey"`
	Email              string                       `json:"email" gorm:"uniqueIndex"`
	PasswordHash       string                       `json:"-"`
	Role               types.UserRole               `json:"role"`
	OwnedTenantID      *string                      `json:"tenant_id,omitempty"`
	SubscriptionTier   types.SubscriptionTier       `json:"subscription_tier"`
	SubscriptionStatus types.UserSubscriptionStatus `json:"subscription_status"`
	InvoiceQuotaUsed   int                          `json:"invoice_quota_used"`
	IsUnlimitedFree    bool                         `json:"is_unlimited_free"`
	types.BaseModel    `gorm:"embedded"`
}

func (User) TableName() string {
	return "users"
}

// New returns a user with defaults for a fresh SME signup
func New(ctx context.Context, email string, role types.UserRole) *User {
	return &User{
		ID:                 types.GenerateUUIDWithPrefix(types.UUID_PREFIX_USER),
		Email:              email,
		Role:               role,
		SubscriptionTier:   types.SubscriptionTierFree,
		SubscriptionStatus: types.UserSubscriptionStatusActive,
		BaseModel:          types.GetDefaultBaseModel(ctx),
	}
}

// HasQuotaRemaining reports whether the user may create another invoice in
// the current billing period. The unlimited override makes this a no-op
// regardless of tier.
func (u *User) HasQuotaRemaining() bool {
	if u.IsUnlimitedFree {
		return true
	}
	quota := u.SubscriptionTier.InvoiceQuota()
	if quota == types.UnlimitedQuota {
		return true
	}
	return u.InvoiceQuotaUsed < quota
}
