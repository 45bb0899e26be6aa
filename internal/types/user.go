package types

import ierr "github.com/ardentinvoicing/ardent/internal/errors"

// UserRole determines which surface of the product a user can access
type UserRole string

const (
	// UserRoleSME owns a tenant and its dashboard
	UserRoleSME UserRole = "sme"
	// UserRoleSuper is a platform administrator with no tenant scoping
	UserRoleSuper UserRole = "super"
	// UserRoleClient is an invoice payer with read access to their invoices
	UserRoleClient UserRole = "client"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) Validate() error {
	allowed := []UserRole{
		UserRoleSME,
		UserRoleSuper,
		UserRoleClient,
	}
	for _, role := range allowed {
		if r == role {
			return nil
		}
	}
	return ierr.NewError("invalid user role").
		WithHintf("user role must be one of %v", allowed).
		Mark(ierr.ErrValidation)
}

// SubscriptionTier is the plan a SME user is on; it determines the
// monthly invoice quota
type SubscriptionTier string

const (
	SubscriptionTierFree       SubscriptionTier = "free"
	SubscriptionTierStarter    SubscriptionTier = "starter"
	SubscriptionTierPro        SubscriptionTier = "pro"
	SubscriptionTierEnterprise SubscriptionTier = "enterprise"
)

// UnlimitedQuota marks a tier without an invoice cap
const UnlimitedQuota = -1

var tierQuotas = map[SubscriptionTier]int{
	SubscriptionTierFree:       5,
	SubscriptionTierStarter:    50,
	SubscriptionTierPro:        500,
	SubscriptionTierEnterprise: UnlimitedQuota,
}

func (t SubscriptionTier) String() string {
	return string(t)
}

func (t SubscriptionTier) Validate() error {
	if _, ok := tierQuotas[t]; !ok {
		return ierr.NewError("invalid subscription tier").
			WithHintf("subscription tier must be one of %v", []SubscriptionTier{
				SubscriptionTierFree,
				SubscriptionTierStarter,
				SubscriptionTierPro,
				SubscriptionTierEnterprise,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// InvoiceQuota returns the monthly invoice allowance for the tier,
// UnlimitedQuota when the tier has no cap.
func (t SubscriptionTier) InvoiceQuota() int {
	if quota, ok := tierQuotas[t]; ok {
		return quota
	}
	return tierQuotas[SubscriptionTierFree]
}

// UserSubscriptionStatus mirrors the billing state of the user's plan
type UserSubscriptionStatus string

const (
	UserSubscriptionStatusActive    UserSubscriptionStatus = "active"
	UserSubscriptionStatusCancelled UserSubscriptionStatus = "cancelled"
	UserSubscriptionStatusPastDue   UserSubscriptionStatus = "past_due"
	UserSubscriptionStatusPending   UserSubscriptionStatus = "pending"
	UserSubscriptionStatusTrial     UserSubscriptionStatus = "trial"
)

func (s UserSubscriptionStatus) String() string {
	return string(s)
}
