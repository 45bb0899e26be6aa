package types

import ierr "github.com/ardentinvoicing/ardent/internal/errors"

// BillingInterval is the cadence of a subscription or recurring schedule
type BillingInterval string

const (
	BillingIntervalMonthly   BillingInterval = "monthly"
	BillingIntervalQuarterly BillingInterval = "quarterly"
	BillingIntervalYearly    BillingInterval = "yearly"
)

func (i BillingInterval) String() string {
	return string(i)
}

func (i BillingInterval) Validate() error {
	allowed := []BillingInterval{
		BillingIntervalMonthly,
		BillingIntervalQuarterly,
		BillingIntervalYearly,
	}
	for _, interval := range allowed {
		if i == interval {
			return nil
		}
	}
	return ierr.NewError("invalid billing interval").
		WithHintf("billing interval must be one of %v", allowed).
		Mark(ierr.ErrValidation)
}

// Months returns the calendar length of one interval
func (i BillingInterval) Months() int {
	switch i {
	case BillingIntervalQuarterly:
		return 3
	case BillingIntervalYearly:
		return 12
	default:
		return 1
	}
}

// SubscriptionStatus is the local state of a gateway-backed subscription
type SubscriptionStatus string

const (
	SubscriptionStatusPending   SubscriptionStatus = "pending"
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusPastDue   SubscriptionStatus = "past_due"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
)

func (s SubscriptionStatus) String() string {
	return string(s)
}

func (s SubscriptionStatus) Validate() error {
	allowed := []SubscriptionStatus{
		SubscriptionStatusPending,
		SubscriptionStatusActive,
		SubscriptionStatusPastDue,
		SubscriptionStatusCancelled,
	}
	for _, status := range allowed {
		if s == status {
			return nil
		}
	}
	return ierr.NewError("invalid subscription status").
		WithHintf("subscription status must be one of %v", allowed).
		Mark(ierr.ErrValidation)
}
