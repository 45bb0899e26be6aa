package subscription

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ardentinvoicing/ardent/internal/types"
)

// Subscription is the local mirror of a gateway-billed plan subscription.
// The billing cycle processor and webhook handlers are the only writers.
type Subscription struct {
	ID                     string                   `json:"id" gorm:"primaryKey"`
	UserID                 string                   `json:"user_id" gorm:"index"`
	PlanID                 types.SubscriptionTier   `json:"plan_id"`
	Interval               types.BillingInterval    `json:"interval"`
	Amount                 decimal.Decimal          `json:"amount" gorm:"type:numeric"`
	Currency               string                   `json:"currency"`
	SubscriptionStatus     types.SubscriptionStatus `json:"subscription_status"`
	NextBillingDate        time.Time                `json:"next_billing_date"`
	PastDueAt              *time.Time               `json:"past_due_at,omitempty"`
	PaystackSubscriptionID *string                  `json:"paystack_subscription_id,omitempty"`
	PaystackCustomerCode   *string                  `json:"paystack_customer_code,omitempty"`
	types.BaseModel        `gorm:"embedded"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

// New returns a pending subscription awaiting gateway confirmation
func New(ctx context.Context, userID string, plan types.SubscriptionTier, interval types.BillingInterval) *Subscription {
	return &Subscription{
		ID:                 types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SUBSCRIPTION),
		UserID:             userID,
		PlanID:             plan,
		Interval:           interval,
		SubscriptionStatus: types.SubscriptionStatusPending,
		BaseModel:          types.GetDefaultBaseModel(ctx),
	}
}

// IsPastDueBeyond reports whether the subscription has been past_due for
// longer than the grace window
func (s *Subscription) IsPastDueBeyond(grace time.Duration, now time.Time) bool {
	if s.SubscriptionStatus != types.SubscriptionStatusPastDue || s.PastDueAt == nil {
		return false
	}
	return now.Sub(*s.PastDueAt) > grace
}
