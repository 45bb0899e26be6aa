package dto

import (
	ierr "github.com/ardentinvoicing/ardent/internal/errors"
	"github.com/ardentinvoicing/ardent/internal/types"
)

// InitiatePaymentResponse is the hosted checkout handle for an invoice
// payment
type InitiatePaymentResponse struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

// SubscribeRequest starts a paid plan subscription via hosted checkout
type SubscribeRequest struct {
	Plan     types.SubscriptionTier `json:"plan" binding:"required"`
	Interval types.BillingInterval  `json:"interval" binding:"required"`
}

func (r *SubscribeRequest) Validate() error {
	if err := r.Plan.Validate(); err != nil {
		return err
	}
	if r.Plan == types.SubscriptionTierFree {
		return ierr.NewError("free plan needs no subscription").
			WithHint("choose a paid plan to subscribe").
			Mark(ierr.ErrValidation)
	}
	return r.Interval.Validate()
}

// SubscriptionResponse is the API view of the caller's subscription
type SubscriptionResponse struct {
	ID              string                   `json:"id"`
	Plan            types.SubscriptionTier   `json:"plan"`
	Interval        types.BillingInterval    `json:"interval"`
	Status          types.SubscriptionStatus `json:"status"`
	NextBillingDate string                   `json:"next_billing_date,omitempty"`
}
