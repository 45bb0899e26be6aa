package service

import (
	"context"
	"time"

	"github.com/ardentinvoicing/ardent/internal/domain/subscription"
	"github.com/ardentinvoicing/ardent/internal/email"
	"github.com/ardentinvoicing/ardent/internal/types"
)

// cancelSubscription cancels the subscription and returns its owner to the
// free tier in one transaction. Shared by the webhook handler, the billing
// processor and the past-due sweep.
func cancelSubscription(ctx context.Context, params ServiceParams, notifications NotificationService, sub *subscription.Subscription, reason string) error {
	u, err := params.UserRepo.Get(ctx, sub.UserID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	err = params.DB.WithTx(ctx, func(txCtx context.Context) error {
		sub.SubscriptionStatus = types.SubscriptionStatusCancelled
		sub.UpdatedAt = now
		if err := params.SubscriptionRepo.Update(txCtx, sub); err != nil {
			return err
		}

		u.SubscriptionTier = types.SubscriptionTierFree
		u.SubscriptionStatus = types.UserSubscriptionStatusCancelled
		u.UpdatedAt = now
		return params.UserRepo.Update(txCtx, u)
	})
	if err != nil {
		return err
	}

	params.Logger.Infow("cancelled subscription",
		"subscription_id", sub.ID,
		"user_id", u.ID,
		"reason", reason)

	userCtx := types.SetTenantID(ctx, u.TenantID)
	if err := notifications.Notify(userCtx, u.ID, types.NotificationTypeWarning,
		"Subscription cancelled",
		"Your "+sub.PlanID.String()+" subscription was "+reason); err != nil {
		params.Logger.Errorw("failed to notify subscription cancellation", "error", err)
	}

	_ = params.Email.SendTemplate(ctx, u.Email, "Your subscription was cancelled",
		email.TemplateSubscriptionCancelled, map[string]any{
			"Name": u.Email,
			"Plan": sub.PlanID.String(),
		})

	return nil
}
