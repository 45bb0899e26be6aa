package service

import (
	"context"
	"time"

	"github.com/ardentinvoicing/ardent/internal/domain/subscription"
	"github.com/ardentinvoicing/ardent/internal/email"
	"github.com/ardentinvoicing/ardent/internal/paystack"
	"github.com/ardentinvoicing/ardent/internal/types"
)

// BillingService is the subscription billing cycle processor. Each run
// rolls due subscriptions into their next period with a fresh invoice
// quota, reconciles local state against the gateway, and cancels
// subscriptions that stayed past_due beyond the grace window.
type BillingService interface {
	ProcessDueSubscriptions(ctx context.Context) (*JobResult, error)
	SweepPastDue(ctx context.Context) (*JobResult, error)
}

type billingService struct {
	ServiceParams
	notifications NotificationService
}

// NewBillingService creates a new billing service
func NewBillingService(params ServiceParams, notifications NotificationService) BillingService {
	return &billingService{ServiceParams: params, notifications: notifications}
}

func (s *billingService) ProcessDueSubscriptions(ctx context.Context) (*JobResult, error) {
	now := time.Now().UTC()
	due, err := s.SubscriptionRepo.ListDue(ctx, now)
	if err != nil {
		return nil, err
	}

	result := &JobResult{Processed: len(due)}
	for _, sub := range due {
		if err := s.rollPeriod(ctx, sub, now); err != nil {
			s.Logger.Errorw("failed to process billing cycle",
				"subscription_id", sub.ID,
				"error", err)
			result.fail(sub.ID, err)
			continue
		}
		result.ok(sub.ID, "rolled to "+sub.NextBillingDate.Format("2006-01-02"))
	}

	s.Logger.Infow("billing cycle run complete",
		"processed", result.Processed,
		"succeeded", result.Succeeded,
		"errors", result.Errors)
	return result, nil
}

// rollPeriod advances one subscription into its next billing period. The
// quota reset is unconditional: collection problems surface through
// payment-failure webhooks and the past-due sweep, never by silently
// withholding the allowance.
func (s *billingService) rollPeriod(ctx context.Context, sub *subscription.Subscription, now time.Time) error {
	gatewayStatus := s.reconcileWithGateway(ctx, sub)
	switch gatewayStatus {
	case paystack.GatewayStatusCancelled, paystack.GatewayStatusCompleted:
		return cancelSubscription(ctx, s.ServiceParams, s.notifications, sub, "cancelled by the payment gateway")
	case paystack.GatewayStatusAttention:
		if sub.SubscriptionStatus != types.SubscriptionStatusPastDue {
			sub.SubscriptionStatus = types.SubscriptionStatusPastDue
			sub.PastDueAt = &now
			s.sendPastDueNotice(ctx, sub)
		}
	}

	return s.DB.WithTx(ctx, func(txCtx context.Context) error {
		next := sub.NextBillingDate
		for !next.After(now) {
			next = types.AddClampedDate(next, 0, sub.Interval.Months(), 0)
		}
		sub.NextBillingDate = next
		sub.UpdatedAt = now
		if err := s.SubscriptionRepo.Update(txCtx, sub); err != nil {
			return err
		}

		if err := s.UserRepo.ResetQuota(txCtx, sub.UserID); err != nil {
			return err
		}

		s.Logger.Infow("rolled billing period",
			"subscription_id", sub.ID,
			"user_id", sub.UserID,
			"next_billing_date", sub.NextBillingDate,
			"status", sub.SubscriptionStatus)
		return nil
	})
}

// sendPastDueNotice marks the owner past due and sends the notice; the
// roll itself proceeds regardless
func (s *billingService) sendPastDueNotice(ctx context.Context, sub *subscription.Subscription) {
	u, err := s.UserRepo.Get(ctx, sub.UserID)
	if err != nil {
		s.Logger.Errorw("past-due subscription references unknown user",
			"subscription_id", sub.ID,
			"user_id", sub.UserID)
		return
	}

	u.SubscriptionStatus = types.UserSubscriptionStatusPastDue
	u.UpdatedAt = time.Now().UTC()
	if err := s.UserRepo.Update(ctx, u); err != nil {
		s.Logger.Errorw("failed to mark user past due", "user_id", u.ID, "error", err)
	}

	userCtx := types.SetTenantID(ctx, u.TenantID)
	if err := s.notifications.Notify(userCtx, u.ID, types.NotificationTypeWarning,
		"Payment needs attention",
		"We could not collect payment for your "+sub.PlanID.String()+" subscription"); err != nil {
		s.Logger.Errorw("failed to notify past-due subscription", "error", err)
	}

	_ = s.Email.SendTemplate(ctx, u.Email, "Action needed: payment failed",
		email.TemplateSubscriptionPastDue, map[string]any{
			"Name": u.Email,
			"Plan": sub.PlanID.String(),
		})
}

// reconcileWithGateway fetches the gateway's view; an unreachable gateway
// leaves local state authoritative for this run
func (s *billingService) reconcileWithGateway(ctx context.Context, sub *subscription.Subscription) paystack.GatewaySubscriptionStatus {
	if sub.PaystackSubscriptionID == nil {
		return ""
	}
	remote, err := s.Paystack.FetchSubscription(ctx, *sub.PaystackSubscriptionID)
	if err != nil {
		s.Logger.Warnw("gateway reconciliation failed, keeping local state",
			"subscription_id", sub.ID,
			"error", err)
		return ""
	}
	return remote.Status
}

func (s *billingService) SweepPastDue(ctx context.Context) (*JobResult, error) {
	now := time.Now().UTC()
	grace := time.Duration(s.Config.Cron.PastDueGraceDays) * 24 * time.Hour

	pastDue, err := s.SubscriptionRepo.ListByStatus(ctx, types.SubscriptionStatusPastDue)
	if err != nil {
		return nil, err
	}

	result := &JobResult{Processed: len(pastDue)}
	for _, sub := range pastDue {
		if !sub.IsPastDueBeyond(grace, now) {
			result.skip(sub.ID, "within grace window")
			continue
		}
		if err := cancelSubscription(ctx, s.ServiceParams, s.notifications, sub, "cancelled after an unpaid grace period"); err != nil {
			s.Logger.Errorw("failed to cancel past-due subscription",
				"subscription_id", sub.ID,
				"error", err)
			result.fail(sub.ID, err)
			continue
		}
		result.ok(sub.ID, "cancelled")
	}

	s.Logger.Infow("past-due sweep complete",
		"processed", result.Processed,
		"cancelled", result.Succeeded,
		"errors", result.Errors)
	return result, nil
}
