package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/ardentinvoicing/ardent/internal/domain/subscription"
	"github.com/ardentinvoicing/ardent/internal/domain/webhookevent"
	"github.com/ardentinvoicing/ardent/internal/email"
	ierr "github.com/ardentinvoicing/ardent/internal/errors"
	"github.com/ardentinvoicing/ardent/internal/paystack"
	"github.com/ardentinvoicing/ardent/internal/types"
)

// WebhookService applies Paystack webhook events. Signature failures are
// the only rejection; everything else is acknowledged so the gateway does
// not retry forever. Events that reference unknown entities are logged
// and dropped. Dedup rows make at-least-once delivery exactly-once.
type WebhookService interface {
	ProcessPaystackWebhook(ctx context.Context, payload []byte, signature string) error
}

type webhookService struct {
	ServiceParams
	invoices      InvoiceService
	notifications NotificationService
}

// NewWebhookService creates a new webhook service
func NewWebhookService(params ServiceParams, invoices InvoiceService, notifications NotificationService) WebhookService {
	return &webhookService{
		ServiceParams: params,
		invoices:      invoices,
		notifications: notifications,
	}
}

func (s *webhookService) ProcessPaystackWebhook(ctx context.Context, payload []byte, signature string) error {
	if err := s.Paystack.VerifyWebhookSignature(payload, signature); err != nil {
		return err
	}

	event, err := s.Paystack.ParseWebhookEvent(payload)
	if err != nil {
		// Verified but unparseable; ack and drop
		s.Logger.Errorw("dropping malformed webhook payload", "error", err)
		return nil
	}

	key := event.Key()
	if key != "" {
		err := s.WebhookEventRepo.MarkProcessed(ctx, &webhookevent.ProcessedEvent{
			EventID:     key,
			EventType:   string(event.Type),
			ProcessedAt: time.Now().UTC(),
		})
		if ierr.IsAlreadyExists(err) {
			s.Logger.Infow("skipping replayed webhook event", "event_key", key, "event_type", event.Type)
			return nil
		}
		if err != nil {
			return err
		}
	} else {
		s.Logger.Warnw("webhook event has no dedup key, processing without replay protection",
			"event_type", event.Type)
	}

	switch event.Type {
	case paystack.EventChargeSuccess:
		return s.handleChargeSuccess(ctx, event.Data)
	case paystack.EventSubscriptionCreate:
		return s.handleSubscriptionCreate(ctx, event.Data)
	case paystack.EventSubscriptionUpdate:
		return s.handleSubscriptionUpdate(ctx, event.Data)
	case paystack.EventSubscriptionDisable:
		return s.handleSubscriptionDisable(ctx, event.Data)
	case paystack.EventInvoicePaymentFail:
		return s.handlePaymentFailed(ctx, event.Data)
	default:
		s.Logger.Infow("ignoring unhandled webhook event", "event_type", event.Type)
		return nil
	}
}

func (s *webhookService) handleChargeSuccess(ctx context.Context, data json.RawMessage) error {
	var charge paystack.ChargeData
	if err := json.Unmarshal(data, &charge); err != nil {
		s.Logger.Errorw("dropping malformed charge.success payload", "error", err)
		return nil
	}

	// Older checkouts stamped invoice_payment
	isInvoiceCharge := charge.Metadata.Type == paystack.ChargeTypeInvoice ||
		charge.Metadata.Type == "invoice_payment"
	if !isInvoiceCharge || charge.Metadata.InvoiceID == "" {
		// Subscription charges are applied on subscription.* events
		s.Logger.Debugw("charge.success without invoice metadata, ignoring",
			"reference", charge.Reference)
		return nil
	}

	paidAt := time.Now().UTC()
	if ts, err := parseGatewayTime(charge.PaidAt); err == nil {
		paidAt = ts
	}

	inv, err := s.invoices.MarkInvoicePaid(ctx, charge.Metadata.InvoiceID, charge.Reference, paidAt)
	if err != nil {
		if ierr.IsNotFound(err) {
			s.Logger.Errorw("charge.success references unknown invoice",
				"invoice_id", charge.Metadata.InvoiceID,
				"reference", charge.Reference)
			return nil
		}
		return err
	}

	tenantCtx := types.SetTenantID(ctx, inv.TenantID)

	if t, err := s.TenantRepo.Get(ctx, inv.TenantID); err == nil {
		if err := s.notifications.Notify(tenantCtx, t.OwnerUserID, types.NotificationTypeSuccess,
			"Invoice paid",
			"Invoice "+inv.InvoiceNumber+" was paid by "+inv.ClientName); err != nil {
			s.Logger.Errorw("failed to notify owner of payment", "error", err)
		}

		if inv.ClientEmail != "" {
			_ = s.Email.SendTemplate(ctx, inv.ClientEmail,
				"Payment received for "+inv.InvoiceNumber,
				email.TemplatePaymentReceipt, map[string]any{
					"Name":          inv.ClientName,
					"BusinessName":  t.BusinessName,
					"InvoiceNumber": inv.InvoiceNumber,
					"Amount":        inv.Total().StringFixed(2),
					"Currency":      inv.Currency,
					"Reference":     charge.Reference,
				})
		}
	}

	return nil
}

func (s *webhookService) handleSubscriptionCreate(ctx context.Context, data json.RawMessage) error {
	var payload paystack.SubscriptionData
	if err := json.Unmarshal(data, &payload); err != nil {
		s.Logger.Errorw("dropping malformed subscription.create payload", "error", err)
		return nil
	}

	sub, err := s.SubscriptionRepo.GetPendingByCustomerCode(ctx, payload.Customer.CustomerCode)
	if err != nil {
		if !ierr.IsNotFound(err) {
			return err
		}
		// Checkout metadata did not round-trip a customer code yet; match
		// the user by email instead
		sub, err = s.findPendingByEmail(ctx, payload.Customer.Email)
		if err != nil {
			s.Logger.Errorw("subscription.create matches no pending subscription",
				"customer_code", payload.Customer.CustomerCode,
				"email", payload.Customer.Email)
			return nil
		}
	}

	u, err := s.UserRepo.Get(ctx, sub.UserID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	nextBilling, err := parseGatewayTime(payload.NextPaymentDate)
	if err != nil {
		nextBilling = types.AddClampedDate(now, 0, sub.Interval.Months(), 0)
	}

	err = s.DB.WithTx(ctx, func(txCtx context.Context) error {
		sub.SubscriptionStatus = types.SubscriptionStatusActive
		sub.NextBillingDate = nextBilling
		sub.PastDueAt = nil
		sub.PaystackSubscriptionID = &payload.SubscriptionCode
		sub.PaystackCustomerCode = &payload.Customer.CustomerCode
		sub.UpdatedAt = now
		if err := s.SubscriptionRepo.Update(txCtx, sub); err != nil {
			return err
		}

		u.SubscriptionTier = sub.PlanID
		u.SubscriptionStatus = types.UserSubscriptionStatusActive
		u.UpdatedAt = now
		if err := s.UserRepo.Update(txCtx, u); err != nil {
			return err
		}
		return s.UserRepo.ResetQuota(txCtx, u.ID)
	})
	if err != nil {
		return err
	}

	s.Logger.Infow("activated subscription",
		"subscription_id", sub.ID,
		"user_id", u.ID,
		"plan", sub.PlanID,
		"next_billing_date", sub.NextBillingDate)

	userCtx := types.SetTenantID(ctx, u.TenantID)
	if err := s.notifications.Notify(userCtx, u.ID, types.NotificationTypeSuccess,
		"Subscription active",
		"Your "+sub.PlanID.String()+" subscription is now active"); err != nil {
		s.Logger.Errorw("failed to notify subscription activation", "error", err)
	}

	_ = s.Email.SendTemplate(ctx, u.Email, "Your subscription is active",
		email.TemplateSubscriptionConfirmed, map[string]any{
			"Name": u.Email,
			"Plan": sub.PlanID.String(),
		})

	return nil
}

func (s *webhookService) handleSubscriptionUpdate(ctx context.Context, data json.RawMessage) error {
	var payload paystack.SubscriptionData
	if err := json.Unmarshal(data, &payload); err != nil {
		s.Logger.Errorw("dropping malformed subscription.update payload", "error", err)
		return nil
	}

	sub, err := s.SubscriptionRepo.GetByGatewaySubscriptionID(ctx, payload.SubscriptionCode)
	if err != nil {
		if ierr.IsNotFound(err) {
			s.Logger.Errorw("subscription.update references unknown subscription",
				"subscription_code", payload.SubscriptionCode)
			return nil
		}
		return err
	}

	if next, err := parseGatewayTime(payload.NextPaymentDate); err == nil {
		sub.NextBillingDate = next
	}

	switch paystack.GatewaySubscriptionStatus(payload.Status) {
	case paystack.GatewayStatusActive:
		sub.SubscriptionStatus = types.SubscriptionStatusActive
		sub.PastDueAt = nil
	case paystack.GatewayStatusCancelled, paystack.GatewayStatusCompleted:
		return cancelSubscription(ctx, s.ServiceParams, s.notifications, sub, "cancelled by the payment gateway")
	case paystack.GatewayStatusAttention:
		if sub.SubscriptionStatus == types.SubscriptionStatusActive {
			now := time.Now().UTC()
			sub.SubscriptionStatus = types.SubscriptionStatusPastDue
			sub.PastDueAt = &now
		}
	}
	// Non-renewing subscriptions stay active until the gateway completes
	// them

	sub.UpdatedAt = time.Now().UTC()
	return s.SubscriptionRepo.Update(ctx, sub)
}

func (s *webhookService) handleSubscriptionDisable(ctx context.Context, data json.RawMessage) error {
	var payload paystack.SubscriptionData
	if err := json.Unmarshal(data, &payload); err != nil {
		s.Logger.Errorw("dropping malformed subscription.disable payload", "error", err)
		return nil
	}

	sub, err := s.SubscriptionRepo.GetByGatewaySubscriptionID(ctx, payload.SubscriptionCode)
	if err != nil {
		if ierr.IsNotFound(err) {
			s.Logger.Errorw("subscription.disable references unknown subscription",
				"subscription_code", payload.SubscriptionCode)
			return nil
		}
		return err
	}

	return cancelSubscription(ctx, s.ServiceParams, s.notifications, sub, "cancelled by the payment gateway")
}

func (s *webhookService) handlePaymentFailed(ctx context.Context, data json.RawMessage) error {
	var payload paystack.PaymentFailedData
	if err := json.Unmarshal(data, &payload); err != nil {
		s.Logger.Errorw("dropping malformed invoice.payment_failed payload", "error", err)
		return nil
	}

	var sub *subscription.Subscription
	var err error
	if payload.Metadata.SubscriptionID != "" {
		sub, err = s.SubscriptionRepo.Get(ctx, payload.Metadata.SubscriptionID)
	} else {
		sub, err = s.SubscriptionRepo.GetByGatewaySubscriptionID(ctx, payload.Subscription.SubscriptionCode)
	}
	if err != nil {
		if ierr.IsNotFound(err) {
			s.Logger.Errorw("payment failure references unknown subscription",
				"subscription_id", payload.Metadata.SubscriptionID,
				"subscription_code", payload.Subscription.SubscriptionCode)
			return nil
		}
		return err
	}

	u, err := s.UserRepo.Get(ctx, sub.UserID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	err = s.DB.WithTx(ctx, func(txCtx context.Context) error {
		sub.SubscriptionStatus = types.SubscriptionStatusPastDue
		if sub.PastDueAt == nil {
			sub.PastDueAt = &now
		}
		sub.UpdatedAt = now
		if err := s.SubscriptionRepo.Update(txCtx, sub); err != nil {
			return err
		}

		u.SubscriptionStatus = types.UserSubscriptionStatusPastDue
		u.UpdatedAt = now
		return s.UserRepo.Update(txCtx, u)
	})
	if err != nil {
		return err
	}

	s.Logger.Warnw("subscription payment failed",
		"subscription_id", sub.ID,
		"user_id", u.ID)

	userCtx := types.SetTenantID(ctx, u.TenantID)
	if err := s.notifications.Notify(userCtx, u.ID, types.NotificationTypeWarning,
		"Payment failed",
		"We could not collect payment for your "+sub.PlanID.String()+" subscription"); err != nil {
		s.Logger.Errorw("failed to notify payment failure", "error", err)
	}

	_ = s.Email.SendTemplate(ctx, u.Email, "Action needed: payment failed",
		email.TemplateSubscriptionPastDue, map[string]any{
			"Name": u.Email,
			"Plan": sub.PlanID.String(),
		})

	return nil
}

func (s *webhookService) findPendingByEmail(ctx context.Context, emailAddr string) (*subscription.Subscription, error) {
	if emailAddr == "" {
		return nil, ierr.NewError("no customer email").Mark(ierr.ErrNotFound)
	}
	u, err := s.UserRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		return nil, err
	}
	pending, err := s.SubscriptionRepo.ListByStatus(ctx, types.SubscriptionStatusPending)
	if err != nil {
		return nil, err
	}
	var latest *subscription.Subscription
	for _, sub := range pending {
		if sub.UserID != u.ID {
			continue
		}
		if latest == nil || sub.CreatedAt.After(latest.CreatedAt) {
			latest = sub
		}
	}
	if latest == nil {
		return nil, ierr.NewError("no pending subscription").Mark(ierr.ErrNotFound)
	}
	return latest, nil
}

// parseGatewayTime accepts the timestamp shapes Paystack emits
func parseGatewayTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ierr.NewError("empty timestamp").Mark(ierr.ErrValidation)
	}
	for _, layout := range []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05.000Z",
		"2006-01-02",
	} {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, ierr.NewError("unrecognised timestamp").
		WithHintf("cannot parse %q", value).
		Mark(ierr.ErrValidation)
}
