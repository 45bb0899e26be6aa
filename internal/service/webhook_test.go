package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/ardentinvoicing/ardent/internal/domain/invoice"
	"github.com/ardentinvoicing/ardent/internal/domain/subscription"
	"github.com/ardentinvoicing/ardent/internal/domain/tenant"
	"github.com/ardentinvoicing/ardent/internal/domain/user"
	"github.com/ardentinvoicing/ardent/internal/email"
	ierr "github.com/ardentinvoicing/ardent/internal/errors"
	"github.com/ardentinvoicing/ardent/internal/testutil"
	"github.com/ardentinvoicing/ardent/internal/types"
)

const validSignature = "t0ps3cr3t-hmac"

type WebhookServiceSuite struct {
	testutil.BaseServiceTestSuite
	service WebhookService
	user    *user.User
}

func TestWebhookService(t *testing.T) {
	suite.Run(t, new(WebhookServiceSuite))
}

func (s *WebhookServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	params := newTestParams(&s.BaseServiceTestSuite)
	notifications := NewNotificationService(params)
	invoices := NewInvoiceService(params)
	s.service = NewWebhookService(params, invoices, notifications)

	s.user = user.New(s.GetContext(), "owner@kente.gh", types.UserRoleSME)
	s.user.ID = types.DefaultUserID
	s.user.TenantID = types.DefaultTenantID
	s.NoError(s.GetStores().UserRepo.Create(s.GetContext(), s.user))

	t := tenant.New(s.GetContext(), "Kente Designs", s.user.ID)
	t.ID = types.DefaultTenantID
	s.NoError(s.GetStores().TenantRepo.Create(s.GetContext(), t))
}

func (s *WebhookServiceSuite) seedSentInvoice() *invoice.Invoice {
	inv := invoice.New(s.GetContext())
	inv.InvoiceNumber = types.FormatInvoiceNumber(2026, 1)
	inv.InvoiceStatus = types.InvoiceStatusSent
	inv.ClientName = "Accra Textiles"
	inv.ClientEmail = "accounts@accratextiles.gh"
	inv.Amount = decimal.NewFromInt(500)
	inv.Currency = "GHS"
	inv.DueDate = time.Now().UTC().AddDate(0, 0, 14)
	s.NoError(s.GetStores().InvoiceRepo.Create(s.GetContext(), inv))
	return inv
}

func (s *WebhookServiceSuite) seedSubscription(status types.SubscriptionStatus, gatewayID, customerCode string) *subscription.Subscription {
	sub := subscription.New(s.GetContext(), s.user.ID, types.SubscriptionTierStarter, types.BillingIntervalMonthly)
	sub.SubscriptionStatus = status
	sub.Amount = decimal.NewFromInt(50)
	sub.Currency = "GHS"
	if gatewayID != "" {
		sub.PaystackSubscriptionID = &gatewayID
	}
	if customerCode != "" {
		sub.PaystackCustomerCode = &customerCode
	}
	s.NoError(s.GetStores().SubscriptionRepo.Create(s.GetContext(), sub))
	return sub
}

func chargeSuccessPayload(reference, invoiceID string) []byte {
	return []byte(fmt.Sprintf(`{
		"event": "charge.success",
		"data": {
			"reference": %q,
			"status": "success",
			"amount": 50000,
			"currency": "GHS",
			"paid_at": "2026-08-27T10:00:00Z",
			"customer": {"email": "accounts@accratextiles.gh"},
			"metadata": {"type": "invoice", "invoiceId": %q}
		}
	}`, reference, invoiceID))
}

func (s *WebhookServiceSuite) TestSignatureFailureRejected() {
	err := s.service.ProcessPaystackWebhook(s.GetContext(), chargeSuccessPayload("PAY-1", "inv_x"), "invalid")
	s.Error(err)
	s.True(ierr.IsSignature(err))
}

func (s *WebhookServiceSuite) TestMalformedPayloadAcked() {
	err := s.service.ProcessPaystackWebhook(s.GetContext(), []byte("not json"), validSignature)
	s.NoError(err)
}

func (s *WebhookServiceSuite) TestChargeSuccessMarksInvoicePaid() {
	inv := s.seedSentInvoice()

	err := s.service.ProcessPaystackWebhook(s.GetContext(), chargeSuccessPayload("PAY-1", inv.ID), validSignature)
	s.NoError(err)

	stored, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusPaid, stored.InvoiceStatus)
	s.Require().NotNil(stored.PaymentReference)
	s.Equal("PAY-1", *stored.PaymentReference)
	s.Require().NotNil(stored.PaidAt)
	s.Equal(2026, stored.PaidAt.Year())

	notifications, err := s.GetStores().NotificationRepo.ListByUser(s.GetContext(), s.user.ID, false)
	s.NoError(err)
	s.Len(notifications, 1)

	s.Require().Len(s.GetEmail().Sent, 1)
	s.Equal(email.TemplatePaymentReceipt, s.GetEmail().Sent[0].Template)
	s.Equal("accounts@accratextiles.gh", s.GetEmail().Sent[0].To)
}

func (s *WebhookServiceSuite) TestChargeSuccessAcceptsLegacyMetadataType() {
	inv := s.seedSentInvoice()

	// Checkouts started before the metadata rename carry invoice_payment
	payload := []byte(fmt.Sprintf(`{
		"event": "charge.success",
		"data": {
			"reference": "PAY-legacy",
			"status": "success",
			"metadata": {"type": "invoice_payment", "invoiceId": %q}
		}
	}`, inv.ID))
	s.NoError(s.service.ProcessPaystackWebhook(s.GetContext(), payload, validSignature))

	stored, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusPaid, stored.InvoiceStatus)
}

func (s *WebhookServiceSuite) TestReplayedDeliveryIsSkipped() {
	inv := s.seedSentInvoice()
	payload := chargeSuccessPayload("PAY-1", inv.ID)

	s.NoError(s.service.ProcessPaystackWebhook(s.GetContext(), payload, validSignature))

	// Force the invoice back to sent; a replayed delivery must not touch it
	stored, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), inv.ID)
	s.NoError(err)
	stored.InvoiceStatus = types.InvoiceStatusSent
	s.NoError(s.GetStores().InvoiceRepo.Update(s.GetContext(), stored))

	s.NoError(s.service.ProcessPaystackWebhook(s.GetContext(), payload, validSignature))

	stored, err = s.GetStores().InvoiceRepo.Get(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusSent, stored.InvoiceStatus)
}

func (s *WebhookServiceSuite) TestChargeSuccessUnknownInvoiceAcked() {
	err := s.service.ProcessPaystackWebhook(s.GetContext(),
		chargeSuccessPayload("PAY-404", "inv_does_not_exist"), validSignature)
	s.NoError(err)
}

func (s *WebhookServiceSuite) TestChargeSuccessWithoutInvoiceMetadataIgnored() {
	payload := []byte(`{
		"event": "charge.success",
		"data": {"reference": "PAY-sub", "status": "success", "amount": 5000, "metadata": {}}
	}`)
	s.NoError(s.service.ProcessPaystackWebhook(s.GetContext(), payload, validSignature))
}

func (s *WebhookServiceSuite) TestSubscriptionCreateActivatesPendingByCustomerCode() {
	sub := s.seedSubscription(types.SubscriptionStatusPending, "", "CUS_1")
	s.user.InvoiceQuotaUsed = 3
	s.NoError(s.GetStores().UserRepo.Update(s.GetContext(), s.user))

	payload := []byte(`{
		"event": "subscription.create",
		"data": {
			"subscription_code": "SUB_1",
			"status": "active",
			"next_payment_date": "2026-09-28T00:00:00Z",
			"customer": {"customer_code": "CUS_1", "email": "owner@kente.gh"},
			"plan": {"plan_code": "PLN_starter"}
		}
	}`)
	s.NoError(s.service.ProcessPaystackWebhook(s.GetContext(), payload, validSignature))

	stored, err := s.GetStores().SubscriptionRepo.Get(s.GetContext(), sub.ID)
	s.NoError(err)
	s.Equal(types.SubscriptionStatusActive, stored.SubscriptionStatus)
	s.Require().NotNil(stored.PaystackSubscriptionID)
	s.Equal("SUB_1", *stored.PaystackSubscriptionID)
	s.Equal(time.Date(2026, 9, 28, 0, 0, 0, 0, time.UTC), stored.NextBillingDate)

	u, err := s.GetStores().UserRepo.Get(s.GetContext(), s.user.ID)
	s.NoError(err)
	s.Equal(types.SubscriptionTierStarter, u.SubscriptionTier)
	s.Equal(types.UserSubscriptionStatusActive, u.SubscriptionStatus)
	s.Equal(0, u.InvoiceQuotaUsed)

	s.Require().Len(s.GetEmail().Sent, 1)
	s.Equal(email.TemplateSubscriptionConfirmed, s.GetEmail().Sent[0].Template)
}

func (s *WebhookServiceSuite) TestSubscriptionCreateFallsBackToEmailMatch() {
	sub := s.seedSubscription(types.SubscriptionStatusPending, "", "")

	payload := []byte(`{
		"event": "subscription.create",
		"data": {
			"subscription_code": "SUB_2",
			"status": "active",
			"customer": {"customer_code": "CUS_unseen", "email": "owner@kente.gh"},
			"plan": {"plan_code": "PLN_starter"}
		}
	}`)
	s.NoError(s.service.ProcessPaystackWebhook(s.GetContext(), payload, validSignature))

	stored, err := s.GetStores().SubscriptionRepo.Get(s.GetContext(), sub.ID)
	s.NoError(err)
	s.Equal(types.SubscriptionStatusActive, stored.SubscriptionStatus)
	// No parseable next date on this payload; one interval from now
	s.True(stored.NextBillingDate.After(time.Now().UTC()))
}

func (s *WebhookServiceSuite) TestSubscriptionUpdateMirrorsAttention() {
	sub := s.seedSubscription(types.SubscriptionStatusActive, "SUB_attn", "CUS_1")

	payload := []byte(`{
		"event": "subscription.update",
		"data": {
			"subscription_code": "SUB_attn",
			"status": "attention",
			"customer": {"customer_code": "CUS_1", "email": "owner@kente.gh"}
		}
	}`)
	s.NoError(s.service.ProcessPaystackWebhook(s.GetContext(), payload, validSignature))

	stored, err := s.GetStores().SubscriptionRepo.Get(s.GetContext(), sub.ID)
	s.NoError(err)
	s.Equal(types.SubscriptionStatusPastDue, stored.SubscriptionStatus)
	s.NotNil(stored.PastDueAt)
}

func (s *WebhookServiceSuite) TestSubscriptionUpdateMirrorsCancellation() {
	sub := s.seedSubscription(types.SubscriptionStatusActive, "SUB_upd", "CUS_1")
	s.user.SubscriptionTier = types.SubscriptionTierStarter
	s.NoError(s.GetStores().UserRepo.Update(s.GetContext(), s.user))

	payload := []byte(`{
		"event": "subscription.update",
		"data": {
			"subscription_code": "SUB_upd",
			"status": "cancelled",
			"customer": {"customer_code": "CUS_1", "email": "owner@kente.gh"}
		}
	}`)
	s.NoError(s.service.ProcessPaystackWebhook(s.GetContext(), payload, validSignature))

	stored, err := s.GetStores().SubscriptionRepo.Get(s.GetContext(), sub.ID)
	s.NoError(err)
	s.Equal(types.SubscriptionStatusCancelled, stored.SubscriptionStatus)

	u, err := s.GetStores().UserRepo.Get(s.GetContext(), s.user.ID)
	s.NoError(err)
	s.Equal(types.SubscriptionTierFree, u.SubscriptionTier)
}

func (s *WebhookServiceSuite) TestSubscriptionUpdateReactivates() {
	sub := s.seedSubscription(types.SubscriptionStatusPastDue, "SUB_back", "CUS_1")
	pastDue := time.Now().UTC().AddDate(0, 0, -3)
	sub.PastDueAt = &pastDue
	s.NoError(s.GetStores().SubscriptionRepo.Update(s.GetContext(), sub))

	payload := []byte(`{
		"event": "subscription.update",
		"data": {
			"subscription_code": "SUB_back",
			"status": "active",
			"next_payment_date": "2026-10-01T00:00:00Z",
			"customer": {"customer_code": "CUS_1", "email": "owner@kente.gh"}
		}
	}`)
	s.NoError(s.service.ProcessPaystackWebhook(s.GetContext(), payload, validSignature))

	stored, err := s.GetStores().SubscriptionRepo.Get(s.GetContext(), sub.ID)
	s.NoError(err)
	s.Equal(types.SubscriptionStatusActive, stored.SubscriptionStatus)
	s.Nil(stored.PastDueAt)
	s.Equal(time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), stored.NextBillingDate)
}

func (s *WebhookServiceSuite) TestSubscriptionDisableDowngradesToFree() {
	sub := s.seedSubscription(types.SubscriptionStatusActive, "SUB_3", "CUS_1")
	s.user.SubscriptionTier = types.SubscriptionTierStarter
	s.NoError(s.GetStores().UserRepo.Update(s.GetContext(), s.user))

	payload := []byte(`{
		"event": "subscription.disable",
		"data": {
			"subscription_code": "SUB_3",
			"status": "cancelled",
			"customer": {"customer_code": "CUS_1", "email": "owner@kente.gh"}
		}
	}`)
	s.NoError(s.service.ProcessPaystackWebhook(s.GetContext(), payload, validSignature))

	stored, err := s.GetStores().SubscriptionRepo.Get(s.GetContext(), sub.ID)
	s.NoError(err)
	s.Equal(types.SubscriptionStatusCancelled, stored.SubscriptionStatus)

	u, err := s.GetStores().UserRepo.Get(s.GetContext(), s.user.ID)
	s.NoError(err)
	s.Equal(types.SubscriptionTierFree, u.SubscriptionTier)
	s.Equal(types.UserSubscriptionStatusCancelled, u.SubscriptionStatus)

	s.Require().Len(s.GetEmail().Sent, 1)
	s.Equal(email.TemplateSubscriptionCancelled, s.GetEmail().Sent[0].Template)
}

func (s *WebhookServiceSuite) TestPaymentFailedMarksPastDue() {
	sub := s.seedSubscription(types.SubscriptionStatusActive, "SUB_4", "CUS_1")

	payload := []byte(`{
		"event": "invoice.payment_failed",
		"data": {
			"subscription": {"subscription_code": "SUB_4"},
			"customer": {"customer_code": "CUS_1", "email": "owner@kente.gh"},
			"metadata": {}
		}
	}`)
	s.NoError(s.service.ProcessPaystackWebhook(s.GetContext(), payload, validSignature))

	stored, err := s.GetStores().SubscriptionRepo.Get(s.GetContext(), sub.ID)
	s.NoError(err)
	s.Equal(types.SubscriptionStatusPastDue, stored.SubscriptionStatus)
	s.NotNil(stored.PastDueAt)

	u, err := s.GetStores().UserRepo.Get(s.GetContext(), s.user.ID)
	s.NoError(err)
	s.Equal(types.UserSubscriptionStatusPastDue, u.SubscriptionStatus)

	s.Require().Len(s.GetEmail().Sent, 1)
	s.Equal(email.TemplateSubscriptionPastDue, s.GetEmail().Sent[0].Template)
}

func (s *WebhookServiceSuite) TestUnhandledEventTypeAcked() {
	payload := []byte(`{"event": "transfer.success", "data": {"reference": "TRF-1"}}`)
	s.NoError(s.service.ProcessPaystackWebhook(s.GetContext(), payload, validSignature))
}
