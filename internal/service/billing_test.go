package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/ardentinvoicing/ardent/internal/domain/subscription"
	"github.com/ardentinvoicing/ardent/internal/domain/user"
	"github.com/ardentinvoicing/ardent/internal/email"
	"github.com/ardentinvoicing/ardent/internal/paystack"
	"github.com/ardentinvoicing/ardent/internal/testutil"
	"github.com/ardentinvoicing/ardent/internal/types"
)

type BillingServiceSuite struct {
	testutil.BaseServiceTestSuite
	service BillingService
	user    *user.User
}

func TestBillingService(t *testing.T) {
	suite.Run(t, new(BillingServiceSuite))
}

func (s *BillingServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	params := newTestParams(&s.BaseServiceTestSuite)
	s.service = NewBillingService(params, NewNotificationService(params))

	s.user = user.New(s.GetContext(), "owner@kente.gh", types.UserRoleSME)
	s.user.ID = types.DefaultUserID
	s.user.TenantID = types.DefaultTenantID
	s.user.SubscriptionTier = types.SubscriptionTierStarter
	s.NoError(s.GetStores().UserRepo.Create(s.GetContext(), s.user))
}

func (s *BillingServiceSuite) seedActive(nextBilling time.Time, gatewayID string) *subscription.Subscription {
	sub := subscription.New(s.GetContext(), s.user.ID, types.SubscriptionTierStarter, types.BillingIntervalMonthly)
	sub.SubscriptionStatus = types.SubscriptionStatusActive
	sub.Amount = decimal.NewFromInt(50)
	sub.Currency = "GHS"
	sub.NextBillingDate = nextBilling
	if gatewayID != "" {
		sub.PaystackSubscriptionID = &gatewayID
	}
	s.NoError(s.GetStores().SubscriptionRepo.Create(s.GetContext(), sub))
	return sub
}

func (s *BillingServiceSuite) TestRollPeriodAdvancesAndResetsQuota() {
	s.user.InvoiceQuotaUsed = 42
	s.NoError(s.GetStores().UserRepo.Update(s.GetContext(), s.user))

	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	sub := s.seedActive(yesterday, "")

	result, err := s.service.ProcessDueSubscriptions(s.GetContext())
	s.NoError(err)
	s.Equal(1, result.Processed)
	s.Equal(1, result.Succeeded)

	stored, err := s.GetStores().SubscriptionRepo.Get(s.GetContext(), sub.ID)
	s.NoError(err)
	s.True(stored.NextBillingDate.After(time.Now().UTC()))
	s.Equal(types.AddClampedDate(yesterday, 0, 1, 0), stored.NextBillingDate)

	u, err := s.GetStores().UserRepo.Get(s.GetContext(), s.user.ID)
	s.NoError(err)
	s.Equal(0, u.InvoiceQuotaUsed)
}

func (s *BillingServiceSuite) TestStalledSubscriptionCatchesUpInOneRoll() {
	// Three missed monthly periods advance to a single future date, not
	// three separate rolls
	stale := time.Now().UTC().AddDate(0, -3, -10)
	sub := s.seedActive(stale, "")

	_, err := s.service.ProcessDueSubscriptions(s.GetContext())
	s.NoError(err)

	stored, err := s.GetStores().SubscriptionRepo.Get(s.GetContext(), sub.ID)
	s.NoError(err)
	now := time.Now().UTC()
	s.True(stored.NextBillingDate.After(now))
	s.True(stored.NextBillingDate.Before(types.AddClampedDate(now, 0, 1, 1)))
}

func (s *BillingServiceSuite) TestGatewayCancelledCancelsLocal() {
	sub := s.seedActive(time.Now().UTC().AddDate(0, 0, -1), "SUB_gone")
	s.GetPaystack().Subscriptions["SUB_gone"] = &paystack.GatewaySubscription{
		SubscriptionCode: "SUB_gone",
		Status:           paystack.GatewayStatusCancelled,
	}

	_, err := s.service.ProcessDueSubscriptions(s.GetContext())
	s.NoError(err)

	stored, err := s.GetStores().SubscriptionRepo.Get(s.GetContext(), sub.ID)
	s.NoError(err)
	s.Equal(types.SubscriptionStatusCancelled, stored.SubscriptionStatus)

	u, err := s.GetStores().UserRepo.Get(s.GetContext(), s.user.ID)
	s.NoError(err)
	s.Equal(types.SubscriptionTierFree, u.SubscriptionTier)
}

func (s *BillingServiceSuite) TestGatewayAttentionMarksPastDue() {
	sub := s.seedActive(time.Now().UTC().AddDate(0, 0, -1), "SUB_attn")
	s.GetPaystack().Subscriptions["SUB_attn"] = &paystack.GatewaySubscription{
		SubscriptionCode: "SUB_attn",
		Status:           paystack.GatewayStatusAttention,
	}

	_, err := s.service.ProcessDueSubscriptions(s.GetContext())
	s.NoError(err)

	stored, err := s.GetStores().SubscriptionRepo.Get(s.GetContext(), sub.ID)
	s.NoError(err)
	s.Equal(types.SubscriptionStatusPastDue, stored.SubscriptionStatus)
	s.NotNil(stored.PastDueAt)
	// The period still rolls so the quota allowance is not withheld
	s.True(stored.NextBillingDate.After(time.Now().UTC()))

	u, err := s.GetStores().UserRepo.Get(s.GetContext(), s.user.ID)
	s.NoError(err)
	s.Equal(types.UserSubscriptionStatusPastDue, u.SubscriptionStatus)

	s.Require().Len(s.GetEmail().Sent, 1)
	s.Equal(email.TemplateSubscriptionPastDue, s.GetEmail().Sent[0].Template)

	notifications, err := s.GetStores().NotificationRepo.ListByUser(s.GetContext(), s.user.ID, false)
	s.NoError(err)
	s.Require().Len(notifications, 1)
	s.Equal(types.NotificationTypeWarning, notifications[0].Type)
}

func (s *BillingServiceSuite) TestUnreachableGatewayKeepsLocalState() {
	sub := s.seedActive(time.Now().UTC().AddDate(0, 0, -1), "SUB_x")
	s.GetPaystack().FailFetch = true

	result, err := s.service.ProcessDueSubscriptions(s.GetContext())
	s.NoError(err)
	s.Equal(1, result.Succeeded)

	stored, err := s.GetStores().SubscriptionRepo.Get(s.GetContext(), sub.ID)
	s.NoError(err)
	s.Equal(types.SubscriptionStatusActive, stored.SubscriptionStatus)
	s.True(stored.NextBillingDate.After(time.Now().UTC()))
}

func (s *BillingServiceSuite) TestSweepCancelsBeyondGraceWindow() {
	// Grace is seven days in the test config
	expired := subscription.New(s.GetContext(), s.user.ID, types.SubscriptionTierStarter, types.BillingIntervalMonthly)
	expired.SubscriptionStatus = types.SubscriptionStatusPastDue
	eightDaysAgo := time.Now().UTC().AddDate(0, 0, -8)
	expired.PastDueAt = &eightDaysAgo
	s.NoError(s.GetStores().SubscriptionRepo.Create(s.GetContext(), expired))

	recent := subscription.New(s.GetContext(), s.user.ID, types.SubscriptionTierStarter, types.BillingIntervalMonthly)
	recent.SubscriptionStatus = types.SubscriptionStatusPastDue
	twoDaysAgo := time.Now().UTC().AddDate(0, 0, -2)
	recent.PastDueAt = &twoDaysAgo
	s.NoError(s.GetStores().SubscriptionRepo.Create(s.GetContext(), recent))

	result, err := s.service.SweepPastDue(s.GetContext())
	s.NoError(err)
	s.Equal(2, result.Processed)
	s.Equal(1, result.Succeeded)

	stored, err := s.GetStores().SubscriptionRepo.Get(s.GetContext(), expired.ID)
	s.NoError(err)
	s.Equal(types.SubscriptionStatusCancelled, stored.SubscriptionStatus)

	stored, err = s.GetStores().SubscriptionRepo.Get(s.GetContext(), recent.ID)
	s.NoError(err)
	s.Equal(types.SubscriptionStatusPastDue, stored.SubscriptionStatus)
}
