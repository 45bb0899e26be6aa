package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/ardentinvoicing/ardent/internal/api/dto"
	"github.com/ardentinvoicing/ardent/internal/domain/invoice"
	"github.com/ardentinvoicing/ardent/internal/domain/subscription"
	"github.com/ardentinvoicing/ardent/internal/domain/user"
	ierr "github.com/ardentinvoicing/ardent/internal/errors"
	"github.com/ardentinvoicing/ardent/internal/paystack"
	"github.com/ardentinvoicing/ardent/internal/testutil"
	"github.com/ardentinvoicing/ardent/internal/types"
)

type PaymentServiceSuite struct {
	testutil.BaseServiceTestSuite
	service PaymentService
	user    *user.User
}

func TestPaymentService(t *testing.T) {
	suite.Run(t, new(PaymentServiceSuite))
}

func (s *PaymentServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewPaymentService(newTestParams(&s.BaseServiceTestSuite))

	s.user = user.New(s.GetContext(), "owner@kente.gh", types.UserRoleSME)
	s.user.ID = types.DefaultUserID
	s.user.TenantID = types.DefaultTenantID
	s.NoError(s.GetStores().UserRepo.Create(s.GetContext(), s.user))
}

func (s *PaymentServiceSuite) seedInvoice(status types.InvoiceStatus, clientEmail string) *invoice.Invoice {
	inv := invoice.New(s.GetContext())
	inv.InvoiceNumber = types.FormatInvoiceNumber(2026, 1)
	inv.InvoiceStatus = status
	inv.ClientName = "Accra Textiles"
	inv.ClientEmail = clientEmail
	inv.Amount = decimal.NewFromInt(500)
	inv.TaxRate = decimal.NewFromInt(10)
	inv.Currency = "GHS"
	inv.DueDate = time.Now().UTC().AddDate(0, 0, 14)
	s.NoError(s.GetStores().InvoiceRepo.Create(s.GetContext(), inv))
	return inv
}

func (s *PaymentServiceSuite) TestInitiateInvoicePayment() {
	inv := s.seedInvoice(types.InvoiceStatusSent, "accounts@accratextiles.gh")

	resp, err := s.service.InitiateInvoicePayment(s.GetContext(), inv.ID)
	s.NoError(err)
	s.NotEmpty(resp.AuthorizationURL)
	s.NotEmpty(resp.Reference)

	s.Require().Len(s.GetPaystack().Initialized, 1)
	req := s.GetPaystack().Initialized[0]
	s.Equal("accounts@accratextiles.gh", req.Email)
	s.Equal(paystack.ChargeTypeInvoice, req.Metadata.Type)
	s.Equal(inv.ID, req.Metadata.InvoiceID)
	// Tax-inclusive total, not the bare amount
	s.True(req.Amount.Equal(decimal.NewFromInt(550)))
}

func (s *PaymentServiceSuite) TestInitiatePaymentRejectsDraft() {
	inv := s.seedInvoice(types.InvoiceStatusDraft, "accounts@accratextiles.gh")

	_, err := s.service.InitiateInvoicePayment(s.GetContext(), inv.ID)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *PaymentServiceSuite) TestInitiatePaymentRequiresClientEmail() {
	inv := s.seedInvoice(types.InvoiceStatusSent, "")

	_, err := s.service.InitiateInvoicePayment(s.GetContext(), inv.ID)
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *PaymentServiceSuite) TestSubscribeCreatesPendingSubscription() {
	resp, err := s.service.Subscribe(s.GetContext(), &dto.SubscribeRequest{
		Plan:     types.SubscriptionTierPro,
		Interval: types.BillingIntervalQuarterly,
	})
	s.NoError(err)
	s.NotEmpty(resp.AuthorizationURL)

	pending, err := s.GetStores().SubscriptionRepo.ListByStatus(s.GetContext(), types.SubscriptionStatusPending)
	s.NoError(err)
	s.Require().Len(pending, 1)
	s.Equal(types.SubscriptionTierPro, pending[0].PlanID)
	// 200 GHS monthly billed quarterly
	s.True(pending[0].Amount.Equal(decimal.NewFromInt(600)))
	s.Equal("GHS", pending[0].Currency)

	s.Require().Len(s.GetPaystack().Initialized, 1)
	s.Equal("owner@kente.gh", s.GetPaystack().Initialized[0].Email)
}

func (s *PaymentServiceSuite) TestSubscribeRejectsSecondActiveSubscription() {
	active := subscription.New(s.GetContext(), s.user.ID, types.SubscriptionTierStarter, types.BillingIntervalMonthly)
	active.SubscriptionStatus = types.SubscriptionStatusActive
	s.NoError(s.GetStores().SubscriptionRepo.Create(s.GetContext(), active))

	_, err := s.service.Subscribe(s.GetContext(), &dto.SubscribeRequest{
		Plan:     types.SubscriptionTierPro,
		Interval: types.BillingIntervalMonthly,
	})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *PaymentServiceSuite) TestSubscribeRejectsFreePlan() {
	_, err := s.service.Subscribe(s.GetContext(), &dto.SubscribeRequest{
		Plan:     types.SubscriptionTierFree,
		Interval: types.BillingIntervalMonthly,
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}
