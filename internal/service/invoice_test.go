package service

import (
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/ardentinvoicing/ardent/internal/api/dto"
	"github.com/ardentinvoicing/ardent/internal/domain/user"
	ierr "github.com/ardentinvoicing/ardent/internal/errors"
	"github.com/ardentinvoicing/ardent/internal/testutil"
	"github.com/ardentinvoicing/ardent/internal/types"
)

type InvoiceServiceSuite struct {
	testutil.BaseServiceTestSuite
	service InvoiceService
	user    *user.User
}

func TestInvoiceService(t *testing.T) {
	suite.Run(t, new(InvoiceServiceSuite))
}

func (s *InvoiceServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewInvoiceService(newTestParams(&s.BaseServiceTestSuite))

	s.user = user.New(s.GetContext(), "owner@kente.gh", types.UserRoleSME)
	s.user.ID = types.DefaultUserID
	s.user.TenantID = types.DefaultTenantID
	s.NoError(s.GetStores().UserRepo.Create(s.GetContext(), s.user))
}

func (s *InvoiceServiceSuite) newRequest() *dto.CreateInvoiceRequest {
	return &dto.CreateInvoiceRequest{
		ClientName: "Accra Textiles",
		Amount:     decimal.NewFromInt(100),
		Currency:   "GHS",
		DueDate:    s.GetNow().AddDate(0, 0, 14),
	}
}

func (s *InvoiceServiceSuite) TestCreateInvoiceAssignsSequentialNumbers() {
	year := time.Now().UTC().Year()

	first, err := s.service.CreateInvoice(s.GetContext(), s.newRequest())
	s.NoError(err)
	s.Equal(types.FormatInvoiceNumber(year, 1), first.InvoiceNumber)
	s.Equal(types.InvoiceStatusDraft, first.InvoiceStatus)

	second, err := s.service.CreateInvoice(s.GetContext(), s.newRequest())
	s.NoError(err)
	s.Equal(types.FormatInvoiceNumber(year, 2), second.InvoiceNumber)

	u, err := s.GetStores().UserRepo.Get(s.GetContext(), s.user.ID)
	s.NoError(err)
	s.Equal(2, u.InvoiceQuotaUsed)
}

func (s *InvoiceServiceSuite) TestSequenceUniqueUnderConcurrentAllocation() {
	const n = 25
	year := time.Now().UTC().Year()

	results := make(chan int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seq, err := s.GetStores().InvoiceRepo.NextSequence(s.GetContext(), types.DefaultTenantID, year)
			s.NoError(err)
			results <- seq
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[int64]bool, n)
	for seq := range results {
		s.False(seen[seq], "sequence %d allocated twice", seq)
		seen[seq] = true
	}
	s.Len(seen, n)
}

func (s *InvoiceServiceSuite) TestCreateInvoiceEnforcesQuota() {
	s.user.InvoiceQuotaUsed = types.SubscriptionTierFree.InvoiceQuota()
	s.NoError(s.GetStores().UserRepo.Update(s.GetContext(), s.user))

	_, err := s.service.CreateInvoice(s.GetContext(), s.newRequest())
	s.Error(err)
	s.True(ierr.IsQuotaExceeded(err))
}

func (s *InvoiceServiceSuite) TestUnlimitedOverrideBypassesQuota() {
	s.user.InvoiceQuotaUsed = 1000
	s.user.IsUnlimitedFree = true
	s.NoError(s.GetStores().UserRepo.Update(s.GetContext(), s.user))

	_, err := s.service.CreateInvoice(s.GetContext(), s.newRequest())
	s.NoError(err)
}

func (s *InvoiceServiceSuite) TestLineItemsOverrideAmount() {
	req := s.newRequest()
	req.Amount = decimal.NewFromInt(9999)
	req.LineItems = []dto.CreateLineItemRequest{
		{Description: "Design work", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(100)},
		{Description: "Delivery", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(50)},
	}

	resp, err := s.service.CreateInvoice(s.GetContext(), req)
	s.NoError(err)
	s.True(resp.Amount.Equal(decimal.NewFromInt(250)))
	s.Len(resp.LineItems, 2)
}

func (s *InvoiceServiceSuite) TestRecurringInvoiceCreatesSchedule() {
	req := s.newRequest()
	req.IsRecurring = true
	req.Frequency = types.BillingIntervalMonthly

	resp, err := s.service.CreateInvoice(s.GetContext(), req)
	s.NoError(err)

	schedules, err := s.GetStores().ScheduleRepo.ListByTenant(s.GetContext(), types.DefaultTenantID)
	s.NoError(err)
	s.Len(schedules, 1)
	s.Equal(resp.ID, schedules[0].InvoiceID)
	s.True(schedules[0].IsActive)
	s.True(schedules[0].NextRun.After(s.GetNow()))
}

func (s *InvoiceServiceSuite) TestRecurringWithoutFrequencyRejected() {
	req := s.newRequest()
	req.IsRecurring = true

	_, err := s.service.CreateInvoice(s.GetContext(), req)
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *InvoiceServiceSuite) TestStatusTransitions() {
	resp, err := s.service.CreateInvoice(s.GetContext(), s.newRequest())
	s.NoError(err)

	// draft cannot jump straight to paid
	_, err = s.service.UpdateInvoiceStatus(s.GetContext(), resp.ID,
		&dto.UpdateInvoiceStatusRequest{Status: types.InvoiceStatusPaid})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))

	sent, err := s.service.UpdateInvoiceStatus(s.GetContext(), resp.ID,
		&dto.UpdateInvoiceStatusRequest{Status: types.InvoiceStatusSent})
	s.NoError(err)
	s.Equal(types.InvoiceStatusSent, sent.InvoiceStatus)

	// sent may be withdrawn
	cancelled, err := s.service.UpdateInvoiceStatus(s.GetContext(), resp.ID,
		&dto.UpdateInvoiceStatusRequest{Status: types.InvoiceStatusCancelled})
	s.NoError(err)
	s.Equal(types.InvoiceStatusCancelled, cancelled.InvoiceStatus)

	// cancelled invoices cannot be paid
	_, err = s.service.UpdateInvoiceStatus(s.GetContext(), resp.ID,
		&dto.UpdateInvoiceStatusRequest{Status: types.InvoiceStatusPaid})
	s.Error(err)
}

func (s *InvoiceServiceSuite) TestMarkInvoicePaidIsIdempotent() {
	resp, err := s.service.CreateInvoice(s.GetContext(), s.newRequest())
	s.NoError(err)
	_, err = s.service.UpdateInvoiceStatus(s.GetContext(), resp.ID,
		&dto.UpdateInvoiceStatusRequest{Status: types.InvoiceStatusSent})
	s.NoError(err)

	firstPaidAt := s.GetNow().Add(-time.Hour)
	inv, err := s.service.MarkInvoicePaid(s.GetContext(), resp.ID, "PAY-abc123", firstPaidAt)
	s.NoError(err)
	s.Equal(types.InvoiceStatusPaid, inv.InvoiceStatus)
	s.NotNil(inv.PaymentReference)
	s.Equal("PAY-abc123", *inv.PaymentReference)

	// A replayed confirmation keeps the original payment details
	again, err := s.service.MarkInvoicePaid(s.GetContext(), resp.ID, "PAY-replay", s.GetNow())
	s.NoError(err)
	s.Equal("PAY-abc123", *again.PaymentReference)
	s.True(again.PaidAt.Equal(firstPaidAt))
}

func (s *InvoiceServiceSuite) TestGetInvoiceRejectsCrossTenantAccess() {
	resp, err := s.service.CreateInvoice(s.GetContext(), s.newRequest())
	s.NoError(err)

	otherCtx := types.SetTenantID(s.GetContext(), "tenant_someone_else")
	_, err = s.service.GetInvoice(otherCtx, resp.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *InvoiceServiceSuite) TestListInvoicesScopedToTenant() {
	_, err := s.service.CreateInvoice(s.GetContext(), s.newRequest())
	s.NoError(err)
	_, err = s.service.CreateInvoice(s.GetContext(), s.newRequest())
	s.NoError(err)

	list, err := s.service.ListInvoices(s.GetContext())
	s.NoError(err)
	s.Equal(2, list.Total)
	s.Len(list.Items, 2)
}
