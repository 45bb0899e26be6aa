package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/ardentinvoicing/ardent/internal/domain/invoice"
	"github.com/ardentinvoicing/ardent/internal/domain/schedule"
	"github.com/ardentinvoicing/ardent/internal/domain/tenant"
	"github.com/ardentinvoicing/ardent/internal/domain/user"
	"github.com/ardentinvoicing/ardent/internal/testutil"
	"github.com/ardentinvoicing/ardent/internal/types"
)

type RecurringInvoiceSuite struct {
	testutil.BaseServiceTestSuite
	service RecurringInvoiceService
}

func TestRecurringInvoiceService(t *testing.T) {
	suite.Run(t, new(RecurringInvoiceSuite))
}

func (s *RecurringInvoiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	params := newTestParams(&s.BaseServiceTestSuite)
	s.service = NewRecurringInvoiceService(params, NewNotificationService(params))

	u := user.New(s.GetContext(), "owner@kente.gh", types.UserRoleSME)
	u.ID = types.DefaultUserID
	u.TenantID = types.DefaultTenantID
	s.NoError(s.GetStores().UserRepo.Create(s.GetContext(), u))

	t := tenant.New(s.GetContext(), "Kente Designs", u.ID)
	t.ID = types.DefaultTenantID
	s.NoError(s.GetStores().TenantRepo.Create(s.GetContext(), t))
}

func (s *RecurringInvoiceSuite) seedTemplate() *invoice.Invoice {
	inv := invoice.New(s.GetContext())
	inv.InvoiceNumber = types.FormatInvoiceNumber(2026, 1)
	inv.InvoiceStatus = types.InvoiceStatusSent
	inv.ClientName = "Accra Textiles"
	inv.ClientEmail = "accounts@accratextiles.gh"
	inv.Currency = "GHS"
	inv.IsRecurring = true
	inv.DueDate = time.Now().UTC().AddDate(0, -1, 0)
	inv.LineItems = []*invoice.LineItem{
		{
			ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE_LINE_ITEM),
			InvoiceID:   inv.ID,
			Description: "Monthly retainer",
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   decimal.NewFromInt(300),
			Amount:      decimal.NewFromInt(300),
			BaseModel:   types.GetDefaultBaseModel(s.GetContext()),
		},
	}
	inv.Amount = decimal.NewFromInt(300)
	s.NoError(s.GetStores().InvoiceRepo.CreateWithLineItems(s.GetContext(), inv))
	return inv
}

func (s *RecurringInvoiceSuite) seedSchedule(invoiceID string, nextRun time.Time) *schedule.RecurringSchedule {
	sched := schedule.New(s.GetContext(), invoiceID, types.BillingIntervalMonthly, nextRun)
	s.NoError(s.GetStores().ScheduleRepo.Create(s.GetContext(), sched))
	return sched
}

func (s *RecurringInvoiceSuite) TestGeneratesInvoiceFromDueSchedule() {
	template := s.seedTemplate()
	nextRun := time.Now().UTC().AddDate(0, 0, -1)
	sched := s.seedSchedule(template.ID, nextRun)

	result, err := s.service.GenerateDueInvoices(s.GetContext())
	s.NoError(err)
	s.Equal(1, result.Processed)
	s.Equal(1, result.Succeeded)

	invoices, err := s.GetStores().InvoiceRepo.ListByTenant(s.GetContext(), types.DefaultTenantID)
	s.NoError(err)
	s.Require().Len(invoices, 2)

	var generated *invoice.Invoice
	for _, inv := range invoices {
		if inv.ID != template.ID {
			generated = inv
		}
	}
	s.Require().NotNil(generated)
	s.Equal(types.InvoiceStatusDraft, generated.InvoiceStatus)
	s.Require().NotNil(generated.ParentInvoiceID)
	s.Equal(template.ID, *generated.ParentInvoiceID)
	s.Equal(template.ClientName, generated.ClientName)
	s.True(generated.Amount.Equal(template.Amount))
	s.Len(generated.LineItems, 1)
	s.Equal(types.FormatInvoiceNumber(nextRun.Year(), 1), generated.InvoiceNumber)
	s.Equal(types.AddClampedDate(nextRun, 0, 1, 0), generated.DueDate)

	stored, err := s.GetStores().ScheduleRepo.Get(s.GetContext(), sched.ID)
	s.NoError(err)
	s.True(stored.NextRun.After(time.Now().UTC()))
}

func (s *RecurringInvoiceSuite) TestSameDayRerunGeneratesNothing() {
	template := s.seedTemplate()
	s.seedSchedule(template.ID, time.Now().UTC().AddDate(0, 0, -1))

	_, err := s.service.GenerateDueInvoices(s.GetContext())
	s.NoError(err)

	result, err := s.service.GenerateDueInvoices(s.GetContext())
	s.NoError(err)
	s.Equal(0, result.Processed)

	invoices, err := s.GetStores().InvoiceRepo.ListByTenant(s.GetContext(), types.DefaultTenantID)
	s.NoError(err)
	s.Len(invoices, 2)
}

func (s *RecurringInvoiceSuite) TestStalledScheduleCatchesUpWithOneInvoice() {
	template := s.seedTemplate()
	sched := s.seedSchedule(template.ID, time.Now().UTC().AddDate(0, -3, -5))

	_, err := s.service.GenerateDueInvoices(s.GetContext())
	s.NoError(err)

	invoices, err := s.GetStores().InvoiceRepo.ListByTenant(s.GetContext(), types.DefaultTenantID)
	s.NoError(err)
	s.Len(invoices, 2)

	stored, err := s.GetStores().ScheduleRepo.Get(s.GetContext(), sched.ID)
	s.NoError(err)
	s.True(stored.NextRun.After(time.Now().UTC()))
}

func (s *RecurringInvoiceSuite) TestDeletedTemplateRetiresSchedule() {
	sched := s.seedSchedule("inv_deleted_template", time.Now().UTC().AddDate(0, 0, -1))

	result, err := s.service.GenerateDueInvoices(s.GetContext())
	s.NoError(err)
	s.Equal(0, result.Errors)

	stored, err := s.GetStores().ScheduleRepo.Get(s.GetContext(), sched.ID)
	s.NoError(err)
	s.False(stored.IsActive)

	invoices, err := s.GetStores().InvoiceRepo.ListByTenant(s.GetContext(), types.DefaultTenantID)
	s.NoError(err)
	s.Empty(invoices)
}

func (s *RecurringInvoiceSuite) TestGenerationNotifiesOwner() {
	template := s.seedTemplate()
	s.seedSchedule(template.ID, time.Now().UTC().AddDate(0, 0, -1))

	_, err := s.service.GenerateDueInvoices(s.GetContext())
	s.NoError(err)

	notifications, err := s.GetStores().NotificationRepo.ListByUser(s.GetContext(), types.DefaultUserID, false)
	s.NoError(err)
	s.Require().Len(notifications, 1)
	s.Equal(types.NotificationTypeInfo, notifications[0].Type)
}
