package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/ardentinvoicing/ardent/internal/domain/invoice"
	"github.com/ardentinvoicing/ardent/internal/domain/tenant"
	"github.com/ardentinvoicing/ardent/internal/domain/user"
	"github.com/ardentinvoicing/ardent/internal/email"
	"github.com/ardentinvoicing/ardent/internal/testutil"
	"github.com/ardentinvoicing/ardent/internal/types"
)

type ReminderServiceSuite struct {
	testutil.BaseServiceTestSuite
	service ReminderService
}

func TestReminderService(t *testing.T) {
	suite.Run(t, new(ReminderServiceSuite))
}

func (s *ReminderServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	params := newTestParams(&s.BaseServiceTestSuite)
	s.service = NewReminderService(params, NewNotificationService(params))

	u := user.New(s.GetContext(), "owner@kente.gh", types.UserRoleSME)
	u.ID = types.DefaultUserID
	u.TenantID = types.DefaultTenantID
	s.NoError(s.GetStores().UserRepo.Create(s.GetContext(), u))

	t := tenant.New(s.GetContext(), "Kente Designs", u.ID)
	t.ID = types.DefaultTenantID
	s.NoError(s.GetStores().TenantRepo.Create(s.GetContext(), t))
}

func (s *ReminderServiceSuite) seedInvoice(status types.InvoiceStatus, daysOverdue int, reminderCount int, lastSent *time.Time) *invoice.Invoice {
	inv := invoice.New(s.GetContext())
	inv.InvoiceNumber = types.FormatInvoiceNumber(2025, 7)
	inv.InvoiceStatus = status
	inv.ClientName = "Accra Textiles"
	inv.ClientEmail = "accounts@accratextiles.gh"
	inv.Amount = decimal.NewFromInt(500)
	inv.Currency = "GHS"
	inv.DueDate = time.Now().UTC().AddDate(0, 0, -daysOverdue)
	inv.ReminderCount = reminderCount
	inv.LastReminderSent = lastSent
	s.NoError(s.GetStores().InvoiceRepo.Create(s.GetContext(), inv))
	return inv
}

func (s *ReminderServiceSuite) TestPromotesSentInvoiceAndSendsFirstReminder() {
	inv := s.seedInvoice(types.InvoiceStatusSent, 2, 0, nil)

	result, err := s.service.EscalateReminders(s.GetContext())
	s.NoError(err)
	s.Equal(1, result.Processed)
	s.Equal(1, result.Succeeded)

	stored, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusOverdue, stored.InvoiceStatus)
	s.Equal(1, stored.ReminderCount)
	s.NotNil(stored.LastReminderSent)

	s.Require().Len(s.GetEmail().Sent, 1)
	s.Equal(email.TemplateReminderGentle, s.GetEmail().Sent[0].Template)
	s.Equal("accounts@accratextiles.gh", s.GetEmail().Sent[0].To)
}

func (s *ReminderServiceSuite) TestPromotesWithoutReminderUnderOneDay() {
	inv := invoice.New(s.GetContext())
	inv.InvoiceNumber = types.FormatInvoiceNumber(2025, 8)
	inv.InvoiceStatus = types.InvoiceStatusSent
	inv.ClientName = "Accra Textiles"
	inv.ClientEmail = "accounts@accratextiles.gh"
	inv.Amount = decimal.NewFromInt(100)
	inv.Currency = "GHS"
	inv.DueDate = time.Now().UTC().Add(-12 * time.Hour)
	s.NoError(s.GetStores().InvoiceRepo.Create(s.GetContext(), inv))

	result, err := s.service.EscalateReminders(s.GetContext())
	s.NoError(err)
	s.Equal(0, result.Succeeded)

	stored, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusOverdue, stored.InvoiceStatus)
	s.Equal(0, stored.ReminderCount)
	s.Empty(s.GetEmail().Sent)
}

func (s *ReminderServiceSuite) TestMissingClientEmailDoesNotConsumeAllowance() {
	inv := invoice.New(s.GetContext())
	inv.InvoiceNumber = types.FormatInvoiceNumber(2025, 9)
	inv.InvoiceStatus = types.InvoiceStatusSent
	inv.ClientName = "Accra Textiles"
	inv.Amount = decimal.NewFromInt(200)
	inv.Currency = "GHS"
	inv.DueDate = time.Now().UTC().AddDate(0, 0, -5)
	s.NoError(s.GetStores().InvoiceRepo.Create(s.GetContext(), inv))

	result, err := s.service.EscalateReminders(s.GetContext())
	s.NoError(err)
	s.Equal(0, result.Succeeded)

	// Promoted to overdue but no reminder counted against the invoice
	stored, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusOverdue, stored.InvoiceStatus)
	s.Equal(0, stored.ReminderCount)
	s.Nil(stored.LastReminderSent)
	s.Empty(s.GetEmail().Sent)
}

func (s *ReminderServiceSuite) TestFourteenDaysOverdueFirstReminderIsUrgent() {
	inv := s.seedInvoice(types.InvoiceStatusOverdue, 14, 0, nil)

	result, err := s.service.EscalateReminders(s.GetContext())
	s.NoError(err)
	s.Equal(1, result.Succeeded)

	stored, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Equal("INV-2025-0007", stored.InvoiceNumber)
	s.Equal(1, stored.ReminderCount)

	s.Require().Len(s.GetEmail().Sent, 1)
	s.Equal(email.TemplateReminderUrgent, s.GetEmail().Sent[0].Template)
}

func (s *ReminderServiceSuite) TestBucketAllowanceCapsReminders() {
	// 10 days overdue allows at most 2 reminders; both already sent
	lastSent := time.Now().UTC().Add(-48 * time.Hour)
	inv := s.seedInvoice(types.InvoiceStatusOverdue, 10, 2, &lastSent)

	result, err := s.service.EscalateReminders(s.GetContext())
	s.NoError(err)
	s.Equal(0, result.Succeeded)

	stored, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Equal(2, stored.ReminderCount)
	s.Empty(s.GetEmail().Sent)
}

func (s *ReminderServiceSuite) TestFourteenDayBucketSendsUrgent() {
	lastSent := time.Now().UTC().Add(-48 * time.Hour)
	inv := s.seedInvoice(types.InvoiceStatusOverdue, 15, 2, &lastSent)

	result, err := s.service.EscalateReminders(s.GetContext())
	s.NoError(err)
	s.Equal(1, result.Succeeded)

	stored, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Equal(3, stored.ReminderCount)

	s.Require().Len(s.GetEmail().Sent, 1)
	s.Equal(email.TemplateReminderUrgent, s.GetEmail().Sent[0].Template)
}

func (s *ReminderServiceSuite) TestAtMostOneReminderPerInvoicePerRun() {
	// Deep overdue with no reminders sent matches every bucket; only the
	// most severe one fires
	inv := s.seedInvoice(types.InvoiceStatusOverdue, 45, 0, nil)

	result, err := s.service.EscalateReminders(s.GetContext())
	s.NoError(err)
	s.Equal(1, result.Succeeded)

	stored, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Equal(1, stored.ReminderCount)

	s.Require().Len(s.GetEmail().Sent, 1)
	s.Equal(email.TemplateReminderFinal, s.GetEmail().Sent[0].Template)
}

func (s *ReminderServiceSuite) TestSeverityEscalationReopensAllowance() {
	// Three reminders exhausted the 14-day bucket; crossing 30 days
	// overdue raises the allowance to five and sends the final notice
	lastSent := time.Now().UTC().Add(-72 * time.Hour)
	inv := s.seedInvoice(types.InvoiceStatusOverdue, 31, 3, &lastSent)

	result, err := s.service.EscalateReminders(s.GetContext())
	s.NoError(err)
	s.Equal(1, result.Succeeded)

	stored, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Equal(4, stored.ReminderCount)

	s.Require().Len(s.GetEmail().Sent, 1)
	s.Equal(email.TemplateReminderFinal, s.GetEmail().Sent[0].Template)
}

func (s *ReminderServiceSuite) TestCooldownBlocksBackToBackReminders() {
	lastSent := time.Now().UTC().Add(-time.Hour)
	inv := s.seedInvoice(types.InvoiceStatusOverdue, 8, 1, &lastSent)

	result, err := s.service.EscalateReminders(s.GetContext())
	s.NoError(err)
	s.Equal(0, result.Succeeded)

	stored, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Equal(1, stored.ReminderCount)
	s.Empty(s.GetEmail().Sent)
}

func (s *ReminderServiceSuite) TestReminderCreatesOwnerNotification() {
	s.seedInvoice(types.InvoiceStatusOverdue, 2, 0, nil)

	_, err := s.service.EscalateReminders(s.GetContext())
	s.NoError(err)

	notifications, err := s.GetStores().NotificationRepo.ListByUser(s.GetContext(), types.DefaultUserID, false)
	s.NoError(err)
	s.Require().Len(notifications, 1)
	s.Equal(types.NotificationTypeWarning, notifications[0].Type)
}

func (s *ReminderServiceSuite) TestPaidInvoicesAreNotCandidates() {
	inv := s.seedInvoice(types.InvoiceStatusSent, 5, 0, nil)
	inv.InvoiceStatus = types.InvoiceStatusPaid
	s.NoError(s.GetStores().InvoiceRepo.Update(s.GetContext(), inv))

	result, err := s.service.EscalateReminders(s.GetContext())
	s.NoError(err)
	s.Equal(0, result.Processed)
	s.Empty(s.GetEmail().Sent)
}
