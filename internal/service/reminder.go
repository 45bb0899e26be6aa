package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ardentinvoicing/ardent/internal/domain/invoice"
	"github.com/ardentinvoicing/ardent/internal/email"
	"github.com/ardentinvoicing/ardent/internal/types"
)

// reminderBucket maps days overdue to the reminder allowance at that
// severity. Buckets are checked from most severe to least; an invoice
// sends at most one reminder per run and never more than the bucket's
// allowance in total.
type reminderBucket struct {
	minDays      int
	maxReminders int
	template     email.TemplateName
	subject      string
}

var reminderBuckets = []reminderBucket{
	{30, 5, email.TemplateReminderFinal, "Final notice: invoice %s"},
	{14, 3, email.TemplateReminderUrgent, "Urgent: invoice %s is overdue"},
	{7, 2, email.TemplateReminderFirm, "Reminder: invoice %s is overdue"},
	{1, 1, email.TemplateReminderGentle, "Reminder: invoice %s"},
}

// reminderCooldown is the minimum gap between reminders for one invoice
const reminderCooldown = 24 * time.Hour

// ReminderService escalates payment reminders for overdue invoices and
// promotes past-due sent invoices to overdue.
type ReminderService interface {
	EscalateReminders(ctx context.Context) (*JobResult, error)
}

type reminderService struct {
	ServiceParams
	notifications NotificationService
}

// NewReminderService creates a new reminder service
func NewReminderService(params ServiceParams, notifications NotificationService) ReminderService {
	return &reminderService{ServiceParams: params, notifications: notifications}
}

func (s *reminderService) EscalateReminders(ctx context.Context) (*JobResult, error) {
	now := time.Now().UTC()
	candidates, err := s.InvoiceRepo.ListOverdueCandidates(ctx, now)
	if err != nil {
		return nil, err
	}

	result := &JobResult{Processed: len(candidates)}
	for _, inv := range candidates {
		sent, err := s.processInvoice(ctx, inv, now)
		if err != nil {
			s.Logger.Errorw("failed to process reminder",
				"invoice_id", inv.ID,
				"invoice_number", inv.InvoiceNumber,
				"error", err)
			result.fail(inv.ID, err)
			continue
		}
		if sent {
			result.ok(inv.ID, fmt.Sprintf("reminder %d sent", inv.ReminderCount))
		} else {
			result.skip(inv.ID, "no reminder due")
		}
	}

	s.Logger.Infow("reminder run complete",
		"processed", result.Processed,
		"sent", result.Succeeded,
		"errors", result.Errors)
	return result, nil
}

// processInvoice promotes the invoice to overdue when needed, then sends
// at most one reminder if the bucket allowance and cooldown permit.
func (s *reminderService) processInvoice(ctx context.Context, inv *invoice.Invoice, now time.Time) (bool, error) {
	changed := false
	if inv.InvoiceStatus == types.InvoiceStatusSent && inv.DueDate.Before(now) {
		inv.InvoiceStatus = types.InvoiceStatusOverdue
		changed = true
	}

	// An invoice with no client email is not a candidate; promotion still
	// applies but the allowance is untouched
	bucket := bucketFor(types.DaysOverdue(inv.DueDate, now))
	sendReminder := bucket != nil &&
		inv.ClientEmail != "" &&
		inv.ReminderCount < bucket.maxReminders &&
		cooldownElapsed(inv.LastReminderSent, now)

	if sendReminder {
		inv.ReminderCount++
		inv.LastReminderSent = &now
		changed = true
	}

	if !changed {
		return false, nil
	}

	inv.UpdatedAt = now
	if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
		return false, err
	}

	if !sendReminder {
		return false, nil
	}

	// The reminder state is already persisted; a failed send is logged
	// and retried naturally at the next run via the cooldown
	tenantCtx := types.SetTenantID(ctx, inv.TenantID)
	t, err := s.TenantRepo.Get(ctx, inv.TenantID)
	if err != nil {
		s.Logger.Errorw("reminder for invoice with unknown tenant",
			"invoice_id", inv.ID,
			"tenant_id", inv.TenantID)
		return true, nil
	}

	if err := s.Email.SendTemplate(ctx, inv.ClientEmail,
		fmt.Sprintf(bucket.subject, inv.InvoiceNumber),
		bucket.template, map[string]any{
			"Name":          inv.ClientName,
			"BusinessName":  t.BusinessName,
			"InvoiceNumber": inv.InvoiceNumber,
			"Amount":        inv.Total().StringFixed(2),
			"Currency":      inv.Currency,
			"DueDate":       inv.DueDate.Format("2 Jan 2006"),
			"DaysOverdue":   types.DaysOverdue(inv.DueDate, now),
		}); err != nil {
		s.Logger.Errorw("failed to send reminder email",
			"invoice_id", inv.ID,
			"error", err)
	}

	if err := s.notifications.Notify(tenantCtx, t.OwnerUserID, types.NotificationTypeWarning,
		"Payment reminder sent",
		fmt.Sprintf("Reminder %d sent for invoice %s (%d days overdue)",
			inv.ReminderCount, inv.InvoiceNumber, types.DaysOverdue(inv.DueDate, now))); err != nil {
		s.Logger.Errorw("failed to notify reminder", "error", err)
	}

	return true, nil
}

// bucketFor returns the most severe bucket the overdue age qualifies for,
// nil when the invoice is less than a day overdue
func bucketFor(daysOverdue int) *reminderBucket {
	for i := range reminderBuckets {
		if daysOverdue >= reminderBuckets[i].minDays {
			return &reminderBuckets[i]
		}
	}
	return nil
}

func cooldownElapsed(last *time.Time, now time.Time) bool {
	if last == nil {
		return true
	}
	return now.Sub(*last) >= reminderCooldown
}
