package service

import (
	"context"
	"time"

	ierr "github.com/ardentinvoicing/ardent/internal/errors"
	"github.com/ardentinvoicing/ardent/internal/types"
)

// RecurringInvoiceService spawns draft invoices from due recurring
// schedules. Each schedule is advanced past now before the run moves on,
// so a failing schedule cannot stall the rest and a same-day re-run does
// not generate twice.
type RecurringInvoiceService interface {
	GenerateDueInvoices(ctx context.Context) (*JobResult, error)
}

type recurringInvoiceService struct {
	ServiceParams
	notifications NotificationService
}

// NewRecurringInvoiceService creates a new recurring invoice service
func NewRecurringInvoiceService(params ServiceParams, notifications NotificationService) RecurringInvoiceService {
	return &recurringInvoiceService{ServiceParams: params, notifications: notifications}
}

func (s *recurringInvoiceService) GenerateDueInvoices(ctx context.Context) (*JobResult, error) {
	now := time.Now().UTC()
	due, err := s.ScheduleRepo.ListDue(ctx, now)
	if err != nil {
		return nil, err
	}

	result := &JobResult{Processed: len(due)}
	for _, sched := range due {
		if err := s.generateOne(ctx, sched.ID, now); err != nil {
			s.Logger.Errorw("failed to generate recurring invoice",
				"schedule_id", sched.ID,
				"error", err)
			result.fail(sched.ID, err)
			continue
		}
		result.ok(sched.ID, "")
	}

	s.Logger.Infow("recurring invoice run complete",
		"processed", result.Processed,
		"succeeded", result.Succeeded,
		"errors", result.Errors)
	return result, nil
}

func (s *recurringInvoiceService) generateOne(ctx context.Context, scheduleID string, now time.Time) error {
	return s.DB.WithTx(ctx, func(txCtx context.Context) error {
		sched, err := s.ScheduleRepo.Get(txCtx, scheduleID)
		if err != nil {
			return err
		}
		if !sched.IsActive || sched.NextRun.After(now) {
			return nil
		}

		template, err := s.InvoiceRepo.Get(txCtx, sched.InvoiceID)
		if err != nil {
			if ierr.IsNotFound(err) {
				// Template deleted; retire the schedule rather than fail
				// every future run
				sched.IsActive = false
				sched.UpdatedAt = now
				return s.ScheduleRepo.Update(txCtx, sched)
			}
			return err
		}

		jobCtx := types.SetTenantID(txCtx, template.TenantID)
		jobCtx = types.SetUserID(jobCtx, types.DefaultUserID)

		next := template.Clone(jobCtx)
		// Due one frequency interval after the run it was generated for
		due, err := types.NextRunDate(sched.NextRun, sched.Frequency)
		if err != nil {
			return err
		}
		next.DueDate = due

		year := sched.NextRun.Year()
		seq, err := s.InvoiceRepo.NextSequence(jobCtx, template.TenantID, year)
		if err != nil {
			return err
		}
		next.InvoiceNumber = types.FormatInvoiceNumber(year, seq)

		if err := s.InvoiceRepo.CreateWithLineItems(jobCtx, next); err != nil {
			return err
		}

		// Advance past now so a re-run today is a no-op; a schedule that
		// was paused across several periods catches up to the present
		// instead of generating one invoice per missed period
		nextRun := sched.NextRun
		for !nextRun.After(now) {
			nextRun, err = types.NextRunDate(nextRun, sched.Frequency)
			if err != nil {
				return err
			}
		}
		sched.NextRun = nextRun
		sched.UpdatedAt = now
		if err := s.ScheduleRepo.Update(jobCtx, sched); err != nil {
			return err
		}

		s.Logger.Infow("generated recurring invoice",
			"schedule_id", sched.ID,
			"template_invoice_id", template.ID,
			"invoice_id", next.ID,
			"invoice_number", next.InvoiceNumber,
			"next_run", sched.NextRun)

		if t, err := s.TenantRepo.Get(jobCtx, template.TenantID); err == nil {
			if err := s.notifications.Notify(jobCtx, t.OwnerUserID, types.NotificationTypeInfo,
				"Recurring invoice created",
				"Invoice "+next.InvoiceNumber+" was generated for "+next.ClientName); err != nil {
				s.Logger.Errorw("failed to notify recurring invoice", "error", err)
			}
		}
		return nil
	})
}
