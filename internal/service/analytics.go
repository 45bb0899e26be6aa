package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ardentinvoicing/ardent/internal/domain/analytics"
	"github.com/ardentinvoicing/ardent/internal/types"
)

// AnalyticsService builds the per-tenant daily rollups the dashboard
// reads. Amounts are normalised into the platform base currency; upserts
// keep re-runs for the same day idempotent.
type AnalyticsService interface {
	BuildDailySnapshots(ctx context.Context, day time.Time) (*JobResult, error)
	ListSnapshots(ctx context.Context, tenantID string, from, to time.Time) ([]*analytics.Snapshot, error)
}

type analyticsService struct {
	ServiceParams
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(params ServiceParams) AnalyticsService {
	return &analyticsService{ServiceParams: params}
}

func (s *analyticsService) BuildDailySnapshots(ctx context.Context, day time.Time) (*JobResult, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	tenants, err := s.TenantRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	result := &JobResult{Processed: len(tenants)}
	for _, t := range tenants {
		if t.Status != types.StatusActive {
			result.skip(t.ID, "tenant inactive")
			continue
		}
		if err := s.snapshotTenant(ctx, t.ID, dayStart, dayEnd); err != nil {
			s.Logger.Errorw("failed to build analytics snapshot",
				"tenant_id", t.ID,
				"day", dayStart.Format("2006-01-02"),
				"error", err)
			result.fail(t.ID, err)
			continue
		}
		result.ok(t.ID, "")
	}

	s.Logger.Infow("analytics snapshot run complete",
		"day", dayStart.Format("2006-01-02"),
		"processed", result.Processed,
		"succeeded", result.Succeeded,
		"errors", result.Errors)
	return result, nil
}

func (s *analyticsService) snapshotTenant(ctx context.Context, tenantID string, dayStart, dayEnd time.Time) error {
	base := s.Config.ExchangeRate.BaseCurrency

	invoices, err := s.InvoiceRepo.ListByTenant(ctx, tenantID)
	if err != nil {
		return err
	}

	revenue := decimal.Zero
	outstanding := decimal.Zero
	overdueCount := 0
	for _, inv := range invoices {
		total, err := s.ExchangeRates.Convert(ctx, inv.Total(), inv.Currency, base)
		if err != nil {
			// An unconvertible currency must not zero the whole snapshot
			s.Logger.Warnw("skipping invoice with unconvertible currency",
				"invoice_id", inv.ID,
				"currency", inv.Currency)
			continue
		}

		switch inv.InvoiceStatus {
		case types.InvoiceStatusPaid:
			if inv.PaidAt != nil && !inv.PaidAt.Before(dayStart) && inv.PaidAt.Before(dayEnd) {
				revenue = revenue.Add(total)
			}
		case types.InvoiceStatusSent:
			outstanding = outstanding.Add(total)
		case types.InvoiceStatusOverdue:
			outstanding = outstanding.Add(total)
			overdueCount++
		}
	}

	expenses, err := s.ExpenseRepo.ListByPeriod(ctx, tenantID, dayStart, dayEnd)
	if err != nil {
		return err
	}
	expenseTotal := decimal.Zero
	for _, e := range expenses {
		amount, err := s.ExchangeRates.Convert(ctx, e.Amount, e.Currency, base)
		if err != nil {
			s.Logger.Warnw("skipping expense with unconvertible currency",
				"expense_id", e.ID,
				"currency", e.Currency)
			continue
		}
		expenseTotal = expenseTotal.Add(amount)
	}

	return s.AnalyticsRepo.Upsert(ctx, &analytics.Snapshot{
		ID:                types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ANALYTICS_SNAPSHOT),
		TenantID:          tenantID,
		Day:               dayStart,
		Currency:          base,
		RevenuePaid:       revenue,
		ExpensesTotal:     expenseTotal,
		OutstandingAmount: outstanding,
		OverdueCount:      overdueCount,
		CreatedAt:         time.Now().UTC(),
	})
}

func (s *analyticsService) ListSnapshots(ctx context.Context, tenantID string, from, to time.Time) ([]*analytics.Snapshot, error) {
	return s.AnalyticsRepo.ListByTenant(ctx, tenantID, from, to)
}
