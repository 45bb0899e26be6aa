package schedule

import (
	"context"
	"time"
)

// Repository defines the interface for recurring schedule persistence
type Repository interface {
	Create(ctx context.Context, sched *RecurringSchedule) error
	Get(ctx context.Context, id string) (*RecurringSchedule, error)
	Update(ctx context.Context, sched *RecurringSchedule) error

	// ListDue retrieves active schedules whose next run is at or before
	// the cutoff, across all tenants
	ListDue(ctx context.Context, cutoff time.Time) ([]*RecurringSchedule, error)

	// ListByTenant retrieves all schedules for a tenant
	ListByTenant(ctx context.Context, tenantID string) ([]*RecurringSchedule, error)
}
