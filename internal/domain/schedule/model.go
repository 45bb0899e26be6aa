package schedule

import (
	"context"
	"time"

	"github.com/ardentinvoicing/ardent/internal/types"
)

// RecurringSchedule is a template invoice plus a cadence used to spawn new
// draft invoices automatically.
type RecurringSchedule struct {
	ID              string                `json:"id" gorm:"primaryKey"`
	InvoiceID       string                `json:"invoice_id" gorm:"index"`
	Frequency       types.BillingInterval `json:"frequency"`
	NextRun         time.Time             `json:"next_run" gorm:"index"`
	IsActive        bool                  `json:"is_active"`
	types.BaseModel `gorm:"embedded"`
}

func (RecurringSchedule) TableName() string {
	return "recurring_schedules"
}

// New returns an active schedule for the given template invoice
func New(ctx context.Context, invoiceID string, frequency types.BillingInterval, firstRun time.Time) *RecurringSchedule {
	return &RecurringSchedule{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_RECURRING_SCHEDULE),
		InvoiceID: invoiceID,
		Frequency: frequency,
		NextRun:   firstRun,
		IsActive:  true,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
}
