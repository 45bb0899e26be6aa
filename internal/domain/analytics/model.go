package analytics

import (
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot is a per-tenant per-day rollup of revenue, expenses and
// outstanding invoice amounts, produced by the analytics cron job and read
// by the dashboard.
type Snapshot struct {
	ID                string          `json:"id" gorm:"primaryKey"`
	TenantID          string          `json:"tenant_id" gorm:"index:idx_snapshots_tenant_day,unique,composite:day"`
	Day               time.Time       `json:"day" gorm:"index:idx_snapshots_tenant_day,unique,composite:day"`
	Currency          string          `json:"currency"`
	RevenuePaid       decimal.Decimal `json:"revenue_paid" gorm:"type:numeric"`
	ExpensesTotal     decimal.Decimal `json:"expenses_total" gorm:"type:numeric"`
	OutstandingAmount decimal.Decimal `json:"outstanding_amount" gorm:"type:numeric"`
	OverdueCount      int             `json:"overdue_count"`
	CreatedAt         time.Time       `json:"created_at"`
}

func (Snapshot) TableName() string {
	return "analytics_snapshots"
}
