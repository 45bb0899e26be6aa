package expense

import (
	"context"
	"time"
)

// Repository defines the interface for expense persistence operations
type Repository interface {
	Create(ctx context.Context, expense *Expense) error
	Get(ctx context.Context, id string) (*Expense, error)
	Update(ctx context.Context, expense *Expense) error
	Delete(ctx context.Context, id string) error
	ListByTenant(ctx context.Context, tenantID string) ([]*Expense, error)

	// ListByPeriod retrieves a tenant's expenses dated within [from, to)
	ListByPeriod(ctx context.Context, tenantID string, from, to time.Time) ([]*Expense, error)
}
