package invoice

import (
	"context"
	"time"
)

// Repository defines the interface for invoice persistence operations
type Repository interface {
	// Create persists a new invoice without line items
	Create(ctx context.Context, invoice *Invoice) error

	// CreateWithLineItems persists the invoice and its line items in a
	// single transaction
	CreateWithLineItems(ctx context.Context, invoice *Invoice) error

	// Get retrieves an invoice by ID with its line items
	Get(ctx context.Context, id string) (*Invoice, error)

	// Update updates an existing invoice
	Update(ctx context.Context, invoice *Invoice) error

	// ListByTenant retrieves all invoices for a tenant
	ListByTenant(ctx context.Context, tenantID string) ([]*Invoice, error)

	// ListOverdueCandidates retrieves sent/overdue invoices with a due
	// date at or before the cutoff, across all tenants
	ListOverdueCandidates(ctx context.Context, cutoff time.Time) ([]*Invoice, error)

	// NextSequence atomically increments and returns the per-tenant
	// per-year invoice sequence counter
	NextSequence(ctx context.Context, tenantID string, year int) (int64, error)
}
