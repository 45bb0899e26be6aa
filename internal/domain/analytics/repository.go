package analytics

import (
	"context"
	"time"
)

// Repository defines the interface for analytics snapshot persistence
type Repository interface {
	// Upsert writes the snapshot, replacing an existing row for the same
	// tenant and day so re-runs are idempotent
	Upsert(ctx context.Context, snap *Snapshot) error

	// ListByTenant retrieves a tenant's snapshots within [from, to)
	ListByTenant(ctx context.Context, tenantID string, from, to time.Time) ([]*Snapshot, error)
}
