package tenant

import "context"

// Repository defines the interface for tenant persistence operations
type Repository interface {
	Create(ctx context.Context, tenant *Tenant) error
	Get(ctx context.Context, id string) (*Tenant, error)
	GetByOwner(ctx context.Context, ownerUserID string) (*Tenant, error)
	Update(ctx context.Context, tenant *Tenant) error
	List(ctx context.Context) ([]*Tenant, error)
}
