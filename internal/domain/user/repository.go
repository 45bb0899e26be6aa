package user

import "context"

// Repository defines the interface for user persistence operations
type Repository interface {
	Create(ctx context.Context, user *User) error
	Get(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error

	// ResetQuota sets invoice_quota_used to 0 for the user
	ResetQuota(ctx context.Context, id string) error

	// IncrementQuota adds one to invoice_quota_used atomically
	IncrementQuota(ctx context.Context, id string) error
}
