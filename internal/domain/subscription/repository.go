package subscription

import (
	"context"
	"time"

	"github.com/ardentinvoicing/ardent/internal/types"
)

// Repository defines the interface for subscription persistence operations
type Repository interface {
	Create(ctx context.Context, sub *Subscription) error
	Get(ctx context.Context, id string) (*Subscription, error)
	Update(ctx context.Context, sub *Subscription) error

	// GetByGatewaySubscriptionID looks a subscription up by the gateway's
	// subscription code
	GetByGatewaySubscriptionID(ctx context.Context, gatewayID string) (*Subscription, error)

	// GetPendingByCustomerCode finds the pending subscription created
	// during checkout for the given gateway customer
	GetPendingByCustomerCode(ctx context.Context, customerCode string) (*Subscription, error)

	// ListDue retrieves active subscriptions whose next billing date is at
	// or before the cutoff
	ListDue(ctx context.Context, cutoff time.Time) ([]*Subscription, error)

	// ListByStatus retrieves all subscriptions in the given status
	ListByStatus(ctx context.Context, status types.SubscriptionStatus) ([]*Subscription, error)
}
