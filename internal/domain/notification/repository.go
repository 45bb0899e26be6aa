package notification

import (
	"context"
	"time"
)

// Repository defines the interface for notification persistence
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	Get(ctx context.Context, id string) (*Notification, error)
	ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]*Notification, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, userID string) error

	// DeleteReadOlderThan removes read notifications created before the
	// cutoff; used by the retention job
	DeleteReadOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
