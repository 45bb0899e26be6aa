package webhookevent

import (
	"context"
	"time"
)

// Repository defines the interface for webhook event dedup persistence
type Repository interface {
	// MarkProcessed records the event id; returns ErrAlreadyExists when
	// the id was recorded by an earlier delivery
	MarkProcessed(ctx context.Context, event *ProcessedEvent) error

	// IsProcessed reports whether the event id has been applied before
	IsProcessed(ctx context.Context, eventID string) (bool, error)

	// DeleteOlderThan removes dedup rows processed before the cutoff
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
