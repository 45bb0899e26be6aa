package gorm

import (
	"context"
	"time"

	"gorm.io/gorm/clause"

	ierr "github.com/ardentinvoicing/ardent/internal/errors"
	"github.com/ardentinvoicing/ardent/internal/domain/webhookevent"
	"github.com/ardentinvoicing/ardent/internal/logger"
	"github.com/ardentinvoicing/ardent/internal/postgres"
)

type webhookEventRepository struct {
	db     postgres.IClient
	logger *logger.Logger
}

func NewWebhookEventRepository(db postgres.IClient, log *logger.Logger) webhookevent.Repository {
	return &webhookEventRepository{db: db, logger: log}
}

func (r *webhookEventRepository) MarkProcessed(ctx context.Context, event *webhookevent.ProcessedEvent) error {
	res := r.db.Querier(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(event)
	if res.Error != nil {
		return ierr.WithError(res.Error).
			WithHint("failed to record webhook event").
			Mark(ierr.ErrDatabase)
	}
	if res.RowsAffected == 0 {
		return ierr.NewError("webhook event already processed").
			WithHintf("event %s was applied by an earlier delivery", event.EventID).
			Mark(ierr.ErrAlreadyExists)
	}
	return nil
}

func (r *webhookEventRepository) IsProcessed(ctx context.Context, eventID string) (bool, error) {
	var count int64
	err := r.db.Querier(ctx).Model(&webhookevent.ProcessedEvent{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	if err != nil {
		return false, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	return count > 0, nil
}

func (r *webhookEventRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.Querier(ctx).
		Where("processed_at < ?", cutoff).
		Delete(&webhookevent.ProcessedEvent{})
	if res.Error != nil {
		return 0, ierr.WithError(res.Error).Mark(ierr.ErrDatabase)
	}
	return res.RowsAffected, nil
}
