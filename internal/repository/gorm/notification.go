package gorm

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/ardentinvoicing/ardent/internal/domain/notification"
	ierr "github.com/ardentinvoicing/ardent/internal/errors"
	"github.com/ardentinvoicing/ardent/internal/logger"
	"github.com/ardentinvoicing/ardent/internal/postgres"
)

type notificationRepository struct {
	db     postgres.IClient
	logger *logger.Logger
}

func NewNotificationRepository(db postgres.IClient, log *logger.Logger) notification.Repository {
	return &notificationRepository{db: db, logger: log}
}

func (r *notificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	if err := r.db.Querier(ctx).Create(n).Error; err != nil {
		return ierr.WithError(err).
			WithHint("failed to create notification").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *notificationRepository) Get(ctx context.Context, id string) (*notification.Notification, error) {
	var n notification.Notification
	err := r.db.Querier(ctx).First(&n, "id = ?", id).Error
	if err != nil {
		if ierr.Is(err, gorm.ErrRecordNotFound) {
			return nil, ierr.NewError("notification not found").
				WithHintf("no notification with id %s", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	return &n, nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]*notification.Notification, error) {
	q := r.db.Querier(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("read = ?", false)
	}
	var notifications []*notification.Notification
	if err := q.Order("created_at DESC").Find(&notifications).Error; err != nil {
		return nil, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	return notifications, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id string) error {
	err := r.db.Querier(ctx).Model(&notification.Notification{}).
		Where("id = ?", id).
		Update("read", true).Error
	if err != nil {
		return ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	err := r.db.Querier(ctx).Model(&notification.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true).Error
	if err != nil {
		return ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *notificationRepository) DeleteReadOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.Querier(ctx).
		Where("read = ? AND created_at < ?", true, cutoff).
		Delete(&notification.Notification{})
	if res.Error != nil {
		return 0, ierr.WithError(res.Error).Mark(ierr.ErrDatabase)
	}
	return res.RowsAffected, nil
}
