package service

import (
	"context"

	"github.com/ardentinvoicing/ardent/internal/domain/notification"
	"github.com/ardentinvoicing/ardent/internal/realtime"
	"github.com/ardentinvoicing/ardent/internal/types"
)

// NotificationService persists in-app notifications and fans them out to
// realtime subscribers. Delivery failures never fail the caller; the
// notification row is the source of truth and the push is best-effort.
type NotificationService interface {
	Notify(ctx context.Context, userID string, typ types.NotificationType, title, message string) error
	ListForUser(ctx context.Context, userID string, unreadOnly bool) ([]*notification.Notification, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, userID string) error
}

type notificationService struct {
	ServiceParams
}

// NewNotificationService creates a new notification service
func NewNotificationService(params ServiceParams) NotificationService {
	return &notificationService{ServiceParams: params}
}

func (s *notificationService) Notify(ctx context.Context, userID string, typ types.NotificationType, title, message string) error {
	n := notification.New(ctx, userID, typ, title, message)
	if err := s.NotificationRepo.Create(ctx, n); err != nil {
		return err
	}

	s.Realtime.Publish(ctx, realtime.UserChannel(userID), "notification.created", n)
	if n.TenantID != nil {
		s.Realtime.Publish(ctx, realtime.TenantChannel(*n.TenantID), "notification.created", n)
	}
	return nil
}

func (s *notificationService) ListForUser(ctx context.Context, userID string, unreadOnly bool) ([]*notification.Notification, error) {
	return s.NotificationRepo.ListByUser(ctx, userID, unreadOnly)
}

func (s *notificationService) MarkRead(ctx context.Context, id string) error {
	return s.NotificationRepo.MarkRead(ctx, id)
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID string) error {
	return s.NotificationRepo.MarkAllRead(ctx, userID)
}
