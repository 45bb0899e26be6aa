package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/ardentinvoicing/ardent/internal/domain/notification"
	ierr "github.com/ardentinvoicing/ardent/internal/errors"
)

type InMemoryNotificationStore struct {
	mu            sync.RWMutex
	notifications map[string]*notification.Notification
}

func NewInMemoryNotificationStore() *InMemoryNotificationStore {
	return &InMemoryNotificationStore{notifications: make(map[string]*notification.Notification)}
}

func (s *InMemoryNotificationStore) Create(ctx context.Context, n *notification.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.notifications[n.ID]; exists {
		return ierr.NewError("notification already exists").Mark(ierr.ErrAlreadyExists)
	}
	s.notifications[n.ID] = n
	return nil
}

func (s *InMemoryNotificationStore) Get(ctx context.Context, id string) (*notification.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n, exists := s.notifications[id]; exists {
		return n, nil
	}
	return nil, ierr.NewError("notification not found").Mark(ierr.ErrNotFound)
}

func (s *InMemoryNotificationStore) ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]*notification.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*notification.Notification
	for _, n := range s.notifications {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.Read {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (s *InMemoryNotificationStore) MarkRead(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, exists := s.notifications[id]
	if !exists {
		return ierr.NewError("notification not found").Mark(ierr.ErrNotFound)
	}
	n.Read = true
	return nil
}

func (s *InMemoryNotificationStore) MarkAllRead(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range s.notifications {
		if n.UserID == userID {
			n.Read = true
		}
	}
	return nil
}

func (s *InMemoryNotificationStore) DeleteReadOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, n := range s.notifications {
		if n.Read && n.CreatedAt.Before(cutoff) {
			delete(s.notifications, id)
			deleted++
		}
	}
	return deleted, nil
}

func (s *InMemoryNotificationStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = make(map[string]*notification.Notification)
}
