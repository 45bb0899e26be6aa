package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/ardentinvoicing/ardent/internal/domain/webhookevent"
	ierr "github.com/ardentinvoicing/ardent/internal/errors"
)

type InMemoryWebhookEventStore struct {
	mu     sync.RWMutex
	events map[string]*webhookevent.ProcessedEvent
}

func NewInMemoryWebhookEventStore() *InMemoryWebhookEventStore {
	return &InMemoryWebhookEventStore{events: make(map[string]*webhookevent.ProcessedEvent)}
}

func (s *InMemoryWebhookEventStore) MarkProcessed(ctx context.Context, event *webhookevent.ProcessedEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.events[event.EventID]; exists {
		return ierr.NewError("webhook event already processed").Mark(ierr.ErrAlreadyExists)
	}
	s.events[event.EventID] = event
	return nil
}

func (s *InMemoryWebhookEventStore) IsProcessed(ctx context.Context, eventID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.events[eventID]
	return exists, nil
}

func (s *InMemoryWebhookEventStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, event := range s.events {
		if event.ProcessedAt.Before(cutoff) {
			delete(s.events, id)
			deleted++
		}
	}
	return deleted, nil
}

func (s *InMemoryWebhookEventStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = make(map[string]*webhookevent.ProcessedEvent)
}
