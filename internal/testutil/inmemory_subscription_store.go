package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/ardentinvoicing/ardent/internal/domain/subscription"
	ierr "github.com/ardentinvoicing/ardent/internal/errors"
	"github.com/ardentinvoicing/ardent/internal/types"
)

type InMemorySubscriptionStore struct {
	mu            sync.RWMutex
	subscriptions map[string]*subscription.Subscription
}

func NewInMemorySubscriptionStore() *InMemorySubscriptionStore {
	return &InMemorySubscriptionStore{subscriptions: make(map[string]*subscription.Subscription)}
}

func (s *InMemorySubscriptionStore) Create(ctx context.Context, sub *subscription.Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.subscriptions[sub.ID]; exists {
		return ierr.NewError("subscription already exists").Mark(ierr.ErrAlreadyExists)
	}
	s.subscriptions[sub.ID] = sub
	return nil
}

func (s *InMemorySubscriptionStore) Get(ctx context.Context, id string) (*subscription.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if sub, exists := s.subscriptions[id]; exists {
		return sub, nil
	}
	return nil, ierr.NewError("subscription not found").Mark(ierr.ErrNotFound)
}

func (s *InMemorySubscriptionStore) Update(ctx context.Context, sub *subscription.Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.subscriptions[sub.ID]; !exists {
		return ierr.NewError("subscription not found").Mark(ierr.ErrNotFound)
	}
	s.subscriptions[sub.ID] = sub
	return nil
}

func (s *InMemorySubscriptionStore) GetByGatewaySubscriptionID(ctx context.Context, gatewayID string) (*subscription.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sub := range s.subscriptions {
		if sub.PaystackSubscriptionID != nil && *sub.PaystackSubscriptionID == gatewayID {
			return sub, nil
		}
	}
	return nil, ierr.NewError("subscription not found").Mark(ierr.ErrNotFound)
}

func (s *InMemorySubscriptionStore) GetPendingByCustomerCode(ctx context.Context, customerCode string) (*subscription.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sub := range s.subscriptions {
		if sub.SubscriptionStatus == types.SubscriptionStatusPending &&
			sub.PaystackCustomerCode != nil && *sub.PaystackCustomerCode == customerCode {
			return sub, nil
		}
	}
	return nil, ierr.NewError("subscription not found").Mark(ierr.ErrNotFound)
}

func (s *InMemorySubscriptionStore) ListDue(ctx context.Context, cutoff time.Time) ([]*subscription.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*subscription.Subscription
	for _, sub := range s.subscriptions {
		if sub.SubscriptionStatus == types.SubscriptionStatusActive && !sub.NextBillingDate.After(cutoff) {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (s *InMemorySubscriptionStore) ListByStatus(ctx context.Context, status types.SubscriptionStatus) ([]*subscription.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*subscription.Subscription
	for _, sub := range s.subscriptions {
		if sub.SubscriptionStatus == status {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (s *InMemorySubscriptionStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscriptions = make(map[string]*subscription.Subscription)
}
