package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/ardentinvoicing/ardent/internal/domain/schedule"
	ierr "github.com/ardentinvoicing/ardent/internal/errors"
)

type InMemoryScheduleStore struct {
	mu        sync.RWMutex
	schedules map[string]*schedule.RecurringSchedule
}

func NewInMemoryScheduleStore() *InMemoryScheduleStore {
	return &InMemoryScheduleStore{schedules: make(map[string]*schedule.RecurringSchedule)}
}

func (s *InMemoryScheduleStore) Create(ctx context.Context, sched *schedule.RecurringSchedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.schedules[sched.ID]; exists {
		return ierr.NewError("schedule already exists").Mark(ierr.ErrAlreadyExists)
	}
	s.schedules[sched.ID] = sched
	return nil
}

func (s *InMemoryScheduleStore) Get(ctx context.Context, id string) (*schedule.RecurringSchedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if sched, exists := s.schedules[id]; exists {
		return sched, nil
	}
	return nil, ierr.NewError("schedule not found").Mark(ierr.ErrNotFound)
}

func (s *InMemoryScheduleStore) Update(ctx context.Context, sched *schedule.RecurringSchedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.schedules[sched.ID]; !exists {
		return ierr.NewError("schedule not found").Mark(ierr.ErrNotFound)
	}
	s.schedules[sched.ID] = sched
	return nil
}

func (s *InMemoryScheduleStore) ListDue(ctx context.Context, cutoff time.Time) ([]*schedule.RecurringSchedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*schedule.RecurringSchedule
	for _, sched := range s.schedules {
		if sched.IsActive && !sched.NextRun.After(cutoff) {
			out = append(out, sched)
		}
	}
	return out, nil
}

func (s *InMemoryScheduleStore) ListByTenant(ctx context.Context, tenantID string) ([]*schedule.RecurringSchedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*schedule.RecurringSchedule
	for _, sched := range s.schedules {
		if sched.TenantID == tenantID {
			out = append(out, sched)
		}
	}
	return out, nil
}

func (s *InMemoryScheduleStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schedules = make(map[string]*schedule.RecurringSchedule)
}
