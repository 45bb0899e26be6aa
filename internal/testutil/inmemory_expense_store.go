package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/ardentinvoicing/ardent/internal/domain/expense"
	ierr "github.com/ardentinvoicing/ardent/internal/errors"
)

type InMemoryExpenseStore struct {
	mu       sync.RWMutex
	expenses map[string]*expense.Expense
}

func NewInMemoryExpenseStore() *InMemoryExpenseStore {
	return &InMemoryExpenseStore{expenses: make(map[string]*expense.Expense)}
}

func (s *InMemoryExpenseStore) Create(ctx context.Context, e *expense.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.expenses[e.ID]; exists {
		return ierr.NewError("expense already exists").Mark(ierr.ErrAlreadyExists)
	}
	s.expenses[e.ID] = e
	return nil
}

func (s *InMemoryExpenseStore) Get(ctx context.Context, id string) (*expense.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if e, exists := s.expenses[id]; exists {
		return e, nil
	}
	return nil, ierr.NewError("expense not found").Mark(ierr.ErrNotFound)
}

func (s *InMemoryExpenseStore) Update(ctx context.Context, e *expense.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.expenses[e.ID]; !exists {
		return ierr.NewError("expense not found").Mark(ierr.ErrNotFound)
	}
	s.expenses[e.ID] = e
	return nil
}

func (s *InMemoryExpenseStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.expenses[id]; !exists {
		return ierr.NewError("expense not found").Mark(ierr.ErrNotFound)
	}
	delete(s.expenses, id)
	return nil
}

func (s *InMemoryExpenseStore) ListByTenant(ctx context.Context, tenantID string) ([]*expense.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*expense.Expense
	for _, e := range s.expenses {
		if e.TenantID == tenantID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *InMemoryExpenseStore) ListByPeriod(ctx context.Context, tenantID string, from, to time.Time) ([]*expense.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*expense.Expense
	for _, e := range s.expenses {
		if e.TenantID == tenantID && !e.ExpenseDate.Before(from) && e.ExpenseDate.Before(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *InMemoryExpenseStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = make(map[string]*expense.Expense)
}
