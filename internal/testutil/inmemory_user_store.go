package testutil

import (
	"context"
	"sync"

	"github.com/ardentinvoicing/ardent/internal/domain/user"
	ierr "github.com/ardentinvoicing/ardent/internal/errors"
)

type InMemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]*user.User
}

func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{users: make(map[string]*user.User)}
}

func (s *InMemoryUserStore) Create(ctx context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[u.ID]; exists {
		return ierr.NewError("user already exists").Mark(ierr.ErrAlreadyExists)
	}
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return ierr.NewError("email already registered").Mark(ierr.ErrAlreadyExists)
		}
	}
	s.users[u.ID] = u
	return nil
}

func (s *InMemoryUserStore) Get(ctx context.Context, id string) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if u, exists := s.users[id]; exists {
		return u, nil
	}
	return nil, ierr.NewError("user not found").Mark(ierr.ErrNotFound)
}

func (s *InMemoryUserStore) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, ierr.NewError("user not found").Mark(ierr.ErrNotFound)
}

func (s *InMemoryUserStore) Update(ctx context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[u.ID]; !exists {
		return ierr.NewError("user not found").Mark(ierr.ErrNotFound)
	}
	s.users[u.ID] = u
	return nil
}

func (s *InMemoryUserStore) ResetQuota(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, exists := s.users[id]
	if !exists {
		return ierr.NewError("user not found").Mark(ierr.ErrNotFound)
	}
	u.InvoiceQuotaUsed = 0
	return nil
}

func (s *InMemoryUserStore) IncrementQuota(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, exists := s.users[id]
	if !exists {
		return ierr.NewError("user not found").Mark(ierr.ErrNotFound)
	}
	u.InvoiceQuotaUsed++
	return nil
}

func (s *InMemoryUserStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = make(map[string]*user.User)
}
