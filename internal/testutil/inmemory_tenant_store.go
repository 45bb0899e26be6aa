package testutil

import (
	"context"
	"sync"

	"github.com/ardentinvoicing/ardent/internal/domain/tenant"
	ierr "github.com/ardentinvoicing/ardent/internal/errors"
)

type InMemoryTenantStore struct {
	mu      sync.RWMutex
	tenants map[string]*tenant.Tenant
}

func NewInMemoryTenantStore() *InMemoryTenantStore {
	return &InMemoryTenantStore{tenants: make(map[string]*tenant.Tenant)}
}

func (s *InMemoryTenantStore) Create(ctx context.Context, t *tenant.Tenant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tenants[t.ID]; exists {
		return ierr.NewError("tenant already exists").Mark(ierr.ErrAlreadyExists)
	}
	s.tenants[t.ID] = t
	return nil
}

func (s *InMemoryTenantStore) Get(ctx context.Context, id string) (*tenant.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if t, exists := s.tenants[id]; exists {
		return t, nil
	}
	return nil, ierr.NewError("tenant not found").Mark(ierr.ErrNotFound)
}

func (s *InMemoryTenantStore) GetByOwner(ctx context.Context, ownerUserID string) (*tenant.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.tenants {
		if t.OwnerUserID == ownerUserID {
			return t, nil
		}
	}
	return nil, ierr.NewError("tenant not found").Mark(ierr.ErrNotFound)
}

func (s *InMemoryTenantStore) Update(ctx context.Context, t *tenant.Tenant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tenants[t.ID]; !exists {
		return ierr.NewError("tenant not found").Mark(ierr.ErrNotFound)
	}
	s.tenants[t.ID] = t
	return nil
}

func (s *InMemoryTenantStore) List(ctx context.Context) ([]*tenant.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tenants := make([]*tenant.Tenant, 0, len(s.tenants))
	for _, t := range s.tenants {
		tenants = append(tenants, t)
	}
	return tenants, nil
}

func (s *InMemoryTenantStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tenants = make(map[string]*tenant.Tenant)
}
