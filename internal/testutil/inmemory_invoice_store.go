package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ardentinvoicing/ardent/internal/domain/invoice"
	ierr "github.com/ardentinvoicing/ardent/internal/errors"
	"github.com/ardentinvoicing/ardent/internal/types"
)

type InMemoryInvoiceStore struct {
	mu        sync.RWMutex
	invoices  map[string]*invoice.Invoice
	sequences map[string]int64
}

func NewInMemoryInvoiceStore() *InMemoryInvoiceStore {
	return &InMemoryInvoiceStore{
		invoices:  make(map[string]*invoice.Invoice),
		sequences: make(map[string]int64),
	}
}

func (s *InMemoryInvoiceStore) Create(ctx context.Context, inv *invoice.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.invoices[inv.ID]; exists {
		return ierr.NewError("invoice already exists").Mark(ierr.ErrAlreadyExists)
	}
	s.invoices[inv.ID] = inv
	return nil
}

func (s *InMemoryInvoiceStore) CreateWithLineItems(ctx context.Context, inv *invoice.Invoice) error {
	return s.Create(ctx, inv)
}

func (s *InMemoryInvoiceStore) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if inv, exists := s.invoices[id]; exists {
		return inv, nil
	}
	return nil, ierr.NewError("invoice not found").Mark(ierr.ErrNotFound)
}

func (s *InMemoryInvoiceStore) Update(ctx context.Context, inv *invoice.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.invoices[inv.ID]; !exists {
		return ierr.NewError("invoice not found").Mark(ierr.ErrNotFound)
	}
	s.invoices[inv.ID] = inv
	return nil
}

func (s *InMemoryInvoiceStore) ListByTenant(ctx context.Context, tenantID string) ([]*invoice.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*invoice.Invoice
	for _, inv := range s.invoices {
		if inv.TenantID == tenantID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (s *InMemoryInvoiceStore) ListOverdueCandidates(ctx context.Context, cutoff time.Time) ([]*invoice.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*invoice.Invoice
	for _, inv := range s.invoices {
		eligible := inv.InvoiceStatus == types.InvoiceStatusSent ||
			inv.InvoiceStatus == types.InvoiceStatusOverdue
		if eligible && !inv.DueDate.After(cutoff) {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (s *InMemoryInvoiceStore) NextSequence(ctx context.Context, tenantID string, year int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := fmt.Sprintf("%s:%d", tenantID, year)
	s.sequences[key]++
	return s.sequences[key], nil
}

func (s *InMemoryInvoiceStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invoices = make(map[string]*invoice.Invoice)
	s.sequences = make(map[string]int64)
}
