package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ardentinvoicing/ardent/internal/domain/analytics"
)

type InMemoryAnalyticsStore struct {
	mu        sync.RWMutex
	snapshots map[string]*analytics.Snapshot
}

func NewInMemoryAnalyticsStore() *InMemoryAnalyticsStore {
	return &InMemoryAnalyticsStore{snapshots: make(map[string]*analytics.Snapshot)}
}

func snapshotKey(tenantID string, day time.Time) string {
	return fmt.Sprintf("%s:%s", tenantID, day.Format("2006-01-02"))
}

func (s *InMemoryAnalyticsStore) Upsert(ctx context.Context, snap *analytics.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshots[snapshotKey(snap.TenantID, snap.Day)] = snap
	return nil
}

func (s *InMemoryAnalyticsStore) ListByTenant(ctx context.Context, tenantID string, from, to time.Time) ([]*analytics.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*analytics.Snapshot
	for _, snap := range s.snapshots {
		if snap.TenantID == tenantID && !snap.Day.Before(from) && snap.Day.Before(to) {
			out = append(out, snap)
		}
	}
	return out, nil
}

func (s *InMemoryAnalyticsStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots = make(map[string]*analytics.Snapshot)
}
