package gorm

import (
	"context"
	"time"

	"gorm.io/gorm/clause"

	"github.com/ardentinvoicing/ardent/internal/domain/analytics"
	ierr "github.com/ardentinvoicing/ardent/internal/errors"
	"github.com/ardentinvoicing/ardent/internal/logger"
	"github.com/ardentinvoicing/ardent/internal/postgres"
)

type analyticsRepository struct {
	db     postgres.IClient
	logger *logger.Logger
}

func NewAnalyticsRepository(db postgres.IClient, log *logger.Logger) analytics.Repository {
	return &analyticsRepository{db: db, logger: log}
}

func (r *analyticsRepository) Upsert(ctx context.Context, snap *analytics.Snapshot) error {
	err := r.db.Querier(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "tenant_id"}, {Name: "day"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"revenue_paid", "expenses_total", "outstanding_amount", "overdue_count",
		}),
	}).Create(snap).Error
	if err != nil {
		return ierr.WithError(err).
			WithHint("failed to upsert analytics snapshot").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *analyticsRepository) ListByTenant(ctx context.Context, tenantID string, from, to time.Time) ([]*analytics.Snapshot, error) {
	var snaps []*analytics.Snapshot
	err := r.db.Querier(ctx).
		Where("tenant_id = ?", tenantID).
		Where("day >= ? AND day < ?", from, to).
		Order("day ASC").
		Find(&snaps).Error
	if err != nil {
		return nil, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	return snaps, nil
}
