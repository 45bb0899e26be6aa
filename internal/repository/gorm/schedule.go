package gorm

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/ardentinvoicing/ardent/internal/domain/schedule"
	ierr "github.com/ardentinvoicing/ardent/internal/errors"
	"github.com/ardentinvoicing/ardent/internal/logger"
	"github.com/ardentinvoicing/ardent/internal/postgres"
)

type scheduleRepository struct {
	db     postgres.IClient
	logger *logger.Logger
}

func NewScheduleRepository(db postgres.IClient, log *logger.Logger) schedule.Repository {
	return &scheduleRepository{db: db, logger: log}
}

func (r *scheduleRepository) Create(ctx context.Context, sched *schedule.RecurringSchedule) error {
	if err := r.db.Querier(ctx).Create(sched).Error; err != nil {
		return ierr.WithError(err).
			WithHint("failed to create recurring schedule").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *scheduleRepository) Get(ctx context.Context, id string) (*schedule.RecurringSchedule, error) {
	var sched schedule.RecurringSchedule
	err := r.db.Querier(ctx).First(&sched, "id = ?", id).Error
	if err != nil {
		if ierr.Is(err, gorm.ErrRecordNotFound) {
			return nil, ierr.NewError("recurring schedule not found").
				WithHintf("no schedule with id %s", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	return &sched, nil
}

func (r *scheduleRepository) Update(ctx context.Context, sched *schedule.RecurringSchedule) error {
	if err := r.db.Querier(ctx).Save(sched).Error; err != nil {
		return ierr.WithError(err).
			WithHint("failed to update recurring schedule").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *scheduleRepository) ListDue(ctx context.Context, cutoff time.Time) ([]*schedule.RecurringSchedule, error) {
	var schedules []*schedule.RecurringSchedule
	err := r.db.Querier(ctx).
		Where("is_active = ?", true).
		Where("next_run <= ?", cutoff).
		Order("next_run ASC").
		Find(&schedules).Error
	if err != nil {
		return nil, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	return schedules, nil
}

func (r *scheduleRepository) ListByTenant(ctx context.Context, tenantID string) ([]*schedule.RecurringSchedule, error) {
	var schedules []*schedule.RecurringSchedule
	err := r.db.Querier(ctx).
		Where("tenant_id = ?", tenantID).
		Find(&schedules).Error
	if err != nil {
		return nil, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	return schedules, nil
}
