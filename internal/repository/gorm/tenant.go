package gorm

import (
	"context"

	"gorm.io/gorm"

	"github.com/ardentinvoicing/ardent/internal/domain/tenant"
	ierr "github.com/ardentinvoicing/ardent/internal/errors"
	"github.com/ardentinvoicing/ardent/internal/logger"
	"github.com/ardentinvoicing/ardent/internal/postgres"
)

type tenantRepository struct {
	db     postgres.IClient
	logger *logger.Logger
}

func NewTenantRepository(db postgres.IClient, log *logger.Logger) tenant.Repository {
	return &tenantRepository{db: db, logger: log}
}

func (r *tenantRepository) Create(ctx context.Context, t *tenant.Tenant) error {
	if err := r.db.Querier(ctx).Create(t).Error; err != nil {
		return ierr.WithError(err).
			WithHint("failed to create tenant").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *tenantRepository) Get(ctx context.Context, id string) (*tenant.Tenant, error) {
	var t tenant.Tenant
	err := r.db.Querier(ctx).First(&t, "id = ?", id).Error
	if err != nil {
		if ierr.Is(err, gorm.ErrRecordNotFound) {
			return nil, ierr.NewError("tenant not found").
				WithHintf("no tenant with id %s", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	return &t, nil
}

func (r *tenantRepository) GetByOwner(ctx context.Context, ownerUserID string) (*tenant.Tenant, error) {
	var t tenant.Tenant
	err := r.db.Querier(ctx).First(&t, "owner_user_id = ?", ownerUserID).Error
	if err != nil {
		if ierr.Is(err, gorm.ErrRecordNotFound) {
			return nil, ierr.NewError("tenant not found").
				WithHint("no tenant owned by that user").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	return &t, nil
}

func (r *tenantRepository) Update(ctx context.Context, t *tenant.Tenant) error {
	if err := r.db.Querier(ctx).Save(t).Error; err != nil {
		return ierr.WithError(err).
			WithHint("failed to update tenant").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *tenantRepository) List(ctx context.Context) ([]*tenant.Tenant, error) {
	var tenants []*tenant.Tenant
	if err := r.db.Querier(ctx).Order("created_at DESC").Find(&tenants).Error; err != nil {
		return nil, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	return tenants, nil
}
