package gorm

import (
	"context"

	"gorm.io/gorm"

	"github.com/ardentinvoicing/ardent/internal/domain/user"
	ierr "github.com/ardentinvoicing/ardent/internal/errors"
	"github.com/ardentinvoicing/ardent/internal/logger"
	"github.com/ardentinvoicing/ardent/internal/postgres"
)

type userRepository struct {
	db     postgres.IClient
	logger *logger.Logger
}

func NewUserRepository(db postgres.IClient, log *logger.Logger) user.Repository {
	return &userRepository{db: db, logger: log}
}

func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	if err := r.db.Querier(ctx).Create(u).Error; err != nil {
		return ierr.WithError(err).
			WithHint("failed to create user").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *userRepository) Get(ctx context.Context, id string) (*user.User, error) {
	var u user.User
	err := r.db.Querier(ctx).First(&u, "id = ?", id).Error
	if err != nil {
		if ierr.Is(err, gorm.ErrRecordNotFound) {
			return nil, ierr.NewError("user not found").
				WithHintf("no user with id %s", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var u user.User
	err := r.db.Querier(ctx).First(&u, "email = ?", email).Error
	if err != nil {
		if ierr.Is(err, gorm.ErrRecordNotFound) {
			return nil, ierr.NewError("user not found").
				WithHint("no user with that email").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	return &u, nil
}

func (r *userRepository) Update(ctx context.Context, u *user.User) error {
	if err := r.db.Querier(ctx).Save(u).Error; err != nil {
		return ierr.WithError(err).
			WithHint("failed to update user").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *userRepository) ResetQuota(ctx context.Context, id string) error {
	err := r.db.Querier(ctx).Model(&user.User{}).
		Where("id = ?", id).
		Update("invoice_quota_used", 0).Error
	if err != nil {
		return ierr.WithError(err).
			WithHint("failed to reset invoice quota").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *userRepository) IncrementQuota(ctx context.Context, id string) error {
	err := r.db.Querier(ctx).Model(&user.User{}).
		Where("id = ?", id).
		Update("invoice_quota_used", gorm.Expr("invoice_quota_used + 1")).Error
	if err != nil {
		return ierr.WithError(err).
			WithHint("failed to increment invoice quota").
			Mark(ierr.ErrDatabase)
	}
	return nil
}
