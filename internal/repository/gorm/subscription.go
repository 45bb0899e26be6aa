package gorm

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/ardentinvoicing/ardent/internal/domain/subscription"
	ierr "github.com/ardentinvoicing/ardent/internal/errors"
	"github.com/ardentinvoicing/ardent/internal/logger"
	"github.com/ardentinvoicing/ardent/internal/postgres"
	"github.com/ardentinvoicing/ardent/internal/types"
)

type subscriptionRepository struct {
	db     postgres.IClient
	logger *logger.Logger
}

func NewSubscriptionRepository(db postgres.IClient, log *logger.Logger) subscription.Repository {
	return &subscriptionRepository{db: db, logger: log}
}

func (r *subscriptionRepository) Create(ctx context.Context, sub *subscription.Subscription) error {
	if err := r.db.Querier(ctx).Create(sub).Error; err != nil {
		return ierr.WithError(err).
			WithHint("failed to create subscription").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *subscriptionRepository) Get(ctx context.Context, id string) (*subscription.Subscription, error) {
	var sub subscription.Subscription
	err := r.db.Querier(ctx).First(&sub, "id = ?", id).Error
	if err != nil {
		if ierr.Is(err, gorm.ErrRecordNotFound) {
			return nil, ierr.NewError("subscription not found").
				WithHintf("no subscription with id %s", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	return &sub, nil
}

func (r *subscriptionRepository) Update(ctx context.Context, sub *subscription.Subscription) error {
	if err := r.db.Querier(ctx).Save(sub).Error; err != nil {
		return ierr.WithError(err).
			WithHint("failed to update subscription").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *subscriptionRepository) GetByGatewaySubscriptionID(ctx context.Context, gatewayID string) (*subscription.Subscription, error) {
	var sub subscription.Subscription
	err := r.db.Querier(ctx).First(&sub, "paystack_subscription_id = ?", gatewayID).Error
	if err != nil {
		if ierr.Is(err, gorm.ErrRecordNotFound) {
			return nil, ierr.NewError("subscription not found").
				WithHint("no subscription with that gateway id").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	return &sub, nil
}

func (r *subscriptionRepository) GetPendingByCustomerCode(ctx context.Context, customerCode string) (*subscription.Subscription, error) {
	var sub subscription.Subscription
	err := r.db.Querier(ctx).
		Where("paystack_customer_code = ?", customerCode).
		Where("subscription_status = ?", types.SubscriptionStatusPending).
		Order("created_at DESC").
		First(&sub).Error
	if err != nil {
		if ierr.Is(err, gorm.ErrRecordNotFound) {
			return nil, ierr.NewError("pending subscription not found").
				WithHint("no pending subscription for that customer").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	return &sub, nil
}

func (r *subscriptionRepository) ListDue(ctx context.Context, cutoff time.Time) ([]*subscription.Subscription, error) {
	var subs []*subscription.Subscription
	err := r.db.Querier(ctx).
		Where("subscription_status = ?", types.SubscriptionStatusActive).
		Where("next_billing_date <= ?", cutoff).
		Order("next_billing_date ASC").
		Find(&subs).Error
	if err != nil {
		return nil, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	return subs, nil
}

func (r *subscriptionRepository) ListByStatus(ctx context.Context, status types.SubscriptionStatus) ([]*subscription.Subscription, error) {
	var subs []*subscription.Subscription
	err := r.db.Querier(ctx).
		Where("subscription_status = ?", status).
		Find(&subs).Error
	if err != nil {
		return nil, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	return subs, nil
}
