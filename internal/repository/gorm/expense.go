package gorm

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/ardentinvoicing/ardent/internal/domain/expense"
	ierr "github.com/ardentinvoicing/ardent/internal/errors"
	"github.com/ardentinvoicing/ardent/internal/logger"
	"github.com/ardentinvoicing/ardent/internal/postgres"
)

type expenseRepository struct {
	db     postgres.IClient
	logger *logger.Logger
}

func NewExpenseRepository(db postgres.IClient, log *logger.Logger) expense.Repository {
	return &expenseRepository{db: db, logger: log}
}

func (r *expenseRepository) Create(ctx context.Context, e *expense.Expense) error {
	if err := r.db.Querier(ctx).Create(e).Error; err != nil {
		return ierr.WithError(err).
			WithHint("failed to create expense").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *expenseRepository) Get(ctx context.Context, id string) (*expense.Expense, error) {
	var e expense.Expense
	err := r.db.Querier(ctx).First(&e, "id = ?", id).Error
	if err != nil {
		if ierr.Is(err, gorm.ErrRecordNotFound) {
			return nil, ierr.NewError("expense not found").
				WithHintf("no expense with id %s", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	return &e, nil
}

func (r *expenseRepository) Update(ctx context.Context, e *expense.Expense) error {
	if err := r.db.Querier(ctx).Save(e).Error; err != nil {
		return ierr.WithError(err).
			WithHint("failed to update expense").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *expenseRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.Querier(ctx).Delete(&expense.Expense{}, "id = ?", id).Error; err != nil {
		return ierr.WithError(err).
			WithHint("failed to delete expense").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *expenseRepository) ListByTenant(ctx context.Context, tenantID string) ([]*expense.Expense, error) {
	var expenses []*expense.Expense
	err := r.db.Querier(ctx).
		Where("tenant_id = ?", tenantID).
		Order("expense_date DESC").
		Find(&expenses).Error
	if err != nil {
		return nil, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	return expenses, nil
}

func (r *expenseRepository) ListByPeriod(ctx context.Context, tenantID string, from, to time.Time) ([]*expense.Expense, error) {
	var expenses []*expense.Expense
	err := r.db.Querier(ctx).
		Where("tenant_id = ?", tenantID).
		Where("expense_date >= ? AND expense_date < ?", from, to).
		Find(&expenses).Error
	if err != nil {
		return nil, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	return expenses, nil
}
