package gorm

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ardentinvoicing/ardent/internal/domain/invoice"
	ierr "github.com/ardentinvoicing/ardent/internal/errors"
	"github.com/ardentinvoicing/ardent/internal/logger"
	"github.com/ardentinvoicing/ardent/internal/postgres"
	"github.com/ardentinvoicing/ardent/internal/types"
)

type invoiceRepository struct {
	db     postgres.IClient
	logger *logger.Logger
}

func NewInvoiceRepository(db postgres.IClient, log *logger.Logger) invoice.Repository {
	return &invoiceRepository{db: db, logger: log}
}

func (r *invoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	if err := r.db.Querier(ctx).Omit("LineItems").Create(inv).Error; err != nil {
		return ierr.WithError(err).
			WithHint("failed to create invoice").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *invoiceRepository) CreateWithLineItems(ctx context.Context, inv *invoice.Invoice) error {
	return r.db.WithTx(ctx, func(txCtx context.Context) error {
		q := r.db.Querier(txCtx)
		if err := q.Omit("LineItems").Create(inv).Error; err != nil {
			return ierr.WithError(err).
				WithHint("failed to create invoice").
				Mark(ierr.ErrDatabase)
		}
		if len(inv.LineItems) > 0 {
			if err := q.Create(inv.LineItems).Error; err != nil {
				return ierr.WithError(err).
					WithHint("failed to create invoice line items").
					Mark(ierr.ErrDatabase)
			}
		}
		return nil
	})
}

func (r *invoiceRepository) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	var inv invoice.Invoice
	err := r.db.Querier(ctx).Preload("LineItems").First(&inv, "id = ?", id).Error
	if err != nil {
		if ierr.Is(err, gorm.ErrRecordNotFound) {
			return nil, ierr.NewError("invoice not found").
				WithHintf("no invoice with id %s", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	return &inv, nil
}

func (r *invoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	if err := r.db.Querier(ctx).Omit("LineItems").Save(inv).Error; err != nil {
		return ierr.WithError(err).
			WithHint("failed to update invoice").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *invoiceRepository) ListByTenant(ctx context.Context, tenantID string) ([]*invoice.Invoice, error) {
	var invoices []*invoice.Invoice
	err := r.db.Querier(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&invoices).Error
	if err != nil {
		return nil, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	return invoices, nil
}

func (r *invoiceRepository) ListOverdueCandidates(ctx context.Context, cutoff time.Time) ([]*invoice.Invoice, error) {
	var invoices []*invoice.Invoice
	err := r.db.Querier(ctx).
		Where("invoice_status IN ?", []types.InvoiceStatus{
			types.InvoiceStatusSent,
			types.InvoiceStatusOverdue,
		}).
		Where("due_date <= ?", cutoff).
		Order("due_date ASC").
		Find(&invoices).Error
	if err != nil {
		return nil, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	return invoices, nil
}

// NextSequence bumps the per-tenant per-year counter with an upsert and an
// atomic increment, then reads the row back inside the same transaction.
// Two concurrent callers serialise on the row lock, so numbers are unique.
func (r *invoiceRepository) NextSequence(ctx context.Context, tenantID string, year int) (int64, error) {
	var seq invoice.Sequence
	err := r.db.WithTx(ctx, func(txCtx context.Context) error {
		q := r.db.Querier(txCtx)
		err := q.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "tenant_id"}, {Name: "year"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"last_value": gorm.Expr("invoice_sequences.last_value + 1"),
			}),
		}).Create(&invoice.Sequence{
			TenantID:  tenantID,
			Year:      year,
			LastValue: 1,
		}).Error
		if err != nil {
			return ierr.WithError(err).
				WithHint("failed to advance invoice sequence").
				Mark(ierr.ErrDatabase)
		}
		return q.First(&seq, "tenant_id = ? AND year = ?", tenantID, year).Error
	})
	if err != nil {
		return 0, err
	}
	return seq.LastValue, nil
}
