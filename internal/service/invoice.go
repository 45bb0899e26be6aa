package service

import (
	"context"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/ardentinvoicing/ardent/internal/api/dto"
	"github.com/ardentinvoicing/ardent/internal/domain/invoice"
	"github.com/ardentinvoicing/ardent/internal/domain/schedule"
	ierr "github.com/ardentinvoicing/ardent/internal/errors"
	"github.com/ardentinvoicing/ardent/internal/types"
)

// InvoiceService owns the invoice lifecycle for a tenant: quota-gated
// creation with atomic sequence numbering, status transitions, and manual
// payment marking.
type InvoiceService interface {
	CreateInvoice(ctx context.Context, req *dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)
	GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error)
	ListInvoices(ctx context.Context) (*dto.ListInvoicesResponse, error)
	UpdateInvoiceStatus(ctx context.Context, id string, req *dto.UpdateInvoiceStatusRequest) (*dto.InvoiceResponse, error)

	// MarkInvoicePaid transitions the invoice to paid with a payment
	// reference. Used by the webhook handler and manual reconciliation;
	// marking an already-paid invoice is a no-op.
	MarkInvoicePaid(ctx context.Context, id, reference string, paidAt time.Time) (*invoice.Invoice, error)
}

type invoiceService struct {
	ServiceParams
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(params ServiceParams) InvoiceService {
	return &invoiceService{ServiceParams: params}
}

func (s *invoiceService) CreateInvoice(ctx context.Context, req *dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := types.ValidateTenantContext(ctx); err != nil {
		return nil, ierr.WithError(err).Mark(ierr.ErrPermissionDenied)
	}

	u, err := s.UserRepo.Get(ctx, types.GetUserID(ctx))
	if err != nil {
		return nil, err
	}
	if !u.HasQuotaRemaining() {
		return nil, ierr.NewError("invoice quota exceeded").
			WithHintf("the %s plan allows %d invoices per billing period", u.SubscriptionTier, u.SubscriptionTier.InvoiceQuota()).
			Mark(ierr.ErrQuotaExceeded)
	}

	inv := invoice.New(ctx)
	req.ToInvoice(inv)

	for _, item := range req.LineItems {
		li := &invoice.LineItem{
			ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE_LINE_ITEM),
			InvoiceID:   inv.ID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Quantity.Mul(item.UnitPrice),
			BaseModel:   types.GetDefaultBaseModel(ctx),
		}
		inv.LineItems = append(inv.LineItems, li)
	}

	// Line items are authoritative for the amount when present
	if len(inv.LineItems) > 0 {
		sum := decimal.Zero
		for _, li := range inv.LineItems {
			sum = sum.Add(li.Amount)
		}
		inv.Amount = sum
	}

	if err := inv.Validate(); err != nil {
		return nil, err
	}

	err = s.DB.WithTx(ctx, func(txCtx context.Context) error {
		year := time.Now().UTC().Year()
		seq, err := s.InvoiceRepo.NextSequence(txCtx, inv.TenantID, year)
		if err != nil {
			return err
		}
		inv.InvoiceNumber = types.FormatInvoiceNumber(year, seq)

		if err := s.InvoiceRepo.CreateWithLineItems(txCtx, inv); err != nil {
			return err
		}
		if err := s.UserRepo.IncrementQuota(txCtx, u.ID); err != nil {
			return err
		}

		if req.IsRecurring {
			firstRun, err := types.NextRunDate(time.Now().UTC(), req.Frequency)
			if err != nil {
				return err
			}
			sched := schedule.New(txCtx, inv.ID, req.Frequency, firstRun)
			sched.TenantID = inv.TenantID
			if err := s.ScheduleRepo.Create(txCtx, sched); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("created invoice",
		"invoice_id", inv.ID,
		"invoice_number", inv.InvoiceNumber,
		"tenant_id", inv.TenantID,
		"recurring", inv.IsRecurring)

	return dto.NewInvoiceResponse(inv), nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := s.getScoped(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewInvoiceResponse(inv), nil
}

func (s *invoiceService) ListInvoices(ctx context.Context) (*dto.ListInvoicesResponse, error) {
	if err := types.ValidateTenantContext(ctx); err != nil {
		return nil, ierr.WithError(err).Mark(ierr.ErrPermissionDenied)
	}

	invoices, err := s.InvoiceRepo.ListByTenant(ctx, types.GetTenantID(ctx))
	if err != nil {
		return nil, err
	}

	return &dto.ListInvoicesResponse{
		Items: lo.Map(invoices, func(inv *invoice.Invoice, _ int) *dto.InvoiceResponse {
			return dto.NewInvoiceResponse(inv)
		}),
		Total: len(invoices),
	}, nil
}

func (s *invoiceService) UpdateInvoiceStatus(ctx context.Context, id string, req *dto.UpdateInvoiceStatusRequest) (*dto.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	inv, err := s.getScoped(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status == types.InvoiceStatusPaid {
		ref := req.PaymentReference
		if ref == "" {
			ref = "manual"
		}
		inv, err = s.MarkInvoicePaid(ctx, inv.ID, ref, time.Now().UTC())
		if err != nil {
			return nil, err
		}
		return dto.NewInvoiceResponse(inv), nil
	}

	if err := inv.InvoiceStatus.ValidateTransition(req.Status); err != nil {
		return nil, err
	}
	inv.InvoiceStatus = req.Status
	inv.UpdatedAt = time.Now().UTC()
	inv.UpdatedBy = types.GetUserID(ctx)

	if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}

	s.Logger.Infow("updated invoice status",
		"invoice_id", inv.ID,
		"status", inv.InvoiceStatus)

	return dto.NewInvoiceResponse(inv), nil
}

func (s *invoiceService) MarkInvoicePaid(ctx context.Context, id, reference string, paidAt time.Time) (*invoice.Invoice, error) {
	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// Replayed confirmations must not double-apply
	if inv.InvoiceStatus == types.InvoiceStatusPaid {
		return inv, nil
	}

	if err := inv.InvoiceStatus.ValidateTransition(types.InvoiceStatusPaid); err != nil {
		return nil, err
	}

	inv.InvoiceStatus = types.InvoiceStatusPaid
	inv.PaidAt = &paidAt
	inv.PaymentReference = &reference
	inv.UpdatedAt = time.Now().UTC()

	if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}

	s.Logger.Infow("marked invoice paid",
		"invoice_id", inv.ID,
		"invoice_number", inv.InvoiceNumber,
		"reference", reference)

	return inv, nil
}

// getScoped fetches the invoice and rejects cross-tenant access
func (s *invoiceService) getScoped(ctx context.Context, id string) (*invoice.Invoice, error) {
	if err := types.ValidateTenantContext(ctx); err != nil {
		return nil, ierr.WithError(err).Mark(ierr.ErrPermissionDenied)
	}

	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.TenantID != types.GetTenantID(ctx) {
		return nil, ierr.NewError("invoice not found").
			WithHintf("no invoice with id %s", id).
			Mark(ierr.ErrNotFound)
	}
	return inv, nil
}
