package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ardentinvoicing/ardent/internal/api/dto"
	"github.com/ardentinvoicing/ardent/internal/domain/subscription"
	ierr "github.com/ardentinvoicing/ardent/internal/errors"
	"github.com/ardentinvoicing/ardent/internal/paystack"
	"github.com/ardentinvoicing/ardent/internal/types"
)

// Plan pricing in GHS per month. Quarterly and yearly checkouts multiply
// by the interval length.
var planMonthlyPrice = map[types.SubscriptionTier]decimal.Decimal{
	types.SubscriptionTierStarter:    decimal.NewFromInt(50),
	types.SubscriptionTierPro:        decimal.NewFromInt(200),
	types.SubscriptionTierEnterprise: decimal.NewFromInt(800),
}

// PaymentService initiates hosted checkouts: one-off invoice payments and
// plan subscriptions. Completion arrives asynchronously via webhook.
type PaymentService interface {
	// InitiateInvoicePayment starts a checkout for a sent or overdue
	// invoice and returns the authorization URL for the payer
	InitiateInvoicePayment(ctx context.Context, invoiceID string) (*dto.InitiatePaymentResponse, error)

	// Subscribe creates a pending subscription and starts its first
	// charge; the webhook confirms and activates it
	Subscribe(ctx context.Context, req *dto.SubscribeRequest) (*dto.InitiatePaymentResponse, error)
}

type paymentService struct {
	ServiceParams
}

// NewPaymentService creates a new payment service
func NewPaymentService(params ServiceParams) PaymentService {
	return &paymentService{ServiceParams: params}
}

func (s *paymentService) InitiateInvoicePayment(ctx context.Context, invoiceID string) (*dto.InitiatePaymentResponse, error) {
	inv, err := s.InvoiceRepo.Get(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if inv.InvoiceStatus != types.InvoiceStatusSent && inv.InvoiceStatus != types.InvoiceStatusOverdue {
		return nil, ierr.NewError("invoice is not payable").
			WithHintf("invoice %s is %s; only sent or overdue invoices can be paid", inv.InvoiceNumber, inv.InvoiceStatus).
			Mark(ierr.ErrInvalidOperation)
	}
	if inv.ClientEmail == "" {
		return nil, ierr.NewError("missing client email").
			WithHint("the invoice has no client email to bill").
			Mark(ierr.ErrValidation)
	}

	reference := types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_PAYMENT)
	out, err := s.Paystack.InitializeTransaction(ctx, &paystack.InitializeTransactionRequest{
		Email:     inv.ClientEmail,
		Amount:    inv.Total(),
		Currency:  inv.Currency,
		Reference: reference,
		Metadata: paystack.ChargeMetadata{
			Type:      paystack.ChargeTypeInvoice,
			InvoiceID: inv.ID,
		},
	})
	if err != nil {
		return nil, err
	}

	return &dto.InitiatePaymentResponse{
		AuthorizationURL: out.AuthorizationURL,
		AccessCode:       out.AccessCode,
		Reference:        out.Reference,
	}, nil
}

func (s *paymentService) Subscribe(ctx context.Context, req *dto.SubscribeRequest) (*dto.InitiatePaymentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.UserRepo.Get(ctx, types.GetUserID(ctx))
	if err != nil {
		return nil, err
	}

	// One live subscription per user
	existing, err := s.SubscriptionRepo.ListByStatus(ctx, types.SubscriptionStatusActive)
	if err != nil {
		return nil, err
	}
	for _, sub := range existing {
		if sub.UserID == u.ID {
			return nil, ierr.NewError("subscription already active").
				WithHintf("user already has an active %s subscription", sub.PlanID).
				Mark(ierr.ErrInvalidOperation)
		}
	}

	monthly, ok := planMonthlyPrice[req.Plan]
	if !ok {
		return nil, ierr.NewError("plan has no price").
			WithHintf("no pricing configured for plan %s", req.Plan).
			Mark(ierr.ErrValidation)
	}
	amount := monthly.Mul(decimal.NewFromInt(int64(req.Interval.Months())))

	sub := subscription.New(ctx, u.ID, req.Plan, req.Interval)
	sub.Amount = amount
	sub.Currency = s.Config.ExchangeRate.BaseCurrency
	if err := s.SubscriptionRepo.Create(ctx, sub); err != nil {
		return nil, err
	}

	reference := types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_PAYMENT)
	out, err := s.Paystack.InitializeTransaction(ctx, &paystack.InitializeTransactionRequest{
		Email:     u.Email,
		Amount:    amount,
		Currency:  sub.Currency,
		Reference: reference,
		Metadata: paystack.ChargeMetadata{
			Type: paystack.ChargeTypeSubscription,
		},
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("started subscription checkout",
		"subscription_id", sub.ID,
		"user_id", u.ID,
		"plan", req.Plan,
		"interval", req.Interval)

	return &dto.InitiatePaymentResponse{
		AuthorizationURL: out.AuthorizationURL,
		AccessCode:       out.AccessCode,
		Reference:        out.Reference,
	}, nil
}
