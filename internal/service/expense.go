package service

import (
	"context"
	"encoding/base64"

	"github.com/ardentinvoicing/ardent/internal/api/dto"
	"github.com/ardentinvoicing/ardent/internal/domain/expense"
	ierr "github.com/ardentinvoicing/ardent/internal/errors"
	"github.com/ardentinvoicing/ardent/internal/types"
)

// ExpenseService records tenant expenses and their receipts
type ExpenseService interface {
	CreateExpense(ctx context.Context, req *dto.CreateExpenseRequest) (*dto.ExpenseResponse, error)
	GetExpense(ctx context.Context, id string) (*dto.ExpenseResponse, error)
	ListExpenses(ctx context.Context) (*dto.ListExpensesResponse, error)
	DeleteExpense(ctx context.Context, id string) error
}

type expenseService struct {
	ServiceParams
}

// NewExpenseService creates a new expense service
func NewExpenseService(params ServiceParams) ExpenseService {
	return &expenseService{ServiceParams: params}
}

func (s *expenseService) CreateExpense(ctx context.Context, req *dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := types.ValidateTenantContext(ctx); err != nil {
		return nil, ierr.WithError(err).Mark(ierr.ErrPermissionDenied)
	}

	e := expense.New(ctx)
	req.ToExpense(e)
	if err := e.Validate(); err != nil {
		return nil, err
	}

	if req.ReceiptContent != "" && s.S3.IsEnabled() {
		body, err := base64.StdEncoding.DecodeString(req.ReceiptContent)
		if err != nil {
			return nil, ierr.WithError(err).
				WithHint("receipt_content must be base64 encoded").
				Mark(ierr.ErrValidation)
		}
		key, err := s.S3.UploadReceipt(ctx, e.TenantID, e.ID, req.ReceiptContentType, body)
		if err != nil {
			return nil, err
		}
		e.ReceiptKey = &key
	}

	if err := s.ExpenseRepo.Create(ctx, e); err != nil {
		return nil, err
	}

	s.Logger.Infow("recorded expense",
		"expense_id", e.ID,
		"tenant_id", e.TenantID,
		"category", e.Category,
		"amount", e.Amount)

	return s.toResponse(ctx, e), nil
}

func (s *expenseService) GetExpense(ctx context.Context, id string) (*dto.ExpenseResponse, error) {
	e, err := s.getScoped(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, e), nil
}

func (s *expenseService) ListExpenses(ctx context.Context) (*dto.ListExpensesResponse, error) {
	if err := types.ValidateTenantContext(ctx); err != nil {
		return nil, ierr.WithError(err).Mark(ierr.ErrPermissionDenied)
	}

	expenses, err := s.ExpenseRepo.ListByTenant(ctx, types.GetTenantID(ctx))
	if err != nil {
		return nil, err
	}

	resp := &dto.ListExpensesResponse{Total: len(expenses)}
	for _, e := range expenses {
		resp.Items = append(resp.Items, s.toResponse(ctx, e))
	}
	return resp, nil
}

func (s *expenseService) DeleteExpense(ctx context.Context, id string) error {
	if _, err := s.getScoped(ctx, id); err != nil {
		return err
	}
	return s.ExpenseRepo.Delete(ctx, id)
}

func (s *expenseService) getScoped(ctx context.Context, id string) (*expense.Expense, error) {
	if err := types.ValidateTenantContext(ctx); err != nil {
		return nil, ierr.WithError(err).Mark(ierr.ErrPermissionDenied)
	}

	e, err := s.ExpenseRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.TenantID != types.GetTenantID(ctx) {
		return nil, ierr.NewError("expense not found").
			WithHintf("no expense with id %s", id).
			Mark(ierr.ErrNotFound)
	}
	return e, nil
}

func (s *expenseService) toResponse(ctx context.Context, e *expense.Expense) *dto.ExpenseResponse {
	resp := &dto.ExpenseResponse{Expense: e}
	if e.ReceiptKey != nil && s.S3.IsEnabled() {
		url, err := s.S3.PresignReceipt(ctx, *e.ReceiptKey)
		if err != nil {
			s.Logger.Warnw("failed to presign receipt URL",
				"expense_id", e.ID,
				"error", err)
		} else {
			resp.ReceiptURL = url
		}
	}
	return resp
}
