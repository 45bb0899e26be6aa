package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ardentinvoicing/ardent/internal/domain/expense"
	ierr "github.com/ardentinvoicing/ardent/internal/errors"
	"github.com/ardentinvoicing/ardent/internal/types"
)

// CreateExpenseRequest records a tenant expense
type CreateExpenseRequest struct {
	Description string                `json:"description" binding:"required"`
	Category    types.ExpenseCategory `json:"category" binding:"required"`
	Amount      decimal.Decimal       `json:"amount"`
	Currency    string                `json:"currency" binding:"required"`
	ExpenseDate time.Time             `json:"expense_date" binding:"required"`

	// ReceiptContent is an optional base64 receipt uploaded inline
	ReceiptContent     string `json:"receipt_content,omitempty"`
	ReceiptContentType string `json:"receipt_content_type,omitempty"`
}

func (r *CreateExpenseRequest) Validate() error {
	if r.Description == "" {
		return ierr.NewError("missing description").
			WithHint("description is required").
			Mark(ierr.ErrValidation)
	}
	if r.Amount.IsNegative() {
		return ierr.NewError("invalid amount").
			WithHint("amount must be non negative").
			Mark(ierr.ErrValidation)
	}
	if r.Currency == "" {
		return ierr.NewError("missing currency").
			WithHint("currency is required").
			Mark(ierr.ErrValidation)
	}
	if r.ExpenseDate.IsZero() {
		return ierr.NewError("missing expense date").
			WithHint("expense_date is required").
			Mark(ierr.ErrValidation)
	}
	return r.Category.Validate()
}

// ToExpense fills the domain expense from the request
func (r *CreateExpenseRequest) ToExpense(e *expense.Expense) {
	e.Description = r.Description
	e.Category = r.Category
	e.Amount = r.Amount
	e.Currency = r.Currency
	e.ExpenseDate = r.ExpenseDate
}

// ExpenseResponse is the API view of an expense
type ExpenseResponse struct {
	*expense.Expense
	// ReceiptURL is a short-lived presigned download link, present only
	// when a receipt is stored
	ReceiptURL string `json:"receipt_url,omitempty"`
}

// ListExpensesResponse is the API view of a tenant's expenses
type ListExpensesResponse struct {
	Items []*ExpenseResponse `json:"items"`
	Total int                `json:"total"`
}
