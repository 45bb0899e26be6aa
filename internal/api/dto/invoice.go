package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ardentinvoicing/ardent/internal/domain/invoice"
	ierr "github.com/ardentinvoicing/ardent/internal/errors"
	"github.com/ardentinvoicing/ardent/internal/types"
)

// CreateLineItemRequest is one billed row on a new invoice
type CreateLineItemRequest struct {
	Description string          `json:"description" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// CreateInvoiceRequest creates a draft invoice, optionally with a
// recurring schedule attached
type CreateInvoiceRequest struct {
	ClientName   string                   `json:"client_name" binding:"required"`
	ClientEmail  string                   `json:"client_email,omitempty"`
	Amount       decimal.Decimal          `json:"amount"`
	Currency     string                   `json:"currency" binding:"required"`
	TaxRate      decimal.Decimal          `json:"tax_rate"`
	DiscountRate decimal.Decimal          `json:"discount_rate"`
	Notes        string                   `json:"notes,omitempty"`
	DueDate      time.Time                `json:"due_date" binding:"required"`
	LineItems    []CreateLineItemRequest  `json:"line_items,omitempty"`
	IsRecurring  bool                     `json:"is_recurring"`
	Frequency    types.BillingInterval    `json:"frequency,omitempty"`
}

func (r *CreateInvoiceRequest) Validate() error {
	if r.ClientName == "" {
		return ierr.NewError("missing client name").
			WithHint("client_name is required").
			Mark(ierr.ErrValidation)
	}
	if r.Currency == "" {
		return ierr.NewError("missing currency").
			WithHint("currency is required").
			Mark(ierr.ErrValidation)
	}
	if r.Amount.IsNegative() {
		return ierr.NewError("invalid amount").
			WithHint("amount must be non negative").
			Mark(ierr.ErrValidation)
	}
	if r.DueDate.IsZero() {
		return ierr.NewError("missing due date").
			WithHint("due_date is required").
			Mark(ierr.ErrValidation)
	}
	if r.IsRecurring {
		if err := r.Frequency.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ToInvoice builds the domain invoice from the request
func (r *CreateInvoiceRequest) ToInvoice(inv *invoice.Invoice) {
	inv.ClientName = r.ClientName
	inv.ClientEmail = r.ClientEmail
	inv.Amount = r.Amount
	inv.Currency = r.Currency
	inv.TaxRate = r.TaxRate
	inv.DiscountRate = r.DiscountRate
	inv.Notes = r.Notes
	inv.DueDate = r.DueDate
	inv.IsRecurring = r.IsRecurring
}

// UpdateInvoiceStatusRequest moves an invoice through its lifecycle
type UpdateInvoiceStatusRequest struct {
	Status types.InvoiceStatus `json:"status" binding:"required"`
	// PaymentReference is set when marking paid manually
	PaymentReference string `json:"payment_reference,omitempty"`
}

func (r *UpdateInvoiceStatusRequest) Validate() error {
	return r.Status.Validate()
}

// InvoiceResponse is the API view of an invoice
type InvoiceResponse struct {
	*invoice.Invoice
	Total decimal.Decimal `json:"total"`
}

// NewInvoiceResponse wraps the domain invoice with derived fields
func NewInvoiceResponse(inv *invoice.Invoice) *InvoiceResponse {
	return &InvoiceResponse{Invoice: inv, Total: inv.Total()}
}

// ListInvoicesResponse is the API view of a tenant's invoices
type ListInvoicesResponse struct {
	Items []*InvoiceResponse `json:"items"`
	Total int                `json:"total"`
}
