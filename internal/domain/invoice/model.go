package invoice

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	ierr "github.com/ardentinvoicing/ardent/internal/errors"
	"github.com/ardentinvoicing/ardent/internal/types"
)

// Invoice represents the invoice domain model
type Invoice struct {
	ID               string              `json:"id" gorm:"primaryKey"`
	InvoiceNumber    string              `json:"invoice_number" gorm:"index:idx_invoices_tenant_number,unique,composite:tenant_id"`
	InvoiceStatus    types.InvoiceStatus `json:"invoice_status"`
	ClientName       string              `json:"client_name"`
	ClientEmail      string              `json:"client_email,omitempty"`
	Amount           decimal.Decimal     `json:"amount" gorm:"type:numeric"`
	Currency         string              `json:"currency"`
	TaxRate          decimal.Decimal     `json:"tax_rate" gorm:"type:numeric"`
	DiscountRate     decimal.Decimal     `json:"discount_rate" gorm:"type:numeric"`
	Notes            string              `json:"notes,omitempty"`
	DueDate          time.Time           `json:"due_date"`
	PaidAt           *time.Time          `json:"paid_at,omitempty"`
	PaymentReference *string             `json:"payment_reference,omitempty"`
	ReminderCount    int                 `json:"reminder_count"`
	LastReminderSent *time.Time          `json:"last_reminder_sent,omitempty"`
	IsRecurring      bool                `json:"is_recurring"`
	ParentInvoiceID  *string             `json:"parent_invoice_id,omitempty"`
	LineItems        []*LineItem         `json:"line_items,omitempty" gorm:"foreignKey:InvoiceID"`
	types.BaseModel  `gorm:"embedded"`
}

func (Invoice) TableName() string {
	return "invoices"
}

// New returns an empty draft invoice scoped to the context tenant
func New(ctx context.Context) *Invoice {
	return &Invoice{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		InvoiceStatus: types.InvoiceStatusDraft,
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}
}

// Total is the invoice amount after tax and discount
func (i *Invoice) Total() decimal.Decimal {
	total := i.Amount
	if !i.TaxRate.IsZero() {
		total = total.Add(i.Amount.Mul(i.TaxRate).Div(decimal.NewFromInt(100)))
	}
	if !i.DiscountRate.IsZero() {
		total = total.Sub(i.Amount.Mul(i.DiscountRate).Div(decimal.NewFromInt(100)))
	}
	return total
}

func (i *Invoice) Validate() error {
	if i.Amount.IsNegative() {
		return ierr.NewError("invalid invoice amount").
			WithHint("amount must be non negative").
			Mark(ierr.ErrValidation)
	}
	if i.Currency == "" {
		return ierr.NewError("missing invoice currency").
			WithHint("currency is required").
			Mark(ierr.ErrValidation)
	}
	if err := i.InvoiceStatus.Validate(); err != nil {
		return err
	}
	for _, item := range i.LineItems {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Clone copies the client, pricing and line-item fields of a recurring
// template into a fresh draft. Sequence number, due date and lineage are
// filled in by the caller.
func (i *Invoice) Clone(ctx context.Context) *Invoice {
	next := New(ctx)
	next.ClientName = i.ClientName
	next.ClientEmail = i.ClientEmail
	next.Amount = i.Amount
	next.Currency = i.Currency
	next.TaxRate = i.TaxRate
	next.DiscountRate = i.DiscountRate
	next.Notes = i.Notes
	next.TenantID = i.TenantID

	parentID := i.ID
	next.ParentInvoiceID = &parentID

	next.LineItems = make([]*LineItem, len(i.LineItems))
	for idx, item := range i.LineItems {
		next.LineItems[idx] = item.CloneFor(ctx, next.ID)
	}
	return next
}
