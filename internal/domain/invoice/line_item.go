package invoice

import (
	"context"

	"github.com/shopspring/decimal"

	ierr "github.com/ardentinvoicing/ardent/internal/errors"
	"github.com/ardentinvoicing/ardent/internal/types"
)

// LineItem is a single billed row on an invoice
type LineItem struct {
	ID              string          `json:"id" gorm:"primaryKey"`
	InvoiceID       string          `json:"invoice_id" gorm:"index"`
	Description     string          `json:"description"`
	Quantity        decimal.Decimal `json:"quantity" gorm:"type:numeric"`
	UnitPrice       decimal.Decimal `json:"unit_price" gorm:"type:numeric"`
	Amount          decimal.Decimal `json:"amount" gorm:"type:numeric"`
	types.BaseModel `gorm:"embedded"`
}

func (LineItem) TableName() string {
	return "invoice_line_items"
}

func (li *LineItem) Validate() error {
	if li.Quantity.IsNegative() {
		return ierr.NewError("invalid line item quantity").
			WithHint("quantity must be non negative").
			Mark(ierr.ErrValidation)
	}
	if li.Amount.IsNegative() {
		return ierr.NewError("invalid line item amount").
			WithHint("amount must be non negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// CloneFor copies the line item onto a new invoice
func (li *LineItem) CloneFor(ctx context.Context, invoiceID string) *LineItem {
	clone := &LineItem{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE_LINE_ITEM),
		InvoiceID:   invoiceID,
		Description: li.Description,
		Quantity:    li.Quantity,
		UnitPrice:   li.UnitPrice,
		Amount:      li.Amount,
		BaseModel:   types.GetDefaultBaseModel(ctx),
	}
	clone.TenantID = li.TenantID
	return clone
}
