package expense

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	ierr "github.com/ardentinvoicing/ardent/internal/errors"
	"github.com/ardentinvoicing/ardent/internal/types"
)

// Expense is a tenant-scoped business expense with an optional receipt
// stored in object storage.
type Expense struct {
	ID              string                `json:"id" gorm:"primaryKey"`
	Description     string                `json:"description"`
	Category        types.ExpenseCategory `json:"category"`
	Amount          decimal.Decimal       `json:"amount" gorm:"type:numeric"`
	Currency        string                `json:"currency"`
	ExpenseDate     time.Time             `json:"expense_date"`
	ReceiptKey      *string               `json:"receipt_key,omitempty"`
	types.BaseModel `gorm:"embedded"`
}

func (Expense) TableName() string {
	return "expenses"
}

// New returns an expense scoped to the context tenant
func New(ctx context.Context) *Expense {
	return &Expense{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_EXPENSE),
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
}

func (e *Expense) Validate() error {
	if e.Amount.IsNegative() {
		return ierr.NewError("invalid expense amount").
			WithHint("amount must be non negative").
			Mark(ierr.ErrValidation)
	}
	if e.Currency == "" {
		return ierr.NewError("missing expense currency").
			WithHint("currency is required").
			Mark(ierr.ErrValidation)
	}
	return e.Category.Validate()
}
