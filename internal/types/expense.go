package types

import ierr "github.com/ardentinvoicing/ardent/internal/errors"

// ExpenseCategory buckets tenant expenses for dashboard reporting
type ExpenseCategory string

const (
	ExpenseCategoryOffice    ExpenseCategory = "office"
	ExpenseCategoryTravel    ExpenseCategory = "travel"
	ExpenseCategoryUtilities ExpenseCategory = "utilities"
	ExpenseCategorySupplies  ExpenseCategory = "supplies"
	ExpenseCategoryMarketing ExpenseCategory = "marketing"
	ExpenseCategoryOther     ExpenseCategory = "other"
)

func (c ExpenseCategory) String() string {
	return string(c)
}

func (c ExpenseCategory) Validate() error {
	allowed := []ExpenseCategory{
		ExpenseCategoryOffice,
		ExpenseCategoryTravel,
		ExpenseCategoryUtilities,
		ExpenseCategorySupplies,
		ExpenseCategoryMarketing,
		ExpenseCategoryOther,
	}
	for _, category := range allowed {
		if c == category {
			return nil
		}
	}
	return ierr.NewError("invalid expense category").
		WithHintf("expense category must be one of %v", allowed).
		Mark(ierr.ErrValidation)
}
