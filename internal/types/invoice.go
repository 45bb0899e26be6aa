package types

import (
	"fmt"

	ierr "github.com/ardentinvoicing/ardent/internal/errors"
)

// InvoiceStatus represents the current state of an invoice in its lifecycle
type InvoiceStatus string

const (
	// InvoiceStatusDraft indicates the invoice can still be modified or deleted
	InvoiceStatusDraft InvoiceStatus = "draft"
	// InvoiceStatusSent indicates the invoice has been delivered to the client
	InvoiceStatusSent InvoiceStatus = "sent"
	// InvoiceStatusPaid indicates payment has been received and reconciled
	InvoiceStatusPaid InvoiceStatus = "paid"
	// InvoiceStatusOverdue indicates the due date has passed without payment
	InvoiceStatusOverdue InvoiceStatus = "overdue"
	// InvoiceStatusCancelled indicates the invoice was withdrawn before payment
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
	// InvoiceStatusArchived indicates the invoice is closed and hidden from
	// the default dashboard views
	InvoiceStatusArchived InvoiceStatus = "archived"
)

func (s InvoiceStatus) String() string {
	return string(s)
}

func (s InvoiceStatus) Validate() error {
	allowed := []InvoiceStatus{
		InvoiceStatusDraft,
		InvoiceStatusSent,
		InvoiceStatusPaid,
		InvoiceStatusOverdue,
		InvoiceStatusCancelled,
		InvoiceStatusArchived,
	}
	for _, status := range allowed {
		if s == status {
			return nil
		}
	}
	return ierr.NewError("invalid invoice status").
		WithHintf("invoice status must be one of %v", allowed).
		Mark(ierr.ErrValidation)
}

// invoiceTransitions is the forward-moving invoice state machine.
// sent->cancelled is the single permitted backward transition.
var invoiceTransitions = map[InvoiceStatus][]InvoiceStatus{
	InvoiceStatusDraft:     {InvoiceStatusSent, InvoiceStatusCancelled},
	InvoiceStatusSent:      {InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusCancelled},
	InvoiceStatusOverdue:   {InvoiceStatusPaid, InvoiceStatusCancelled},
	InvoiceStatusPaid:      {InvoiceStatusArchived},
	InvoiceStatusCancelled: {InvoiceStatusArchived},
	InvoiceStatusArchived:  {},
}

// CanTransitionTo reports whether the status may move to target
func (s InvoiceStatus) CanTransitionTo(target InvoiceStatus) bool {
	for _, next := range invoiceTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// ValidateTransition returns a validation error when the move is not allowed
func (s InvoiceStatus) ValidateTransition(target InvoiceStatus) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if !s.CanTransitionTo(target) {
		return ierr.NewError("invalid invoice status transition").
			WithHintf("cannot move invoice from %s to %s", s, target).
			Mark(ierr.ErrInvalidOperation)
	}
	return nil
}

// FormatInvoiceNumber renders the human-readable per-tenant-per-year
// invoice number, e.g. INV-2025-0007.
func FormatInvoiceNumber(year int, sequence int64) string {
	return fmt.Sprintf("INV-%d-%04d", year, sequence)
}
