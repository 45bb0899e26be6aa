package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvoiceStatusTransitions(t *testing.T) {
	allowed := []struct {
		from InvoiceStatus
		to   InvoiceStatus
	}{
		{InvoiceStatusDraft, InvoiceStatusSent},
		{InvoiceStatusDraft, InvoiceStatusCancelled},
		{InvoiceStatusSent, InvoiceStatusPaid},
		{InvoiceStatusSent, InvoiceStatusOverdue},
		{InvoiceStatusSent, InvoiceStatusCancelled},
		{InvoiceStatusOverdue, InvoiceStatusPaid},
		{InvoiceStatusOverdue, InvoiceStatusCancelled},
		{InvoiceStatusPaid, InvoiceStatusArchived},
		{InvoiceStatusCancelled, InvoiceStatusArchived},
	}
	for _, tc := range allowed {
		assert.NoError(t, tc.from.ValidateTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}

	rejected := []struct {
		from InvoiceStatus
		to   InvoiceStatus
	}{
		{InvoiceStatusDraft, InvoiceStatusPaid},
		{InvoiceStatusDraft, InvoiceStatusOverdue},
		{InvoiceStatusPaid, InvoiceStatusSent},
		{InvoiceStatusPaid, InvoiceStatusCancelled},
		{InvoiceStatusOverdue, InvoiceStatusSent},
		{InvoiceStatusCancelled, InvoiceStatusSent},
		{InvoiceStatusArchived, InvoiceStatusDraft},
	}
	for _, tc := range rejected {
		err := tc.from.ValidateTransition(tc.to)
		assert.Error(t, err, "%s -> %s", tc.from, tc.to)
	}
}

func TestInvoiceStatusValidate(t *testing.T) {
	assert.NoError(t, InvoiceStatusDraft.Validate())
	assert.Error(t, InvoiceStatus("pending").Validate())
	assert.Error(t, InvoiceStatusDraft.ValidateTransition(InvoiceStatus("bogus")))
}

func TestFormatInvoiceNumber(t *testing.T) {
	assert.Equal(t, "INV-2025-0007", FormatInvoiceNumber(2025, 7))
	assert.Equal(t, "INV-2026-0001", FormatInvoiceNumber(2026, 1))
	assert.Equal(t, "INV-2026-12345", FormatInvoiceNumber(2026, 12345))
}

func TestSubscriptionTierQuota(t *testing.T) {
	assert.Equal(t, 5, SubscriptionTierFree.InvoiceQuota())
	assert.Equal(t, 50, SubscriptionTierStarter.InvoiceQuota())
	assert.Equal(t, 500, SubscriptionTierPro.InvoiceQuota())
	assert.Equal(t, UnlimitedQuota, SubscriptionTierEnterprise.InvoiceQuota())
}
