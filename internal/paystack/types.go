package paystack

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// EventType identifies an inbound Paystack webhook event
type EventType string

const (
	EventSubscriptionCreate  EventType = "subscription.create"
	EventSubscriptionUpdate  EventType = "subscription.update"
	EventSubscriptionDisable EventType = "subscription.disable"
	EventChargeSuccess       EventType = "charge.success"
	EventInvoicePaymentFail  EventType = "invoice.payment_failed"
)

// Event is the webhook envelope. The raw Data payload is decoded into one
// of the typed structs below at the boundary; unrecognised shapes are
// rejected before any handler acts on them.
type Event struct {
	ID   string          `json:"id,omitempty"`
	Type EventType       `json:"event"`
	Data json.RawMessage `json:"data"`
}

// Key returns a stable identifier for dedup. Paystack deliveries carry an
// event id on most event classes; when absent the key is derived from the
// event type and the payload's own reference.
func (e *Event) Key() string {
	if e.ID != "" {
		return e.ID
	}

	var probe struct {
		Reference        string `json:"reference"`
		SubscriptionCode string `json:"subscription_code"`
	}
	_ = json.Unmarshal(e.Data, &probe)

	switch {
	case probe.Reference != "":
		return fmt.Sprintf("%s:%s", e.Type, probe.Reference)
	case probe.SubscriptionCode != "":
		return fmt.Sprintf("%s:%s", e.Type, probe.SubscriptionCode)
	default:
		return ""
	}
}

// Customer is the customer block embedded in most payloads
type Customer struct {
	CustomerCode string `json:"customer_code"`
	Email        string `json:"email"`
	FirstName    string `json:"first_name,omitempty"`
	LastName     string `json:"last_name,omitempty"`
}

// Plan is the plan block on subscription events
type Plan struct {
	PlanCode string `json:"plan_code"`
	Name     string `json:"name,omitempty"`
	Interval string `json:"interval,omitempty"`
}

// SubscriptionData is the payload of subscription.* events
type SubscriptionData struct {
	SubscriptionCode string   `json:"subscription_code"`
	Status           string   `json:"status"`
	Amount           int64    `json:"amount"`
	NextPaymentDate  string   `json:"next_payment_date,omitempty"`
	Customer         Customer `json:"customer"`
	Plan             Plan     `json:"plan"`
}

// Charge metadata types stamped on hosted checkouts
const (
	ChargeTypeInvoice      = "invoice"
	ChargeTypeSubscription = "subscription"
)

// ChargeMetadata is the caller-supplied metadata echoed back on charges
type ChargeMetadata struct {
	Type      string `json:"type,omitempty"`
	InvoiceID string `json:"invoiceId,omitempty"`
}

// ChargeData is the payload of charge.success events
type ChargeData struct {
	Reference string         `json:"reference"`
	Status    string         `json:"status"`
	Amount    int64          `json:"amount"`
	Currency  string         `json:"currency"`
	PaidAt    string         `json:"paid_at,omitempty"`
	Customer  Customer       `json:"customer"`
	Metadata  ChargeMetadata `json:"metadata"`
}

// PaymentFailedMetadata carries the local subscription id on failed
// gateway invoices
type PaymentFailedMetadata struct {
	SubscriptionID string `json:"subscriptionId,omitempty"`
}

// PaymentFailedData is the payload of invoice.payment_failed events
type PaymentFailedData struct {
	Subscription SubscriptionData      `json:"subscription"`
	Customer     Customer              `json:"customer"`
	Metadata     PaymentFailedMetadata `json:"metadata"`
}

// SubunitFactor converts major currency units to the gateway's integer
// subunits (pesewas/kobo/cents)
var SubunitFactor = decimal.NewFromInt(100)

// ToSubunits converts a decimal amount to gateway subunits
func ToSubunits(amount decimal.Decimal) int64 {
	return amount.Mul(SubunitFactor).Round(0).IntPart()
}

// FromSubunits converts gateway subunits back to a decimal amount
func FromSubunits(subunits int64) decimal.Decimal {
	return decimal.NewFromInt(subunits).Div(SubunitFactor)
}

// InitializeTransactionRequest starts a hosted checkout for an invoice
type InitializeTransactionRequest struct {
	Email     string          `json:"email"`
	Amount    decimal.Decimal `json:"-"`
	Currency  string          `json:"currency"`
	Reference string          `json:"reference"`
	Metadata  ChargeMetadata  `json:"metadata"`
}

// InitializeTransactionResponse is the hosted checkout handle
type InitializeTransactionResponse struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

// GatewaySubscriptionStatus is the authoritative status reported by the
// gateway for a subscription
type GatewaySubscriptionStatus string

const (
	GatewayStatusActive    GatewaySubscriptionStatus = "active"
	GatewayStatusNonRenew  GatewaySubscriptionStatus = "non-renewing"
	GatewayStatusAttention GatewaySubscriptionStatus = "attention"
	GatewayStatusCancelled GatewaySubscriptionStatus = "cancelled"
	GatewayStatusCompleted GatewaySubscriptionStatus = "completed"
)

// GatewaySubscription is the reconciliation view of a gateway subscription
type GatewaySubscription struct {
	SubscriptionCode string                    `json:"subscription_code"`
	Status           GatewaySubscriptionStatus `json:"status"`
	NextPaymentDate  string                    `json:"next_payment_date,omitempty"`
}
