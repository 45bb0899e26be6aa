package paystack

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ardentinvoicing/ardent/internal/config"
	ierr "github.com/ardentinvoicing/ardent/internal/errors"
	"github.com/ardentinvoicing/ardent/internal/httpclient"
	"github.com/ardentinvoicing/ardent/internal/logger"
)

// Client defines the interface for Paystack API operations
type Client interface {
	// VerifyWebhookSignature checks the x-paystack-signature HMAC over the
	// raw body; no state is touched when verification fails
	VerifyWebhookSignature(payload []byte, signature string) error

	// ParseWebhookEvent decodes the raw body into the event envelope
	ParseWebhookEvent(payload []byte) (*Event, error)

	// InitializeTransaction starts a hosted checkout and returns the
	// authorization URL
	InitializeTransaction(ctx context.Context, req *InitializeTransactionRequest) (*InitializeTransactionResponse, error)

	// FetchSubscription returns the gateway's authoritative view of a
	// subscription
	FetchSubscription(ctx context.Context, subscriptionCode string) (*GatewaySubscription, error)

	// Ping verifies the gateway is reachable with the configured key
	Ping(ctx context.Context) error
}

type client struct {
	cfg    *config.PaystackConfig
	http   httpclient.Client
	logger *logger.Logger
}

// NewClient creates a new Paystack client
func NewClient(cfg *config.Configuration, http httpclient.Client, log *logger.Logger) Client {
	return &client{
		cfg:    &cfg.Paystack,
		http:   http,
		logger: log,
	}
}

func (c *client) VerifyWebhookSignature(payload []byte, signature string) error {
	if signature == "" {
		return ierr.NewError("missing webhook signature").
			WithHint("x-paystack-signature header is required").
			Mark(ierr.ErrSignature)
	}

	mac := hmac.New(sha512.New, []byte(c.cfg.SecretKey))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ierr.NewError("invalid webhook signature").
			WithHint("signature does not match the request body").
			Mark(ierr.ErrSignature)
	}
	return nil
}

func (c *client) ParseWebhookEvent(payload []byte) (*Event, error) {
	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, ierr.WithError(err).
			WithHint("webhook body is not a valid event envelope").
			Mark(ierr.ErrValidation)
	}
	if event.Type == "" {
		return nil, ierr.NewError("missing event type").
			WithHint("webhook envelope has no event field").
			Mark(ierr.ErrValidation)
	}
	return &event, nil
}

// apiEnvelope is Paystack's standard response wrapper
type apiEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *client) call(ctx context.Context, method, path string, body any, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return ierr.WithError(err).Mark(ierr.ErrSystem)
		}
	}

	resp, err := c.http.Send(ctx, &httpclient.Request{
		Method: method,
		URL:    c.cfg.BaseURL + path,
		Headers: map[string]string{
			"Authorization": "Bearer " + c.cfg.SecretKey,
		},
		Body: payload,
	})
	if err != nil {
		return err
	}

	var envelope apiEnvelope
	if err := json.Unmarshal(resp.Body, &envelope); err != nil {
		return ierr.WithError(err).
			WithHint("gateway returned a malformed response").
			Mark(ierr.ErrHTTPClient)
	}

	if !resp.IsSuccess() || !envelope.Status {
		return ierr.NewError("gateway request failed").
			WithHintf("paystack responded %d: %s", resp.StatusCode, envelope.Message).
			Mark(ierr.ErrHTTPClient)
	}

	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return ierr.WithError(err).
				WithHint("gateway returned an unexpected payload shape").
				Mark(ierr.ErrHTTPClient)
		}
	}
	return nil
}

func (c *client) InitializeTransaction(ctx context.Context, req *InitializeTransactionRequest) (*InitializeTransactionResponse, error) {
	body := map[string]any{
		"email":     req.Email,
		"amount":    ToSubunits(req.Amount),
		"currency":  req.Currency,
		"reference": req.Reference,
		"metadata":  req.Metadata,
	}

	var out InitializeTransactionResponse
	if err := c.call(ctx, http.MethodPost, "/transaction/initialize", body, &out); err != nil {
		return nil, err
	}

	c.logger.Infow("initialized paystack transaction",
		"reference", out.Reference,
		"email", req.Email)
	return &out, nil
}

func (c *client) FetchSubscription(ctx context.Context, subscriptionCode string) (*GatewaySubscription, error) {
	var out GatewaySubscription
	path := fmt.Sprintf("/subscription/%s", subscriptionCode)
	if err := c.call(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *client) Ping(ctx context.Context) error {
	return c.call(ctx, http.MethodGet, "/bank?perPage=1", nil, nil)
}
