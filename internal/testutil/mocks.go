package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ardentinvoicing/ardent/internal/email"
	ierr "github.com/ardentinvoicing/ardent/internal/errors"
	"github.com/ardentinvoicing/ardent/internal/exchangerate"
	"github.com/ardentinvoicing/ardent/internal/paystack"
	"github.com/ardentinvoicing/ardent/internal/realtime"
	"github.com/ardentinvoicing/ardent/internal/s3"
)

// MockPaystackClient verifies against a fixed test secret and records
// initialized transactions
type MockPaystackClient struct {
	mu sync.Mutex

	// Subscriptions is the gateway-side view served by FetchSubscription
	Subscriptions map[string]*paystack.GatewaySubscription
	// Initialized records every checkout started through the mock
	Initialized []*paystack.InitializeTransactionRequest
	// FailFetch makes FetchSubscription return an error
	FailFetch bool
}

var _ paystack.Client = (*MockPaystackClient)(nil)

func NewMockPaystackClient() *MockPaystackClient {
	return &MockPaystackClient{Subscriptions: make(map[string]*paystack.GatewaySubscription)}
}

func (c *MockPaystackClient) VerifyWebhookSignature(payload []byte, signature string) error {
	if signature == "" || signature == "invalid" {
		return ierr.NewError("invalid webhook signature").Mark(ierr.ErrSignature)
	}
	return nil
}

func (c *MockPaystackClient) ParseWebhookEvent(payload []byte) (*paystack.Event, error) {
	var event paystack.Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, ierr.WithError(err).Mark(ierr.ErrValidation)
	}
	if event.Type == "" {
		return nil, ierr.NewError("missing event type").Mark(ierr.ErrValidation)
	}
	return &event, nil
}

func (c *MockPaystackClient) InitializeTransaction(ctx context.Context, req *paystack.InitializeTransactionRequest) (*paystack.InitializeTransactionResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Initialized = append(c.Initialized, req)
	return &paystack.InitializeTransactionResponse{
		AuthorizationURL: "https://checkout.paystack.test/" + req.Reference,
		AccessCode:       "access_" + req.Reference,
		Reference:        req.Reference,
	}, nil
}

func (c *MockPaystackClient) FetchSubscription(ctx context.Context, subscriptionCode string) (*paystack.GatewaySubscription, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.FailFetch {
		return nil, ierr.NewError("gateway unreachable").Mark(ierr.ErrHTTPClient)
	}
	if sub, ok := c.Subscriptions[subscriptionCode]; ok {
		return sub, nil
	}
	return nil, ierr.NewError("subscription not found").Mark(ierr.ErrNotFound)
}

func (c *MockPaystackClient) Ping(ctx context.Context) error {
	return nil
}

// SentEmail is one recorded outbound email
type SentEmail struct {
	To       string
	Subject  string
	Template email.TemplateName
	Data     any
}

// RecordingEmailSender captures sends instead of delivering them
type RecordingEmailSender struct {
	mu   sync.Mutex
	Sent []SentEmail
}

var _ email.Sender = (*RecordingEmailSender)(nil)

func NewRecordingEmailSender() *RecordingEmailSender {
	return &RecordingEmailSender{}
}

func (s *RecordingEmailSender) SendTemplate(ctx context.Context, to, subject string, name email.TemplateName, data any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Sent = append(s.Sent, SentEmail{To: to, Subject: subject, Template: name, Data: data})
	return nil
}

func (s *RecordingEmailSender) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Sent = nil
}

// PublishedMessage is one recorded realtime publish
type PublishedMessage struct {
	Channel string
	Type    string
	Payload any
}

// RecordingPublisher captures realtime publishes
type RecordingPublisher struct {
	mu        sync.Mutex
	Published []PublishedMessage
}

var _ realtime.Publisher = (*RecordingPublisher)(nil)

func NewRecordingPublisher() *RecordingPublisher {
	return &RecordingPublisher{}
}

func (p *RecordingPublisher) Publish(ctx context.Context, channel, eventType string, payload any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Published = append(p.Published, PublishedMessage{Channel: channel, Type: eventType, Payload: payload})
}

func (p *RecordingPublisher) Ping(ctx context.Context) error {
	return nil
}

func (p *RecordingPublisher) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Published = nil
}

// MockS3Service is a disabled object store
type MockS3Service struct{}

var _ s3.Service = (*MockS3Service)(nil)

func NewMockS3Service() *MockS3Service {
	return &MockS3Service{}
}

func (s *MockS3Service) IsEnabled() bool { return false }

func (s *MockS3Service) UploadBackup(ctx context.Context, table string, day time.Time, body []byte) (string, error) {
	return "", ierr.NewError("s3 is disabled").Mark(ierr.ErrInvalidOperation)
}

func (s *MockS3Service) DeleteBackupsBefore(ctx context.Context, cutoff time.Time) (int, error) {
	return 0, nil
}

func (s *MockS3Service) UploadReceipt(ctx context.Context, tenantID, expenseID, contentType string, body []byte) (string, error) {
	return "", ierr.NewError("s3 is disabled").Mark(ierr.ErrInvalidOperation)
}

func (s *MockS3Service) PresignReceipt(ctx context.Context, key string) (string, error) {
	return "", ierr.NewError("s3 is disabled").Mark(ierr.ErrInvalidOperation)
}

// StubExchangeRates serves fixed rates; unknown pairs convert at 1
type StubExchangeRates struct {
	Rates map[string]decimal.Decimal
}

var _ exchangerate.Service = (*StubExchangeRates)(nil)

func NewStubExchangeRates() *StubExchangeRates {
	return &StubExchangeRates{Rates: make(map[string]decimal.Decimal)}
}

func (s *StubExchangeRates) SetRate(from, to string, rate decimal.Decimal) {
	s.Rates[fmt.Sprintf("%s_%s", strings.ToUpper(from), strings.ToUpper(to))] = rate
}

func (s *StubExchangeRates) GetRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	if strings.EqualFold(from, to) {
		return decimal.NewFromInt(1), nil
	}
	if rate, ok := s.Rates[fmt.Sprintf("%s_%s", strings.ToUpper(from), strings.ToUpper(to))]; ok {
		return rate, nil
	}
	return decimal.NewFromInt(1), nil
}

func (s *StubExchangeRates) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	rate, err := s.GetRate(ctx, from, to)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Mul(rate), nil
}

func (s *StubExchangeRates) Refresh(ctx context.Context, pairs [][2]string) (int, int) {
	return len(pairs), 0
}
