package testutil

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/ardentinvoicing/ardent/internal/auth"
	"github.com/ardentinvoicing/ardent/internal/config"
	"github.com/ardentinvoicing/ardent/internal/domain/analytics"
	"github.com/ardentinvoicing/ardent/internal/domain/expense"
	"github.com/ardentinvoicing/ardent/internal/domain/invoice"
	"github.com/ardentinvoicing/ardent/internal/domain/notification"
	"github.com/ardentinvoicing/ardent/internal/domain/schedule"
	"github.com/ardentinvoicing/ardent/internal/domain/subscription"
	"github.com/ardentinvoicing/ardent/internal/domain/tenant"
	"github.com/ardentinvoicing/ardent/internal/domain/user"
	"github.com/ardentinvoicing/ardent/internal/domain/webhookevent"
	"github.com/ardentinvoicing/ardent/internal/logger"
	"github.com/ardentinvoicing/ardent/internal/postgres"
	"github.com/ardentinvoicing/ardent/internal/types"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	UserRepo         user.Repository
	TenantRepo       tenant.Repository
	InvoiceRepo      invoice.Repository
	ScheduleRepo     schedule.Repository
	SubscriptionRepo subscription.Repository
	ExpenseRepo      expense.Repository
	NotificationRepo notification.Repository
	WebhookEventRepo webhookevent.Repository
	AnalyticsRepo    analytics.Repository
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx       context.Context
	stores    Stores
	db        postgres.IClient
	logger    *logger.Logger
	config    *config.Configuration
	auth      *auth.Service
	paystack  *MockPaystackClient
	email     *RecordingEmailSender
	publisher *RecordingPublisher
	rates     *StubExchangeRates
	s3        *MockS3Service
	now       time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	cfg := &config.Configuration{
		Logging: config.LoggingConfig{
			Level: types.LogLevelInfo,
		},
		Auth: config.AuthConfig{
			Secret:           "test-signing-secret-for-unit-tests-only",
			TokenExpiryHours: 24,
		},
		Email: config.EmailConfig{
			FromAddress:  "billing@test.local",
			AdminAddress: "admin@test.local",
		},
		ExchangeRate: config.ExchangeRateConfig{
			BaseCurrency: "GHS",
			TTLMinutes:   60,
		},
		Cron: config.CronConfig{
			APIKey:                    "test-cron-key",
			PastDueGraceDays:          7,
			NotificationRetentionDays: 90,
			WebhookRetentionDays:      30,
		},
	}

	var err error
	s.config = cfg
	s.logger, err = logger.NewLogger(cfg)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
	s.auth = auth.NewService(cfg)
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.setupContext()
	s.setupStores()
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.clearStores()
}

func (s *BaseServiceTestSuite) setupContext() {
	s.ctx = context.Background()
	s.ctx = context.WithValue(s.ctx, types.CtxTenantID, types.DefaultTenantID)
	s.ctx = context.WithValue(s.ctx, types.CtxUserID, types.DefaultUserID)
	s.ctx = context.WithValue(s.ctx, types.CtxRequestID, types.GenerateUUID())
}

func (s *BaseServiceTestSuite) setupStores() {
	s.stores = Stores{
		UserRepo:         NewInMemoryUserStore(),
		TenantRepo:       NewInMemoryTenantStore(),
		InvoiceRepo:      NewInMemoryInvoiceStore(),
		ScheduleRepo:     NewInMemoryScheduleStore(),
		SubscriptionRepo: NewInMemorySubscriptionStore(),
		ExpenseRepo:      NewInMemoryExpenseStore(),
		NotificationRepo: NewInMemoryNotificationStore(),
		WebhookEventRepo: NewInMemoryWebhookEventStore(),
		AnalyticsRepo:    NewInMemoryAnalyticsStore(),
	}

	s.db = NewMockPostgresClient(s.logger)
	s.paystack = NewMockPaystackClient()
	s.email = NewRecordingEmailSender()
	s.publisher = NewRecordingPublisher()
	s.rates = NewStubExchangeRates()
	s.s3 = NewMockS3Service()
}

func (s *BaseServiceTestSuite) clearStores() {
	s.stores.UserRepo.(*InMemoryUserStore).Clear()
	s.stores.TenantRepo.(*InMemoryTenantStore).Clear()
	s.stores.InvoiceRepo.(*InMemoryInvoiceStore).Clear()
	s.stores.ScheduleRepo.(*InMemoryScheduleStore).Clear()
	s.stores.SubscriptionRepo.(*InMemorySubscriptionStore).Clear()
	s.stores.ExpenseRepo.(*InMemoryExpenseStore).Clear()
	s.stores.NotificationRepo.(*InMemoryNotificationStore).Clear()
	s.stores.WebhookEventRepo.(*InMemoryWebhookEventStore).Clear()
	s.stores.AnalyticsRepo.(*InMemoryAnalyticsStore).Clear()
	s.email.Clear()
	s.publisher.Clear()
}

func (s *BaseServiceTestSuite) ClearStores() {
	s.clearStores()
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetStores returns all test repositories
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetDB returns the test database client
func (s *BaseServiceTestSuite) GetDB() postgres.IClient {
	return s.db
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetAuth returns the token service
func (s *BaseServiceTestSuite) GetAuth() *auth.Service {
	return s.auth
}

// GetPaystack returns the gateway mock
func (s *BaseServiceTestSuite) GetPaystack() *MockPaystackClient {
	return s.paystack
}

// GetEmail returns the recording email sender
func (s *BaseServiceTestSuite) GetEmail() *RecordingEmailSender {
	return s.email
}

// GetPublisher returns the recording realtime publisher
func (s *BaseServiceTestSuite) GetPublisher() *RecordingPublisher {
	return s.publisher
}

// GetRates returns the exchange rate stub
func (s *BaseServiceTestSuite) GetRates() *StubExchangeRates {
	return s.rates
}

// GetS3 returns the disabled object store
func (s *BaseServiceTestSuite) GetS3() *MockS3Service {
	return s.s3
}

// GetNow returns the current test time
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now.UTC()
}

// GetUUID returns a new UUID string
func (s *BaseServiceTestSuite) GetUUID() string {
	return types.GenerateUUID()
}
