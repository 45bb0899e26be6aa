package service

import (
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
	"github.com/ardentinvoicing/ardent/internal/email"
	"github.com/ardentinvoicing/ardent/internal/exchangerate"
	"github.com/ardentinvoicing/ardent/internal/logger"
	"github.com/ardentinvoicing/ardent/internal/paystack"
	"github.com/ardentinvoicing/ardent/internal/postgres"
	"github.com/ardentinvoicing/ardent/internal/realtime"
	"github.com/ardentinvoicing/ardent/internal/s3"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     postgres.IClient

	// Repositories
	UserRepo         user.Repository
	TenantRepo       tenant.Repository
	InvoiceRepo      invoice.Repository
	SubscriptionRepo subscription.Repository
	ScheduleRepo     schedule.Repository
	ExpenseRepo      expense.Repository
	NotificationRepo notification.Repository
	WebhookEventRepo webhookevent.Repository
	AnalyticsRepo    analytics.Repository

	// Integrations
	Auth          *auth.Service
	Paystack      paystack.Client
	Email         email.Sender
	ExchangeRates exchangerate.Service
	Realtime      realtime.Publisher
	S3            s3.Service
}

// NewServiceParams assembles the common service dependencies
func NewServiceParams(
	logger *logger.Logger,
	cfg *config.Configuration,
	db postgres.IClient,
	userRepo user.Repository,
	tenantRepo tenant.Repository,
	invoiceRepo invoice.Repository,
	subscriptionRepo subscription.Repository,
	scheduleRepo schedule.Repository,
	expenseRepo expense.Repository,
	notificationRepo notification.Repository,
	webhookEventRepo webhookevent.Repository,
	analyticsRepo analytics.Repository,
	authService *auth.Service,
	paystackClient paystack.Client,
	emailSender email.Sender,
	exchangeRates exchangerate.Service,
	realtimePublisher realtime.Publisher,
	s3Service s3.Service,
) ServiceParams {
	return ServiceParams{
		Logger:           logger,
		Config:           cfg,
		DB:               db,
		UserRepo:         userRepo,
		TenantRepo:       tenantRepo,
		InvoiceRepo:      invoiceRepo,
		SubscriptionRepo: subscriptionRepo,
		ScheduleRepo:     scheduleRepo,
		ExpenseRepo:      expenseRepo,
		NotificationRepo: notificationRepo,
		WebhookEventRepo: webhookEventRepo,
		AnalyticsRepo:    analyticsRepo,
		Auth:             authService,
		Paystack:         paystackClient,
		Email:            emailSender,
		ExchangeRates:    exchangeRates,
		Realtime:         realtimePublisher,
		S3:               s3Service,
	}
}
