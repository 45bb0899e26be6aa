package main

import (
	"context"
	"time"

	"go.uber.org/fx"

	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/ardentinvoicing/ardent/internal/api"
	"github.com/ardentinvoicing/ardent/internal/api/cron"
	v1 "github.com/ardentinvoicing/ardent/internal/api/v1"
	"github.com/ardentinvoicing/ardent/internal/auth"
	"github.com/ardentinvoicing/ardent/internal/config"
	"github.com/ardentinvoicing/ardent/internal/email"
	"github.com/ardentinvoicing/ardent/internal/exchangerate"
	"github.com/ardentinvoicing/ardent/internal/httpclient"
	"github.com/ardentinvoicing/ardent/internal/logger"
	"github.com/ardentinvoicing/ardent/internal/paystack"
	"github.com/ardentinvoicing/ardent/internal/postgres"
	"github.com/ardentinvoicing/ardent/internal/realtime"
	"github.com/ardentinvoicing/ardent/internal/repository"
	"github.com/ardentinvoicing/ardent/internal/s3"
	"github.com/ardentinvoicing/ardent/internal/service"
	"github.com/ardentinvoicing/ardent/internal/types"
)

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			config.NewConfig,
			logger.NewLogger,

			// Postgres
			postgres.NewDB,
			postgres.NewClient,

			// Redis and realtime fan-out
			realtime.NewRedisClient,
			realtime.NewPublisher,
			realtime.NewHub,

			// HTTP client and integrations
			httpclient.NewDefaultClient,
			paystack.NewClient,
			exchangerate.NewService,
			email.NewClient,
			provideEmailSender,
			s3.NewService,
			auth.NewService,

			// Repositories
			repository.NewUserRepository,
			repository.NewTenantRepository,
			repository.NewInvoiceRepository,
			repository.NewSubscriptionRepository,
			repository.NewScheduleRepository,
			repository.NewExpenseRepository,
			repository.NewNotificationRepository,
			repository.NewWebhookEventRepository,
			repository.NewAnalyticsRepository,
		),
	)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,
			service.NewAuthService,
			service.NewInvoiceService,
			service.NewExpenseService,
			service.NewPaymentService,
			service.NewNotificationService,
			service.NewWebhookService,
			service.NewRecurringInvoiceService,
			service.NewReminderService,
			service.NewBillingService,
			service.NewAnalyticsService,
			service.NewMaintenanceService,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(startServer),
	)

	app := fx.New(opts...)
	app.Run()
}

func provideEmailSender(client *email.Client, log *logger.Logger) email.Sender {
	return email.NewService(client, log)
}

func provideHandlers(
	cfg *config.Configuration,
	log *logger.Logger,
	hub *realtime.Hub,
	authService service.AuthService,
	invoiceService service.InvoiceService,
	expenseService service.ExpenseService,
	paymentService service.PaymentService,
	notificationService service.NotificationService,
	webhookService service.WebhookService,
	recurringService service.RecurringInvoiceService,
	reminderService service.ReminderService,
	billingService service.BillingService,
	analyticsService service.AnalyticsService,
	maintenanceService service.MaintenanceService,
	rates exchangerate.Service,
) api.Handlers {
	return api.Handlers{
		Auth:         v1.NewAuthHandler(authService, log),
		Invoice:      v1.NewInvoiceHandler(invoiceService, paymentService, log),
		Expense:      v1.NewExpenseHandler(expenseService, log),
		Subscription: v1.NewSubscriptionHandler(paymentService, log),
		Notification: v1.NewNotificationHandler(notificationService, log),
		Webhook:      v1.NewWebhookHandler(webhookService, log),
		ExchangeRate: v1.NewExchangeRateHandler(rates, log),
		Realtime:     v1.NewRealtimeHandler(hub, log),
		Analytics:    v1.NewAnalyticsHandler(analyticsService, log),

		CronInvoice:      cron.NewInvoiceHandler(recurringService, reminderService, log),
		CronSubscription: cron.NewSubscriptionHandler(billingService, log),
		CronMaintenance: cron.NewMaintenanceHandler(
			maintenanceService, analyticsService, rates,
			cfg.ExchangeRate.BaseCurrency, log),
	}
}

func provideRouter(handlers api.Handlers, cfg *config.Configuration, authService *auth.Service) *gin.Engine {
	return api.NewRouter(handlers, cfg, authService)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	hub *realtime.Hub,
	rdb *redis.Client,
	log *logger.Logger,
) {
	mode := cfg.Deployment.Mode
	if mode == "" {
		mode = types.ModeLocal
	}

	startRealtimeHub(lc, hub, log)

	switch mode {
	case types.ModeLocal, types.ModeAPI:
		startAPIServer(lc, r, cfg, log)
	case types.ModeAWSLambdaAPI:
		startAWSLambdaAPI(r)
	default:
		log.Fatalf("Unknown deployment mode: %s", mode)
	}

	if rdb != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return rdb.Close()
			},
		})
	}
}

func startRealtimeHub(lc fx.Lifecycle, hub *realtime.Hub, log *logger.Logger) {
	if !hub.Enabled() {
		return
	}

	hubCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting realtime hub...")
			go hub.Run(hubCtx)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			return nil
		},
	})
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting API server...")
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return nil
		},
	})
}

func startAWSLambdaAPI(r *gin.Engine) {
	ginLambda := ginadapter.New(r)
	lambda.Start(ginLambda.ProxyWithContext)
}
