package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ardentinvoicing/ardent/internal/api/cron"
	v1 "github.com/ardentinvoicing/ardent/internal/api/v1"
	"github.com/ardentinvoicing/ardent/internal/auth"
	"github.com/ardentinvoicing/ardent/internal/config"
)

type Handlers struct {
	Auth         *v1.AuthHandler
	Invoice      *v1.InvoiceHandler
	Expense      *v1.ExpenseHandler
	Subscription *v1.SubscriptionHandler
	Notification *v1.NotificationHandler
	Webhook      *v1.WebhookHandler
	ExchangeRate *v1.ExchangeRateHandler
	Realtime     *v1.RealtimeHandler
	Analytics    *v1.AnalyticsHandler

	CronInvoice      *cron.InvoiceHandler
	CronSubscription *cron.SubscriptionHandler
	CronMaintenance  *cron.MaintenanceHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, authService *auth.Service) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestIDMiddleware())

	router.GET("/health", handlers.CronMaintenance.CheckHealth)

	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers, authService)

	cronGroup := router.Group("/cron")
	cronGroup.Use(CronAuthMiddleware(cfg.Cron.APIKey))
	registerCronRoutes(cronGroup, handlers)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers, authService *auth.Service) {
	// Public routes
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/signup", handlers.Auth.Signup)
		authGroup.POST("/login", handlers.Auth.Login)
	}
	router.POST("/webhooks/paystack", handlers.Webhook.HandlePaystack)

	// Authenticated routes
	private := router.Group("")
	private.Use(AuthMiddleware(authService))
	{
		invoices := private.Group("/invoices")
		{
			invoices.POST("", handlers.Invoice.CreateInvoice)
			invoices.GET("", handlers.Invoice.ListInvoices)
			invoices.GET("/:id", handlers.Invoice.GetInvoice)
			invoices.PUT("/:id/status", handlers.Invoice.UpdateInvoiceStatus)
			invoices.POST("/:id/pay", handlers.Invoice.InitiatePayment)
		}

		expenses := private.Group("/expenses")
		{
			expenses.POST("", handlers.Expense.CreateExpense)
			expenses.GET("", handlers.Expense.ListExpenses)
			expenses.GET("/:id", handlers.Expense.GetExpense)
			expenses.DELETE("/:id", handlers.Expense.DeleteExpense)
		}

		private.POST("/subscriptions", handlers.Subscription.Subscribe)

		notifications := private.Group("/notifications")
		{
			notifications.GET("", handlers.Notification.ListNotifications)
			notifications.PUT("/:id/read", handlers.Notification.MarkRead)
			notifications.PUT("/read-all", handlers.Notification.MarkAllRead)
		}

		rates := private.Group("/rates")
		{
			rates.GET("", handlers.ExchangeRate.GetRate)
			rates.GET("/convert", handlers.ExchangeRate.Convert)
		}

		private.GET("/analytics/snapshots", handlers.Analytics.ListSnapshots)
		private.GET("/realtime/ws", handlers.Realtime.Subscribe)
	}
}

func registerCronRoutes(router *gin.RouterGroup, handlers Handlers) {
	invoices := router.Group("/invoices")
	{
		invoices.POST("/recurring", handlers.CronInvoice.GenerateRecurringInvoices)
		invoices.POST("/reminders", handlers.CronInvoice.SendPaymentReminders)
	}

	subscriptions := router.Group("/subscriptions")
	{
		subscriptions.POST("/billing", handlers.CronSubscription.ProcessBillingCycles)
		subscriptions.POST("/sweep", handlers.CronSubscription.SweepPastDue)
	}

	maintenance := router.Group("/maintenance")
	{
		maintenance.POST("/health", handlers.CronMaintenance.CheckHealth)
		maintenance.POST("/backup", handlers.CronMaintenance.BackupTables)
		maintenance.POST("/retention", handlers.CronMaintenance.CleanupRetention)
		maintenance.POST("/analytics", handlers.CronMaintenance.BuildAnalyticsSnapshots)
	}

	router.POST("/rates/refresh", handlers.CronMaintenance.RefreshExchangeRates)
}
