package repository

import (
	gormrepo "github.com/ardentinvoicing/ardent/internal/repository/gorm"

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
)

func NewUserRepository(db postgres.IClient, log *logger.Logger) user.Repository {
	return gormrepo.NewUserRepository(db, log)
}

func NewTenantRepository(db postgres.IClient, log *logger.Logger) tenant.Repository {
	return gormrepo.NewTenantRepository(db, log)
}

func NewInvoiceRepository(db postgres.IClient, log *logger.Logger) invoice.Repository {
	return gormrepo.NewInvoiceRepository(db, log)
}

func NewSubscriptionRepository(db postgres.IClient, log *logger.Logger) subscription.Repository {
	return gormrepo.NewSubscriptionRepository(db, log)
}

func NewScheduleRepository(db postgres.IClient, log *logger.Logger) schedule.Repository {
	return gormrepo.NewScheduleRepository(db, log)
}

func NewExpenseRepository(db postgres.IClient, log *logger.Logger) expense.Repository {
	return gormrepo.NewExpenseRepository(db, log)
}

func NewNotificationRepository(db postgres.IClient, log *logger.Logger) notification.Repository {
	return gormrepo.NewNotificationRepository(db, log)
}

func NewWebhookEventRepository(db postgres.IClient, log *logger.Logger) webhookevent.Repository {
	return gormrepo.NewWebhookEventRepository(db, log)
}

func NewAnalyticsRepository(db postgres.IClient, log *logger.Logger) analytics.Repository {
	return gormrepo.NewAnalyticsRepository(db, log)
}
