package main

import (
	"log"

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
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logg, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	db, err := postgres.NewDB(cfg, logg)
	if err != nil {
		logg.Fatalw("Failed to connect to postgres", "error", err)
	}

	logg.Infow("Running database migrations", "host", cfg.Postgres.Host)

	err = db.AutoMigrate(
		&tenant.Tenant{},
		&user.User{},
		&invoice.Invoice{},
		&invoice.LineItem{},
		&invoice.Sequence{},
		&schedule.RecurringSchedule{},
		&subscription.Subscription{},
		&expense.Expense{},
		&notification.Notification{},
		&webhookevent.ProcessedEvent{},
		&analytics.Snapshot{},
	)
	if err != nil {
		logg.Fatalw("Migration failed", "error", err)
	}

	logg.Info("Migrations completed successfully")
}
