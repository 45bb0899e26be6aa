package service

import (
	"github.com/ardentinvoicing/ardent/internal/testutil"
)

// newTestParams assembles ServiceParams from the suite's in-memory stores
// and recording doubles
func newTestParams(s *testutil.BaseServiceTestSuite) ServiceParams {
	stores := s.GetStores()
	return ServiceParams{
		Logger:           s.GetLogger(),
		Config:           s.GetConfig(),
		DB:               s.GetDB(),
		UserRepo:         stores.UserRepo,
		TenantRepo:       stores.TenantRepo,
		InvoiceRepo:      stores.InvoiceRepo,
		SubscriptionRepo: stores.SubscriptionRepo,
		ScheduleRepo:     stores.ScheduleRepo,
		ExpenseRepo:      stores.ExpenseRepo,
		NotificationRepo: stores.NotificationRepo,
		WebhookEventRepo: stores.WebhookEventRepo,
		AnalyticsRepo:    stores.AnalyticsRepo,
		Auth:             s.GetAuth(),
		Paystack:         s.GetPaystack(),
		Email:            s.GetEmail(),
		ExchangeRates:    s.GetRates(),
		Realtime:         s.GetPublisher(),
		S3:               s.GetS3(),
	}
}
