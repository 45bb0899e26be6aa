package testutil

import (
	"context"

	"gorm.io/gorm"

	"github.com/ardentinvoicing/ardent/internal/logger"
	"github.com/ardentinvoicing/ardent/internal/postgres"
)

var _ postgres.IClient = (*MockPostgresClient)(nil)

// MockPostgresClient runs transaction bodies directly against the
// in-memory stores; there is nothing to roll back in tests.
type MockPostgresClient struct {
	logger *logger.Logger
}

// NewMockPostgresClient creates a new mock postgres client
func NewMockPostgresClient(logger *logger.Logger) postgres.IClient {
	return &MockPostgresClient{logger: logger}
}

func (c *MockPostgresClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

func (c *MockPostgresClient) Querier(ctx context.Context) *gorm.DB {
	return nil
}

func (c *MockPostgresClient) Ping(ctx context.Context) error {
	return nil
}
