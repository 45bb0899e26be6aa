package postgres

import (
	"context"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ardentinvoicing/ardent/internal/config"
	ierr "github.com/ardentinvoicing/ardent/internal/errors"
	"github.com/ardentinvoicing/ardent/internal/logger"
)

// IClient defines the interface for database client operations. Multi-row
// writes that must be atomic go through WithTx; repositories pick the
// transaction handle out of the context via Querier.
type IClient interface {
	// WithTx wraps the given function in a transaction
	WithTx(ctx context.Context, fn func(context.Context) error) error

	// Querier returns the current transaction handle if in a transaction,
	// or the regular DB handle
	Querier(ctx context.Context) *gorm.DB

	// Ping verifies database connectivity
	Ping(ctx context.Context) error
}

type txKey struct{}

// Client wraps gorm.DB to provide transaction management
type Client struct {
	db     *gorm.DB
	logger *logger.Logger
}

// NewDB opens the database connection and configures the pool
func NewDB(cfg *config.Configuration, log *logger.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.Postgres.GetDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to connect to postgres").
			Mark(ierr.ErrDatabase)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to get sql.DB handle").
			Mark(ierr.ErrDatabase)
	}
	sqlDB.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.Postgres.ConnMaxLifetimeMinutes) * time.Minute)

	log.Infow("connected to postgres",
		"host", cfg.Postgres.Host,
		"database", cfg.Postgres.DBName)

	return db, nil
}

// NewClient creates a new database client
func NewClient(db *gorm.DB, log *logger.Logger) IClient {
	return &Client{db: db, logger: log}
}

func (c *Client) WithTx(ctx context.Context, fn func(context.Context) error) error {
	// Reuse an enclosing transaction when present
	if tx := txFromContext(ctx); tx != nil {
		return fn(ctx)
	}

	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txCtx := context.WithValue(ctx, txKey{}, tx)
		return fn(txCtx)
	})
}

func (c *Client) Querier(ctx context.Context) *gorm.DB {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return c.db.WithContext(ctx)
}

func txFromContext(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return nil
}

// Ping verifies database connectivity; used by the health cron job
func (c *Client) Ping(ctx context.Context) error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return ierr.WithError(err).
			WithHint("database is unreachable").
			Mark(ierr.ErrDatabase)
	}
	return nil
}
