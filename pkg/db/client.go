package db

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/rentalhq/rental-backend/pkg/audit"
	"github.com/rentalhq/rental-backend/pkg/config"
)

// Client wraps the gorm handle and exposes a transactional unit of work.
type Client struct {
	gorm *gorm.DB
}

func New(ctx context.Context, cfg config.DBConfig, useSQLite bool) (*Client, error) {
	dialector := postgres.Open(cfg.DSN)
	if useSQLite {
		dialector = sqlite.Open(cfg.DSN)
	}

	var gdb *gorm.DB
	backoff := retry.WithMaxRetries(5, retry.NewExponential(500*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var openErr error
		gdb, openErr = gorm.Open(dialector, &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if openErr != nil {
			return retry.RetryableError(openErr)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql.DB handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := audit.Register(gdb); err != nil {
		return nil, fmt.Errorf("registering audit callbacks: %w", err)
	}

	return &Client{gorm: gdb}, nil
}

// FromGorm wraps an existing gorm handle. Used by tests that open their
// own sqlite databases.
func FromGorm(gdb *gorm.DB) (*Client, error) {
	if gdb == nil {
		return nil, fmt.Errorf("gorm handle required")
	}
	if err := audit.Register(gdb); err != nil {
		return nil, fmt.Errorf("registering audit callbacks: %w", err)
	}
	return &Client{gorm: gdb}, nil
}

func (c *Client) Gorm() *gorm.DB {
	return c.gorm
}

// WithTx runs fn inside a transaction, rolling back on error or panic.
func (c *Client) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	tx := c.gorm.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("beginning transaction: %w", tx.Error)
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			return fmt.Errorf("rolling back after %w: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func (c *Client) Ping(ctx context.Context) error {
	sqlDB, err := c.gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (c *Client) Close() error {
	sqlDB, err := c.gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
