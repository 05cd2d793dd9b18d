// Package database manages the PostgreSQL connection pool lifecycle.
// The pool is constructed once at startup and injected; nothing in the
// service reaches for a package-level handle.
package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wasa-portal/auth-service/internal/config"
)

const (
	maxOpenConns    = 20
	maxIdleTime     = 30 * time.Second
	connectTimeout  = 2 * time.Second
	connectRetries  = 5
	connectInterval = 5 * time.Second
)

// Connect opens the gorm/pgx pool and verifies connectivity, retrying a few
// times so the service survives the database coming up after it.
func Connect(ctx context.Context, cfg *config.Config, log *slog.Logger) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC connect_timeout=%d",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
		int(connectTimeout.Seconds()),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetConnMaxIdleTime(maxIdleTime)

	backoff := retry.WithMaxRetries(connectRetries, retry.NewConstant(connectInterval))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if pingErr := sqlDB.PingContext(ctx); pingErr != nil {
			log.Warn("database not reachable, retrying", "error", pingErr)
			return retry.RetryableError(pingErr)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Info("connected to database", "host", cfg.DBHost, "database", cfg.DBName)
	return db, nil
}

// Close shuts down the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to access connection pool: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
