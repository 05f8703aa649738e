package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Apurer/retail-inventory-api/internal/platform/migrations"
)

const (
	pingTimeout     = 5 * time.Second
	maxOpenConns    = 20
	maxIdleConns    = 5
	connMaxLifetime = 30 * time.Minute
)

// Connect opens a pooled GORM connection and pings it.
func Connect(ctx context.Context, dsn string) (*gorm.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:      logger.Default.LogMode(logger.Warn),
		PrepareStmt: true,
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// Open connects to dsn and migrates the schema. It returns nil and a no-op cleanup when
// dsn is empty or unusable so callers can fall back to the in-memory stores.
func Open(ctx context.Context, dsn string, log *slog.Logger) (*gorm.DB, func()) {
	if log == nil {
		log = slog.Default()
	}
	if strings.TrimSpace(dsn) == "" {
		log.Warn("POSTGRES_DSN not set, falling back to in-memory stores")
		return nil, func() {}
	}
	db, err := Connect(ctx, dsn)
	if err != nil {
		log.Warn("failed to connect to postgres, falling back to in-memory stores", slog.String("error", err.Error()))
		return nil, func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Warn("failed to unwrap postgres connection, falling back to in-memory stores", slog.String("error", err.Error()))
		return nil, func() {}
	}
	if err := migrations.Run(db.WithContext(ctx)); err != nil {
		log.Warn("postgres migration failed, falling back to in-memory stores", slog.String("error", err.Error()))
		_ = sqlDB.Close()
		return nil, func() {}
	}
	log.Info("postgres connection established")
	return db, func() { _ = sqlDB.Close() }
}
