// Package database owns the PostgreSQL connection and schema migrations.
package database

import (
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/leano777/subtracker-api/internal/config"
	"github.com/leano777/subtracker-api/internal/logger"
)

const (
	maxIdleConns    = 10
	maxOpenConns    = 100
	connMaxLifetime = time.Hour
)

// Manager wraps the GORM handle and knows how to migrate its schema.
type Manager struct {
	db  *gorm.DB
	url string
}

// NewManager opens a PostgreSQL connection and configures the pool.
func NewManager(cfg *config.Config) (*Manager, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // Required for pooled proxies; harmless for direct connections
	}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)

	return &Manager{db: db, url: cfg.DatabaseURL()}, nil
}

// DB returns the GORM handle.
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// Migrate applies any pending SQL migrations from the migrations/ directory.
func (m *Manager) Migrate() error {
	logger.Get().Info("Running database migrations...")

	mig, err := migrate.New("file://migrations", m.url)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() {
		srcErr, dbErr := mig.Close()
		if srcErr != nil {
			logger.Get().Warnf("migrate source close error: %v", srcErr)
		}
		if dbErr != nil {
			logger.Get().Warnf("migrate database close error: %v", dbErr)
		}
	}()

	err = mig.Up()
	switch err {
	case nil:
		logger.Get().Info("Database migrations applied")
	case migrate.ErrNoChange:
		logger.Get().Info("Database schema already up to date")
	default:
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}
