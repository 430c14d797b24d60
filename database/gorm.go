package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DefaultGormConfig returns the gorm configuration adapters open with.
func DefaultGormConfig(level string) *gorm.Config {
	var logLevel gormlogger.LogLevel

	switch strings.ToLower(level) {
	case "silent":
		logLevel = gormlogger.Silent
	case "error":
		logLevel = gormlogger.Error
	case "info":
		logLevel = gormlogger.Info
	default:
		logLevel = gormlogger.Warn
	}

	return &gorm.Config{
		Logger: gormlogger.New(
			log.New(os.Stderr, "\r\n", log.LstdFlags),
			gormlogger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  logLevel,
				IgnoreRecordNotFoundError: true,
				ParameterizedQueries:      true,
				Colorful:                  false,
			},
		),
		DisableForeignKeyConstraintWhenMigrating: true,
	}
}

// gormAdapter holds the session shared by every backend variant. The
// embedding adapter supplies the dialector.
type gormAdapter struct {
	mu        sync.Mutex
	db        *gorm.DB
	dialect   Dialect
	logLevel  string
	dialector func() gorm.Dialector
}

func (a *gormAdapter) Dialect() Dialect {
	return a.dialect
}

func (a *gormAdapter) Connect(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.db != nil {
		return nil
	}

	db, err := gorm.Open(a.dialector(), DefaultGormConfig(a.logLevel))
	if err != nil {
		return fmt.Errorf("%s connect: %w", a.dialect, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("%s connect: %w", a.dialect, err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return fmt.Errorf("%s ping: %w", a.dialect, err)
	}

	a.db = db
	return nil
}

func (a *gormAdapter) Disconnect() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.db == nil {
		return nil
	}

	sqlDB, err := a.db.DB()
	if err != nil {
		return fmt.Errorf("%s disconnect: %w", a.dialect, err)
	}
	a.db = nil

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("%s disconnect: %w", a.dialect, err)
	}
	return nil
}

func (a *gormAdapter) session() (*gorm.DB, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.db == nil {
		return nil, ErrNotConnected
	}
	return a.db, nil
}

func (a *gormAdapter) Query(ctx context.Context, query string, values ...any) ([]map[string]any, error) {
	db, err := a.session()
	if err != nil {
		return nil, err
	}

	records := []map[string]any{}
	if err := db.WithContext(ctx).Raw(query, values...).Scan(&records).Error; err != nil {
		return nil, fmt.Errorf("%s query: %w", a.dialect, err)
	}
	return records, nil
}

func (a *gormAdapter) Execute(ctx context.Context, query string, values ...any) error {
	db, err := a.session()
	if err != nil {
		return err
	}

	if err := db.WithContext(ctx).Exec(query, values...).Error; err != nil {
		return fmt.Errorf("%s execute: %w", a.dialect, err)
	}
	return nil
}
