package database

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Tomlord1122/weather-todo/internal/domain"
)

// Service exposes the GORM connection together with lifecycle helpers.
type Service interface {
	Health() map[string]string
	Close() error
	GetDB() *gorm.DB
	Migrate(ctx context.Context) error
}

type service struct {
	db     *gorm.DB
	logger *slog.Logger
}

// Options tunes the connection pool and SQL logging.
type Options struct {
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	LogLevel        logger.LogLevel
}

// DefaultOptions mirrors the pool settings used in production.
func DefaultOptions() Options {
	return Options{
		MaxIdleConns:    10,
		MaxOpenConns:    100,
		ConnMaxLifetime: time.Hour,
		LogLevel:        logger.Warn,
	}
}

// New opens a GORM connection against the given postgres DSN.
func New(dsn string, opts Options, slogger *slog.Logger) (Service, error) {
	if slogger == nil {
		slogger = slog.Default()
	}

	// GORM writes through a *log.Logger, so bridge it onto slog.
	gormLogger := logger.New(
		slog.NewLogLogger(slogger.Handler(), slog.LevelInfo),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  opts.LogLevel,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true, // surfaces gorm.ErrDuplicatedKey on unique violations
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)

	return &service{db: db, logger: slogger}, nil
}

func (s *service) GetDB() *gorm.DB {
	return s.db
}

// Migrate creates or updates the schema of every domain entity.
func (s *service) Migrate(ctx context.Context) error {
	s.logger.InfoContext(ctx, "running database auto-migration")
	if err := s.db.WithContext(ctx).AutoMigrate(domain.Models()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	s.logger.InfoContext(ctx, "database auto-migration complete")
	return nil
}

// Health pings the database within one second and reports pool usage.
func (s *service) Health() map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		s.logger.Error("database health check failed", "error", err)
		return map[string]string{"status": "down", "error": err.Error()}
	}

	pool := sqlDB.Stats()
	return map[string]string{
		"status":           "up",
		"open_connections": strconv.Itoa(pool.OpenConnections),
		"in_use":           strconv.Itoa(pool.InUse),
		"idle":             strconv.Itoa(pool.Idle),
		"wait_count":       strconv.FormatInt(pool.WaitCount, 10),
	}
}

func (s *service) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		s.logger.Error("failed to get underlying sql.DB for closing", "error", err)
		return err
	}
	s.logger.Info("closing database connection pool")
	return sqlDB.Close()
}
