package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"nextcut/internal/apperr"
	"nextcut/internal/models"

	"github.com/go-redis/redis/v8"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectDatabase opens the postgres database behind dsn.
func ConnectDatabase(dsn string, verbose bool) (*gorm.DB, error) {
	db, err := Open(postgres.Open(dsn), verbose)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("storage: pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	log.Println("database connection established")
	return db, nil
}

// Open wraps gorm.Open with the settings every dialect shares. TranslateError
// turns unique violations into gorm.ErrDuplicatedKey.
func Open(dialector gorm.Dialector, verbose bool) (*gorm.DB, error) {
	level := logger.Warn
	if verbose {
		level = logger.Info
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("storage: open: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("storage: migrate: %w", err)
	}
	return nil
}

// NewRedis returns a client for addr and checks it answers.
func NewRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("storage: redis ping: %w", err)
	}
	return client, nil
}

// translate maps driver errors onto the apperr taxonomy.
func translate(op string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := apperr.As(err); ok {
		return err
	}
	if isDuplicate(err) {
		return apperr.Wrap(apperr.Conflict, "DUPLICATE", "record already exists", err)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.Wrap(apperr.NotFound, "NOT_FOUND", "record not found", err)
	}
	return fmt.Errorf("storage: %s: %w", op, err)
}

// isDuplicate also matches raw driver messages for dialects without an
// error translator.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key value")
}
