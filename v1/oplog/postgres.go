package oplog

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// PostgresStore persists entries through GORM so the log survives
// restarts and is shared between replicas.
type PostgresStore struct {
	db     *gorm.DB
	logger Logger
}

// NewPostgresStore connects to PostgreSQL, migrates the entry table
// and returns a ready store.
func NewPostgresStore(cfg PostgresConfig, logger Logger) (*PostgresStore, error) {
	db, err := connectToPostgres(cfg)
	if err != nil {
		return nil, fmt.Errorf("oplog: %w", err)
	}

	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("oplog: migrating entry table: %w", err)
	}

	if logger != nil {
		logger.Info("Operation log connected to PostgreSQL", nil, map[string]interface{}{
			"host":    cfg.Host,
			"db_name": cfg.DbName,
		})
	}
	return &PostgresStore{db: db, logger: logger}, nil
}

// connectToPostgres establishes the GORM connection and configures the
// connection pool. The connection string carries the password and is
// never logged.
func connectToPostgres(cfg PostgresConfig) (*gorm.DB, error) {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DbName, cfg.SSLMode)

	db, err := gorm.Open(
		postgres.Open(connStr),
		&gorm.Config{
			TranslateError: true,
		})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL database: %w", err)
	}

	instance, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get PostgreSQL database instance: %w", err)
	}

	instance.SetMaxOpenConns(DefaultMaxOpenConns)
	instance.SetMaxIdleConns(DefaultMaxIdleConns)
	instance.SetConnMaxLifetime(DefaultConnMaxLifetime)

	return db, nil
}

// Append records one entry.
func (s *PostgresStore) Append(ctx context.Context, entry Entry) error {
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return fmt.Errorf("oplog: appending entry: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *PostgresStore) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	var entries []Entry
	err := s.db.WithContext(ctx).
		Order("timestamp DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("oplog: listing entries: %w", err)
	}
	return entries, nil
}

// Close releases the underlying connection pool.
func (s *PostgresStore) Close() error {
	instance, err := s.db.DB()
	if err != nil {
		return err
	}
	return instance.Close()
}
