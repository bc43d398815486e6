package oplog

import "time"

// Store backend types.
const (
	// TypeMemory keeps entries in a fixed-size in-process ring.
	TypeMemory = "memory"

	// TypePostgres persists entries in PostgreSQL.
	TypePostgres = "postgres"
)

// Default configuration values.
const (
	// DefaultType is the backend used when none is configured.
	DefaultType = TypeMemory

	// DefaultCapacity bounds the in-memory ring.
	DefaultCapacity = 256

	// DefaultRecentLimit is applied when Recent is called without a
	// positive limit.
	DefaultRecentLimit = 50
)

// Connection pool parameters for the PostgreSQL backend.
const (
	DefaultMaxOpenConns    = 50
	DefaultMaxIdleConns    = 25
	DefaultConnMaxLifetime = 1 * time.Minute
)

// MemoryConfig holds the settings for the in-memory backend.
type MemoryConfig struct {
	// Capacity is the maximum number of retained entries. Defaults to
	// DefaultCapacity.
	Capacity int `yaml:"capacity" envconfig:"OPLOG_MEMORY_CAPACITY"`
}

// PostgresConfig holds the connection settings for the PostgreSQL
// backend.
type PostgresConfig struct {
	// Host is the database server host.
	Host string `yaml:"host" envconfig:"OPLOG_POSTGRES_HOST"`

	// Port is the database server port.
	Port string `yaml:"port" envconfig:"OPLOG_POSTGRES_PORT"`

	// User is the database user.
	User string `yaml:"user" envconfig:"OPLOG_POSTGRES_USER"`

	// Password is the database password. Held in memory only.
	Password string `yaml:"password" envconfig:"OPLOG_POSTGRES_PASSWORD"`

	// DbName is the database name.
	DbName string `yaml:"db_name" envconfig:"OPLOG_POSTGRES_DB_NAME"`

	// SSLMode is the PostgreSQL sslmode setting, e.g. "disable" or
	// "require".
	SSLMode string `yaml:"ssl_mode" envconfig:"OPLOG_POSTGRES_SSL_MODE"`
}

// Config selects and configures an operation log backend.
type Config struct {
	// Type selects the backend: "memory" or "postgres". Defaults to
	// DefaultType.
	Type string `yaml:"type" envconfig:"OPLOG_TYPE"`

	// Memory configures the in-memory backend.
	Memory MemoryConfig `yaml:"memory"`

	// Postgres configures the PostgreSQL backend.
	Postgres PostgresConfig `yaml:"postgres"`
}

//go:generate mockgen -source=configs.go -destination=mock_logger.go -package=oplog
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}
