package kafka

import "time"

// Default configuration values for the metadata client.
const (
	// DefaultTimeout is the request timeout for metadata calls.
	DefaultTimeout = 10 * time.Second
)

// TLSConfig holds the TLS settings for broker connections.
type TLSConfig struct {
	// Enabled turns TLS on for all broker connections.
	Enabled bool `yaml:"enabled" envconfig:"KAFKA_TLS_ENABLED"`

	// CACertPath is the path to the CA certificate file.
	CACertPath string `yaml:"ca_cert_path" envconfig:"KAFKA_TLS_CA_CERT_PATH"`

	// ClientCertPath is the path to the client certificate file.
	ClientCertPath string `yaml:"client_cert_path" envconfig:"KAFKA_TLS_CLIENT_CERT_PATH"`

	// ClientKeyPath is the path to the client key file.
	ClientKeyPath string `yaml:"client_key_path" envconfig:"KAFKA_TLS_CLIENT_KEY_PATH"`

	// InsecureSkipVerify disables certificate verification. Not for
	// production use.
	InsecureSkipVerify bool `yaml:"insecure_skip_verify" envconfig:"KAFKA_TLS_INSECURE_SKIP_VERIFY"`
}

// SASLConfig holds the SASL authentication settings.
type SASLConfig struct {
	// Enabled turns SASL authentication on.
	Enabled bool `yaml:"enabled" envconfig:"KAFKA_SASL_ENABLED"`

	// Mechanism selects the SASL mechanism: PLAIN, SCRAM-SHA-256 or
	// SCRAM-SHA-512.
	Mechanism string `yaml:"mechanism" envconfig:"KAFKA_SASL_MECHANISM"`

	// Username for SASL authentication.
	Username string `yaml:"username" envconfig:"KAFKA_SASL_USERNAME"`

	// Password for SASL authentication. Held in memory only.
	Password string `yaml:"password" envconfig:"KAFKA_SASL_PASSWORD"`
}

// Config holds the configuration for the Kafka metadata client.
type Config struct {
	// Brokers is the list of bootstrap broker addresses.
	Brokers []string `yaml:"brokers" envconfig:"KAFKA_BROKERS"`

	// Timeout bounds each metadata request. Defaults to DefaultTimeout.
	Timeout time.Duration `yaml:"timeout" envconfig:"KAFKA_TIMEOUT"`

	// TLS settings for broker connections.
	TLS TLSConfig `yaml:"tls"`

	// SASL authentication settings.
	SASL SASLConfig `yaml:"sasl"`

	// Logger is an optional logger for broker-level diagnostics.
	Logger Logger
}

// Logger is the logging interface used across schemawarden packages.
type Logger interface {
	Debug(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}
