package notify

import (
	"github.com/stackmill/schemawarden/v1/kafka"
)

// Notifier backend types.
const (
	// TypeNop discards events. This is the default.
	TypeNop = "nop"

	// TypeKafka publishes events to a Kafka topic.
	TypeKafka = "kafka"

	// TypeRabbit publishes events to a RabbitMQ exchange.
	TypeRabbit = "rabbit"
)

// Default configuration values.
const (
	// DefaultType is the backend used when none is configured.
	DefaultType = TypeNop

	// DefaultKafkaTopic is the topic events are published to.
	DefaultKafkaTopic = "schemawarden-events"

	// DefaultRabbitExchange is the exchange events are published to.
	DefaultRabbitExchange = "schemawarden.events"
)

// Event keys. Kafka messages carry them as the message key; RabbitMQ
// publishes use them as the routing key.
const (
	KeyHealthCompleted = "health.completed"
	KeySubjectsDeleted = "subjects.deleted"
)

// KafkaConfig holds the settings for the Kafka backend.
type KafkaConfig struct {
	// Connection carries brokers, timeout and security settings.
	Connection kafka.Config `yaml:"connection"`

	// Topic is the topic events are published to. Defaults to
	// DefaultKafkaTopic.
	Topic string `yaml:"topic" envconfig:"NOTIFY_KAFKA_TOPIC"`
}

// RabbitConnection holds the connection settings for the RabbitMQ
// backend.
type RabbitConnection struct {
	// Host is the RabbitMQ server host.
	Host string `yaml:"host" envconfig:"NOTIFY_RABBIT_HOST"`

	// Port is the RabbitMQ server port.
	Port uint `yaml:"port" envconfig:"NOTIFY_RABBIT_PORT"`

	// User is the RabbitMQ user.
	User string `yaml:"user" envconfig:"NOTIFY_RABBIT_USER"`

	// Password is the RabbitMQ password. Held in memory only.
	Password string `yaml:"password" envconfig:"NOTIFY_RABBIT_PASSWORD"`

	// IsSSLEnabled switches the connection to amqps.
	IsSSLEnabled bool `yaml:"is_ssl_enabled" envconfig:"NOTIFY_RABBIT_IS_SSL_ENABLED"`

	// UseCert enables client certificate authentication.
	UseCert bool `yaml:"use_cert" envconfig:"NOTIFY_RABBIT_USE_CERT"`

	// CACertPath is the path to the CA certificate.
	CACertPath string `yaml:"ca_cert_path" envconfig:"NOTIFY_RABBIT_CA_CERT_PATH"`

	// ClientCertPath is the path to the client certificate.
	ClientCertPath string `yaml:"client_cert_path" envconfig:"NOTIFY_RABBIT_CLIENT_CERT_PATH"`

	// ClientKeyPath is the path to the client key.
	ClientKeyPath string `yaml:"client_key_path" envconfig:"NOTIFY_RABBIT_CLIENT_KEY_PATH"`

	// ServerName overrides the expected TLS server name.
	ServerName string `yaml:"server_name" envconfig:"NOTIFY_RABBIT_SERVER_NAME"`
}

// RabbitConfig holds the settings for the RabbitMQ backend.
type RabbitConfig struct {
	// Connection carries the server address and credentials.
	Connection RabbitConnection `yaml:"connection"`

	// Exchange is the topic exchange events are published to.
	// Declared durable on start. Defaults to DefaultRabbitExchange.
	Exchange string `yaml:"exchange" envconfig:"NOTIFY_RABBIT_EXCHANGE"`
}

// Config selects and configures a notifier backend.
type Config struct {
	// Type selects the backend: "nop", "kafka" or "rabbit". Defaults
	// to DefaultType.
	Type string `yaml:"type" envconfig:"NOTIFY_TYPE"`

	// Kafka configures the Kafka backend.
	Kafka KafkaConfig `yaml:"kafka"`

	// Rabbit configures the RabbitMQ backend.
	Rabbit RabbitConfig `yaml:"rabbit"`
}

// Logger is the logging interface the notifiers report through.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}
