package main

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/stackmill/schemawarden/v1/archive"
	"github.com/stackmill/schemawarden/v1/health"
	"github.com/stackmill/schemawarden/v1/kafka"
	"github.com/stackmill/schemawarden/v1/logger"
	"github.com/stackmill/schemawarden/v1/metrics"
	"github.com/stackmill/schemawarden/v1/notify"
	"github.com/stackmill/schemawarden/v1/oplog"
	"github.com/stackmill/schemawarden/v1/registry"
	"github.com/stackmill/schemawarden/v1/server"
	"github.com/stackmill/schemawarden/v1/tracer"
)

// bindEnvironment maps viper keys to the environment variable names
// the packages document on their Config fields. Bindings are explicit
// because the names predate this CLI (the registry credentials have
// always been SCHEMA_REGISTRY_*) and do not follow a single prefix.
func bindEnvironment() {
	bindings := map[string]string{
		"registry.url":        "SCHEMA_REGISTRY_URL",
		"registry.api_key":    "SCHEMA_REGISTRY_API_KEY",
		"registry.api_secret": "SCHEMA_REGISTRY_API_SECRET",
		"registry.timeout":    "SCHEMA_REGISTRY_TIMEOUT",

		"health.large_schema_sample":  "HEALTH_LARGE_SCHEMA_SAMPLE",
		"health.compatibility_sample": "HEALTH_COMPATIBILITY_SAMPLE",
		"health.reference_sample":     "HEALTH_REFERENCE_SAMPLE",

		"server.address":  "SERVER_ADDRESS",
		"server.username": "SERVER_USERNAME",
		"server.password": "SERVER_PASSWORD",

		"logger.level":          "ZAP_LOGGER_LEVEL",
		"logger.service_name":   "LOGGER_SERVICE_NAME",
		"logger.enable_tracing": "LOGGER_ENABLE_TRACING",

		"metrics.address":                   "METRICS_ADDRESS",
		"metrics.enable_default_collectors": "METRICS_ENABLE_DEFAULT_COLLECTORS",
		"metrics.service_name":              "METRICS_SERVICE_NAME",

		"tracer.service_name":  "TRACER_SERVICE_NAME",
		"tracer.app_env":       "TRACER_APP_ENV",
		"tracer.enable_export": "TRACER_ENABLE_EXPORT",

		"archive.type":                    "ARCHIVE_TYPE",
		"archive.local.dir":               "ARCHIVE_LOCAL_DIR",
		"archive.minio.endpoint":          "ARCHIVE_MINIO_ENDPOINT",
		"archive.minio.access_key_id":     "ARCHIVE_MINIO_ACCESS_KEY_ID",
		"archive.minio.secret_access_key": "ARCHIVE_MINIO_SECRET_ACCESS_KEY",
		"archive.minio.use_ssl":           "ARCHIVE_MINIO_USE_SSL",
		"archive.minio.region":            "ARCHIVE_MINIO_REGION",
		"archive.minio.bucket":            "ARCHIVE_MINIO_BUCKET",

		"oplog.type":              "OPLOG_TYPE",
		"oplog.memory.capacity":   "OPLOG_MEMORY_CAPACITY",
		"oplog.postgres.host":     "OPLOG_POSTGRES_HOST",
		"oplog.postgres.port":     "OPLOG_POSTGRES_PORT",
		"oplog.postgres.user":     "OPLOG_POSTGRES_USER",
		"oplog.postgres.password": "OPLOG_POSTGRES_PASSWORD",
		"oplog.postgres.db_name":  "OPLOG_POSTGRES_DB_NAME",
		"oplog.postgres.ssl_mode": "OPLOG_POSTGRES_SSL_MODE",

		"notify.type":                  "NOTIFY_TYPE",
		"notify.kafka.topic":           "NOTIFY_KAFKA_TOPIC",
		"notify.rabbit.host":           "NOTIFY_RABBIT_HOST",
		"notify.rabbit.port":           "NOTIFY_RABBIT_PORT",
		"notify.rabbit.user":           "NOTIFY_RABBIT_USER",
		"notify.rabbit.password":       "NOTIFY_RABBIT_PASSWORD",
		"notify.rabbit.is_ssl_enabled": "NOTIFY_RABBIT_IS_SSL_ENABLED",
		"notify.rabbit.exchange":       "NOTIFY_RABBIT_EXCHANGE",

		"kafka.brokers":                  "KAFKA_BROKERS",
		"kafka.timeout":                  "KAFKA_TIMEOUT",
		"kafka.tls.enabled":              "KAFKA_TLS_ENABLED",
		"kafka.tls.ca_cert_path":         "KAFKA_TLS_CA_CERT_PATH",
		"kafka.tls.client_cert_path":     "KAFKA_TLS_CLIENT_CERT_PATH",
		"kafka.tls.client_key_path":      "KAFKA_TLS_CLIENT_KEY_PATH",
		"kafka.tls.insecure_skip_verify": "KAFKA_TLS_INSECURE_SKIP_VERIFY",
		"kafka.sasl.enabled":             "KAFKA_SASL_ENABLED",
		"kafka.sasl.mechanism":           "KAFKA_SASL_MECHANISM",
		"kafka.sasl.username":            "KAFKA_SASL_USERNAME",
		"kafka.sasl.password":            "KAFKA_SASL_PASSWORD",
	}
	for key, env := range bindings {
		_ = viper.BindEnv(key, env)
	}
}

func registryConfig() registry.Config {
	return registry.Config{
		URL:       viper.GetString("registry.url"),
		APIKey:    viper.GetString("registry.api_key"),
		APISecret: viper.GetString("registry.api_secret"),
		Timeout:   viper.GetDuration("registry.timeout"),
	}
}

func healthConfig() health.Config {
	return health.Config{
		Endpoint:            viper.GetString("registry.url"),
		LargeSchemaSample:   viper.GetInt("health.large_schema_sample"),
		CompatibilitySample: viper.GetInt("health.compatibility_sample"),
		ReferenceSample:     viper.GetInt("health.reference_sample"),
	}
}

func serverConfig() server.Config {
	return server.Config{
		Address:  viper.GetString("server.address"),
		Username: viper.GetString("server.username"),
		Password: viper.GetString("server.password"),
	}
}

func loggerConfig() logger.Config {
	return logger.Config{
		Level:         viper.GetString("logger.level"),
		ServiceName:   viper.GetString("logger.service_name"),
		EnableTracing: viper.GetBool("logger.enable_tracing"),
	}
}

func metricsConfig() metrics.Config {
	return metrics.Config{
		Address:                 viper.GetString("metrics.address"),
		EnableDefaultCollectors: viper.GetBool("metrics.enable_default_collectors"),
		ServiceName:             viper.GetString("metrics.service_name"),
	}
}

func tracerConfig() tracer.Config {
	return tracer.Config{
		ServiceName:  viper.GetString("tracer.service_name"),
		AppEnv:       viper.GetString("tracer.app_env"),
		EnableExport: viper.GetBool("tracer.enable_export"),
	}
}

func archiveConfig() archive.Config {
	return archive.Config{
		Type: viper.GetString("archive.type"),
		Local: archive.LocalConfig{
			Dir: viper.GetString("archive.local.dir"),
		},
		Minio: archive.MinioConfig{
			Endpoint:        viper.GetString("archive.minio.endpoint"),
			AccessKeyID:     viper.GetString("archive.minio.access_key_id"),
			SecretAccessKey: viper.GetString("archive.minio.secret_access_key"),
			UseSSL:          viper.GetBool("archive.minio.use_ssl"),
			Region:          viper.GetString("archive.minio.region"),
			Bucket:          viper.GetString("archive.minio.bucket"),
		},
	}
}

func oplogConfig() oplog.Config {
	return oplog.Config{
		Type: viper.GetString("oplog.type"),
		Memory: oplog.MemoryConfig{
			Capacity: viper.GetInt("oplog.memory.capacity"),
		},
		Postgres: oplog.PostgresConfig{
			Host:     viper.GetString("oplog.postgres.host"),
			Port:     viper.GetString("oplog.postgres.port"),
			User:     viper.GetString("oplog.postgres.user"),
			Password: viper.GetString("oplog.postgres.password"),
			DbName:   viper.GetString("oplog.postgres.db_name"),
			SSLMode:  viper.GetString("oplog.postgres.ssl_mode"),
		},
	}
}

func notifyConfig() notify.Config {
	return notify.Config{
		Type: viper.GetString("notify.type"),
		Kafka: notify.KafkaConfig{
			Connection: kafkaConfig(),
			Topic:      viper.GetString("notify.kafka.topic"),
		},
		Rabbit: notify.RabbitConfig{
			Connection: notify.RabbitConnection{
				Host:         viper.GetString("notify.rabbit.host"),
				Port:         viper.GetUint("notify.rabbit.port"),
				User:         viper.GetString("notify.rabbit.user"),
				Password:     viper.GetString("notify.rabbit.password"),
				IsSSLEnabled: viper.GetBool("notify.rabbit.is_ssl_enabled"),
			},
			Exchange: viper.GetString("notify.rabbit.exchange"),
		},
	}
}

func kafkaConfig() kafka.Config {
	return kafka.Config{
		Brokers: kafkaBrokers(),
		Timeout: viper.GetDuration("kafka.timeout"),
		TLS: kafka.TLSConfig{
			Enabled:            viper.GetBool("kafka.tls.enabled"),
			CACertPath:         viper.GetString("kafka.tls.ca_cert_path"),
			ClientCertPath:     viper.GetString("kafka.tls.client_cert_path"),
			ClientKeyPath:      viper.GetString("kafka.tls.client_key_path"),
			InsecureSkipVerify: viper.GetBool("kafka.tls.insecure_skip_verify"),
		},
		SASL: kafka.SASLConfig{
			Enabled:   viper.GetBool("kafka.sasl.enabled"),
			Mechanism: viper.GetString("kafka.sasl.mechanism"),
			Username:  viper.GetString("kafka.sasl.username"),
			Password:  viper.GetString("kafka.sasl.password"),
		},
	}
}

// kafkaBrokers accepts both a YAML list and the comma-separated form
// used in KAFKA_BROKERS.
func kafkaBrokers() []string {
	raw := viper.GetStringSlice("kafka.brokers")
	brokers := make([]string, 0, len(raw))
	for _, entry := range raw {
		for _, broker := range strings.Split(entry, ",") {
			broker = strings.TrimSpace(broker)
			if broker != "" {
				brokers = append(brokers, broker)
			}
		}
	}
	return brokers
}
