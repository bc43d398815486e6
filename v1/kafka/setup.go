package kafka

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"log"
	"os"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/segmentio/kafka-go/sasl/scram"
)

// TopicInfo describes one topic as reported by the cluster metadata.
type TopicInfo struct {
	Name              string `json:"name"`
	Partitions        int    `json:"partitions"`
	ReplicationFactor int    `json:"replication_factor"`
}

// MetadataClient fetches topic metadata from a Kafka cluster. It holds
// no connection state of its own; each request dials through the
// shared transport.
type MetadataClient struct {
	// cfg stores the configuration for this client
	cfg Config

	// client is the kafka-go client used for metadata requests
	client *kafka.Client
}

// NewMetadataClient creates a metadata client for the configured
// brokers.
//
// Example:
//
//	client, err := kafka.NewMetadataClient(kafka.Config{
//	    Brokers: []string{"localhost:9092"},
//	})
//	if err != nil {
//	    return err
//	}
//	info, err := client.TopicInfo(ctx, "orders")
func NewMetadataClient(cfg Config) (*MetadataClient, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("at least one broker address is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	// Set up TLS config if enabled
	var tlsConfig *tls.Config
	var err error
	if cfg.TLS.Enabled {
		tlsConfig, err = createTLSConfig(cfg.TLS)
		if err != nil {
			return nil, fmt.Errorf("failed to create TLS config: %w", err)
		}
	}

	// Set up SASL mechanism if enabled
	var mechanism sasl.Mechanism
	if cfg.SASL.Enabled {
		mechanism, err = createSASLMechanism(cfg.SASL)
		if err != nil {
			return nil, fmt.Errorf("failed to create SASL mechanism: %w", err)
		}
	}

	return &MetadataClient{
		cfg: cfg,
		client: &kafka.Client{
			Addr:    kafka.TCP(cfg.Brokers...),
			Timeout: cfg.Timeout,
			Transport: &kafka.Transport{
				TLS:  tlsConfig,
				SASL: mechanism,
			},
		},
	}, nil
}

// TopicInfo returns partition and replication metadata for one topic.
// An unknown topic yields ErrTopicNotFound.
func (m *MetadataClient) TopicInfo(ctx context.Context, topic string) (*TopicInfo, error) {
	resp, err := m.client.Metadata(ctx, &kafka.MetadataRequest{
		Topics: []string{topic},
	})
	if err != nil {
		return nil, fmt.Errorf("fetching metadata for %q: %w", topic, err)
	}

	for _, t := range resp.Topics {
		if t.Name != topic {
			continue
		}
		if t.Error != nil {
			if m.cfg.Logger != nil {
				m.cfg.Logger.Debug("topic lookup failed", t.Error, map[string]interface{}{"topic": topic})
			}
			return nil, fmt.Errorf("topic %q: %w", topic, ErrTopicNotFound)
		}

		info := &TopicInfo{
			Name:       t.Name,
			Partitions: len(t.Partitions),
		}
		if len(t.Partitions) > 0 {
			info.ReplicationFactor = len(t.Partitions[0].Replicas)
		}
		return info, nil
	}

	return nil, fmt.Errorf("topic %q: %w", topic, ErrTopicNotFound)
}

// NewWriter creates a Kafka writer publishing to the given topic. The
// caller owns the writer and must close it when done.
func NewWriter(cfg Config, topic string) (*kafka.Writer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("at least one broker address is required")
	}
	if topic == "" {
		return nil, fmt.Errorf("topic is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	var tlsConfig *tls.Config
	var err error
	if cfg.TLS.Enabled {
		tlsConfig, err = createTLSConfig(cfg.TLS)
		if err != nil {
			return nil, fmt.Errorf("failed to create TLS config: %w", err)
		}
	}

	var mechanism sasl.Mechanism
	if cfg.SASL.Enabled {
		mechanism, err = createSASLMechanism(cfg.SASL)
		if err != nil {
			return nil, fmt.Errorf("failed to create SASL mechanism: %w", err)
		}
	}

	writerConfig := kafka.WriterConfig{
		Brokers:      cfg.Brokers,
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: cfg.Timeout,
		ErrorLogger:  createErrorLogger(cfg),
	}
	writerConfig.Dialer = &kafka.Dialer{
		TLS:           tlsConfig,
		SASLMechanism: mechanism,
	}

	return kafka.NewWriter(writerConfig), nil
}

// createErrorLogger routes the writer's internal errors through the
// configured Logger when one is set.
func createErrorLogger(cfg Config) kafka.LoggerFunc {
	return kafka.LoggerFunc(func(msg string, args ...interface{}) {
		if cfg.Logger != nil {
			cfg.Logger.Error(fmt.Sprintf(msg, args...), nil)
			return
		}
		log.Printf("KAFKA ERROR: "+msg, args...)
	})
}

// createTLSConfig creates a TLS configuration from the provided config
func createTLSConfig(cfg TLSConfig) (*tls.Config, error) {
	tlsConfig := &tls.Config{
		InsecureSkipVerify: cfg.InsecureSkipVerify,
	}

	// Load CA certificate
	if cfg.CACertPath != "" {
		caCert, err := os.ReadFile(cfg.CACertPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA cert: %w", err)
		}
		caCertPool := x509.NewCertPool()
		if !caCertPool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("failed to parse CA cert")
		}
		tlsConfig.RootCAs = caCertPool
	}

	// Load client certificate
	if cfg.ClientCertPath != "" && cfg.ClientKeyPath != "" {
		cert, err := tls.LoadX509KeyPair(cfg.ClientCertPath, cfg.ClientKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load client cert: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	return tlsConfig, nil
}

// createSASLMechanism creates a SASL mechanism from the provided config
func createSASLMechanism(cfg SASLConfig) (sasl.Mechanism, error) {
	switch cfg.Mechanism {
	case "PLAIN":
		return plain.Mechanism{
			Username: cfg.Username,
			Password: cfg.Password,
		}, nil
	case "SCRAM-SHA-256":
		return scram.Mechanism(scram.SHA256, cfg.Username, cfg.Password)
	case "SCRAM-SHA-512":
		return scram.Mechanism(scram.SHA512, cfg.Username, cfg.Password)
	default:
		return nil, fmt.Errorf("unsupported SASL mechanism: %s", cfg.Mechanism)
	}
}
