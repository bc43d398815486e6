package notify

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"os"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const rabbitHeartbeat = 2 * time.Second

// amqpPublisher is the subset of amqp.Channel the notifier uses.
type amqpPublisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitNotifier publishes events to a durable topic exchange. The
// routing key identifies the event kind; the body is the JSON-encoded
// event.
type RabbitNotifier struct {
	conn     *amqp.Connection
	channel  amqpPublisher
	exchange string
	logger   Logger
}

// NewRabbitNotifier connects to RabbitMQ, declares the exchange and
// returns a ready notifier.
func NewRabbitNotifier(cfg RabbitConfig, logger Logger) (*RabbitNotifier, error) {
	exchange := cfg.Exchange
	if exchange == "" {
		exchange = DefaultRabbitExchange
	}

	conn, err := newConnection(cfg.Connection, logger)
	if err != nil {
		return nil, fmt.Errorf("notify: %w", err)
	}

	channel, err := connectToChannel(conn, exchange)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("notify: %w", err)
	}

	return &RabbitNotifier{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
		logger:   logger,
	}, nil
}

// connectToChannel opens a publisher channel with confirms enabled and
// declares the event exchange.
func connectToChannel(conn *amqp.Connection, exchange string) (*amqp.Channel, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}

	if err = ch.Confirm(false); err != nil {
		return nil, fmt.Errorf("failed to enable publisher confirms: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // Durable
		false, // AutoDelete
		false, // Internal
		false, // NoWait
		nil,   // Arguments
	)
	if err != nil {
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return ch, nil
}

// newConnection establishes a connection to the RabbitMQ server. The
// connection URL carries the credentials and is never logged.
func newConnection(cfg RabbitConnection, logger Logger) (*amqp.Connection, error) {
	if logger != nil {
		logger.Info("Connecting to Rabbit", nil, map[string]interface{}{
			"host": cfg.Host,
			"port": cfg.Port,
		})
	}

	scheme := "amqp"
	if cfg.IsSSLEnabled {
		scheme = "amqps"
	}
	hostURL := fmt.Sprintf("%v://%v:%v@%v:%v", scheme, cfg.User, cfg.Password, cfg.Host, cfg.Port)

	amqpConfig := amqp.Config{
		Heartbeat: rabbitHeartbeat,
	}

	if cfg.IsSSLEnabled && cfg.UseCert {
		caCert, err := os.ReadFile(cfg.CACertPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA certificate: %w", err)
		}
		caCertPool := x509.NewCertPool()
		caCertPool.AppendCertsFromPEM(caCert)

		cert, err := tls.LoadX509KeyPair(cfg.ClientCertPath, cfg.ClientKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load client cert/key: %w", err)
		}

		amqpConfig.TLSClientConfig = &tls.Config{
			RootCAs:      caCertPool,
			Certificates: []tls.Certificate{cert},
			ServerName:   cfg.ServerName,
		}
	}

	conn, err := amqp.DialConfig(hostURL, amqpConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Rabbit: %w", err)
	}

	if logger != nil {
		logger.Info("Connected to Rabbit", nil, map[string]interface{}{
			"host": cfg.Host,
			"port": cfg.Port,
		})
	}
	return conn, nil
}

// HealthCompleted announces a finished audit scan.
func (n *RabbitNotifier) HealthCompleted(ctx context.Context, event HealthEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	n.publish(ctx, KeyHealthCompleted, event)
}

// SubjectsDeleted announces a finished delete operation.
func (n *RabbitNotifier) SubjectsDeleted(ctx context.Context, event DeletionEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	n.publish(ctx, KeySubjectsDeleted, event)
}

// Close closes the channel and the connection.
func (n *RabbitNotifier) Close() error {
	if n.channel != nil {
		_ = n.channel.Close()
	}
	if n.conn != nil {
		return n.conn.Close()
	}
	return nil
}

func (n *RabbitNotifier) publish(ctx context.Context, key string, event interface{}) {
	payload, err := json.Marshal(event)
	if err != nil {
		n.logError("failed to encode notification", err, key)
		return
	}

	err = n.channel.PublishWithContext(ctx, n.exchange, key, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        payload,
	})
	if err != nil {
		n.logError("failed to publish notification", err, key)
	}
}

func (n *RabbitNotifier) logError(msg string, err error, key string) {
	if n.logger == nil {
		return
	}
	n.logger.Error(msg, err, map[string]interface{}{"event": key})
}
