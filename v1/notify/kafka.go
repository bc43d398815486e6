package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/stackmill/schemawarden/v1/kafka"
)

// messageWriter is the subset of kafka.Writer the notifier uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// KafkaNotifier publishes events to a Kafka topic. The event key
// identifies the event kind; the value is the JSON-encoded event.
type KafkaNotifier struct {
	writer messageWriter
	logger Logger
}

// NewKafkaNotifier creates a notifier publishing to the configured
// topic.
func NewKafkaNotifier(cfg KafkaConfig, logger Logger) (*KafkaNotifier, error) {
	topic := cfg.Topic
	if topic == "" {
		topic = DefaultKafkaTopic
	}

	writer, err := kafka.NewWriter(cfg.Connection, topic)
	if err != nil {
		return nil, fmt.Errorf("notify: %w", err)
	}

	if logger != nil {
		logger.Info("Kafka notifier initialized", nil, map[string]interface{}{
			"topic": topic,
		})
	}
	return &KafkaNotifier{writer: writer, logger: logger}, nil
}

// HealthCompleted announces a finished audit scan.
func (n *KafkaNotifier) HealthCompleted(ctx context.Context, event HealthEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	n.publish(ctx, KeyHealthCompleted, event)
}

// SubjectsDeleted announces a finished delete operation.
func (n *KafkaNotifier) SubjectsDeleted(ctx context.Context, event DeletionEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	n.publish(ctx, KeySubjectsDeleted, event)
}

// Close closes the underlying writer.
func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}

func (n *KafkaNotifier) publish(ctx context.Context, key string, event interface{}) {
	payload, err := json.Marshal(event)
	if err != nil {
		n.logError("failed to encode notification", err, key)
		return
	}

	err = n.writer.WriteMessages(ctx, kafkago.Message{
		Key:   []byte(key),
		Value: payload,
	})
	if err != nil {
		n.logError("failed to publish notification", err, key)
	}
}

func (n *KafkaNotifier) logError(msg string, err error, key string) {
	if n.logger == nil {
		return
	}
	n.logger.Error(msg, err, map[string]interface{}{"event": key})
}
