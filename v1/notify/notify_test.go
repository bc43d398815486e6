package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	kafkago "github.com/segmentio/kafka-go"
)

type fakeWriter struct {
	messages []kafkago.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

type fakePublisher struct {
	exchange string
	key      string
	msg      amqp.Publishing
	calls    int
	err      error
}

func (p *fakePublisher) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	p.calls++
	if p.err != nil {
		return p.err
	}
	p.exchange = exchange
	p.key = key
	p.msg = msg
	return nil
}

func (p *fakePublisher) Close() error { return nil }

type recordingLogger struct {
	errorMsgs []string
}

func (l *recordingLogger) Info(msg string, err error, fields ...map[string]interface{}) {}

func (l *recordingLogger) Error(msg string, err error, fields ...map[string]interface{}) {
	l.errorMsgs = append(l.errorMsgs, msg)
}

func TestKafkaNotifierPublishesHealthEvent(t *testing.T) {
	writer := &fakeWriter{}
	notifier := &KafkaNotifier{writer: writer}

	notifier.HealthCompleted(context.Background(), HealthEvent{
		Status:       "WARNING",
		Issues:       0,
		Warnings:     2,
		SubjectCount: 41,
	})

	if len(writer.messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(writer.messages))
	}
	msg := writer.messages[0]
	if string(msg.Key) != KeyHealthCompleted {
		t.Errorf("key = %q, want %q", msg.Key, KeyHealthCompleted)
	}

	var event HealthEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		t.Fatalf("invalid JSON payload: %v", err)
	}
	if event.Status != "WARNING" || event.Warnings != 2 || event.SubjectCount != 41 {
		t.Errorf("unexpected event payload: %+v", event)
	}
	if event.Timestamp.IsZero() {
		t.Error("expected the notifier to stamp the timestamp")
	}
}

func TestKafkaNotifierPreservesTimestamp(t *testing.T) {
	writer := &fakeWriter{}
	notifier := &KafkaNotifier{writer: writer}

	stamp := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	notifier.SubjectsDeleted(context.Background(), DeletionEvent{
		Operation: "purge",
		Timestamp: stamp,
	})

	var event DeletionEvent
	if err := json.Unmarshal(writer.messages[0].Value, &event); err != nil {
		t.Fatalf("invalid JSON payload: %v", err)
	}
	if !event.Timestamp.Equal(stamp) {
		t.Errorf("timestamp = %v, want %v", event.Timestamp, stamp)
	}
}

func TestKafkaNotifierPublishFailureIsLoggedNotEscalated(t *testing.T) {
	logger := &recordingLogger{}
	notifier := &KafkaNotifier{
		writer: &fakeWriter{err: errors.New("broker unreachable")},
		logger: logger,
	}

	notifier.SubjectsDeleted(context.Background(), DeletionEvent{
		Operation: "soft_delete",
		Subjects:  []string{"orders-value"},
		Succeeded: 1,
	})

	if len(logger.errorMsgs) != 1 {
		t.Fatalf("expected 1 logged error, got %d", len(logger.errorMsgs))
	}
}

func TestKafkaNotifierClose(t *testing.T) {
	writer := &fakeWriter{}
	notifier := &KafkaNotifier{writer: writer}

	if err := notifier.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !writer.closed {
		t.Error("expected the writer to be closed")
	}
}

func TestRabbitNotifierPublishesDeletionEvent(t *testing.T) {
	publisher := &fakePublisher{}
	notifier := &RabbitNotifier{channel: publisher, exchange: "schemawarden.events"}

	notifier.SubjectsDeleted(context.Background(), DeletionEvent{
		Operation: "bulk_delete",
		Subjects:  []string{"orders-value", "users-value"},
		Succeeded: 1,
		Failed:    1,
	})

	if publisher.calls != 1 {
		t.Fatalf("expected 1 publish, got %d", publisher.calls)
	}
	if publisher.exchange != "schemawarden.events" {
		t.Errorf("exchange = %q, want %q", publisher.exchange, "schemawarden.events")
	}
	if publisher.key != KeySubjectsDeleted {
		t.Errorf("routing key = %q, want %q", publisher.key, KeySubjectsDeleted)
	}
	if publisher.msg.ContentType != "application/json" {
		t.Errorf("content type = %q, want application/json", publisher.msg.ContentType)
	}

	var event DeletionEvent
	if err := json.Unmarshal(publisher.msg.Body, &event); err != nil {
		t.Fatalf("invalid JSON payload: %v", err)
	}
	if event.Operation != "bulk_delete" || event.Succeeded != 1 || event.Failed != 1 {
		t.Errorf("unexpected event payload: %+v", event)
	}
	if len(event.Subjects) != 2 {
		t.Errorf("expected 2 subjects, got %d", len(event.Subjects))
	}
}

func TestRabbitNotifierPublishFailureIsLoggedNotEscalated(t *testing.T) {
	logger := &recordingLogger{}
	notifier := &RabbitNotifier{
		channel:  &fakePublisher{err: errors.New("channel closed")},
		exchange: "schemawarden.events",
		logger:   logger,
	}

	notifier.HealthCompleted(context.Background(), HealthEvent{Status: "OK"})

	if len(logger.errorMsgs) != 1 {
		t.Fatalf("expected 1 logged error, got %d", len(logger.errorMsgs))
	}
}

func TestNewNotifierWithDIDefaultsToNop(t *testing.T) {
	notifier, err := NewNotifierWithDI(NotifierParams{})
	if err != nil {
		t.Fatalf("NewNotifierWithDI: %v", err)
	}
	if _, ok := notifier.(NopNotifier); !ok {
		t.Fatalf("expected NopNotifier, got %T", notifier)
	}
}

func TestNewNotifierWithDIUnknownType(t *testing.T) {
	_, err := NewNotifierWithDI(NotifierParams{Config: Config{Type: "carrier-pigeon"}})
	if err == nil {
		t.Fatal("expected error for unknown notifier type")
	}
}

func TestNewKafkaNotifierRequiresBrokers(t *testing.T) {
	if _, err := NewKafkaNotifier(KafkaConfig{}, nil); err == nil {
		t.Fatal("expected error for missing brokers")
	}
}
