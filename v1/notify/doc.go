// Package notify publishes advisory events when an audit scan or a
// delete operation completes, so downstream systems (alerting,
// archival, chat bots) can react without polling the engine.
//
// # Failure model
//
// Notification is advisory. A failed publish is logged and dropped;
// it never fails the operation it describes. Callers therefore invoke
// the notifier unconditionally after the operation has finished:
//
//	report := auditor.Scan(ctx)
//	notifier.HealthCompleted(ctx, notify.HealthEvent{
//	    Status:       string(report.Status),
//	    Issues:       len(report.Issues),
//	    Warnings:     len(report.Warnings),
//	    SubjectCount: report.SubjectCount,
//	})
//
// # Backends
//
// Three backends implement Notifier, selected by Config.Type:
//
//   - "nop": discards events. The default, so the engine runs without
//     any broker configured.
//   - "kafka": publishes to a Kafka topic. The message key is the
//     event key (health.completed, subjects.deleted), the value the
//     JSON-encoded event.
//   - "rabbit": publishes to a durable RabbitMQ topic exchange with
//     the event key as routing key.
//
// Both broker backends stamp Timestamp when the caller leaves it
// zero, and encode events as JSON.
package notify
