// Package notify publishes advisory events about completed audits and
// deletions to external systems.
package notify

import (
	"context"
	"time"
)

// HealthEvent summarizes a completed audit scan.
type HealthEvent struct {
	// Status is the aggregate scan status (OK, WARNING, CRITICAL).
	Status string `json:"status"`

	// Issues is the number of critical findings.
	Issues int `json:"issues"`

	// Warnings is the number of warning findings.
	Warnings int `json:"warnings"`

	// SubjectCount is the number of subjects the scan saw.
	SubjectCount int `json:"subject_count"`

	// Timestamp is when the scan completed. Stamped by the notifier
	// when zero.
	Timestamp time.Time `json:"timestamp"`
}

// DeletionEvent describes a completed delete operation.
type DeletionEvent struct {
	// Operation names the action, e.g. "soft_delete" or "purge".
	Operation string `json:"operation"`

	// Subjects lists the affected subjects.
	Subjects []string `json:"subjects"`

	// Succeeded is the number of subjects deleted.
	Succeeded int `json:"succeeded"`

	// Failed is the number of subjects that could not be deleted.
	Failed int `json:"failed"`

	// Timestamp is when the operation completed. Stamped by the
	// notifier when zero.
	Timestamp time.Time `json:"timestamp"`
}

// Notifier publishes events about completed operations. Notification
// is advisory: implementations log publish failures and never
// propagate them to the caller.
type Notifier interface {
	// HealthCompleted announces a finished audit scan.
	HealthCompleted(ctx context.Context, event HealthEvent)

	// SubjectsDeleted announces a finished delete operation.
	SubjectsDeleted(ctx context.Context, event DeletionEvent)
}

// NopNotifier discards all events.
type NopNotifier struct{}

// HealthCompleted does nothing.
func (NopNotifier) HealthCompleted(ctx context.Context, event HealthEvent) {}

// SubjectsDeleted does nothing.
func (NopNotifier) SubjectsDeleted(ctx context.Context, event DeletionEvent) {}
