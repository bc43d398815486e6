// Package oplog records administrative actions taken against the
// schema registry and serves them back for audit, newest first.
package oplog

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Operation names recorded in the log.
const (
	OpSoftDelete    = "soft_delete"
	OpHardDelete    = "hard_delete"
	OpDeleteVersion = "delete_version"
	OpBulkDelete    = "bulk_delete"
	OpPurge         = "purge"
	OpHealthCheck   = "health_check"
	OpDocsGenerate  = "docs_generate"
)

// Entry statuses.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Entry is one recorded administrative action.
type Entry struct {
	// ID uniquely identifies the entry.
	ID uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`

	// Timestamp is when the action happened, in UTC.
	Timestamp time.Time `json:"timestamp" gorm:"index"`

	// Operation is the action name, one of the Op* constants.
	Operation string `json:"operation" gorm:"index"`

	// Subject is the registry subject acted on, when the action
	// targets a single subject.
	Subject string `json:"subject,omitempty"`

	// Detail carries free-form context, such as result messages or
	// the number of subjects a bulk action touched.
	Detail string `json:"detail,omitempty"`

	// Status is StatusSuccess or StatusFailure.
	Status string `json:"status"`

	// Actor identifies who triggered the action, when known.
	Actor string `json:"actor,omitempty"`
}

// TableName is the table the PostgreSQL backend persists entries to.
func (Entry) TableName() string { return "oplog_entries" }

// NewEntry builds an entry for the given operation with a fresh ID and
// the current UTC time.
func NewEntry(operation, subject string, success bool) Entry {
	status := StatusSuccess
	if !success {
		status = StatusFailure
	}
	return Entry{
		ID:        uuid.New(),
		Timestamp: time.Now().UTC(),
		Operation: operation,
		Subject:   subject,
		Status:    status,
	}
}

// Store records administrative actions and serves them back.
type Store interface {
	// Append records one entry.
	Append(ctx context.Context, entry Entry) error

	// Recent returns up to limit entries, newest first. A limit of
	// zero or less uses DefaultRecentLimit.
	Recent(ctx context.Context, limit int) ([]Entry, error)
}
