package lifecycle

import (
	"github.com/stackmill/schemawarden/v1/registry"
)

// SubjectDetails is a best-effort description of one subject. When any
// lookup for the subject fails, Error is set and the remaining fields
// hold whatever was retrieved before the failure; the caller decides
// whether a partial record is usable.
type SubjectDetails struct {
	Subject       string              `json:"subject"`
	Versions      []int               `json:"versions,omitempty"`
	VersionCount  int                 `json:"version_count"`
	LatestVersion int                 `json:"latest_version,omitempty"`
	SchemaType    registry.SchemaType `json:"schema_type,omitempty"`
	SizeKB        float64             `json:"size_kb"`
	ID            int                 `json:"id,omitempty"`
	Error         string              `json:"error,omitempty"`
}

// DeleteResult reports the outcome of one delete operation. Failures are
// data, not errors: Success false plus Error carries the registry's own
// message so bulk callers can account for every subject.
//
// For hard deletes, SoftDelete holds the result of the preliminary
// soft-delete stage. That stage does not gate the permanent call; it is
// attached so a silently absorbed soft-delete failure stays visible.
type DeleteResult struct {
	Success         bool          `json:"success"`
	Subject         string        `json:"subject"`
	Version         int           `json:"version,omitempty"`
	DeletedVersions []int         `json:"deleted_versions,omitempty"`
	Message         string        `json:"message,omitempty"`
	Error           string        `json:"error,omitempty"`
	SoftDelete      *DeleteResult `json:"soft_delete,omitempty"`
}

// BulkResult is the full accounting of a bulk delete. The invariant
// SuccessCount + FailureCount == Total == len(input) holds for every
// input, including the empty list.
type BulkResult struct {
	Total        int             `json:"total"`
	Successful   []*DeleteResult `json:"successful"`
	Failed       []*DeleteResult `json:"failed"`
	SuccessCount int             `json:"success_count"`
	FailureCount int             `json:"failure_count"`
	Timestamp    string          `json:"timestamp"`
}

// PurgeResult reports a purge run. Count is the number of soft-deleted
// subjects found; Bulk is nil when there was nothing to purge.
type PurgeResult struct {
	Count   int         `json:"count"`
	Message string      `json:"message,omitempty"`
	Bulk    *BulkResult `json:"bulk,omitempty"`
}

// Filter selects subjects by conjunction: a subject passes when every
// set condition holds. Pattern is a literal substring match, not a glob
// or regular expression.
type Filter struct {
	// MinVersions excludes subjects with fewer versions. Zero means no
	// version condition.
	MinVersions int
	// Pattern excludes subjects whose name does not contain it. Empty
	// means no name condition.
	Pattern string
}
