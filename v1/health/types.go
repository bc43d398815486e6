package health

import "github.com/stackmill/schemawarden/v1/registry"

// Status classifies a single check or a whole report.
// The severity order is OK < WARNING < CRITICAL < ERROR.
type Status string

const (
	StatusOK       Status = "OK"
	StatusWarning  Status = "WARNING"
	StatusCritical Status = "CRITICAL"
	StatusError    Status = "ERROR"
)

// VersionExplosion flags a subject whose version count crossed the
// explosion thresholds.
type VersionExplosion struct {
	Subject  string `json:"subject"`
	Versions int    `json:"versions"`
}

// LargeSchema flags a subject whose latest schema exceeds the size
// threshold. SizeKB is rounded to two decimals.
type LargeSchema struct {
	Subject string  `json:"subject"`
	SizeKB  float64 `json:"size_kb"`
}

// OrphanedReference records one schema reference pointing at a subject
// that no longer resolves.
type OrphanedReference struct {
	Subject    string `json:"subject"`
	MissingRef string `json:"missing_ref"`
}

// CheckResult is the outcome of one health check. Status and Message are
// always set; the remaining fields are populated by the checks they belong
// to and omitted elsewhere.
type CheckResult struct {
	Status  Status `json:"status"`
	Message string `json:"message"`

	// Coverage states "sampled N of M subjects" for checks that scan a
	// bounded sample instead of the full registry.
	Coverage string `json:"coverage,omitempty"`

	// Count carries the subject count (subject_count) or the number of
	// soft-deleted subjects (soft_deleted).
	Count int `json:"count,omitempty"`

	// Explosions lists subjects over the version thresholds (version_explosion).
	Explosions []VersionExplosion `json:"explosions,omitempty"`

	// LargeSchemas lists oversized subjects (large_schemas).
	LargeSchemas []LargeSchema `json:"large_schemas,omitempty"`

	// GlobalConfig is the registry-wide compatibility setting (compatibility).
	GlobalConfig *registry.CompatibilityConfig `json:"global_config,omitempty"`

	// NoneCompatCount is the number of sampled subjects whose
	// compatibility level is NONE (compatibility).
	NoneCompatCount int `json:"none_compat_count,omitempty"`

	// Subjects holds up to the first ten soft-deleted subject names (soft_deleted).
	Subjects []string `json:"subjects,omitempty"`

	// Orphaned lists broken references (orphaned_refs).
	Orphaned []OrphanedReference `json:"orphaned,omitempty"`
}

// Summary aggregates the findings of all checks. Status is CRITICAL when
// any issue was recorded, WARNING when only warnings were recorded, and OK
// otherwise. A check that failed outright (ERROR) reports inline but does
// not by itself drive the aggregate.
type Summary struct {
	TotalIssues   int      `json:"total_issues"`
	TotalWarnings int      `json:"total_warnings"`
	Issues        []string `json:"issues"`
	Warnings      []string `json:"warnings"`
	Status        Status   `json:"status"`
}

// Report is the full outcome of one audit run. It marshals to JSON for
// API responses and archival.
type Report struct {
	Timestamp string                  `json:"timestamp"`
	Endpoint  string                  `json:"endpoint"`
	Checks    map[string]*CheckResult `json:"checks"`
	Summary   Summary                 `json:"summary"`
}

// findings is the per-check accumulator. Every check returns its own value
// and the audit runner merges them; checks never share mutable state.
type findings struct {
	issues   []string
	warnings []string
}
