// Package health audits a schema registry for structural anomalies.
//
// The auditor runs a fixed battery of seven checks and folds their
// findings into one severity-classified report:
//
//	connectivity       registry reachable at all (failure is CRITICAL)
//	subject_count      total subjects; >1000 warns, >5000 is critical
//	version_explosion  subjects with >50 versions warn, >100 critical
//	large_schemas      latest schemas over 100 KiB (sampled)
//	compatibility      subjects with compatibility NONE (sampled)
//	soft_deleted       subjects sitting in the soft-deleted state
//	orphaned_refs      schema references to missing subjects (sampled)
//
// Checks are isolated from each other: a failing remote call degrades only
// the check it happened in (reported as that check's ERROR), and the report
// always completes. Within the scanning checks a failing subject is skipped
// and logged rather than aborting the scan. Each check returns its own
// findings value; the audit runner merges them, so there is no shared
// mutable audit state.
//
// The aggregate status is computed from the merged findings alone:
// CRITICAL when any issue was recorded, WARNING when only warnings were,
// OK otherwise. A check ERROR shows up inline in the report but does not
// drive the aggregate by itself.
//
// Sampling: large_schemas, compatibility and orphaned_refs scan a bounded
// sample of subjects (100/50/50 by default, configurable) to keep audit
// latency flat on large registries. Their results state the actual
// coverage ("sampled N of M subjects"); treat them as probabilistic, not
// exhaustive.
//
// Usage:
//
//	auditor, err := health.NewAuditor(client, health.Config{
//	    Endpoint: cfg.URL,
//	})
//	report := auditor.AuditAll(ctx)
//	if report.Summary.Status == health.StatusCritical {
//	    // page somebody
//	}
//
// The report marshals to JSON unchanged for API responses and archival.
package health
