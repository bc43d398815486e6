package health

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net"
	"time"

	"github.com/stackmill/schemawarden/v1/registry"
)

// Auditor runs a fixed battery of health checks against a schema registry
// and produces a severity-classified report. Checks are isolated: one
// check failing, or even panicking, never aborts the others.
type Auditor struct {
	registry registry.Registry
	cfg      Config
	logger   Logger
}

// NewAuditor creates a new health auditor over a registry client.
// Returns the concrete *Auditor type.
func NewAuditor(reg registry.Registry, cfg Config) (*Auditor, error) {
	if reg == nil {
		return nil, fmt.Errorf("registry client is required")
	}

	if cfg.LargeSchemaSample <= 0 {
		cfg.LargeSchemaSample = DefaultLargeSchemaSample
	}
	if cfg.CompatibilitySample <= 0 {
		cfg.CompatibilitySample = DefaultCompatibilitySample
	}
	if cfg.ReferenceSample <= 0 {
		cfg.ReferenceSample = DefaultReferenceSample
	}

	return &Auditor{
		registry: reg,
		cfg:      cfg,
		logger:   cfg.Logger,
	}, nil
}

// AuditAll runs every check and aggregates their findings into a report.
// The report always completes, even if every single check reports ERROR.
// Cancelling the context aborts long scans early; checks interrupted that
// way report ERROR with their partial findings kept.
func (a *Auditor) AuditAll(ctx context.Context) *Report {
	report := &Report{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Endpoint:  a.cfg.Endpoint,
		Checks:    map[string]*CheckResult{},
	}

	checks := []struct {
		name string
		run  func(context.Context) (*CheckResult, findings)
	}{
		{"connectivity", a.checkConnectivity},
		{"subject_count", a.checkSubjectCount},
		{"version_explosion", a.checkVersionExplosion},
		{"large_schemas", a.checkLargeSchemas},
		{"compatibility", a.checkCompatibility},
		{"soft_deleted", a.checkSoftDeleted},
		{"orphaned_refs", a.checkOrphanedReferences},
	}

	var all findings
	for _, check := range checks {
		result, found := a.runCheck(ctx, check.name, check.run)
		report.Checks[check.name] = result
		all.issues = append(all.issues, found.issues...)
		all.warnings = append(all.warnings, found.warnings...)
	}

	status := StatusOK
	if len(all.warnings) > 0 {
		status = StatusWarning
	}
	if len(all.issues) > 0 {
		status = StatusCritical
	}

	report.Summary = Summary{
		TotalIssues:   len(all.issues),
		TotalWarnings: len(all.warnings),
		Issues:        all.issues,
		Warnings:      all.warnings,
		Status:        status,
	}

	return report
}

// runCheck isolates one check invocation. A panic inside a check becomes
// that check's ERROR result instead of propagating.
func (a *Auditor) runCheck(ctx context.Context, name string, run func(context.Context) (*CheckResult, findings)) (result *CheckResult, found findings) {
	defer func() {
		if r := recover(); r != nil {
			a.logError("health check panicked", fmt.Errorf("%v", r), map[string]interface{}{"check": name})
			result = &CheckResult{Status: StatusError, Message: fmt.Sprintf("check panicked: %v", r)}
			found = findings{}
		}
	}()

	return run(ctx)
}

func (a *Auditor) checkConnectivity(ctx context.Context) (*CheckResult, findings) {
	var found findings

	if _, err := a.registry.ListSubjects(ctx, false); err != nil {
		msg := err.Error()
		if isTimeout(err) {
			msg = "Connection timeout"
		}
		found.issues = append(found.issues, "Connectivity: "+msg)
		return &CheckResult{Status: StatusCritical, Message: msg}, found
	}

	return &CheckResult{Status: StatusOK, Message: "Schema Registry is reachable"}, found
}

func (a *Auditor) checkSubjectCount(ctx context.Context) (*CheckResult, findings) {
	var found findings

	subjects, err := a.registry.ListSubjects(ctx, false)
	if err != nil {
		return &CheckResult{Status: StatusError, Message: err.Error()}, found
	}

	count := len(subjects)
	result := &CheckResult{
		Status:  StatusOK,
		Count:   count,
		Message: fmt.Sprintf("Total subjects: %d", count),
	}

	// The critical threshold is checked first so that very high counts
	// are not swallowed by the warning branch.
	switch {
	case count > subjectCriticalThreshold:
		result.Status = StatusCritical
		found.issues = append(found.issues, fmt.Sprintf("Very high subject count: %d", count))
	case count > subjectWarningThreshold:
		result.Status = StatusWarning
		found.warnings = append(found.warnings, fmt.Sprintf("High subject count: %d", count))
	}

	return result, found
}

func (a *Auditor) checkVersionExplosion(ctx context.Context) (*CheckResult, findings) {
	var found findings

	subjects, err := a.registry.ListSubjects(ctx, false)
	if err != nil {
		return &CheckResult{Status: StatusError, Message: err.Error()}, found
	}

	var explosions []VersionExplosion
	for _, subject := range subjects {
		if ctx.Err() != nil {
			return &CheckResult{Status: StatusError, Message: "scan aborted: " + ctx.Err().Error()}, found
		}

		versions, err := a.registry.GetVersions(ctx, subject)
		if err != nil {
			a.logWarn("skipping subject in version check", err, map[string]interface{}{"subject": subject})
			continue
		}

		count := len(versions)
		if count > versionWarningThreshold {
			explosions = append(explosions, VersionExplosion{Subject: subject, Versions: count})
			if count > versionCriticalThreshold {
				found.issues = append(found.issues, fmt.Sprintf("%s: %d versions", subject, count))
			} else {
				found.warnings = append(found.warnings, fmt.Sprintf("%s: %d versions", subject, count))
			}
		}
	}

	if len(explosions) > 0 {
		status := StatusWarning
		if len(found.issues) > 0 {
			status = StatusCritical
		}
		return &CheckResult{
			Status:     status,
			Explosions: explosions,
			Message:    fmt.Sprintf("Found %d subjects with >%d versions", len(explosions), versionWarningThreshold),
		}, found
	}

	return &CheckResult{Status: StatusOK, Message: "No version explosions detected"}, found
}

func (a *Auditor) checkLargeSchemas(ctx context.Context) (*CheckResult, findings) {
	var found findings

	subjects, err := a.registry.ListSubjects(ctx, false)
	if err != nil {
		return &CheckResult{Status: StatusError, Message: err.Error()}, found
	}

	sample := sampleSize(len(subjects), a.cfg.LargeSchemaSample)
	coverage := fmt.Sprintf("sampled %d of %d subjects", sample, len(subjects))

	var large []LargeSchema
	for _, subject := range subjects[:sample] {
		if ctx.Err() != nil {
			return &CheckResult{Status: StatusError, Message: "scan aborted: " + ctx.Err().Error(), Coverage: coverage}, found
		}

		latest, err := a.registry.GetLatestVersion(ctx, subject)
		if err != nil {
			a.logWarn("skipping subject in size check", err, map[string]interface{}{"subject": subject})
			continue
		}

		sizeKB := float64(len(latest.Schema)) / 1024
		if sizeKB > largeSchemaKBThreshold {
			large = append(large, LargeSchema{Subject: subject, SizeKB: round2(sizeKB)})
			found.warnings = append(found.warnings, fmt.Sprintf("%s: %.2f KB", subject, sizeKB))
		}
	}

	if len(large) > 0 {
		return &CheckResult{
			Status:       StatusWarning,
			LargeSchemas: large,
			Coverage:     coverage,
			Message:      fmt.Sprintf("Found %d large schemas (>%dKB)", len(large), largeSchemaKBThreshold),
		}, found
	}

	return &CheckResult{Status: StatusOK, Coverage: coverage, Message: "No unusually large schemas"}, found
}

func (a *Auditor) checkCompatibility(ctx context.Context) (*CheckResult, findings) {
	var found findings

	globalConfig, err := a.registry.GetGlobalConfig(ctx)
	if err != nil {
		return &CheckResult{Status: StatusError, Message: err.Error()}, found
	}

	subjects, err := a.registry.ListSubjects(ctx, false)
	if err != nil {
		return &CheckResult{Status: StatusError, Message: err.Error()}, found
	}

	sample := sampleSize(len(subjects), a.cfg.CompatibilitySample)
	coverage := fmt.Sprintf("sampled %d of %d subjects", sample, len(subjects))

	noneCompat := 0
	for _, subject := range subjects[:sample] {
		if ctx.Err() != nil {
			return &CheckResult{Status: StatusError, Message: "scan aborted: " + ctx.Err().Error(), Coverage: coverage}, found
		}

		cfg, err := a.registry.GetSubjectConfig(ctx, subject)
		if err != nil {
			// Subjects without an override fall back to the global
			// config; nothing to flag.
			if !registry.IsNotFound(err) {
				a.logWarn("skipping subject in compatibility check", err, map[string]interface{}{"subject": subject})
			}
			continue
		}

		if cfg.CompatibilityLevel == registry.CompatibilityNone {
			noneCompat++
		}
	}

	if noneCompat > 0 {
		msg := fmt.Sprintf("%d subjects with NONE compatibility", noneCompat)
		found.warnings = append(found.warnings, msg)
		return &CheckResult{
			Status:          StatusWarning,
			GlobalConfig:    globalConfig,
			NoneCompatCount: noneCompat,
			Coverage:        coverage,
			Message:         msg,
		}, found
	}

	return &CheckResult{
		Status:       StatusOK,
		GlobalConfig: globalConfig,
		Coverage:     coverage,
		Message:      "Compatibility configs look good",
	}, found
}

func (a *Auditor) checkSoftDeleted(ctx context.Context) (*CheckResult, findings) {
	var found findings

	all, err := a.registry.ListSubjects(ctx, true)
	if err != nil {
		return &CheckResult{Status: StatusError, Message: err.Error()}, found
	}

	active, err := a.registry.ListSubjects(ctx, false)
	if err != nil {
		return &CheckResult{Status: StatusError, Message: err.Error()}, found
	}

	// The registry has no "list soft-deleted" endpoint; the set
	// difference of the two listings is the only way to get them.
	activeSet := make(map[string]struct{}, len(active))
	for _, subject := range active {
		activeSet[subject] = struct{}{}
	}

	var softDeleted []string
	for _, subject := range all {
		if _, ok := activeSet[subject]; !ok {
			softDeleted = append(softDeleted, subject)
		}
	}

	count := len(softDeleted)
	if count > 0 {
		found.warnings = append(found.warnings, fmt.Sprintf("%d soft-deleted subjects", count))
		shown := softDeleted
		if len(shown) > 10 {
			shown = shown[:10]
		}
		return &CheckResult{
			Status:   StatusWarning,
			Count:    count,
			Subjects: shown,
			Message:  fmt.Sprintf("%d subjects in soft-delete state", count),
		}, found
	}

	return &CheckResult{Status: StatusOK, Message: "No soft-deleted subjects"}, found
}

func (a *Auditor) checkOrphanedReferences(ctx context.Context) (*CheckResult, findings) {
	var found findings

	subjects, err := a.registry.ListSubjects(ctx, false)
	if err != nil {
		return &CheckResult{Status: StatusError, Message: err.Error()}, found
	}

	sample := sampleSize(len(subjects), a.cfg.ReferenceSample)
	coverage := fmt.Sprintf("sampled %d of %d subjects", sample, len(subjects))

	var orphaned []OrphanedReference
	for _, subject := range subjects[:sample] {
		if ctx.Err() != nil {
			return &CheckResult{Status: StatusError, Message: "scan aborted: " + ctx.Err().Error(), Coverage: coverage}, found
		}

		latest, err := a.registry.GetLatestVersion(ctx, subject)
		if err != nil {
			a.logWarn("skipping subject in reference check", err, map[string]interface{}{"subject": subject})
			continue
		}

		for _, ref := range latest.References {
			if _, err := a.registry.GetVersions(ctx, ref.Subject); registry.IsNotFound(err) {
				orphaned = append(orphaned, OrphanedReference{Subject: subject, MissingRef: ref.Subject})
				found.issues = append(found.issues, fmt.Sprintf("%s → %s (missing)", subject, ref.Subject))
			}
		}
	}

	if len(orphaned) > 0 {
		return &CheckResult{
			Status:   StatusCritical,
			Orphaned: orphaned,
			Coverage: coverage,
			Message:  fmt.Sprintf("Found %d broken references", len(orphaned)),
		}, found
	}

	return &CheckResult{Status: StatusOK, Coverage: coverage, Message: "No orphaned references"}, found
}

func (a *Auditor) logWarn(msg string, err error, fields map[string]interface{}) {
	if a.logger != nil {
		a.logger.Warn(msg, err, fields)
	}
}

func (a *Auditor) logError(msg string, err error, fields map[string]interface{}) {
	if a.logger != nil {
		a.logger.Error(msg, err, fields)
	}
}

func sampleSize(total, limit int) int {
	if total < limit {
		return total
	}
	return limit
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func isTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
