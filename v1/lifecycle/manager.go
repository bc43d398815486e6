package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/stackmill/schemawarden/v1/registry"
)

// Logger is the logging interface used across schemawarden packages.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
}

// Manager performs subject lifecycle operations: filtered listing,
// soft and hard deletion, bulk deletion with per-item accounting, and
// purging of soft-deleted subjects.
type Manager struct {
	registry registry.Registry
	logger   Logger
}

// NewManager creates a lifecycle manager over a registry client.
func NewManager(reg registry.Registry, logger Logger) (*Manager, error) {
	if reg == nil {
		return nil, fmt.Errorf("registry client is required")
	}
	return &Manager{registry: reg, logger: logger}, nil
}

// ListSubjects returns the registry's subject listing in server order.
func (m *Manager) ListSubjects(ctx context.Context, includeDeleted bool) ([]string, error) {
	return m.registry.ListSubjects(ctx, includeDeleted)
}

// FilterSubjects returns the active subjects that pass every condition
// of the filter. The name condition is evaluated first; the version
// condition costs one registry call per remaining subject.
func (m *Manager) FilterSubjects(ctx context.Context, filter Filter) ([]string, error) {
	subjects, err := m.registry.ListSubjects(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("listing subjects: %w", err)
	}

	filtered := []string{}
	for _, subject := range subjects {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("filter aborted: %w", err)
		}

		if filter.Pattern != "" && !strings.Contains(subject, filter.Pattern) {
			continue
		}

		if filter.MinVersions > 0 {
			versions, err := m.registry.GetVersions(ctx, subject)
			if err != nil {
				m.logWarn("skipping subject in filter", err, map[string]interface{}{"subject": subject})
				continue
			}
			if len(versions) < filter.MinVersions {
				continue
			}
		}

		filtered = append(filtered, subject)
	}

	return filtered, nil
}

// SubjectDetails fetches the version list and latest schema of one
// subject. It never fails the call: transport errors produce a record
// with Error set, and a missing version list or latest schema simply
// leaves those fields empty.
func (m *Manager) SubjectDetails(ctx context.Context, subject string) *SubjectDetails {
	details := &SubjectDetails{Subject: subject}

	versions, err := m.registry.GetVersions(ctx, subject)
	if err != nil {
		if !isAPIError(err) {
			details.Error = err.Error()
			return details
		}
	} else {
		details.Versions = versions
		details.VersionCount = len(versions)
	}

	latest, err := m.registry.GetLatestVersion(ctx, subject)
	if err != nil {
		if !isAPIError(err) {
			details.Error = err.Error()
			return details
		}
		latest = &registry.Version{}
	}

	details.LatestVersion = latest.Version
	details.SchemaType = latest.Type()
	details.SizeKB = round2(float64(len(latest.Schema)) / 1024)
	details.ID = latest.ID

	return details
}

// SoftDelete marks every version of the subject deleted but
// recoverable. On success the result carries the deleted version
// numbers; any failure is reported in the result, not returned.
func (m *Manager) SoftDelete(ctx context.Context, subject string) *DeleteResult {
	versions, err := m.registry.DeleteSubject(ctx, subject, false)
	if err != nil {
		m.logWarn("soft delete failed", err, map[string]interface{}{"subject": subject})
		return failureResult(subject, err)
	}

	return &DeleteResult{
		Success:         true,
		Subject:         subject,
		DeletedVersions: versions,
		Message:         fmt.Sprintf("Soft-deleted %d versions", len(versions)),
	}
}

// HardDelete permanently deletes a subject. The registry requires a
// prior soft delete, so one is issued first; its outcome does not gate
// the permanent call, because a repeated soft delete of an
// already-deleted subject fails by design and the permanent delete is
// what matters. The stage result is attached to keep it visible.
func (m *Manager) HardDelete(ctx context.Context, subject string) *DeleteResult {
	stage := m.SoftDelete(ctx, subject)

	versions, err := m.registry.DeleteSubject(ctx, subject, true)
	if err != nil {
		m.logWarn("hard delete failed", err, map[string]interface{}{"subject": subject})
		result := failureResult(subject, err)
		result.SoftDelete = stage
		return result
	}

	return &DeleteResult{
		Success:         true,
		Subject:         subject,
		DeletedVersions: versions,
		Message:         fmt.Sprintf("Permanently deleted %d versions", len(versions)),
		SoftDelete:      stage,
	}
}

// DeleteVersion deletes a single version of a subject, independent of
// subject-level delete state.
func (m *Manager) DeleteVersion(ctx context.Context, subject string, version int) *DeleteResult {
	deleted, err := m.registry.DeleteVersion(ctx, subject, version)
	if err != nil {
		m.logWarn("version delete failed", err, map[string]interface{}{"subject": subject, "version": version})
		result := failureResult(subject, err)
		result.Version = version
		return result
	}

	return &DeleteResult{
		Success: true,
		Subject: subject,
		Version: deleted,
		Message: fmt.Sprintf("Deleted version %d", deleted),
	}
}

// BulkSoftDelete soft-deletes the given subjects sequentially. Every
// subject is attempted and accounted for; there is no rollback.
func (m *Manager) BulkSoftDelete(ctx context.Context, subjects []string) *BulkResult {
	return m.bulkDelete(ctx, subjects, m.SoftDelete)
}

// BulkHardDelete permanently deletes the given subjects sequentially.
// Every subject is attempted and accounted for; there is no rollback.
func (m *Manager) BulkHardDelete(ctx context.Context, subjects []string) *BulkResult {
	return m.bulkDelete(ctx, subjects, m.HardDelete)
}

func (m *Manager) bulkDelete(ctx context.Context, subjects []string, op func(context.Context, string) *DeleteResult) *BulkResult {
	result := &BulkResult{
		Total:      len(subjects),
		Successful: []*DeleteResult{},
		Failed:     []*DeleteResult{},
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}

	for _, subject := range subjects {
		res := op(ctx, subject)
		if res.Success {
			result.Successful = append(result.Successful, res)
		} else {
			result.Failed = append(result.Failed, res)
		}
	}

	result.SuccessCount = len(result.Successful)
	result.FailureCount = len(result.Failed)

	return result
}

// SoftDeleted returns the subjects currently in the soft-deleted
// state. The registry has no listing for those, so they are computed
// as the set difference between the full listing and the active
// listing, in full-listing order.
func (m *Manager) SoftDeleted(ctx context.Context) ([]string, error) {
	all, err := m.registry.ListSubjects(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("listing all subjects: %w", err)
	}

	active, err := m.registry.ListSubjects(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("listing active subjects: %w", err)
	}

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

	return softDeleted, nil
}

// PurgeSoftDeleted permanently deletes every subject currently in the
// soft-deleted state, delegating to BulkHardDelete. Running a purge
// twice with no intervening changes finds nothing the second time.
func (m *Manager) PurgeSoftDeleted(ctx context.Context) (*PurgeResult, error) {
	softDeleted, err := m.SoftDeleted(ctx)
	if err != nil {
		return nil, err
	}

	if len(softDeleted) == 0 {
		return &PurgeResult{Count: 0, Message: "No soft-deleted subjects found"}, nil
	}

	m.logInfo("purging soft-deleted subjects", nil, map[string]interface{}{"count": len(softDeleted)})

	return &PurgeResult{
		Count: len(softDeleted),
		Bulk:  m.BulkHardDelete(ctx, softDeleted),
	}, nil
}

func (m *Manager) logInfo(msg string, err error, fields map[string]interface{}) {
	if m.logger != nil {
		m.logger.Info(msg, err, fields)
	}
}

func (m *Manager) logWarn(msg string, err error, fields map[string]interface{}) {
	if m.logger != nil {
		m.logger.Warn(msg, err, fields)
	}
}

// failureResult converts a registry error into a failure record,
// keeping the HTTP status and body when the registry supplied them.
func failureResult(subject string, err error) *DeleteResult {
	result := &DeleteResult{Subject: subject}

	var apiErr *registry.APIError
	if errors.As(err, &apiErr) {
		result.Error = fmt.Sprintf("HTTP %d: %s", apiErr.StatusCode, apiErr.Body)
	} else {
		result.Error = err.Error()
	}

	return result
}

func isAPIError(err error) bool {
	var apiErr *registry.APIError
	return errors.As(err, &apiErr)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
