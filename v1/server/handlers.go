package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"gopkg.in/yaml.v3"

	"github.com/stackmill/schemawarden/v1/archive"
	"github.com/stackmill/schemawarden/v1/docs"
	"github.com/stackmill/schemawarden/v1/health"
	"github.com/stackmill/schemawarden/v1/lifecycle"
	"github.com/stackmill/schemawarden/v1/metrics"
	"github.com/stackmill/schemawarden/v1/notify"
	"github.com/stackmill/schemawarden/v1/oplog"
)

// handleHealth is the unauthenticated liveness endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   Version,
	})
}

// handleCheck runs the full audit and returns the report. The report
// itself always completes; per-check failures are data inside it.
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	report := s.auditor.AuditAll(ctx)

	entry := oplog.NewEntry(oplog.OpHealthCheck, "", true)
	entry.Detail = fmt.Sprintf("status %s", report.Summary.Status)
	entry.Actor = requestActor(r)
	s.appendOplog(ctx, entry)

	subjectCount := 0
	if check := report.Checks["subject_count"]; check != nil {
		subjectCount = check.Count
	}
	s.notifier.HealthCompleted(ctx, notify.HealthEvent{
		Status:       string(report.Summary.Status),
		Issues:       report.Summary.TotalIssues,
		Warnings:     report.Summary.TotalWarnings,
		SubjectCount: subjectCount,
	})

	if s.metrics != nil {
		for name, check := range report.Checks {
			s.metrics.SetAuditStatus(name, auditStatusValue(check.Status))
		}
		s.metrics.SetAuditStatus("overall", auditStatusValue(report.Summary.Status))
	}

	writeJSON(w, http.StatusOK, report)
}

// handleListSchemas lists subjects with per-subject details. Query
// parameters: include_deleted, min_versions, pattern. Details are
// fetched for the first maxDetailedSubjects subjects only;
// total_count always reflects the full match.
func (s *Server) handleListSchemas(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	includeDeleted := strings.EqualFold(query.Get("include_deleted"), "true")
	minVersions, _ := strconv.Atoi(query.Get("min_versions"))
	pattern := query.Get("pattern")

	var subjects []string
	var err error
	if minVersions > 0 || pattern != "" {
		subjects, err = s.manager.FilterSubjects(ctx, lifecycle.Filter{
			MinVersions: minVersions,
			Pattern:     pattern,
		})
	} else {
		subjects, err = s.manager.ListSubjects(ctx, includeDeleted)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	limit := len(subjects)
	if limit > maxDetailedSubjects {
		limit = maxDetailedSubjects
	}
	detailed := make([]*lifecycle.SubjectDetails, 0, limit)
	for _, subject := range subjects[:limit] {
		detailed = append(detailed, s.manager.SubjectDetails(ctx, subject))
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total_count":    len(subjects),
		"returned_count": len(detailed),
		"subjects":       detailed,
	})
}

// handleDeleteSubject deletes one subject; ?permanent=true makes the
// delete permanent. Failures are reported inside the result body, not
// as HTTP errors.
func (s *Server) handleDeleteSubject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	subject := mux.Vars(r)["subject"]
	permanent := r.URL.Query().Get("permanent") == "true"

	operation := oplog.OpSoftDelete
	var result *lifecycle.DeleteResult
	if permanent {
		operation = oplog.OpHardDelete
		result = s.manager.HardDelete(ctx, subject)
	} else {
		result = s.manager.SoftDelete(ctx, subject)
	}

	entry := oplog.NewEntry(operation, subject, result.Success)
	entry.Detail = result.Error
	entry.Actor = requestActor(r)
	s.appendOplog(ctx, entry)

	succeeded, failed := 0, 1
	if result.Success {
		succeeded, failed = 1, 0
	}
	s.notifier.SubjectsDeleted(ctx, notify.DeletionEvent{
		Operation: operation,
		Subjects:  []string{subject},
		Succeeded: succeeded,
		Failed:    failed,
	})
	if s.metrics != nil {
		s.metrics.RecordDeletion(operation, outcomeLabel(result.Success))
	}

	writeJSON(w, http.StatusOK, result)
}

type bulkDeleteRequest struct {
	Subjects  []string `json:"subjects"`
	Permanent bool     `json:"permanent"`
}

// handleBulkDelete deletes a list of subjects with full accounting.
func (s *Server) handleBulkDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req bulkDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if len(req.Subjects) == 0 {
		writeError(w, http.StatusBadRequest, errors.New("no subjects provided"))
		return
	}

	operation := oplog.OpSoftDelete
	var result *lifecycle.BulkResult
	if req.Permanent {
		operation = oplog.OpHardDelete
		result = s.manager.BulkHardDelete(ctx, req.Subjects)
	} else {
		result = s.manager.BulkSoftDelete(ctx, req.Subjects)
	}

	entry := oplog.NewEntry(oplog.OpBulkDelete, "", result.FailureCount == 0)
	entry.Detail = fmt.Sprintf("%d of %d subjects deleted", result.SuccessCount, result.Total)
	entry.Actor = requestActor(r)
	s.appendOplog(ctx, entry)

	s.notifier.SubjectsDeleted(ctx, notify.DeletionEvent{
		Operation: oplog.OpBulkDelete,
		Subjects:  req.Subjects,
		Succeeded: result.SuccessCount,
		Failed:    result.FailureCount,
	})
	if s.metrics != nil {
		for range result.Successful {
			s.metrics.RecordDeletion(operation, "success")
		}
		for range result.Failed {
			s.metrics.RecordDeletion(operation, "failure")
		}
	}

	writeJSON(w, http.StatusOK, result)
}

// handlePurge permanently removes every soft-deleted subject.
func (s *Server) handlePurge(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := s.manager.PurgeSoftDeleted(ctx)
	if err != nil {
		entry := oplog.NewEntry(oplog.OpPurge, "", false)
		entry.Detail = err.Error()
		entry.Actor = requestActor(r)
		s.appendOplog(ctx, entry)

		writeError(w, http.StatusInternalServerError, err)
		return
	}

	succeeded, failed := 0, 0
	var subjects []string
	if result.Bulk != nil {
		succeeded = result.Bulk.SuccessCount
		failed = result.Bulk.FailureCount
		for _, deletion := range result.Bulk.Successful {
			subjects = append(subjects, deletion.Subject)
		}
		for _, deletion := range result.Bulk.Failed {
			subjects = append(subjects, deletion.Subject)
		}
	}

	entry := oplog.NewEntry(oplog.OpPurge, "", failed == 0)
	entry.Detail = fmt.Sprintf("%d soft-deleted subjects, %d purged", result.Count, succeeded)
	entry.Actor = requestActor(r)
	s.appendOplog(ctx, entry)

	s.notifier.SubjectsDeleted(ctx, notify.DeletionEvent{
		Operation: oplog.OpPurge,
		Subjects:  subjects,
		Succeeded: succeeded,
		Failed:    failed,
	})
	if s.metrics != nil {
		for i := 0; i < succeeded; i++ {
			s.metrics.RecordDeletion(oplog.OpPurge, "success")
		}
		for i := 0; i < failed; i++ {
			s.metrics.RecordDeletion(oplog.OpPurge, "failure")
		}
	}

	writeJSON(w, http.StatusOK, result)
}

type topicSummary struct {
	Name           string `json:"name"`
	Partitions     int    `json:"partitions,omitempty"`
	SchemasCount   int    `json:"schemas_count"`
	HasValueSchema bool   `json:"has_value_schema"`
	HasKeySchema   bool   `json:"has_key_schema"`
}

// handleTopics lists the topics implied by subject naming conventions,
// with partition counts when a broker collaborator is configured.
func (s *Server) handleTopics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	inventory, err := s.generator.TopicInventory(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	topics := make([]topicSummary, 0, len(inventory))
	for _, entry := range inventory {
		summary := topicSummary{
			Name:         entry.Topic,
			SchemasCount: len(entry.Subjects),
		}
		for _, subject := range entry.Subjects {
			if strings.HasSuffix(subject, "-value") {
				summary.HasValueSchema = true
			}
			if strings.HasSuffix(subject, "-key") {
				summary.HasKeySchema = true
			}
		}
		if s.metadata != nil {
			if info, err := s.metadata.TopicInfo(ctx, entry.Topic); err == nil {
				summary.Partitions = info.Partitions
			}
		}
		topics = append(topics, summary)
	}

	sort.Slice(topics, func(i, j int) bool { return topics[i].Name < topics[j].Name })

	writeJSON(w, http.StatusOK, map[string]interface{}{"topics": topics})
}

// handleGenerate documents a topic, renders it as AsyncAPI YAML and
// stores the document in the archive.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	topic := mux.Vars(r)["topic"]

	doc, err := s.generator.DocumentTopic(ctx, topic)
	if err != nil {
		status := http.StatusInternalServerError
		if docs.IsNoSchemas(err) {
			status = http.StatusNotFound
		}
		entry := oplog.NewEntry(oplog.OpDocsGenerate, topic, false)
		entry.Detail = err.Error()
		entry.Actor = requestActor(r)
		s.appendOplog(ctx, entry)

		writeError(w, status, err)
		return
	}

	rendered, err := docs.RenderAsyncAPI(doc)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	key, err := s.archive.Put(ctx, topic, rendered)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	entry := oplog.NewEntry(oplog.OpDocsGenerate, topic, true)
	entry.Detail = key
	entry.Actor = requestActor(r)
	s.appendOplog(ctx, entry)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"topic":         topic,
		"spec":          string(rendered),
		"key":           key,
		"schemas_count": len(doc.Subjects),
	})
}

type specSummary struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Version  string `json:"version"`
	Channels int    `json:"channels"`
	Size     int64  `json:"size"`
	Created  string `json:"created"`
}

// specHead is the subset of an AsyncAPI document the listing shows.
type specHead struct {
	Info struct {
		Title   string `yaml:"title"`
		Version string `yaml:"version"`
	} `yaml:"info"`
	Channels map[string]interface{} `yaml:"channels"`
}

// handleListSpecs lists archived documents, most recent first.
func (s *Server) handleListSpecs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	entries, err := s.archive.List(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	specs := make([]specSummary, 0, len(entries))
	for _, entry := range entries {
		summary := specSummary{
			Name:    entry.Name,
			Title:   "Unknown",
			Version: "1.0.0",
			Size:    entry.Size,
			Created: entry.ModTime.UTC().Format(time.RFC3339),
		}
		if data, err := s.archive.Get(ctx, entry.Name); err == nil {
			var head specHead
			if yaml.Unmarshal(data, &head) == nil {
				if head.Info.Title != "" {
					summary.Title = head.Info.Title
				}
				if head.Info.Version != "" {
					summary.Version = head.Info.Version
				}
				summary.Channels = len(head.Channels)
			}
		}
		specs = append(specs, summary)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(specs),
		"specs": specs,
	})
}

// handleGetSpec returns one archived document, as parsed JSON by
// default or as raw YAML with ?format=yaml.
func (s *Server) handleGetSpec(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := mux.Vars(r)["name"]

	data, err := s.archive.Get(ctx, name)
	if err != nil {
		if archive.IsNotFound(err) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Spec not found"})
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	if r.URL.Query().Get("format") == "yaml" {
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(data)
		return
	}

	var spec map[string]interface{}
	if err := yaml.Unmarshal(data, &spec); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, spec)
}

// handleHistory returns recent operation log entries, newest first.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}

	var entries []oplog.Entry
	if s.store != nil {
		var err error
		entries, err = s.store.Recent(ctx, limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
	}
	if entries == nil {
		entries = []oplog.Entry{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total":   len(entries),
		"history": entries,
	})
}

// appendOplog records an entry when a store is configured. Recording
// failures are logged and dropped; they never fail the request.
func (s *Server) appendOplog(ctx context.Context, entry oplog.Entry) {
	if s.store == nil {
		return
	}
	if err := s.store.Append(ctx, entry); err != nil {
		s.logError("appending operation log entry failed", err, map[string]interface{}{
			"operation": entry.Operation,
		})
	}
}

func requestActor(r *http.Request) string {
	if user, _, ok := r.BasicAuth(); ok && user != "" {
		return user
	}
	return "unknown"
}

func outcomeLabel(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}

func auditStatusValue(status health.Status) float64 {
	switch status {
	case health.StatusOK:
		return metrics.AuditStatusOK
	case health.StatusWarning:
		return metrics.AuditStatusWarning
	case health.StatusCritical:
		return metrics.AuditStatusCritical
	default:
		return metrics.AuditStatusError
	}
}
