package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stackmill/schemawarden/v1/archive"
	"github.com/stackmill/schemawarden/v1/docs"
	"github.com/stackmill/schemawarden/v1/health"
	"github.com/stackmill/schemawarden/v1/lifecycle"
	"github.com/stackmill/schemawarden/v1/notify"
	"github.com/stackmill/schemawarden/v1/oplog"
	"github.com/stackmill/schemawarden/v1/registry"
)

const (
	testUser = "admin"
	testPass = "swordfish"
)

// subjectState is one subject's mutable state inside the fake registry.
type subjectState struct {
	name        string
	versions    []int
	schema      string
	softDeleted bool
}

// fakeRegistry serves the registry REST surface the server's
// collaborators touch, mutating subject state the way the real
// registry would.
type fakeRegistry struct {
	subjects []*subjectState
}

func (f *fakeRegistry) find(name string) *subjectState {
	for _, s := range f.subjects {
		if s.name == name {
			return s
		}
	}
	return nil
}

func (f *fakeRegistry) remove(name string) {
	for i, s := range f.subjects {
		if s.name == name {
			f.subjects = append(f.subjects[:i], f.subjects[i+1:]...)
			return
		}
	}
}

func registryNotFound(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"error_code":40401,"message":"Subject not found."}`))
}

func (f *fakeRegistry) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		switch {
		case r.Method == http.MethodGet && path == "/subjects":
			includeDeleted := r.URL.Query().Get("deleted") == "true"
			names := []string{}
			for _, s := range f.subjects {
				if includeDeleted || !s.softDeleted {
					names = append(names, s.name)
				}
			}
			json.NewEncoder(w).Encode(names)

		case r.Method == http.MethodGet && path == "/config":
			json.NewEncoder(w).Encode(map[string]string{"compatibilityLevel": "BACKWARD"})

		case r.Method == http.MethodGet && strings.HasPrefix(path, "/config/"):
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error_code":40408,"message":"no override"}`))

		case r.Method == http.MethodGet && strings.HasSuffix(path, "/versions/latest"):
			name := strings.TrimSuffix(strings.TrimPrefix(path, "/subjects/"), "/versions/latest")
			s := f.find(name)
			if s == nil || s.softDeleted {
				registryNotFound(w)
				return
			}
			latest := s.versions[len(s.versions)-1]
			json.NewEncoder(w).Encode(map[string]interface{}{
				"subject": s.name, "id": 100 + latest, "version": latest, "schema": s.schema,
			})

		case r.Method == http.MethodGet && strings.HasSuffix(path, "/versions"):
			name := strings.TrimSuffix(strings.TrimPrefix(path, "/subjects/"), "/versions")
			s := f.find(name)
			if s == nil || s.softDeleted {
				registryNotFound(w)
				return
			}
			json.NewEncoder(w).Encode(s.versions)

		case r.Method == http.MethodDelete && strings.HasPrefix(path, "/subjects/"):
			name := strings.TrimPrefix(path, "/subjects/")
			s := f.find(name)
			if s == nil {
				registryNotFound(w)
				return
			}
			if r.URL.Query().Get("permanent") == "true" {
				if !s.softDeleted {
					w.WriteHeader(http.StatusNotFound)
					w.Write([]byte(`{"error_code":40405,"message":"Subject was not deleted first."}`))
					return
				}
				f.remove(name)
				json.NewEncoder(w).Encode(s.versions)
				return
			}
			if s.softDeleted {
				registryNotFound(w)
				return
			}
			s.softDeleted = true
			json.NewEncoder(w).Encode(s.versions)

		default:
			registryNotFound(w)
		}
	}
}

func threeSubjects() *fakeRegistry {
	return &fakeRegistry{subjects: []*subjectState{
		{name: "orders-value", versions: []int{1, 2, 3},
			schema: `{"type":"record","name":"Order","fields":[{"name":"id","type":"string"},{"name":"amount","type":"double"}]}`},
		{name: "orders-key", versions: []int{1}, schema: `{"type":"string"}`},
		{name: "users-value", versions: []int{1, 2},
			schema: `{"type":"record","name":"User","fields":[{"name":"name","type":"string"}]}`},
	}}
}

// recordingNotifier captures published events for assertions.
type recordingNotifier struct {
	healthEvents []notify.HealthEvent
	deletions    []notify.DeletionEvent
}

func (n *recordingNotifier) HealthCompleted(ctx context.Context, event notify.HealthEvent) {
	n.healthEvents = append(n.healthEvents, event)
}

func (n *recordingNotifier) SubjectsDeleted(ctx context.Context, event notify.DeletionEvent) {
	n.deletions = append(n.deletions, event)
}

func newTestServer(t *testing.T, cfg Config, fake *fakeRegistry) (*Server, oplog.Store, *recordingNotifier) {
	t.Helper()

	backend := httptest.NewServer(fake.handler())
	t.Cleanup(backend.Close)

	client, err := registry.NewClient(registry.Config{URL: backend.URL})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	auditor, err := health.NewAuditor(client, health.Config{Endpoint: backend.URL})
	if err != nil {
		t.Fatalf("NewAuditor failed: %v", err)
	}
	manager, err := lifecycle.NewManager(client, nil)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	generator, err := docs.NewGenerator(client, nil, nil)
	if err != nil {
		t.Fatalf("NewGenerator failed: %v", err)
	}
	specs, err := archive.NewLocalArchive(archive.LocalConfig{Dir: t.TempDir()}, nil)
	if err != nil {
		t.Fatalf("NewLocalArchive failed: %v", err)
	}

	history := oplog.NewMemoryStore(64)
	notifier := &recordingNotifier{}

	srv, err := NewServer(cfg, Dependencies{
		Auditor:   auditor,
		Manager:   manager,
		Generator: generator,
		Archive:   specs,
		Store:     history,
		Notifier:  notifier,
	})
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return srv, history, notifier
}

func protectedConfig() Config {
	return Config{Username: testUser, Password: testPass}
}

func doRequest(t *testing.T, s *Server, method, target, body string, authenticate bool) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if authenticate {
		req.SetBasicAuth(testUser, testPass)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response body %q: %v", rec.Body.String(), err)
	}
	return body
}

func recentEntries(t *testing.T, store oplog.Store) []oplog.Entry {
	t.Helper()

	entries, err := store.Recent(context.Background(), 0)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	return entries
}

func TestHealthEndpointUnauthenticated(t *testing.T) {
	srv, _, _ := newTestServer(t, protectedConfig(), threeSubjects())

	rec := doRequest(t, srv, http.MethodGet, "/health", "", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	body := decodeBody(t, rec)
	if body["status"] != "healthy" {
		t.Errorf("status = %v, want healthy", body["status"])
	}
	if body["version"] != Version {
		t.Errorf("version = %v, want %s", body["version"], Version)
	}
}

func TestAPIRequiresAuth(t *testing.T) {
	srv, _, _ := newTestServer(t, protectedConfig(), threeSubjects())

	rec := doRequest(t, srv, http.MethodGet, "/api/schemas", "", false)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if got := rec.Header().Get("WWW-Authenticate"); got != `Basic realm="Login Required"` {
		t.Errorf("WWW-Authenticate = %q", got)
	}
	if body := decodeBody(t, rec); body["error"] != "Authentication required" {
		t.Errorf("error = %v", body["error"])
	}
}

func TestAPIRejectsWrongPassword(t *testing.T) {
	srv, _, _ := newTestServer(t, protectedConfig(), threeSubjects())

	req := httptest.NewRequest(http.MethodGet, "/api/schemas", nil)
	req.SetBasicAuth(testUser, "not-the-password")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAuthDisabledWhenUnconfigured(t *testing.T) {
	srv, _, _ := newTestServer(t, Config{}, threeSubjects())

	rec := doRequest(t, srv, http.MethodGet, "/api/schemas", "", false)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestListSchemas(t *testing.T) {
	srv, _, _ := newTestServer(t, protectedConfig(), threeSubjects())

	rec := doRequest(t, srv, http.MethodGet, "/api/schemas", "", true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	if body["total_count"].(float64) != 3 {
		t.Errorf("total_count = %v, want 3", body["total_count"])
	}
	if body["returned_count"].(float64) != 3 {
		t.Errorf("returned_count = %v, want 3", body["returned_count"])
	}

	subjects := body["subjects"].([]interface{})
	first := subjects[0].(map[string]interface{})
	if first["subject"] != "orders-value" {
		t.Errorf("first subject = %v, want orders-value", first["subject"])
	}
	if first["version_count"].(float64) != 3 {
		t.Errorf("version_count = %v, want 3", first["version_count"])
	}
}

func TestListSchemasPatternFilter(t *testing.T) {
	srv, _, _ := newTestServer(t, protectedConfig(), threeSubjects())

	rec := doRequest(t, srv, http.MethodGet, "/api/schemas?pattern=orders", "", true)
	body := decodeBody(t, rec)

	if body["total_count"].(float64) != 2 {
		t.Errorf("total_count = %v, want 2", body["total_count"])
	}
}

func TestListSchemasIncludeDeleted(t *testing.T) {
	fake := threeSubjects()
	fake.find("users-value").softDeleted = true
	srv, _, _ := newTestServer(t, protectedConfig(), fake)

	rec := doRequest(t, srv, http.MethodGet, "/api/schemas", "", true)
	if got := decodeBody(t, rec)["total_count"].(float64); got != 2 {
		t.Errorf("active total_count = %v, want 2", got)
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/schemas?include_deleted=true", "", true)
	if got := decodeBody(t, rec)["total_count"].(float64); got != 3 {
		t.Errorf("total_count with deleted = %v, want 3", got)
	}
}

func TestDeleteSubjectSoft(t *testing.T) {
	fake := threeSubjects()
	srv, history, notifier := newTestServer(t, protectedConfig(), fake)

	rec := doRequest(t, srv, http.MethodDelete, "/api/schemas/users-value", "", true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	if body["success"] != true {
		t.Fatalf("success = %v, want true: %s", body["success"], rec.Body.String())
	}
	if !fake.find("users-value").softDeleted {
		t.Error("expected the subject to be soft-deleted in the registry")
	}

	entries := recentEntries(t, history)
	if len(entries) != 1 {
		t.Fatalf("expected 1 oplog entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.Operation != oplog.OpSoftDelete || entry.Subject != "users-value" {
		t.Errorf("entry = %s %s, want soft_delete users-value", entry.Operation, entry.Subject)
	}
	if entry.Status != oplog.StatusSuccess {
		t.Errorf("entry status = %s, want success", entry.Status)
	}
	if entry.Actor != testUser {
		t.Errorf("entry actor = %s, want %s", entry.Actor, testUser)
	}

	if len(notifier.deletions) != 1 {
		t.Fatalf("expected 1 deletion event, got %d", len(notifier.deletions))
	}
	event := notifier.deletions[0]
	if event.Operation != oplog.OpSoftDelete || event.Succeeded != 1 || event.Failed != 0 {
		t.Errorf("event = %+v", event)
	}
}

func TestDeleteSubjectPermanent(t *testing.T) {
	fake := threeSubjects()
	srv, _, _ := newTestServer(t, protectedConfig(), fake)

	rec := doRequest(t, srv, http.MethodDelete, "/api/schemas/orders-key?permanent=true", "", true)
	body := decodeBody(t, rec)

	if body["success"] != true {
		t.Fatalf("success = %v: %s", body["success"], rec.Body.String())
	}
	if fake.find("orders-key") != nil {
		t.Error("expected the subject to be removed from the registry")
	}
}

func TestDeleteUnknownSubjectReportsFailureAsData(t *testing.T) {
	srv, history, _ := newTestServer(t, protectedConfig(), threeSubjects())

	rec := doRequest(t, srv, http.MethodDelete, "/api/schemas/missing-value", "", true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	body := decodeBody(t, rec)
	if body["success"] != false {
		t.Errorf("success = %v, want false", body["success"])
	}
	if body["error"] == nil || body["error"] == "" {
		t.Error("expected an error message in the result")
	}

	entries := recentEntries(t, history)
	if len(entries) != 1 || entries[0].Status != oplog.StatusFailure {
		t.Errorf("expected a failure oplog entry, got %+v", entries)
	}
}

func TestBulkDelete(t *testing.T) {
	srv, history, notifier := newTestServer(t, protectedConfig(), threeSubjects())

	rec := doRequest(t, srv, http.MethodPost, "/api/schemas/bulk-delete",
		`{"subjects":["orders-value","missing-value"]}`, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	if body["total"].(float64) != 2 {
		t.Errorf("total = %v, want 2", body["total"])
	}
	if body["success_count"].(float64) != 1 {
		t.Errorf("success_count = %v, want 1", body["success_count"])
	}
	if body["failure_count"].(float64) != 1 {
		t.Errorf("failure_count = %v, want 1", body["failure_count"])
	}

	entries := recentEntries(t, history)
	if len(entries) != 1 || entries[0].Operation != oplog.OpBulkDelete {
		t.Fatalf("expected a bulk_delete oplog entry, got %+v", entries)
	}
	if entries[0].Detail != "1 of 2 subjects deleted" {
		t.Errorf("detail = %q", entries[0].Detail)
	}

	if len(notifier.deletions) != 1 || notifier.deletions[0].Operation != oplog.OpBulkDelete {
		t.Errorf("deletion events = %+v", notifier.deletions)
	}
}

func TestBulkDeleteRejectsEmptyList(t *testing.T) {
	srv, _, _ := newTestServer(t, protectedConfig(), threeSubjects())

	rec := doRequest(t, srv, http.MethodPost, "/api/schemas/bulk-delete", `{"subjects":[]}`, true)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestPurge(t *testing.T) {
	fake := threeSubjects()
	fake.find("users-value").softDeleted = true
	srv, history, notifier := newTestServer(t, protectedConfig(), fake)

	rec := doRequest(t, srv, http.MethodPost, "/api/schemas/purge", "", true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	if body["count"].(float64) != 1 {
		t.Errorf("count = %v, want 1", body["count"])
	}
	if fake.find("users-value") != nil {
		t.Error("expected the soft-deleted subject to be purged")
	}

	entries := recentEntries(t, history)
	if len(entries) != 1 || entries[0].Operation != oplog.OpPurge {
		t.Fatalf("expected a purge oplog entry, got %+v", entries)
	}

	if len(notifier.deletions) != 1 {
		t.Fatalf("expected 1 deletion event, got %d", len(notifier.deletions))
	}
	event := notifier.deletions[0]
	if event.Operation != oplog.OpPurge || event.Succeeded != 1 || event.Failed != 0 {
		t.Errorf("event = %+v", event)
	}
	if len(event.Subjects) != 1 || event.Subjects[0] != "users-value" {
		t.Errorf("event subjects = %v", event.Subjects)
	}
}

func TestCheckRunsAudit(t *testing.T) {
	srv, history, notifier := newTestServer(t, protectedConfig(), threeSubjects())

	rec := doRequest(t, srv, http.MethodPost, "/api/check", "", true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	checks := body["checks"].(map[string]interface{})
	connectivity := checks["connectivity"].(map[string]interface{})
	if connectivity["status"] != "OK" {
		t.Errorf("connectivity status = %v, want OK", connectivity["status"])
	}
	summary := body["summary"].(map[string]interface{})
	if summary["status"] != "OK" {
		t.Errorf("summary status = %v, want OK", summary["status"])
	}

	entries := recentEntries(t, history)
	if len(entries) != 1 || entries[0].Operation != oplog.OpHealthCheck {
		t.Fatalf("expected a health_check oplog entry, got %+v", entries)
	}

	if len(notifier.healthEvents) != 1 {
		t.Fatalf("expected 1 health event, got %d", len(notifier.healthEvents))
	}
	event := notifier.healthEvents[0]
	if event.Status != "OK" || event.SubjectCount != 3 {
		t.Errorf("event = %+v", event)
	}
}

func TestTopics(t *testing.T) {
	srv, _, _ := newTestServer(t, protectedConfig(), threeSubjects())

	rec := doRequest(t, srv, http.MethodGet, "/api/topics", "", true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	topics := body["topics"].([]interface{})
	if len(topics) != 2 {
		t.Fatalf("topics = %v, want 2 entries", topics)
	}

	orders := topics[0].(map[string]interface{})
	if orders["name"] != "orders" {
		t.Errorf("first topic = %v, want orders", orders["name"])
	}
	if orders["schemas_count"].(float64) != 2 {
		t.Errorf("orders schemas_count = %v, want 2", orders["schemas_count"])
	}
	if orders["has_value_schema"] != true || orders["has_key_schema"] != true {
		t.Errorf("orders schema flags = %v/%v", orders["has_value_schema"], orders["has_key_schema"])
	}

	users := topics[1].(map[string]interface{})
	if users["name"] != "users" || users["has_key_schema"] != false {
		t.Errorf("second topic = %+v", users)
	}
}

func TestGenerateStoresSpec(t *testing.T) {
	srv, history, _ := newTestServer(t, protectedConfig(), threeSubjects())

	rec := doRequest(t, srv, http.MethodPost, "/api/asyncapi/generate/orders", "", true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	if body["success"] != true {
		t.Fatalf("success = %v", body["success"])
	}
	if body["key"] != "orders.yaml" {
		t.Errorf("key = %v, want orders.yaml", body["key"])
	}
	if body["schemas_count"].(float64) != 2 {
		t.Errorf("schemas_count = %v, want 2", body["schemas_count"])
	}
	spec := body["spec"].(string)
	if !strings.Contains(spec, "asyncapi:") || !strings.Contains(spec, "orders-value") {
		t.Errorf("unexpected spec content: %.200s", spec)
	}

	entries := recentEntries(t, history)
	if len(entries) != 1 || entries[0].Operation != oplog.OpDocsGenerate {
		t.Fatalf("expected a docs_generate oplog entry, got %+v", entries)
	}
	if entries[0].Detail != "orders.yaml" {
		t.Errorf("entry detail = %q, want orders.yaml", entries[0].Detail)
	}
}

func TestGenerateUnknownTopic(t *testing.T) {
	srv, _, _ := newTestServer(t, protectedConfig(), threeSubjects())

	rec := doRequest(t, srv, http.MethodPost, "/api/asyncapi/generate/nothere", "", true)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404: %s", rec.Code, rec.Body.String())
	}
}

func TestListAndGetSpecs(t *testing.T) {
	srv, _, _ := newTestServer(t, protectedConfig(), threeSubjects())

	doRequest(t, srv, http.MethodPost, "/api/asyncapi/generate/orders", "", true)

	rec := doRequest(t, srv, http.MethodGet, "/api/asyncapi/specs", "", true)
	body := decodeBody(t, rec)
	if body["count"].(float64) != 1 {
		t.Fatalf("count = %v, want 1: %s", body["count"], rec.Body.String())
	}
	listed := body["specs"].([]interface{})[0].(map[string]interface{})
	if listed["name"] != "orders.yaml" {
		t.Errorf("name = %v, want orders.yaml", listed["name"])
	}
	if listed["title"] != "orders API" {
		t.Errorf("title = %v, want orders API", listed["title"])
	}
	if listed["channels"].(float64) != 1 {
		t.Errorf("channels = %v, want 1", listed["channels"])
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/asyncapi/specs/orders.yaml?format=yaml", "", true)
	if rec.Code != http.StatusOK {
		t.Fatalf("yaml fetch status = %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "text/yaml" {
		t.Errorf("Content-Type = %q, want text/yaml", got)
	}
	if !strings.Contains(rec.Body.String(), "asyncapi:") {
		t.Error("expected raw YAML content")
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/asyncapi/specs/orders.yaml", "", true)
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", got)
	}
	parsed := decodeBody(t, rec)
	if parsed["asyncapi"] != "3.0.0" {
		t.Errorf("asyncapi = %v, want 3.0.0", parsed["asyncapi"])
	}
}

func TestGetSpecNotFound(t *testing.T) {
	srv, _, _ := newTestServer(t, protectedConfig(), threeSubjects())

	rec := doRequest(t, srv, http.MethodGet, "/api/asyncapi/specs/nothere.yaml", "", true)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "Spec not found" {
		t.Errorf("error = %v", body["error"])
	}
}

func TestHistoryNewestFirst(t *testing.T) {
	srv, _, _ := newTestServer(t, protectedConfig(), threeSubjects())

	doRequest(t, srv, http.MethodDelete, "/api/schemas/orders-key", "", true)
	doRequest(t, srv, http.MethodDelete, "/api/schemas/users-value", "", true)

	rec := doRequest(t, srv, http.MethodGet, "/api/history", "", true)
	body := decodeBody(t, rec)
	if body["total"].(float64) != 2 {
		t.Fatalf("total = %v, want 2", body["total"])
	}

	entries := body["history"].([]interface{})
	newest := entries[0].(map[string]interface{})
	if newest["subject"] != "users-value" {
		t.Errorf("newest entry subject = %v, want users-value", newest["subject"])
	}
}
