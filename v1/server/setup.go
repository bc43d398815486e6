package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/stackmill/schemawarden/v1/archive"
	"github.com/stackmill/schemawarden/v1/docs"
	"github.com/stackmill/schemawarden/v1/health"
	"github.com/stackmill/schemawarden/v1/lifecycle"
	"github.com/stackmill/schemawarden/v1/metrics"
	"github.com/stackmill/schemawarden/v1/notify"
	"github.com/stackmill/schemawarden/v1/oplog"
	"github.com/stackmill/schemawarden/v1/tracer"
)

// Dependencies collects the collaborators the server exposes over HTTP.
// Auditor, Manager, Generator and Archive are required; the rest are
// optional and the corresponding behavior degrades when absent.
type Dependencies struct {
	Auditor   *health.Auditor
	Manager   *lifecycle.Manager
	Generator *docs.Generator
	Archive   archive.Archive

	// Metadata supplies broker-side topic information for the topic
	// listing. Nil leaves partition counts out.
	Metadata docs.TopicMetadata

	// Store receives an operation log entry for every mutating request.
	// Nil disables the history endpoint and the recording.
	Store oplog.Store

	// Notifier is told about completed audits and deletions. Nil falls
	// back to the no-op notifier.
	Notifier notify.Notifier

	// Metrics records request counts and durations. Nil disables the
	// request metrics middleware.
	Metrics *metrics.Metrics

	// Tracer creates a span per handled request. Nil disables tracing.
	Tracer *tracer.Tracer

	Logger Logger
}

// Server is the HTTP administration surface of the engine. It exposes
// the auditor, the lifecycle manager, the docs generator and the
// archive as a JSON API with basic-auth protected routes.
type Server struct {
	cfg       Config
	auditor   *health.Auditor
	manager   *lifecycle.Manager
	generator *docs.Generator
	archive   archive.Archive
	metadata  docs.TopicMetadata
	store     oplog.Store
	notifier  notify.Notifier
	metrics   *metrics.Metrics
	tracer    *tracer.Tracer
	logger    Logger

	httpServer *http.Server
}

// NewServer creates the administration server. Only construction
// happens here; ListenAndServe starts serving.
func NewServer(cfg Config, deps Dependencies) (*Server, error) {
	if deps.Auditor == nil {
		return nil, errors.New("auditor is required")
	}
	if deps.Manager == nil {
		return nil, errors.New("lifecycle manager is required")
	}
	if deps.Generator == nil {
		return nil, errors.New("docs generator is required")
	}
	if deps.Archive == nil {
		return nil, errors.New("archive is required")
	}
	if deps.Notifier == nil {
		deps.Notifier = notify.NopNotifier{}
	}
	if cfg.Address == "" {
		cfg.Address = DefaultAddress
	}

	s := &Server{
		cfg:       cfg,
		auditor:   deps.Auditor,
		manager:   deps.Manager,
		generator: deps.Generator,
		archive:   deps.Archive,
		metadata:  deps.Metadata,
		store:     deps.Store,
		notifier:  deps.Notifier,
		metrics:   deps.Metrics,
		tracer:    deps.Tracer,
		logger:    deps.Logger,
	}

	if cfg.Username == "" && cfg.Password == "" {
		s.logWarn("administration API authentication is disabled", nil, nil)
	}

	s.httpServer = &http.Server{
		Addr:    cfg.Address,
		Handler: s.routes(),
	}

	return s, nil
}

func (s *Server) routes() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.Use(s.requestLogging, s.requestMetrics, s.tracing)

	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.Use(s.basicAuth)
	api.HandleFunc("/check", s.handleCheck).Methods(http.MethodPost)
	api.HandleFunc("/schemas", s.handleListSchemas).Methods(http.MethodGet)
	api.HandleFunc("/schemas/bulk-delete", s.handleBulkDelete).Methods(http.MethodPost)
	api.HandleFunc("/schemas/purge", s.handlePurge).Methods(http.MethodPost)
	api.HandleFunc("/schemas/{subject}", s.handleDeleteSubject).Methods(http.MethodDelete)
	api.HandleFunc("/topics", s.handleTopics).Methods(http.MethodGet)
	api.HandleFunc("/asyncapi/generate/{topic}", s.handleGenerate).Methods(http.MethodPost)
	api.HandleFunc("/asyncapi/specs", s.handleListSpecs).Methods(http.MethodGet)
	api.HandleFunc("/asyncapi/specs/{name}", s.handleGetSpec).Methods(http.MethodGet)
	api.HandleFunc("/history", s.handleHistory).Methods(http.MethodGet)

	return router
}

// Handler returns the configured route handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Address returns the listen address.
func (s *Server) Address() string {
	return s.httpServer.Addr
}

// ListenAndServe serves the API until Shutdown is called. It always
// returns a non-nil error; after Shutdown the error is
// http.ErrServerClosed.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests
// up to the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) logInfo(msg string, err error, fields map[string]interface{}) {
	if s.logger != nil {
		s.logger.Info(msg, err, fields)
	}
}

func (s *Server) logWarn(msg string, err error, fields map[string]interface{}) {
	if s.logger != nil {
		s.logger.Warn(msg, err, fields)
	}
}

func (s *Server) logError(msg string, err error, fields map[string]interface{}) {
	if s.logger != nil {
		s.logger.Error(msg, err, fields)
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
