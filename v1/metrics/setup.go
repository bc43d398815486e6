package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics encapsulates the Prometheus registry and HTTP server
// responsible for exposing application metrics.
type Metrics struct {
	// Server defines the HTTP server used to expose the /metrics endpoint.
	Server *http.Server

	// Registry is the Prometheus registry where all metrics are registered.
	// The process keeps its own isolated registry to prevent metric name collisions.
	Registry *prometheus.Registry

	// Core built-in metrics
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	deletionsTotal  *prometheus.CounterVec
	auditStatus     *prometheus.GaugeVec
}

// NewMetrics initializes and returns a new Metrics instance.
// It sets up a dedicated Prometheus registry, registers the built-in
// collectors, wraps all metrics with a constant `service` label, and
// creates an HTTP server exposing the /metrics endpoint.
//
// Built-in metrics:
//   - requests_total{status} — API requests by response class
//   - request_duration_seconds{endpoint} — API latency
//   - subject_deletions_total{operation,outcome} — delete operations
//   - audit_status{check} — last audit status per check
//     (0 OK, 1 WARNING, 2 CRITICAL, 3 ERROR)
//
// Example:
//
//	m := metrics.NewMetrics(metrics.Config{Address: ":9090"})
//	go m.Server.ListenAndServe()
//
// Access metrics at: http://localhost:9090/metrics
func NewMetrics(cfg Config) *Metrics {
	if cfg.Address == "" {
		cfg.Address = DefaultMetricsAddress
	}
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = DefaultServiceName
	}

	// An isolated registry avoids metric collisions when several
	// components run in the same process.
	registry := prometheus.NewRegistry()

	// All metrics emitted by this process automatically include the
	// label service="<serviceName>".
	wrappedRegistry := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": serviceName},
		registry,
	)

	m := &Metrics{
		Registry: registry,
	}

	m.requestsTotal = createCounterVec("requests_total", "Total number of processed API requests", []string{"status"})
	m.requestDuration = createHistogramVec("request_duration_seconds", "Duration of API requests in seconds", []string{"endpoint"}, prometheus.DefBuckets)
	m.deletionsTotal = createCounterVec("subject_deletions_total", "Total number of subject delete operations", []string{"operation", "outcome"})
	m.auditStatus = createGaugeVec("audit_status", "Status of the last audit per check: 0 OK, 1 WARNING, 2 CRITICAL, 3 ERROR", []string{"check"})

	wrappedRegistry.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.deletionsTotal,
		m.auditStatus,
	)

	// GoCollector: memory, goroutines, GC stats.
	// ProcessCollector: CPU, file descriptors, memory.
	// BuildInfoCollector: binary version/build info.
	if cfg.EnableDefaultCollectors {
		wrappedRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	m.Server = &http.Server{
		Addr:    cfg.Address,
		Handler: handler,
	}
	return m
}
