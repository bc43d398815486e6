// Package metrics provides Prometheus-based monitoring for the
// registry engine: API request counters and latency, subject deletion
// counts, and the status of the last audit scan, exposed on a
// dedicated /metrics endpoint.
//
// # Architecture
//
// This package follows the "accept interfaces, return structs" design pattern:
//   - MetricsCollector interface: Defines the contract for metrics operations
//   - Metrics struct: Concrete implementation of the MetricsCollector interface
//   - NewMetrics constructor: Returns *Metrics (concrete type)
//   - FX module: Provides *Metrics for dependency injection
//
// # Built-in Metrics
//
//   - requests_total{status} — API requests by response class (2xx/4xx/5xx)
//   - request_duration_seconds{endpoint} — API latency histogram
//   - subject_deletions_total{operation,outcome} — delete operations by
//     kind (soft_delete, hard_delete, delete_version, purge) and outcome
//   - audit_status{check} — status of the last audit per check
//     (0 OK, 1 WARNING, 2 CRITICAL, 3 ERROR); the aggregate is
//     published under check="overall"
//
// # Direct Usage (Without FX)
//
//	cfg := metrics.Config{
//		Address:                 ":9090",
//		EnableDefaultCollectors: true,
//	}
//
//	m := metrics.NewMetrics(cfg)
//	go m.Server.ListenAndServe()
//
//	m.RecordDeletion("soft_delete", "success")
//	defer m.RecordRequestDuration(time.Now(), "/api/check")
//
// # FX Module Integration
//
//	app := fx.New(
//		logger.FXModule,
//		metrics.FXModule,
//		fx.Provide(func() metrics.Config {
//			return metrics.Config{Address: ":9090", EnableDefaultCollectors: true}
//		}),
//	)
//
// # Configuration
//
// The metrics server can be configured via environment variables:
//
//	METRICS_ADDRESS=:9090                      # Port and address for /metrics endpoint
//	METRICS_ENABLE_DEFAULT_COLLECTORS=true     # Enable runtime and process metrics
//	METRICS_SERVICE_NAME=schemawarden          # Adds service label to all metrics
//
// # Custom Metrics
//
// Components can register additional metrics through the factories:
//
//	translations := m.CreateCounter(
//	    "schema_translations_total",
//	    "Total number of schema translations.",
//	    []string{"schema_type"},
//	)
//	translations.WithLabelValues("AVRO").Inc()
//
// # Thread Safety
//
// All methods on the Metrics struct and Prometheus collectors are safe
// for concurrent use by multiple goroutines.
package metrics
