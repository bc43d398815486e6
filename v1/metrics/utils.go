package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Status values for the audit_status gauge.
const (
	AuditStatusOK       = 0
	AuditStatusWarning  = 1
	AuditStatusCritical = 2
	AuditStatusError    = 3
)

// IncrementRequests increments the request counter with a given status label.
// Example: m.IncrementRequests("2xx")
func (m *Metrics) IncrementRequests(status string) {
	m.requestsTotal.WithLabelValues(status).Inc()
}

// RecordRequestDuration records the duration (in seconds) for a request endpoint.
// Example: defer m.RecordRequestDuration(time.Now(), "/api/check")
func (m *Metrics) RecordRequestDuration(start time.Time, endpoint string) {
	duration := time.Since(start).Seconds()
	m.requestDuration.WithLabelValues(endpoint).Observe(duration)
}

// RecordDeletion counts one delete operation.
// Example: m.RecordDeletion("soft_delete", "success")
func (m *Metrics) RecordDeletion(operation, outcome string) {
	m.deletionsTotal.WithLabelValues(operation, outcome).Inc()
}

// SetAuditStatus records the status of one audit check, using the
// AuditStatus* values. The aggregate goes under check="overall".
func (m *Metrics) SetAuditStatus(check string, status float64) {
	m.auditStatus.WithLabelValues(check).Set(status)
}

// CreateCounter creates a new CounterVec metric and registers it.
func (m *Metrics) CreateCounter(name, help string, labels []string) *prometheus.CounterVec {
	counter := createCounterVec(name, help, labels)
	m.Registry.MustRegister(counter)
	return counter
}

// CreateHistogram creates a new HistogramVec metric and registers it.
func (m *Metrics) CreateHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	hist := createHistogramVec(name, help, labels, buckets)
	m.Registry.MustRegister(hist)
	return hist
}

// CreateGauge creates a new GaugeVec metric and registers it.
func (m *Metrics) CreateGauge(name, help string, labels []string) *prometheus.GaugeVec {
	gauge := createGaugeVec(name, help, labels)
	m.Registry.MustRegister(gauge)
	return gauge
}

// createCounterVec defines a new CounterVec with standard options.
func createCounterVec(name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: name,
			Help: help,
		},
		labels,
	)
}

// createHistogramVec defines a new HistogramVec with configurable buckets.
func createHistogramVec(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    name,
			Help:    help,
			Buckets: buckets,
		},
		labels,
	)
}

// createGaugeVec defines a new GaugeVec with standard options.
func createGaugeVec(name, help string, labels []string) *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: name,
			Help: help,
		},
		labels,
	)
}
