package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewMetricsAppliesDefaults(t *testing.T) {
	m := NewMetrics(Config{})

	if m.Server.Addr != DefaultMetricsAddress {
		t.Errorf("address = %q, want %q", m.Server.Addr, DefaultMetricsAddress)
	}
	if m.Registry == nil {
		t.Fatal("expected a registry")
	}
}

func TestBuiltinMetricsRecord(t *testing.T) {
	m := NewMetrics(Config{Address: ":0"})

	m.IncrementRequests("2xx")
	m.IncrementRequests("2xx")
	m.RecordDeletion("soft_delete", "success")
	m.SetAuditStatus("overall", AuditStatusWarning)
	m.RecordRequestDuration(time.Now(), "/api/check")

	if got := testutil.ToFloat64(m.requestsTotal.WithLabelValues("2xx")); got != 2 {
		t.Errorf("requests_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.deletionsTotal.WithLabelValues("soft_delete", "success")); got != 1 {
		t.Errorf("subject_deletions_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.auditStatus.WithLabelValues("overall")); got != AuditStatusWarning {
		t.Errorf("audit_status = %v, want %v", got, AuditStatusWarning)
	}
	if got := testutil.CollectAndCount(m.requestDuration); got != 1 {
		t.Errorf("request_duration_seconds series = %d, want 1", got)
	}
}

func TestCreateCounterRegistersOnRegistry(t *testing.T) {
	m := NewMetrics(Config{})
	counter := m.CreateCounter("schema_translations_total", "Total number of schema translations.", []string{"schema_type"})
	counter.WithLabelValues("AVRO").Inc()

	count, err := testutil.GatherAndCount(m.Registry, "schema_translations_total")
	if err != nil {
		t.Fatalf("GatherAndCount: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 series, got %d", count)
	}
}
