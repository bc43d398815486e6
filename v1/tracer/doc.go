// Package tracer provides distributed tracing on top of
// OpenTelemetry. Long-running operations like audit scans, bulk
// deletions and docs generation create a span per registry
// interaction so their latency and failure points show up in a
// tracing backend.
//
// # Exporting
//
// NewClient always installs a tracer provider; whether spans leave
// the process is controlled by Config.EnableExport. When export is
// enabled an OTLP/HTTP exporter is attached, reading the collector
// endpoint from the standard OTEL_EXPORTER_OTLP_ENDPOINT environment
// variable. When disabled, spans are created but never shipped, so
// instrumented code paths behave identically in both modes.
//
// # Usage
//
//	tr := tracer.NewClient(tracer.Config{AppEnv: "production"}, log)
//
//	ctx, span := tr.StartSpan(ctx, "audit-scan")
//	defer span.End()
//
//	tr.SetAttributes(span, map[string]interface{}{
//	    "subject.count": len(subjects),
//	})
//	if err != nil {
//	    tr.RecordErrorOnSpan(span, err)
//	}
//
// # Propagation
//
// GetCarrier and SetCarrierOnContext move W3C trace context across
// process boundaries. The HTTP server extracts incoming trace headers
// with SetCarrierOnContext so spans created while handling a request
// join the caller's trace.
//
// All methods on Tracer are safe for concurrent use.
package tracer
