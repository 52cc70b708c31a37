// Package trace wires OpenTelemetry tracing for file ingestion and export.
//
// Tracing is off unless OTEL_EXPORTER_OTLP_ENDPOINT is configured; callers
// always obtain tracers through Tracer so instrumentation stays in place
// when it is off.
package trace
