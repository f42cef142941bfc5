// Package observability wires OpenTelemetry tracing and metrics.
//
// The Component installs OTLP/HTTP tracer and meter providers when enabled;
// otherwise the global no-op providers stay in place. Transport wraps an
// http.RoundTripper in client spans, and Metrics records upstream calls,
// upload sizes and failures.
package observability
