// Package server provides the HTTP server: a gin engine mounted as the
// fallback of an http.ServeMux, served over HTTP/1.1 and h2c.
//
// Middleware (server/middleware) wraps the whole mux, so it covers gin routes
// and raw http.Handler mounts alike:
//
//   - Recovery: panic recovery rendered as a 500 JSON error
//   - RequestID: X-Request-Id generation and context propagation
//   - RequestLogger: structured request logging
//   - HTTPMetrics: Prometheus request counters and latency histograms
//   - CORS: cross-origin headers and OPTIONS preflight answers
//   - BodySizeLimit: 413 for oversized declared bodies, capped reads otherwise
//
// Endpoints (server/endpoint): /health, /info and /metrics.
package server
