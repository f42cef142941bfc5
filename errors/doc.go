// Package errors provides the unified error type used across the proxy.
// Every failure path is expressed as an *AppError carrying a machine-readable
// code, a caller-facing message, the HTTP status to respond with and optional
// details, and is rendered as the {error, message?, details?} JSON shape.
package errors
