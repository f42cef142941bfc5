// Package util holds small helpers shared across the service: byte size
// parsing and formatting, secret masking for logs, and env value cleanup.
package util
