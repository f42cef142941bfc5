// Package logger provides structured logging for the proxy using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers with structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.WithComponent("proxy")
//	log.Warn("keyterm skipped", logger.Fields("length", 61))
package logger
