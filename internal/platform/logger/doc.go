// Package logger configures structured JSON logging on top of log/slog
// and carries request-scoped loggers through context so handlers and
// stores log with the request's trace ID attached.
package logger
