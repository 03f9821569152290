package otelcollector

import (
	"log/slog"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/global"
)

// NewLogger returns a logger whose records go to provider through the otelslog bridge.
// The records carry the trace context of the ctx passed to the *Context methods.
// A nil provider means the global LoggerProvider.
// The result satisfies shell.Logger and shell.ContextualLogger.
func NewLogger(name string, provider log.LoggerProvider) *slog.Logger {
	if provider == nil {
		provider = global.GetLoggerProvider()
	}

	return otelslog.NewLogger(name, otelslog.WithLoggerProvider(provider))
}
