package testdoubles

import (
	"context"
	"sync"
)

// Log levels recorded by LoggerSpy.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// LoggerSpy captures log calls. It implements both shell.Logger and shell.ContextualLogger,
// like *slog.Logger does, so code under test takes the contextual path.
type LoggerSpy struct {
	records []LogRecord
	mu      sync.Mutex
}

// LogRecord represents a recorded log call. Context is nil for non-contextual calls.
type LogRecord struct {
	Level   string
	Message string
	Args    []any
	Context context.Context
}

// NewLoggerSpy creates a new LoggerSpy.
func NewLoggerSpy() *LoggerSpy {
	return &LoggerSpy{}
}

func (s *LoggerSpy) record(ctx context.Context, level, msg string, args []any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, LogRecord{
		Level:   level,
		Message: msg,
		Args:    append([]any(nil), args...),
		Context: ctx,
	})
}

// Debug implements shell.Logger.
func (s *LoggerSpy) Debug(msg string, args ...any) {
	s.record(nil, LevelDebug, msg, args)
}

// Info implements shell.Logger.
func (s *LoggerSpy) Info(msg string, args ...any) {
	s.record(nil, LevelInfo, msg, args)
}

// Warn implements shell.Logger.
func (s *LoggerSpy) Warn(msg string, args ...any) {
	s.record(nil, LevelWarn, msg, args)
}

// Error implements shell.Logger.
func (s *LoggerSpy) Error(msg string, args ...any) {
	s.record(nil, LevelError, msg, args)
}

// DebugContext implements shell.ContextualLogger.
func (s *LoggerSpy) DebugContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, LevelDebug, msg, args)
}

// InfoContext implements shell.ContextualLogger.
func (s *LoggerSpy) InfoContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, LevelInfo, msg, args)
}

// WarnContext implements shell.ContextualLogger.
func (s *LoggerSpy) WarnContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, LevelWarn, msg, args)
}

// ErrorContext implements shell.ContextualLogger.
func (s *LoggerSpy) ErrorContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, LevelError, msg, args)
}

// Records returns a copy of all records of the given level.
func (s *LoggerSpy) Records(level string) []LogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []LogRecord
	for _, record := range s.records {
		if record.Level == level {
			out = append(out, record)
		}
	}

	return out
}

// HasMessage reports whether a record with the given level and message was captured.
func (s *LoggerSpy) HasMessage(level, msg string) bool {
	for _, record := range s.Records(level) {
		if record.Message == msg {
			return true
		}
	}

	return false
}

// Attr returns the value following key in the record's args.
func (r LogRecord) Attr(key string) (any, bool) {
	for i := 0; i+1 < len(r.Args); i += 2 {
		if k, ok := r.Args[i].(string); ok && k == key {
			return r.Args[i+1], true
		}
	}

	return nil, false
}

// Reset clears all recorded log calls.
func (s *LoggerSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
}
