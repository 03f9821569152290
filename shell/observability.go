package shell

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/AntonStoeckl/roadmap-aggregate-go/roadmap"
)

const (
	// CommandDurationMetric tracks command execution duration.
	CommandDurationMetric = "roadmap_command_duration_seconds"

	// CommandCallsMetric tracks total command calls.
	CommandCallsMetric = "roadmap_command_calls_total"

	// CommandIdempotentMetric tracks commands that raised no event.
	CommandIdempotentMetric = "roadmap_command_idempotent_total"

	// CommandConcurrencyConflictMetric tracks commands that failed on a concurrency conflict.
	CommandConcurrencyConflictMetric = "roadmap_command_concurrency_conflicts_total"

	// CommandRetriesMetric tracks retry attempts.
	//
	// Labels:
	//   - command_type: Type of command being retried (e.g., "UpdateItem")
	//   - attempt_number: Which retry attempt (1, 2, 3, 4, 5)
	//   - error_type: Category of error causing retry (e.g., "concurrency_conflict")
	CommandRetriesMetric = "roadmap_command_retries_total"

	// CommandRetryDelayMetric tracks retry backoff delays.
	CommandRetryDelayMetric = "roadmap_command_retry_delay_seconds"

	// CommandMaxRetriesReachedMetric tracks when max retries are exhausted.
	CommandMaxRetriesReachedMetric = "roadmap_command_max_retries_reached_total"

	// QueryDurationMetric tracks query execution duration.
	QueryDurationMetric = "roadmap_query_duration_seconds"

	// QueryCallsMetric tracks total query calls.
	QueryCallsMetric = "roadmap_query_calls_total"

	// EventsDispatchedMetric tracks domain events handed to the dispatcher.
	EventsDispatchedMetric = "roadmap_events_dispatched_total"

	// EventHandlerFailuresMetric tracks event handlers that returned an error or panicked.
	EventHandlerFailuresMetric = "roadmap_event_handler_failures_total"

	// StatusSuccess indicates successful completion.
	StatusSuccess = "success"

	// StatusError indicates a processing error.
	StatusError = "error"

	// StatusIdempotent indicates no state change was needed.
	StatusIdempotent = "idempotent"

	// StatusNotFound indicates that a referenced id does not exist.
	StatusNotFound = "not_found"

	// StatusCanceled indicates the operation was canceled due to context cancellation.
	StatusCanceled = "canceled"

	// StatusTimeout indicates the operation timed out due to context deadline exceeded.
	StatusTimeout = "timeout"

	// StatusConcurrencyConflict indicates the operation failed due to optimistic concurrency control.
	StatusConcurrencyConflict = "concurrency_conflict"

	// LogMsgCommandStarted is logged when command processing begins.
	LogMsgCommandStarted = "command started"

	// LogMsgCommandCompleted is logged when command processing succeeds.
	LogMsgCommandCompleted = "command completed"

	// LogMsgCommandFailed is logged when command processing fails.
	LogMsgCommandFailed = "command failed"

	// LogMsgQueryCompleted is logged when query processing succeeds.
	LogMsgQueryCompleted = "query completed"

	// LogMsgQueryFailed is logged when query processing fails.
	LogMsgQueryFailed = "query failed"

	// LogAttrCommandType identifies the command type in logs.
	LogAttrCommandType = "command_type"

	// LogAttrQueryType identifies the query type in logs.
	LogAttrQueryType = "query_type"

	// LogAttrRoadmapID identifies the aggregate in logs.
	LogAttrRoadmapID = "roadmap_id"

	// LogAttrStatus indicates the processing status.
	LogAttrStatus = "status"

	// LogAttrDurationMS indicates the processing duration in milliseconds.
	LogAttrDurationMS = "duration_ms"

	// LogAttrBusinessOutcome classifies the business result.
	LogAttrBusinessOutcome = "business_outcome"

	// LogAttrEventCount indicates the number of events dispatched.
	LogAttrEventCount = "event_count"

	// LogAttrRetryAttempts indicates how many attempts a command needed.
	LogAttrRetryAttempts = "retry_attempts"

	// LogAttrError contains error details.
	LogAttrError = "error"
)

// ClassifyBusinessOutcome determines the business outcome from the events a command raised.
func ClassifyBusinessOutcome(events roadmap.DomainEvents) string {
	if len(events) == 0 {
		return StatusIdempotent
	}

	return StatusSuccess
}

// ClassifyError maps an error to a metric status.
func ClassifyError(err error) string {
	switch {
	case err == nil:
		return StatusSuccess
	case IsCancellationError(err):
		return StatusCanceled
	case IsTimeoutError(err):
		return StatusTimeout
	case IsConcurrencyConflictError(err):
		return StatusConcurrencyConflict
	case errors.Is(err, roadmap.ErrNotFound):
		return StatusNotFound
	default:
		return StatusError
	}
}

// BuildCommandLabels creates standard metric labels for command operations.
func BuildCommandLabels(commandType, status string) map[string]string {
	return map[string]string{
		LogAttrCommandType: commandType,
		LogAttrStatus:      status,
	}
}

// BuildQueryLabels creates standard metric labels for query operations.
func BuildQueryLabels(queryType, status string) map[string]string {
	return map[string]string{
		LogAttrQueryType: queryType,
		LogAttrStatus:    status,
	}
}

// BuildRetryLabels creates standard metric labels for retry operations.
func BuildRetryLabels(commandType string, attemptNumber int, errorType string) map[string]string {
	return map[string]string{
		LogAttrCommandType: commandType,
		"attempt_number":   strconv.Itoa(attemptNumber),
		"error_type":       errorType,
	}
}

// ToMilliseconds converts a time.Duration to float64 milliseconds with precision.
func ToMilliseconds(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}

// RecordCommandMetrics records the duration and call count of a command, plus the
// idempotent and concurrency-conflict counters where the status says so.
func RecordCommandMetrics(
	ctx context.Context,
	collector MetricsCollector,
	commandType string,
	status string,
	duration time.Duration,
) {
	if collector == nil {
		return
	}

	labels := BuildCommandLabels(commandType, status)

	recordDuration(ctx, collector, CommandDurationMetric, duration, labels)
	incrementCounter(ctx, collector, CommandCallsMetric, labels)

	switch status {
	case StatusIdempotent:
		incrementCounter(ctx, collector, CommandIdempotentMetric, BuildCommandLabels(commandType, status))
	case StatusConcurrencyConflict:
		incrementCounter(ctx, collector, CommandConcurrencyConflictMetric, BuildCommandLabels(commandType, status))
	}
}

// RecordQueryMetrics records the duration and call count of a query.
func RecordQueryMetrics(
	ctx context.Context,
	collector MetricsCollector,
	queryType string,
	status string,
	duration time.Duration,
) {
	if collector == nil {
		return
	}

	labels := BuildQueryLabels(queryType, status)

	recordDuration(ctx, collector, QueryDurationMetric, duration, labels)
	incrementCounter(ctx, collector, QueryCallsMetric, labels)
}

// IncrementCounter increments a counter, preferring the context-aware method.
func IncrementCounter(ctx context.Context, collector MetricsCollector, metric string, labels map[string]string) {
	if collector == nil {
		return
	}

	incrementCounter(ctx, collector, metric, labels)
}

func incrementCounter(ctx context.Context, collector MetricsCollector, metric string, labels map[string]string) {
	if contextualCollector, ok := collector.(ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metric, labels)
		return
	}

	collector.IncrementCounter(metric, labels)
}

func recordDuration(ctx context.Context, collector MetricsCollector, metric string, d time.Duration, labels map[string]string) {
	if contextualCollector, ok := collector.(ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metric, d, labels)
		return
	}

	collector.RecordDuration(metric, d, labels)
}

// LogCommandStart logs the beginning of command processing.
func LogCommandStart(ctx context.Context, logger Logger, commandType, roadmapID string) {
	args := []any{
		LogAttrCommandType, commandType,
		LogAttrRoadmapID, roadmapID,
	}

	if contextualLogger := ContextualLoggerFrom(logger); contextualLogger != nil {
		contextualLogger.DebugContext(ctx, LogMsgCommandStarted, args...)
	} else if logger != nil {
		logger.Debug(LogMsgCommandStarted, args...)
	}
}

// LogCommandSuccess logs successful command completion.
func LogCommandSuccess(
	ctx context.Context,
	logger Logger,
	commandType string,
	roadmapID string,
	result HandlerResult,
	duration time.Duration,
) {
	outcome := StatusSuccess
	if result.Idempotent {
		outcome = StatusIdempotent
	}

	args := []any{
		LogAttrCommandType, commandType,
		LogAttrRoadmapID, roadmapID,
		LogAttrBusinessOutcome, outcome,
		LogAttrEventCount, result.EventCount,
		LogAttrRetryAttempts, result.RetryAttempts,
		LogAttrDurationMS, ToMilliseconds(duration),
	}

	if contextualLogger := ContextualLoggerFrom(logger); contextualLogger != nil {
		contextualLogger.InfoContext(ctx, LogMsgCommandCompleted, args...)
	} else if logger != nil {
		logger.Info(LogMsgCommandCompleted, args...)
	}
}

// LogCommandError logs command processing errors.
func LogCommandError(
	ctx context.Context,
	logger Logger,
	commandType string,
	roadmapID string,
	err error,
	duration time.Duration,
) {
	args := []any{
		LogAttrCommandType, commandType,
		LogAttrRoadmapID, roadmapID,
		LogAttrStatus, ClassifyError(err),
		LogAttrError, err.Error(),
		LogAttrDurationMS, ToMilliseconds(duration),
	}

	if contextualLogger := ContextualLoggerFrom(logger); contextualLogger != nil {
		contextualLogger.ErrorContext(ctx, LogMsgCommandFailed, args...)
	} else if logger != nil {
		logger.Error(LogMsgCommandFailed, args...)
	}
}

// LogQueryResult logs the outcome of a query at debug level, or at warn level on failure.
func LogQueryResult(ctx context.Context, logger Logger, queryType string, err error, duration time.Duration) {
	if err == nil {
		args := []any{LogAttrQueryType, queryType, LogAttrDurationMS, ToMilliseconds(duration)}

		if contextualLogger := ContextualLoggerFrom(logger); contextualLogger != nil {
			contextualLogger.DebugContext(ctx, LogMsgQueryCompleted, args...)
		} else if logger != nil {
			logger.Debug(LogMsgQueryCompleted, args...)
		}

		return
	}

	args := []any{LogAttrQueryType, queryType, LogAttrStatus, ClassifyError(err), LogAttrError, err.Error()}

	if contextualLogger := ContextualLoggerFrom(logger); contextualLogger != nil {
		contextualLogger.WarnContext(ctx, LogMsgQueryFailed, args...)
	} else if logger != nil {
		logger.Warn(LogMsgQueryFailed, args...)
	}
}

// IsCancellationError checks if an error is due to context cancellation.
func IsCancellationError(err error) bool {
	return errors.Is(err, context.Canceled)
}

// IsTimeoutError checks if an error is due to context deadline exceeded.
func IsTimeoutError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}

// IsConcurrencyConflictError checks if an error is due to optimistic concurrency control failure.
func IsConcurrencyConflictError(err error) bool {
	return errors.Is(err, ErrConcurrencyConflict)
}
