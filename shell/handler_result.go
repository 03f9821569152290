package shell

import "time"

// HandlerResult represents the outcome of a command service operation.
// It captures both business outcomes (idempotency, events raised) and execution metadata (retry information).
type HandlerResult struct {
	// Idempotent indicates that the command did not raise any event.
	Idempotent bool

	// EventCount is the number of domain events dispatched after the save.
	EventCount int

	// RetryAttempts is the total number of attempts made (1 for no retries, 2+ for retries).
	RetryAttempts int

	// TotalRetryDelay is the cumulative time spent in retry backoff delays.
	TotalRetryDelay time.Duration

	// LastErrorType describes the type of the final error encountered during retries.
	// Values: "none" (success), "concurrency_conflict", "context_canceled", "context_deadline_exceeded", "other"
	LastErrorType string

	// RetriesExhausted indicates whether max retry attempts were reached with a retryable error.
	RetriesExhausted bool
}

// NewSuccessResult creates a HandlerResult for a command that dispatched eventCount events.
func NewSuccessResult(retryMetrics RetryMetrics, eventCount int) HandlerResult {
	result := fromRetryMetrics(retryMetrics)
	result.EventCount = eventCount
	result.Idempotent = eventCount == 0

	return result
}

// NewErrorResult creates a HandlerResult for failed operations.
// This is used when the command fails but retry metadata should still be reported.
func NewErrorResult(retryMetrics RetryMetrics) HandlerResult {
	return fromRetryMetrics(retryMetrics)
}

func fromRetryMetrics(retryMetrics RetryMetrics) HandlerResult {
	return HandlerResult{
		RetryAttempts:    retryMetrics.Attempts,
		TotalRetryDelay:  retryMetrics.TotalDelay,
		LastErrorType:    retryMetrics.LastErrorType,
		RetriesExhausted: retryMetrics.RetriesExhausted,
	}
}
