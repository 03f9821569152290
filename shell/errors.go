package shell

import "errors"

var (
	// ErrConcurrencyConflict is returned by repositories when the stored revision has moved
	// on since the aggregate was loaded. It is the only error RetryWithExponentialBackoff retries.
	ErrConcurrencyConflict = errors.New("concurrency conflict")

	// ErrIdempotentOperation is a sentinel error to indicate an idempotent operation that should be recorded in metrics.
	ErrIdempotentOperation = errors.New("idempotent operation - no state change needed")
)
