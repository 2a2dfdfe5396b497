package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration callers should
	// allow a posting transaction before cancelling its context.
	DefaultTransactionTimeout = 10 * time.Second

	// DefaultIdempotencyTTL is how long idempotency keys are cached.
	DefaultIdempotencyTTL = 24 * time.Hour
)
