package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers client-supplied request keys so that a retried
// mutation (for example a payment submission) is applied at most once.
type IdempotencyStore interface {
	// Claim records the key with a TTL. It returns false if the key was
	// already claimed and has not expired.
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release forgets a key so a failed request can be retried.
	Release(ctx context.Context, key string) error

	// Close releases resources held by the store
	Close() error
}

// DefaultIdempotencyTTL is how long a claimed key blocks duplicates
const DefaultIdempotencyTTL = 24 * time.Hour
