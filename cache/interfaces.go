// Package cache provides a single-process, in-memory result cache
// with TTL-based expiry. Lookups never fail; a miss is the caller's
// cue to fall through to a live upstream call.
package cache

import "time"

// Reader reads cache entries.
type Reader interface {
	// Read retrieves a value by key. A stored value older than maxAge
	// is treated as a miss (maxAge <= 0 disables the age check).
	Read(key string, maxAge time.Duration) (any, bool)
}

// Writer stores cache entries.
type Writer interface {
	// Write stores a value under key, stamping it with the current
	// time. An existing entry is overwritten wholesale.
	Write(key string, value any)
}

// KeyGenerator derives stable cache keys from request parameters.
type KeyGenerator interface {
	// KeyFor generates a stable key from an operation name and its
	// parameters.
	KeyFor(op string, params map[string]string) string
}

// Cache combines all cache operations.
type Cache interface {
	Reader
	Writer
	KeyGenerator
}
