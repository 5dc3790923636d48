package cache

import (
	"sort"
	"strings"
)

// Key derives a stable key from an operation name and its parameters:
// the operation plus the sorted parameters, so the same request
// signature always maps to the same key regardless of map iteration
// order. Callers that need a request signature without a cache
// instance use this directly.
func Key(op string, params map[string]string) string {
	if len(params) == 0 {
		return op
	}
	parts := make([]string, 0, len(params))
	for k, v := range params {
		parts = append(parts, k+"="+v)
	}
	sort.Strings(parts)
	return op + "__" + strings.Join(parts, "__")
}

// KeyFor implements KeyGenerator.
func (mc *MemoryCache) KeyFor(op string, params map[string]string) string {
	return Key(op, params)
}
