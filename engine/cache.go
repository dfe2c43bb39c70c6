package engine

import "time"

// PolicyCache caches the active-policy listing between registry mutations,
// so batch screening runs do not rebuild it per call. Implementations must
// be safe for concurrent use.
type PolicyCache interface {
	// Get retrieves cached policies, nil on miss or expiry.
	Get() []*Policy

	// Set stores the active-policy list.
	Set(policies []*Policy)

	// Invalidate clears the cache, forcing a rebuild on next Get.
	Invalidate()

	// IsValid reports whether the cache holds usable data.
	IsValid() bool
}

// CacheConfig holds cache behavior settings.
type CacheConfig struct {
	// TTL is the time-to-live for the cached list. Zero means no
	// expiration; the cache is refreshed only through Invalidate.
	TTL time.Duration
}

// DefaultCacheConfig returns the default: invalidate-on-mutation only.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{TTL: 0}
}
