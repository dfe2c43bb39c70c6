package engine

import (
	"sync"
	"time"
)

// InMemoryPolicyCache is the default PolicyCache. Thread-safe.
type InMemoryPolicyCache struct {
	policies []*Policy
	cachedAt time.Time
	config   CacheConfig
	isValid  bool
	mu       sync.RWMutex
}

// NewInMemoryPolicyCache creates an empty, invalid cache.
func NewInMemoryPolicyCache(config CacheConfig) *InMemoryPolicyCache {
	return &InMemoryPolicyCache{config: config}
}

// Get retrieves the cached list, nil when invalid or expired.
func (c *InMemoryPolicyCache) Get() []*Policy {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.isValid {
		return nil
	}

	if c.config.TTL > 0 && time.Since(c.cachedAt) > c.config.TTL {
		return nil
	}

	// Copy so callers cannot reorder the cached slice.
	policiesCopy := make([]*Policy, len(c.policies))
	copy(policiesCopy, c.policies)
	return policiesCopy
}

// Set stores the active-policy list.
func (c *InMemoryPolicyCache) Set(policies []*Policy) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.policies = make([]*Policy, len(policies))
	copy(c.policies, policies)
	c.cachedAt = time.Now()
	c.isValid = true
}

// Invalidate clears the cache.
func (c *InMemoryPolicyCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.isValid = false
	c.policies = nil
}

// IsValid reports whether the cache holds usable data.
func (c *InMemoryPolicyCache) IsValid() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.isValid {
		return false
	}

	if c.config.TTL > 0 {
		return time.Since(c.cachedAt) <= c.config.TTL
	}

	return true
}
