package scene

import "sync"

// DefaultPlanCacheSize is the number of plans a PlanCache keeps by default.
const DefaultPlanCacheSize = 64

// PlanCache memoizes plans by key. It is safe for concurrent use.
// Cached plans are shared; callers must not modify their records.
type PlanCache struct {
	mu      sync.Mutex
	limit   int
	entries map[PlanKey]Plan
	hits    int
	misses  int
}

// NewPlanCache creates a cache holding at most limit plans.
// A limit <= 0 selects DefaultPlanCacheSize.
func NewPlanCache(limit int) *PlanCache {
	if limit <= 0 {
		limit = DefaultPlanCacheSize
	}
	return &PlanCache{
		limit:   limit,
		entries: make(map[PlanKey]Plan),
	}
}

// Get returns the plan for key, generating it on a miss.
// When the cache is full it is emptied before the new plan is stored.
func (c *PlanCache) Get(key PlanKey) Plan {
	c.mu.Lock()
	defer c.mu.Unlock()

	if p, ok := c.entries[key]; ok {
		c.hits++
		return p
	}
	c.misses++

	p := NewPlanForKey(key)
	if len(c.entries) >= c.limit {
		clear(c.entries)
	}
	c.entries[key] = p
	return p
}

// Len returns the number of cached plans.
func (c *PlanCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns the hit and miss counters.
func (c *PlanCache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
