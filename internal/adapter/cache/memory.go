package cache

import "sync"

// Default bounds for the memory tier.
const (
	DefaultMaxEntries = 1024
	DefaultMaxBytes   = 64 << 20
)

// Memory is the bounded in-memory tier. Eviction is least-recently-used,
// driven by both an entry-count limit and a total-byte limit.
type Memory struct {
	mu         sync.RWMutex
	entries    map[string][]float32
	order      []string
	maxEntries int
	maxBytes   int64
	bytes      int64
}

// NewMemory creates a Memory tier. Non-positive limits fall back to the
// defaults.
func NewMemory(maxEntries int, maxBytes int64) *Memory {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Memory{
		entries:    make(map[string][]float32),
		order:      make([]string, 0, maxEntries),
		maxEntries: maxEntries,
		maxBytes:   maxBytes,
	}
}

// Get returns the vector for key and refreshes its recency.
func (c *Memory) Get(key string) ([]float32, bool) {
	c.mu.RLock()
	vec, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}

	c.mu.Lock()
	c.moveToEnd(key)
	c.mu.Unlock()

	return vec, true
}

// Put stores the vector under key, evicting the least-recently-used entries
// while either limit is exceeded.
func (c *Memory) Put(key string, vector []float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if old, exists := c.entries[key]; exists {
		c.bytes -= entrySize(key, old)
		c.entries[key] = vector
		c.bytes += entrySize(key, vector)
		c.moveToEnd(key)
	} else {
		c.entries[key] = vector
		c.bytes += entrySize(key, vector)
		c.order = append(c.order, key)
	}

	for len(c.entries) > c.maxEntries || c.bytes > c.maxBytes {
		if !c.evictOldest() {
			break
		}
	}
}

// Clear empties the tier.
func (c *Memory) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string][]float32)
	c.order = c.order[:0]
	c.bytes = 0
}

// Len returns the number of cached entries.
func (c *Memory) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Bytes returns the accounted size of all entries.
func (c *Memory) Bytes() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.bytes
}

func (c *Memory) evictOldest() bool {
	if len(c.order) == 0 {
		return false
	}
	oldest := c.order[0]
	c.order = c.order[1:]
	if vec, ok := c.entries[oldest]; ok {
		c.bytes -= entrySize(oldest, vec)
		delete(c.entries, oldest)
	}
	return true
}

func (c *Memory) moveToEnd(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.order = append(c.order, key)
}

func entrySize(key string, vector []float32) int64 {
	return int64(len(key) + 4*len(vector))
}
