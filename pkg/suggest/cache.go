package suggest

import (
	"math"
	"sync"

	"github.com/charmbracelet/log"
)

// Cache is a small LRU of suggestion lists keyed by lowercased query.
// The catalog never changes under a Generator, so entries never go stale.
type Cache struct {
	entries     map[string][]Suggestion
	accessTime  map[string]int64
	accessCount int64
	hits        int
	misses      int
	maxQueries  int
	mu          sync.Mutex
}

// NewCache returns a cache holding at most maxQueries lists.
func NewCache(maxQueries int) *Cache {
	return &Cache{
		entries:    make(map[string][]Suggestion, maxQueries),
		accessTime: make(map[string]int64, maxQueries),
		maxQueries: maxQueries,
	}
}

// Get returns a copy of the cached list for queryLower.
func (c *Cache) Get(queryLower string) ([]Suggestion, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	list, ok := c.entries[queryLower]
	if !ok {
		c.misses++
		return nil, false
	}
	c.hits++
	c.markAccessed(queryLower)
	return append([]Suggestion(nil), list...), true
}

// Put stores a copy of list, evicting the least recently used entry when full.
func (c *Cache) Put(queryLower string, list []Suggestion) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[queryLower]; !exists && len(c.entries) >= c.maxQueries {
		c.evictLRU()
	}
	c.entries[queryLower] = append([]Suggestion(nil), list...)
	c.markAccessed(queryLower)
}

// Len returns the number of cached queries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) Stats() map[string]int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return map[string]int{
		"cachedQueries": len(c.entries),
		"maxQueries":    c.maxQueries,
		"cacheHits":     c.hits,
		"cacheMisses":   c.misses,
	}
}

func (c *Cache) markAccessed(queryLower string) {
	c.accessCount++
	c.accessTime[queryLower] = c.accessCount
}

func (c *Cache) evictLRU() {
	var oldest string
	var oldestTime int64 = math.MaxInt64

	for q, t := range c.accessTime {
		if t < oldestTime {
			oldestTime = t
			oldest = q
		}
	}

	if oldestTime != math.MaxInt64 {
		delete(c.entries, oldest)
		delete(c.accessTime, oldest)
		log.Debugf("Evicted query '%s' from suggestion cache", oldest)
	}
}
