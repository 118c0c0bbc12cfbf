package catalog

import (
	"container/list"
	"sync"
)

// lruCache is a thread-safe LRU of built series keyed by name. Built series
// are immutable, so entries are shared rather than copied.
type lruCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*list.Element
	order    *list.List
}

type cacheEntry struct {
	name   string
	series Series
}

func newLRUCache(capacity int) *lruCache {
	if capacity < 1 {
		capacity = 1
	}
	return &lruCache{
		capacity: capacity,
		entries:  make(map[string]*list.Element),
		order:    list.New(),
	}
}

// get returns the cached series and marks it most recently used.
func (c *lruCache) get(name string) (Series, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[name]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*cacheEntry).series, true
}

// put adds or replaces a series, evicting the least recently used entry when
// full.
func (c *lruCache) put(name string, series Series) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[name]; ok {
		c.order.MoveToFront(elem)
		elem.Value.(*cacheEntry).series = series
		return
	}

	if c.order.Len() >= c.capacity {
		if oldest := c.order.Back(); oldest != nil {
			delete(c.entries, oldest.Value.(*cacheEntry).name)
			c.order.Remove(oldest)
		}
	}

	c.entries[name] = c.order.PushFront(&cacheEntry{name: name, series: series})
}

func (c *lruCache) invalidate(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[name]; ok {
		delete(c.entries, name)
		c.order.Remove(elem)
	}
}

func (c *lruCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
