package optimizer

import "container/list"

// lruCache is a bounded result cache with recency-order eviction. It is not
// internally synchronized; the Optimizer guards it with its own mutex.
type lruCache struct {
	capacity int
	order    *list.List // front = most recent
	entries  map[string]*list.Element
}

type lruEntry struct {
	key    string
	result Result
}

func newLRUCache(capacity int) *lruCache {
	if capacity < 4 {
		capacity = 4
	}
	return &lruCache{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[string]*list.Element),
	}
}

// get refreshes the entry's recency on a hit.
func (c *lruCache) get(key string) (Result, bool) {
	el, ok := c.entries[key]
	if !ok {
		return Result{}, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*lruEntry).result, true
}

// put inserts or refreshes an entry, evicting the least-recently-used one
// past capacity.
func (c *lruCache) put(key string, r Result) {
	if el, ok := c.entries[key]; ok {
		el.Value.(*lruEntry).result = r
		c.order.MoveToFront(el)
		return
	}
	el := c.order.PushFront(&lruEntry{key: key, result: r})
	c.entries[key] = el
	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*lruEntry).key)
	}
}

func (c *lruCache) len() int { return c.order.Len() }
