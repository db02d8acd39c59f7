package cache

import (
	"container/list"
	"sync"
	"sync/atomic"
)

// EvictFunc is called with an entry after it was evicted for capacity.
// It runs without the cache lock held.
type EvictFunc[V any] func(key string, value V)

// LRU is a fixed-capacity least-recently-used cache.
//
// LRU is safe for concurrent use and must not be copied after creation.
type LRU[V any] struct {
	mu       sync.Mutex
	capacity int
	ll       *list.List // front = most recently used
	items    map[string]*list.Element
	onEvict  EvictFunc[V]

	evictions atomic.Uint64
}

type lruEntry[V any] struct {
	key   string
	value V
}

// NewLRU creates an LRU sized by policy. onEvict may be nil.
func NewLRU[V any](policy Policy, onEvict EvictFunc[V]) *LRU[V] {
	capacity := policy.EffectiveCapacity()
	return &LRU[V]{
		capacity: capacity,
		ll:       list.New(),
		items:    make(map[string]*list.Element, capacity),
		onEvict:  onEvict,
	}
}

// Get returns the value for key and marks it most recently used.
func (c *LRU[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.ll.MoveToFront(el)
	return el.Value.(*lruEntry[V]).value, true
}

// Peek returns the value for key without touching it.
func (c *LRU[V]) Peek(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	return el.Value.(*lruEntry[V]).value, true
}

// Add stores value under key. Replacing an existing key never evicts.
func (c *LRU[V]) Add(key string, value V) bool {
	c.mu.Lock()

	if el, ok := c.items[key]; ok {
		el.Value.(*lruEntry[V]).value = value
		c.ll.MoveToFront(el)
		c.mu.Unlock()
		return false
	}

	c.items[key] = c.ll.PushFront(&lruEntry[V]{key: key, value: value})

	var victim *lruEntry[V]
	if c.ll.Len() > c.capacity {
		oldest := c.ll.Back()
		c.ll.Remove(oldest)
		victim = oldest.Value.(*lruEntry[V])
		delete(c.items, victim.key)
		c.evictions.Add(1)
	}
	hook := c.onEvict
	c.mu.Unlock()

	if victim == nil {
		return false
	}
	if hook != nil {
		hook(victim.key, victim.value)
	}
	return true
}

// Remove deletes key. It reports whether the key was present.
func (c *LRU[V]) Remove(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		return false
	}
	c.ll.Remove(el)
	delete(c.items, key)
	return true
}

// Len returns the number of entries.
func (c *LRU[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

// Capacity returns the fixed capacity.
func (c *LRU[V]) Capacity() int {
	return c.capacity
}

// Keys returns the keys from most to least recently used.
func (c *LRU[V]) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, c.ll.Len())
	for el := c.ll.Front(); el != nil; el = el.Next() {
		keys = append(keys, el.Value.(*lruEntry[V]).key)
	}
	return keys
}

// Purge removes every entry.
func (c *LRU[V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ll.Init()
	c.items = make(map[string]*list.Element, c.capacity)
}

// Evictions returns the number of capacity evictions so far.
func (c *LRU[V]) Evictions() uint64 {
	return c.evictions.Load()
}

// Ensure LRU implements Cache
var _ Cache[int] = (*LRU[int])(nil)
