package cache

import (
	"reflect"
	"strconv"
	"sync"
	"testing"
)

func TestLRU_GetAddRemove(t *testing.T) {
	c := NewLRU[string](DefaultPolicy(), nil)

	// Test Get on empty cache
	if _, ok := c.Get("nonexistent"); ok {
		t.Error("Get on empty cache should return ok=false")
	}

	if evicted := c.Add("key", "value"); evicted {
		t.Error("Add below capacity should not evict")
	}

	got, ok := c.Get("key")
	if !ok || got != "value" {
		t.Errorf("Get() = %q, %v; want %q, true", got, ok, "value")
	}

	if !c.Remove("key") {
		t.Error("Remove on existing key should return true")
	}
	if _, ok := c.Get("key"); ok {
		t.Error("Get after Remove should return ok=false")
	}

	// Remove is idempotent
	if c.Remove("key") {
		t.Error("Remove on missing key should return false")
	}
}

func TestLRU_DefaultCapacity(t *testing.T) {
	c := NewLRU[int](Policy{}, nil)
	if c.Capacity() != DefaultCapacity {
		t.Errorf("Capacity() = %d, want %d", c.Capacity(), DefaultCapacity)
	}
}

// TestLRU_EvictsLeastRecentlyUsed walks the A/B/C then B-touch/D sequence.
func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	var evicted []string
	c := NewLRU[int](Policy{Capacity: 2}, func(key string, _ int) {
		evicted = append(evicted, key)
	})

	c.Add("A", 1)
	c.Add("B", 2)
	c.Add("C", 3)

	if got, want := c.Keys(), []string{"C", "B"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	if _, ok := c.Get("A"); ok {
		t.Error("A should have been evicted")
	}

	c.Get("B")
	c.Add("D", 4)

	if got, want := c.Keys(), []string{"D", "B"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	if got, want := evicted, []string{"A", "C"}; !reflect.DeepEqual(got, want) {
		t.Errorf("evicted = %v, want %v", got, want)
	}
	if c.Evictions() != 2 {
		t.Errorf("Evictions() = %d, want 2", c.Evictions())
	}
}

func TestLRU_CapacityPlusOne(t *testing.T) {
	const n = 5
	c := NewLRU[int](Policy{Capacity: n}, nil)
	for i := 0; i <= n; i++ {
		c.Add(strconv.Itoa(i), i)
	}
	if c.Len() != n {
		t.Fatalf("Len() = %d, want %d", c.Len(), n)
	}
	if _, ok := c.Peek("0"); ok {
		t.Error("first inserted key should be evicted")
	}
	for i := 1; i <= n; i++ {
		if _, ok := c.Peek(strconv.Itoa(i)); !ok {
			t.Errorf("key %d missing", i)
		}
	}
}

func TestLRU_PeekDoesNotTouch(t *testing.T) {
	c := NewLRU[int](Policy{Capacity: 2}, nil)
	c.Add("A", 1)
	c.Add("B", 2)
	c.Peek("A")
	c.Add("C", 3)
	if _, ok := c.Peek("A"); ok {
		t.Error("Peek should not protect A from eviction")
	}
}

func TestLRU_ReplaceDoesNotEvict(t *testing.T) {
	c := NewLRU[int](Policy{Capacity: 2}, nil)
	c.Add("A", 1)
	c.Add("B", 2)
	if c.Add("A", 10) {
		t.Error("replacing an existing key should not evict")
	}
	if v, _ := c.Peek("A"); v != 10 {
		t.Errorf("Peek(A) = %d, want 10", v)
	}
	if got, want := c.Keys(), []string{"A", "B"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
}

func TestLRU_Purge(t *testing.T) {
	c := NewLRU[int](Policy{Capacity: 4}, nil)
	c.Add("A", 1)
	c.Add("B", 2)
	c.Purge()
	if c.Len() != 0 {
		t.Errorf("Len() after Purge = %d, want 0", c.Len())
	}
	c.Add("C", 3)
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

// TestLRU_EvictHookMayReenter verifies the hook runs without the lock held.
func TestLRU_EvictHookMayReenter(t *testing.T) {
	var c *LRU[int]
	c = NewLRU[int](Policy{Capacity: 1}, func(key string, _ int) {
		_ = c.Len()
	})
	c.Add("A", 1)
	c.Add("B", 2)
}

func TestLRU_ConcurrentAccess(t *testing.T) {
	c := NewLRU[int](Policy{Capacity: 16}, nil)

	const numGoroutines = 50
	const opsPerGoroutine = 500

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < opsPerGoroutine; j++ {
				key := strconv.Itoa((id + j) % 32)
				switch j % 4 {
				case 0:
					c.Add(key, j)
				case 1:
					c.Get(key)
				case 2:
					c.Peek(key)
				case 3:
					c.Remove(key)
				}
			}
		}(i)
	}

	wg.Wait()

	if c.Len() > c.Capacity() {
		t.Errorf("Len() = %d exceeds capacity %d", c.Len(), c.Capacity())
	}
}
