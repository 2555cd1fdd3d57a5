package status

import (
	"sort"
	"sync"
)

// Table maps metric names to stable pointers of type T
// Lookups lock; writers cache the pointer once and update it lock-free
type Table[T any] struct {
	mu    sync.RWMutex
	items map[string]*T
}

// NewTable creates an empty table
func NewTable[T any]() *Table[T] {
	return &Table[T]{items: make(map[string]*T)}
}

// Get returns the metric for key, creating it on first use
func (t *Table[T]) Get(key string) *T {
	t.mu.RLock()
	if ptr, ok := t.items[key]; ok {
		t.mu.RUnlock()
		return ptr
	}
	t.mu.RUnlock()

	t.mu.Lock()
	defer t.mu.Unlock()
	if ptr, ok := t.items[key]; ok {
		return ptr
	}
	ptr := new(T)
	t.items[key] = ptr
	return ptr
}

// Has reports whether key was ever requested
func (t *Table[T]) Has(key string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.items[key]
	return ok
}

// Each visits metrics in key order
func (t *Table[T]) Each(fn func(key string, ptr *T)) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	keys := make([]string, 0, len(t.items))
	for k := range t.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fn(k, t.items[k])
	}
}

// Len is the number of metrics
func (t *Table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.items)
}
