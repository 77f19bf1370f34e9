//go:build !avr

package global

import "sync"

// Cell is a guarded global slot: set once during bring-up, then mutated
// only through With. On host builds the guard is a mutex so tests and
// tools can touch cells from multiple goroutines.
type Cell[T any] struct {
	mu  sync.Mutex
	has bool
	val T
}

// Set stores v unconditionally.
func (c *Cell[T]) Set(v T) {
	c.mu.Lock()
	c.val = v
	c.has = true
	c.mu.Unlock()
}

// TrySet stores v only if the cell is still empty and reports whether
// it did. This is the take-once primitive for singleton hardware.
func (c *Cell[T]) TrySet(v T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.has {
		return false
	}
	c.val = v
	c.has = true
	return true
}

// With runs f on the stored value under the guard.
// Returns false if the cell was never set.
func (c *Cell[T]) With(f func(*T)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.has {
		return false
	}
	f(&c.val)
	return true
}

// IsSet reports whether the cell holds a value.
func (c *Cell[T]) IsSet() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.has
}
