//go:build avr

package global

// Cell is a guarded global slot. The MCU build is single-threaded at
// this layer, so access is direct; if an application touches a cell
// from an interrupt handler it must mask interrupts around the call,
// the same contract as every other shared resource in this HAL.
type Cell[T any] struct {
	has bool
	val T
}

// Set stores v unconditionally.
func (c *Cell[T]) Set(v T) {
	c.val = v
	c.has = true
}

// TrySet stores v only if the cell is still empty and reports whether
// it did. This is the take-once primitive for singleton hardware.
func (c *Cell[T]) TrySet(v T) bool {
	if c.has {
		return false
	}
	c.val = v
	c.has = true
	return true
}

// With runs f on the stored value.
// Returns false if the cell was never set.
func (c *Cell[T]) With(f func(*T)) bool {
	if !c.has {
		return false
	}
	f(&c.val)
	return true
}

// IsSet reports whether the cell holds a value.
func (c *Cell[T]) IsSet() bool { return c.has }
