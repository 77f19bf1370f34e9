// Package regs defines the register access capability the HAL is built on.
// A chip package supplies the concrete Reg identifiers and an implementation
// of Bus; the pin and pwm layers never see addresses, only identities.
package regs

// Reg is a dense index into a chip's register file.
// The zero value is a valid register on chips that define one at index 0;
// packages that need a "no register" marker use None.
type Reg uint8

// None marks an absent register (e.g. a channel without an extra enable reg).
const None Reg = 0xFF

// Bus reads and writes 8-bit peripheral registers.
// SetBits and ClearBits are read-modify-write at single-bit granularity;
// Write8 replaces the whole register. All operations complete before
// returning and never fail at the software level.
type Bus interface {
	Read8(r Reg) uint8
	Write8(r Reg, v uint8)
	SetBits(r Reg, mask uint8)
	ClearBits(r Reg, mask uint8)
}
