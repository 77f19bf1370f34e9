//go:build avr

package atmega32u4

import (
	"unsafe"

	"avrhal-go/regs"
)

// mmio drives the live registers through their data-space addresses.
type mmio struct{}

// MMIO returns the live register bus.
func MMIO() regs.Bus { return mmio{} }

func mmreg(r regs.Reg) *uint8 { return (*uint8)(unsafe.Pointer(addrs[r])) }

func (mmio) Read8(r regs.Reg) uint8           { return *mmreg(r) }
func (mmio) Write8(r regs.Reg, v uint8)       { *mmreg(r) = v }
func (mmio) SetBits(r regs.Reg, mask uint8)   { *mmreg(r) |= mask }
func (mmio) ClearBits(r regs.Reg, mask uint8) { *mmreg(r) &^= mask }

// Take claims the live chip. Callable once per reset.
func Take(clockHz uint32) (*Chip, error) { return TakeWith(MMIO(), clockHz) }
