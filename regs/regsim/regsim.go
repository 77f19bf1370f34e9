// Package regsim is an in-memory register file for host builds and tests.
// It implements regs.Bus over a byte array and additionally records per
// register write counts plus a bounded history of recent writes, so tests
// can assert not only on end state but on which registers were touched.
package regsim

import (
	"sync"

	"avrhal-go/regs"
	"avrhal-go/regs/trace"
)

const histSize = 64 // power of two

// Sim is a simulated register file.
// The HAL itself accesses it single-threaded; the mutex is for host
// tooling that peeks while a demo loop runs.
type Sim struct {
	mu     sync.Mutex
	mem    []uint8
	writes []uint32
	hist   [histSize]trace.Event
	wr     uint32
	hub    *trace.Hub
}

// New creates a register file with numRegs registers, all zero.
func New(numRegs int) *Sim {
	if numRegs <= 0 || numRegs > int(regs.None) {
		panic("regsim: bad register count")
	}
	return &Sim{
		mem:    make([]uint8, numRegs),
		writes: make([]uint32, numRegs),
	}
}

// AttachHub publishes every subsequent write to h. Passing nil detaches.
func (s *Sim) AttachHub(h *trace.Hub) {
	s.mu.Lock()
	s.hub = h
	s.mu.Unlock()
}

func (s *Sim) check(r regs.Reg) {
	if int(r) >= len(s.mem) {
		panic("regsim: register out of range")
	}
}

func (s *Sim) record(r regs.Reg, old, val uint8) {
	s.writes[r]++
	s.hist[s.wr&(histSize-1)] = trace.Event{Reg: r, Old: old, New: val}
	s.wr++
	if s.hub != nil {
		s.hub.Publish(trace.Event{Reg: r, Old: old, New: val})
	}
}

// --- regs.Bus ---

func (s *Sim) Read8(r regs.Reg) uint8 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.check(r)
	return s.mem[r]
}

func (s *Sim) Write8(r regs.Reg, v uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.check(r)
	old := s.mem[r]
	s.mem[r] = v
	s.record(r, old, v)
}

func (s *Sim) SetBits(r regs.Reg, mask uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.check(r)
	old := s.mem[r]
	s.mem[r] = old | mask
	s.record(r, old, s.mem[r])
}

func (s *Sim) ClearBits(r regs.Reg, mask uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.check(r)
	old := s.mem[r]
	s.mem[r] = old &^ mask
	s.record(r, old, s.mem[r])
}

// --- test-side access (not part of the bus; no counting, no publish) ---

// Peek reads a register without recording the access.
func (s *Sim) Peek(r regs.Reg) uint8 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.check(r)
	return s.mem[r]
}

// Poke sets a register from "outside the chip", e.g. an externally
// driven input bit. Not recorded as a write.
func (s *Sim) Poke(r regs.Reg, v uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.check(r)
	s.mem[r] = v
}

// PokeBits sets or clears mask bits in r, outside the write record.
func (s *Sim) PokeBits(r regs.Reg, mask uint8, on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.check(r)
	if on {
		s.mem[r] |= mask
	} else {
		s.mem[r] &^= mask
	}
}

// WriteCount reports how many bus writes have hit r.
func (s *Sim) WriteCount(r regs.Reg) uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.check(r)
	return s.writes[r]
}

// History returns up to n most recent writes, oldest first.
func (s *Sim) History(n int) []trace.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	avail := s.wr
	if avail > histSize {
		avail = histSize
	}
	if n > 0 && uint32(n) < avail {
		avail = uint32(n)
	}
	out := make([]trace.Event, 0, avail)
	for i := s.wr - avail; i < s.wr; i++ {
		out = append(out, s.hist[i&(histSize-1)])
	}
	return out
}

// Snapshot copies the whole register file.
func (s *Sim) Snapshot() []uint8 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]uint8, len(s.mem))
	copy(out, s.mem)
	return out
}

// Reset zeroes registers, counters and history.
func (s *Sim) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.mem {
		s.mem[i] = 0
		s.writes[i] = 0
	}
	s.wr = 0
}
