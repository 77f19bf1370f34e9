// Package trace fans register writes out to interested observers.
// The simulator publishes one Event per write; tools and tests subscribe
// to individual registers (or all of them) and read from a buffered
// channel. The last event per register is retained and replayed on
// subscribe, so a late watcher still learns the current value.
package trace

import (
	"sync"

	"avrhal-go/regs"
)

// Event is one register write, with the value before and after.
type Event struct {
	Reg regs.Reg
	Old uint8
	New uint8
}

// -----------------------------------------------------------------------------
// Subscription
// -----------------------------------------------------------------------------

type Sub struct {
	set []regs.Reg // nil = all registers
	ch  chan Event
	hub *Hub
}

func (s *Sub) Channel() <-chan Event { return s.ch }
func (s *Sub) Unsubscribe()          { s.hub.unsubscribe(s) }

func (s *Sub) matches(r regs.Reg) bool {
	if s.set == nil {
		return true
	}
	for _, w := range s.set {
		if w == r {
			return true
		}
	}
	return false
}

// -----------------------------------------------------------------------------
// Hub
// -----------------------------------------------------------------------------

type Hub struct {
	mu       sync.Mutex
	qLen     int
	subs     []*Sub
	retained map[regs.Reg]Event
}

// NewHub creates a hub with the given subscription queue length.
func NewHub(queueLen int) *Hub {
	if queueLen <= 0 {
		queueLen = 8 // safe default
	}
	return &Hub{
		qLen:     queueLen,
		retained: make(map[regs.Reg]Event),
	}
}

// Subscribe registers interest in the given registers (none = all).
// Retained events for matching registers are delivered immediately.
func (h *Hub) Subscribe(rs ...regs.Reg) *Sub {
	sub := &Sub{
		ch:  make(chan Event, h.qLen),
		hub: h,
	}
	if len(rs) > 0 {
		sub.set = append([]regs.Reg(nil), rs...)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.subs = append(h.subs, sub)

	for r, ev := range h.retained {
		if !sub.matches(r) {
			continue
		}
		select {
		case sub.ch <- ev:
		default:
		}
	}
	return sub
}

// Publish delivers an event to all matching subscribers and retains it.
func (h *Hub) Publish(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, sub := range h.subs {
		if !sub.matches(ev.Reg) {
			continue
		}
		select {
		case sub.ch <- ev:
		default:
			// drop oldest if queue full
			<-sub.ch
			sub.ch <- ev
		}
	}

	h.retained[ev.Reg] = ev
}

// Retained returns the last published event for a register, if any.
func (h *Hub) Retained(r regs.Reg) (Event, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	ev, ok := h.retained[r]
	return ev, ok
}

func (h *Hub) unsubscribe(sub *Sub) {
	h.mu.Lock()
	for i, s := range h.subs {
		if s == sub {
			h.subs = append(h.subs[:i], h.subs[i+1:]...)
			break
		}
	}
	h.mu.Unlock()
	close(sub.ch)
}
