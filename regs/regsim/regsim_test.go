package regsim

import (
	"testing"

	"avrhal-go/regs"
	"avrhal-go/regs/trace"
)

func TestReadWrite(t *testing.T) {
	s := New(8)
	if got := s.Read8(3); got != 0 {
		t.Fatalf("fresh register not zero: %#x", got)
	}
	s.Write8(3, 0xA5)
	if got := s.Read8(3); got != 0xA5 {
		t.Fatalf("readback: %#x", got)
	}
	if s.WriteCount(3) != 1 {
		t.Fatalf("write count: %d", s.WriteCount(3))
	}
}

func TestBitOps(t *testing.T) {
	s := New(4)
	s.Write8(0, 0b0101_0000)
	s.SetBits(0, 0b0000_1010)
	if got := s.Peek(0); got != 0b0101_1010 {
		t.Fatalf("SetBits result: %#b", got)
	}
	s.ClearBits(0, 0b0001_0010)
	if got := s.Peek(0); got != 0b0100_1000 {
		t.Fatalf("ClearBits result: %#b", got)
	}
	if s.WriteCount(0) != 3 {
		t.Fatalf("RMW ops should count as writes: %d", s.WriteCount(0))
	}
}

func TestPokeBypassesAccounting(t *testing.T) {
	s := New(4)
	s.Poke(1, 0xFF)
	s.PokeBits(1, 0x0F, false)
	if got := s.Read8(1); got != 0xF0 {
		t.Fatalf("poked value: %#x", got)
	}
	if s.WriteCount(1) != 0 {
		t.Fatal("Poke must not count as a bus write")
	}
	if len(s.History(0)) != 0 {
		t.Fatal("Poke must not appear in history")
	}
}

func TestHistoryOrderAndBound(t *testing.T) {
	s := New(4)
	for i := 0; i < histSize+10; i++ {
		s.Write8(2, uint8(i))
	}
	h := s.History(0)
	if len(h) != histSize {
		t.Fatalf("history length: %d", len(h))
	}
	// Oldest surviving entry is write 10, newest is the last one.
	if h[0].New != 10 || h[len(h)-1].New != uint8(histSize+9) {
		t.Fatalf("history window wrong: first=%d last=%d", h[0].New, h[len(h)-1].New)
	}

	tail := s.History(3)
	if len(tail) != 3 || tail[2].New != uint8(histSize+9) {
		t.Fatalf("bounded history wrong: %+v", tail)
	}
}

func TestHubPublishOnWrite(t *testing.T) {
	s := New(4)
	h := trace.NewHub(4)
	s.AttachHub(h)
	sub := h.Subscribe(regs.Reg(2))

	s.Write8(2, 7)

	select {
	case ev := <-sub.Channel():
		if ev.Reg != 2 || ev.Old != 0 || ev.New != 7 {
			t.Fatalf("unexpected event: %+v", ev)
		}
	default:
		t.Fatal("no event published")
	}
}

func TestOutOfRangePanics(t *testing.T) {
	s := New(2)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on out-of-range register")
		}
	}()
	s.Read8(5)
}

func TestReset(t *testing.T) {
	s := New(2)
	s.Write8(0, 1)
	s.Reset()
	if s.Peek(0) != 0 || s.WriteCount(0) != 0 || len(s.History(0)) != 0 {
		t.Fatal("Reset incomplete")
	}
}
