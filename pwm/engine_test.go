package pwm

import (
	"testing"

	"avrhal-go/errcode"
	"avrhal-go/pin"
	"avrhal-go/regs"
	"avrhal-go/regs/regsim"
)

// Synthetic two-timer layout: a fast 8-bit timer with two plain
// channels, and a phase-correct one whose channel sits behind an
// extra enable bit.
const (
	rTCA = iota // fast timer waveform + COM bits
	rTCB        // fast timer clock select
	rOCA
	rOCB
	rXA // phase timer COM bits
	rXB // phase timer clock select
	rXC // phase timer channel enable
	rXD // phase timer waveform
	rXOC
	numEngineRegs
)

var (
	pinA = pin.MakeID(pin.PortB, 7)
	pinB = pin.MakeID(pin.PortD, 0)
	pinC = pin.MakeID(pin.PortD, 7)
)

func testLayout() *Layout {
	return &Layout{
		Specs: []TimerSpec{
			{
				Timer:          Timer0,
				WGM:            []RegBits{{Reg: rTCA, Bits: 0x03}},
				CSReg:          rTCB,
				CSMask:         0x07,
				CS:             []CSOption{{1, 0x01}, {8, 0x02}, {64, 0x03}, {256, 0x04}, {1024, 0x05}},
				TicksPerPeriod: 256,
				Top:            255,
			},
			{
				Timer:          Timer4,
				WGM:            []RegBits{{Reg: rXD, Bits: 0x01}},
				CSReg:          rXB,
				CSMask:         0x0F,
				CS:             []CSOption{{1, 0x1}, {64, 0x7}, {16384, 0xF}},
				TicksPerPeriod: 510,
				Top:            255,
			},
		},
		Bindings: []Binding{
			{Pin: pinA, Timer: Timer0, Chan: ChanA, OCR: rOCA, COMReg: rTCA, COMMask: 0x80, EnableReg: regs.None},
			{Pin: pinB, Timer: Timer0, Chan: ChanB, OCR: rOCB, COMReg: rTCA, COMMask: 0x20, EnableReg: regs.None},
			{Pin: pinC, Timer: Timer4, Chan: ChanD, OCR: rXOC, COMReg: rXA, COMMask: 0x80, EnableReg: rXC, EnableMask: 0x01},
		},
	}
}

func newEngine(t *testing.T) (*regsim.Sim, *Engine) {
	t.Helper()
	sim := regsim.New(numEngineRegs)
	return sim, New(sim, testLayout(), 16_000_000)
}

func wantEngReg(t *testing.T, sim *regsim.Sim, r regs.Reg, want uint8) {
	t.Helper()
	if got := sim.Peek(r); got != want {
		t.Fatalf("reg %d = %#02x, want %#02x", r, got, want)
	}
}

func TestAttachProgramsTimer(t *testing.T) {
	sim, e := newEngine(t)

	ch, err := e.Attach(pinA, 500, 100)
	if err != nil {
		t.Fatalf("Attach: %v", err)
	}
	wantEngReg(t, sim, rTCA, 0x83) // waveform | COM A
	wantEngReg(t, sim, rTCB, 0x03) // /64
	wantEngReg(t, sim, rOCA, 100)
	if ch.Hz() != 977 || ch.Top() != 255 || ch.Duty() != 100 {
		t.Fatalf("channel hz=%d top=%d duty=%d", ch.Hz(), ch.Top(), ch.Duty())
	}
	if hz, ok := e.TimerHz(Timer0); !ok || hz != 977 {
		t.Fatalf("TimerHz = %d, %v", hz, ok)
	}
}

func TestSecondChannelSharesTimer(t *testing.T) {
	sim, e := newEngine(t)

	a, err := e.Attach(pinA, 500, 10)
	if err != nil {
		t.Fatalf("Attach A: %v", err)
	}
	// Different hint, same divisor selection: compatible.
	b, err := e.Attach(pinB, 977, 20)
	if err != nil {
		t.Fatalf("Attach B: %v", err)
	}
	if a.Hz() != 977 || b.Hz() != 977 {
		t.Fatalf("hz %d/%d, want 977/977", a.Hz(), b.Hz())
	}
	wantEngReg(t, sim, rTCA, 0xA3) // both COM fields
	wantEngReg(t, sim, rOCB, 20)
	if n := sim.WriteCount(rTCB); n != 1 {
		t.Fatalf("clock select written %d times, want 1", n)
	}
}

func TestConflictLeavesRunningTimerUntouched(t *testing.T) {
	sim, e := newEngine(t)

	if _, err := e.Attach(pinA, 500, 10); err != nil {
		t.Fatalf("Attach A: %v", err)
	}
	// 5 kHz needs /8; the timer runs on /64.
	_, err := e.Attach(pinB, 5000, 20)
	if errcode.Of(err) != errcode.Conflict {
		t.Fatalf("Attach B: %v, want conflict", err)
	}
	wantEngReg(t, sim, rTCA, 0x83)
	wantEngReg(t, sim, rTCB, 0x03)
	if n := sim.WriteCount(rOCB); n != 0 {
		t.Fatalf("refused attach wrote OCR %d times", n)
	}

	// A compatible hint still goes through afterwards.
	if _, err := e.Attach(pinB, 900, 20); err != nil {
		t.Fatalf("Attach B after conflict: %v", err)
	}
}

func TestTimersAreIndependent(t *testing.T) {
	_, e := newEngine(t)

	if _, err := e.Attach(pinA, 62_500, 0); err != nil {
		t.Fatalf("Attach fast: %v", err)
	}
	// Wildly different frequency on the other timer: no conflict.
	ch, err := e.Attach(pinC, 0, 0)
	if err != nil {
		t.Fatalf("Attach phase: %v", err)
	}
	if ch.Hz() != 2 {
		t.Fatalf("phase timer hz = %d, want 2", ch.Hz())
	}
}

func TestPinInUse(t *testing.T) {
	_, e := newEngine(t)

	if _, err := e.Attach(pinA, 0, 0); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if _, err := e.Attach(pinA, 0, 0); errcode.Of(err) != errcode.PinInUse {
		t.Fatalf("second Attach: %v, want pin_in_use", err)
	}
}

func TestUnboundPin(t *testing.T) {
	_, e := newEngine(t)
	if _, err := e.Attach(pin.MakeID(pin.PortF, 0), 0, 0); errcode.Of(err) != errcode.Unsupported {
		t.Fatalf("Attach: %v, want unsupported", err)
	}
}

func TestUnachievableHint(t *testing.T) {
	sim, e := newEngine(t)
	if _, err := e.Attach(pinA, 100_000, 0); errcode.Of(err) != errcode.InvalidParams {
		t.Fatalf("Attach: %v, want invalid_params", err)
	}
	for r := regs.Reg(0); r < numEngineRegs; r++ {
		if n := sim.WriteCount(r); n != 0 {
			t.Fatalf("refused attach wrote reg %d", r)
		}
	}
}

func TestReleaseStopsClockWithLastChannel(t *testing.T) {
	sim, e := newEngine(t)

	a, _ := e.Attach(pinA, 0, 50)
	b, _ := e.Attach(pinB, 0, 60)
	wantEngReg(t, sim, rTCB, 0x05) // /1024

	a.Release()
	wantEngReg(t, sim, rTCA, 0x23) // COM A gone, waveform + COM B stay
	wantEngReg(t, sim, rOCA, 0)
	wantEngReg(t, sim, rTCB, 0x05) // still clocked for B
	if _, ok := e.TimerHz(Timer0); !ok {
		t.Fatal("timer reported stopped while B is attached")
	}

	b.Release()
	wantEngReg(t, sim, rTCB, 0x00)
	if _, ok := e.TimerHz(Timer0); ok {
		t.Fatal("timer reported running after last release")
	}

	// A stopped timer accepts a new frequency.
	ch, err := e.Attach(pinA, 62_500, 0)
	if err != nil {
		t.Fatalf("re-attach: %v", err)
	}
	if ch.Hz() != 62_500 {
		t.Fatalf("hz = %d, want 62500", ch.Hz())
	}
	wantEngReg(t, sim, rTCB, 0x01)
}

func TestEnableBitLifecycle(t *testing.T) {
	sim, e := newEngine(t)

	ch, err := e.Attach(pinC, 400, 30)
	if err != nil {
		t.Fatalf("Attach: %v", err)
	}
	wantEngReg(t, sim, rXD, 0x01)
	wantEngReg(t, sim, rXA, 0x80)
	wantEngReg(t, sim, rXC, 0x01)
	wantEngReg(t, sim, rXB, 0x07) // /64
	wantEngReg(t, sim, rXOC, 30)

	ch.Release()
	wantEngReg(t, sim, rXA, 0x00)
	wantEngReg(t, sim, rXC, 0x00)
	wantEngReg(t, sim, rXB, 0x00)
	wantEngReg(t, sim, rXOC, 0)
}

func TestDutyClamps(t *testing.T) {
	sim, e := newEngine(t)

	ch, err := e.Attach(pinA, 0, 1000)
	if err != nil {
		t.Fatalf("Attach: %v", err)
	}
	wantEngReg(t, sim, rOCA, 255)
	if ch.Duty() != 255 {
		t.Fatalf("Duty = %d, want 255", ch.Duty())
	}
	ch.SetDuty(300)
	wantEngReg(t, sim, rOCA, 255)
	ch.SetDuty(0)
	wantEngReg(t, sim, rOCA, 0)
	if ch.Duty() != 0 {
		t.Fatalf("Duty = %d, want 0", ch.Duty())
	}
}

func TestSetDutyRepeatIsIdempotent(t *testing.T) {
	sim, e := newEngine(t)

	ch, err := e.Attach(pinA, 0, 80)
	if err != nil {
		t.Fatalf("Attach: %v", err)
	}
	before := sim.WriteCount(rOCA)
	ch.SetDuty(80)
	ch.SetDuty(80)
	wantEngReg(t, sim, rOCA, 80)
	// Each call writes; none changes the outcome.
	if n := sim.WriteCount(rOCA) - before; n != 2 {
		t.Fatalf("duty writes = %d, want 2", n)
	}
}

func TestPlanIsDryRun(t *testing.T) {
	sim, e := newEngine(t)

	p, err := e.Plan(pinA, 500)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if p.Div != 64 || p.RealizedHz != 977 {
		t.Fatalf("plan div=%d hz=%d, want 64/977", p.Div, p.RealizedHz)
	}
	for r := regs.Reg(0); r < numEngineRegs; r++ {
		if n := sim.WriteCount(r); n != 0 {
			t.Fatalf("Plan wrote reg %d", r)
		}
	}
	if _, err := e.Plan(pin.MakeID(pin.PortF, 0), 500); errcode.Of(err) != errcode.Unsupported {
		t.Fatalf("Plan unbound: %v, want unsupported", err)
	}
}

func TestStatus(t *testing.T) {
	_, e := newEngine(t)

	if _, err := e.Attach(pinB, 500, 40); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	st := e.Status()
	if len(st) != 3 {
		t.Fatalf("status rows = %d, want 3", len(st))
	}
	if st[0].Pin != pinA || st[0].Claimed {
		t.Fatalf("row 0 = %+v, want unclaimed %v", st[0], pinA)
	}
	if !st[1].Claimed || st[1].Hz != 977 || st[1].Duty != 40 {
		t.Fatalf("row 1 = %+v", st[1])
	}
}

func TestValidateCatchesWiringMistakes(t *testing.T) {
	cases := map[string]func(l *Layout){
		"duplicate pin": func(l *Layout) {
			l.Bindings = append(l.Bindings, Binding{Pin: pinA, Timer: Timer0, Chan: ChanC, OCR: rOCA, COMReg: rTCA, COMMask: 0x08, EnableReg: regs.None})
		},
		"duplicate channel": func(l *Layout) {
			l.Bindings = append(l.Bindings, Binding{Pin: pin.MakeID(pin.PortF, 1), Timer: Timer0, Chan: ChanA, OCR: rOCA, COMReg: rTCA, COMMask: 0x08, EnableReg: regs.None})
		},
		"unspecified timer": func(l *Layout) {
			l.Bindings[0].Timer = Timer3
		},
		"ladder not ascending": func(l *Layout) {
			l.Specs[0].CS[2].Div = 8
		},
		"empty ladder": func(l *Layout) {
			l.Specs[0].CS = nil
		},
		"clock bits outside field": func(l *Layout) {
			l.Specs[0].CS[0].Bits = 0x80
		},
		"oversized top": func(l *Layout) {
			l.Specs[0].Top = 1023
		},
	}
	for name, corrupt := range cases {
		t.Run(name, func(t *testing.T) {
			l := testLayout()
			corrupt(l)
			if err := l.Validate(); errcode.Of(err) != errcode.InvalidParams {
				t.Fatalf("Validate: %v, want invalid_params", err)
			}
		})
	}
	if err := testLayout().Validate(); err != nil {
		t.Fatalf("clean layout rejected: %v", err)
	}
}

func TestNewPanicsOnBadLayout(t *testing.T) {
	l := testLayout()
	l.Bindings[1].Pin = pinA
	defer func() {
		if recover() == nil {
			t.Fatal("no panic on invalid layout")
		}
	}()
	New(regsim.New(numEngineRegs), l, 16_000_000)
}
