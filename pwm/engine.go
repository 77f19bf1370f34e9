package pwm

import (
	"avrhal-go/errcode"
	"avrhal-go/pin"
	"avrhal-go/regs"
	"avrhal-go/x/mathx"
)

// Engine owns a chip's compare channels. It implements
// pin.PWMController; pins reach it through IntoPWM.
//
// The engine is single-threaded like the rest of the HAL.
type Engine struct {
	bus     regs.Bus
	clockHz uint32
	layout  *Layout
	timers  map[Timer]*timerState
	chans   map[pin.ID]*channel
}

type timerState struct {
	spec    *TimerSpec
	running bool
	div     uint16
	hz      uint32
	claimed uint8 // one bit per channel
}

// New builds an engine over a validated layout. Panics on an invalid
// layout or a zero clock; both are construction-time wiring bugs.
func New(bus regs.Bus, layout *Layout, clockHz uint32) *Engine {
	if err := layout.Validate(); err != nil {
		panic("pwm: bad layout: " + err.Error())
	}
	if clockHz == 0 {
		panic("pwm: zero clock")
	}
	e := &Engine{
		bus:     bus,
		clockHz: clockHz,
		layout:  layout,
		timers:  make(map[Timer]*timerState, len(layout.Specs)),
		chans:   make(map[pin.ID]*channel, len(layout.Bindings)),
	}
	for i := range layout.Specs {
		s := &layout.Specs[i]
		e.timers[s.Timer] = &timerState{spec: s}
	}
	return e
}

// ClockHz reports the CPU clock the engine plans against.
func (e *Engine) ClockHz() uint32 { return e.clockHz }

// Plan reports what Attach would program for id at hintHz, without
// touching any register or claim.
func (e *Engine) Plan(id pin.ID, hintHz uint32) (Plan, error) {
	b, ok := e.layout.Binding(id)
	if !ok {
		return Plan{}, errcode.Unsupported
	}
	return PlanFor(e.timers[b.Timer].spec, e.clockHz, hintHz)
}

// Attach claims the compare channel serving id, starts its timer if
// needed and connects the pin at the given duty.
//
// Checks run before any register write, so a refused attach leaves
// running channels untouched. Failures: Unsupported for a pin with no
// compare channel, PinInUse for an already claimed channel, Conflict
// when the shared timer is running on a different divisor than the
// hint plans to, InvalidParams for an unachievable hint.
func (e *Engine) Attach(id pin.ID, hintHz uint32, duty uint16) (pin.PWMChan, error) {
	b, ok := e.layout.Binding(id)
	if !ok {
		return nil, errcode.Unsupported
	}
	st := e.timers[b.Timer]
	bit := uint8(1) << uint8(b.Chan)
	if st.claimed&bit != 0 {
		return nil, errcode.PinInUse
	}
	plan, err := PlanFor(st.spec, e.clockHz, hintHz)
	if err != nil {
		return nil, err
	}
	// Two hints are compatible iff they select the same divisor.
	if st.running && plan.Div != st.div {
		return nil, errcode.Conflict
	}

	if !st.running {
		for _, w := range st.spec.WGM {
			e.bus.SetBits(w.Reg, w.Bits)
		}
		e.bus.SetBits(st.spec.CSReg, plan.CSBits)
		st.running = true
		st.div = plan.Div
		st.hz = plan.RealizedHz
	}
	e.bus.SetBits(b.COMReg, b.COMMask)
	if b.EnableReg != regs.None {
		e.bus.SetBits(b.EnableReg, b.EnableMask)
	}
	d := mathx.Min(duty, st.spec.Top)
	e.bus.Write8(b.OCR, uint8(d))
	st.claimed |= bit

	ch := &channel{e: e, b: b, st: st, duty: d}
	e.chans[id] = ch
	return ch, nil
}

// TimerHz reports the realized frequency of a running timer.
func (e *Engine) TimerHz(t Timer) (uint32, bool) {
	st, ok := e.timers[t]
	if !ok || !st.running {
		return 0, false
	}
	return st.hz, true
}

// ChannelStatus is one row of Status.
type ChannelStatus struct {
	Pin     pin.ID
	Timer   Timer
	Chan    Channel
	Claimed bool
	Hz      uint32
	Duty    uint16
}

// Status lists every compare channel of the layout with its claim
// state. Rows follow the layout's binding order.
func (e *Engine) Status() []ChannelStatus {
	out := make([]ChannelStatus, 0, len(e.layout.Bindings))
	for i := range e.layout.Bindings {
		b := &e.layout.Bindings[i]
		cs := ChannelStatus{Pin: b.Pin, Timer: b.Timer, Chan: b.Chan}
		if ch, ok := e.chans[b.Pin]; ok {
			cs.Claimed = true
			cs.Hz = ch.Hz()
			cs.Duty = ch.Duty()
		}
		out = append(out, cs)
	}
	return out
}

// channel is one attached compare channel. Implements pin.PWMChan.
type channel struct {
	e        *Engine
	b        *Binding
	st       *timerState
	duty     uint16
	released bool
}

// SetDuty writes the compare register. Values above Top clamp to Top,
// which with clear-on-match output means constantly on.
func (c *channel) SetDuty(d uint16) {
	if c.released {
		return
	}
	d = mathx.Min(d, c.st.spec.Top)
	c.duty = d
	c.e.bus.Write8(c.b.OCR, uint8(d))
}

func (c *channel) Duty() uint16 { return c.duty }
func (c *channel) Top() uint16  { return c.st.spec.Top }

func (c *channel) Hz() uint32 {
	if c.released {
		return 0
	}
	return c.st.hz
}

// Release disconnects the pin from the compare unit, zeroes the
// compare register and gives the claim back. Releasing the last
// channel of a timer stops its clock.
func (c *channel) Release() {
	if c.released {
		return
	}
	c.released = true
	c.e.bus.ClearBits(c.b.COMReg, c.b.COMMask)
	if c.b.EnableReg != regs.None {
		c.e.bus.ClearBits(c.b.EnableReg, c.b.EnableMask)
	}
	c.e.bus.Write8(c.b.OCR, 0)
	c.st.claimed &^= uint8(1) << uint8(c.b.Chan)
	if c.st.claimed == 0 {
		c.e.bus.ClearBits(c.st.spec.CSReg, c.st.spec.CSMask)
		c.st.running = false
	}
	delete(c.e.chans, c.b.Pin)
}
