// Package pwm programs timer compare channels for PWM output.
//
// A Layout is pure wiring data: which pin hangs off which timer
// compare channel, and through which registers the timer is clocked
// and shaped. The Engine applies frequency plans on top of a Layout
// and enforces the sharing rule between channels of one timer: the
// timer's clocking is programmed by the first attached channel and
// later channels must plan to the identical divisor or are refused.
package pwm

import (
	"avrhal-go/errcode"
	"avrhal-go/pin"
	"avrhal-go/regs"
)

// Timer names a hardware timer. Values match the datasheet numbering,
// so the set is sparse on chips without a timer 2.
type Timer uint8

const (
	Timer0 Timer = 0
	Timer1 Timer = 1
	Timer3 Timer = 3
	Timer4 Timer = 4
)

func (t Timer) String() string {
	if t > 9 {
		return "timer?"
	}
	return "timer" + string([]byte{'0' + byte(t)})
}

// Channel names a compare unit within a timer.
type Channel uint8

const (
	ChanA Channel = iota
	ChanB
	ChanC
	ChanD

	numChannels
)

func (c Channel) String() string {
	if c >= numChannels {
		return "?"
	}
	return string([]byte{'A' + byte(c)})
}

// RegBits is one step of a register recipe: set Bits in Reg.
type RegBits struct {
	Reg  regs.Reg
	Bits uint8
}

// CSOption is one rung of a timer's prescaler ladder.
type CSOption struct {
	Div  uint16
	Bits uint8 // clock-select field value for this divisor
}

// TimerSpec describes how one timer is shaped and clocked.
type TimerSpec struct {
	Timer Timer

	// WGM is applied once, when the timer starts.
	WGM []RegBits

	// Clock select field.
	CSReg  regs.Reg
	CSMask uint8
	CS     []CSOption // strictly ascending by Div

	// TicksPerPeriod is counter ticks per output period: 256 for fast
	// PWM with an 8-bit top, 510 for phase-correct.
	TicksPerPeriod uint32

	// Top is the full-scale compare value.
	Top uint16
}

// Binding ties one pin to one compare channel.
type Binding struct {
	Pin   pin.ID
	Timer Timer
	Chan  Channel

	// OCR is the compare register driving the duty cycle.
	OCR regs.Reg

	// COM bits connect the pin to the compare unit (clear on match).
	COMReg  regs.Reg
	COMMask uint8

	// Some timers gate each channel behind an extra enable bit.
	// EnableReg is regs.None when the timer has no such bit.
	EnableReg  regs.Reg
	EnableMask uint8
}

// Layout is the full compare-channel wiring of one chip.
type Layout struct {
	Specs    []TimerSpec
	Bindings []Binding
}

// Binding looks up the compare channel serving a pin.
func (l *Layout) Binding(id pin.ID) (*Binding, bool) {
	for i := range l.Bindings {
		if l.Bindings[i].Pin == id {
			return &l.Bindings[i], true
		}
	}
	return nil, false
}

// Spec looks up the description of one timer.
func (l *Layout) Spec(t Timer) (*TimerSpec, bool) {
	for i := range l.Specs {
		if l.Specs[i].Timer == t {
			return &l.Specs[i], true
		}
	}
	return nil, false
}

func layoutErr(msg string) error {
	return &errcode.E{C: errcode.InvalidParams, Op: "pwm.layout", Msg: msg}
}

// Validate checks the layout for wiring mistakes. Engines refuse to
// start on an invalid layout.
func (l *Layout) Validate() error {
	seenTimer := make(map[Timer]bool)
	for i := range l.Specs {
		s := &l.Specs[i]
		if seenTimer[s.Timer] {
			return layoutErr("duplicate spec for " + s.Timer.String())
		}
		seenTimer[s.Timer] = true
		if len(s.CS) == 0 {
			return layoutErr(s.Timer.String() + ": empty prescaler ladder")
		}
		for j := range s.CS {
			if j > 0 && s.CS[j].Div <= s.CS[j-1].Div {
				return layoutErr(s.Timer.String() + ": prescaler ladder not ascending")
			}
			if s.CS[j].Bits == 0 || s.CS[j].Bits&^s.CSMask != 0 {
				return layoutErr(s.Timer.String() + ": clock-select bits outside field")
			}
		}
		if s.TicksPerPeriod == 0 {
			return layoutErr(s.Timer.String() + ": zero ticks per period")
		}
		if s.Top == 0 || s.Top > 0xFF {
			return layoutErr(s.Timer.String() + ": top must fit the 8-bit compare register")
		}
	}

	seenPin := make(map[pin.ID]bool)
	seenChan := make(map[[2]uint8]bool)
	for i := range l.Bindings {
		b := &l.Bindings[i]
		if !seenTimer[b.Timer] {
			return layoutErr(b.Pin.String() + ": bound to unspecified " + b.Timer.String())
		}
		if b.Chan >= numChannels {
			return layoutErr(b.Pin.String() + ": bad channel")
		}
		if seenPin[b.Pin] {
			return layoutErr(b.Pin.String() + ": bound twice")
		}
		seenPin[b.Pin] = true
		tc := [2]uint8{uint8(b.Timer), uint8(b.Chan)}
		if seenChan[tc] {
			return layoutErr(b.Timer.String() + "/" + b.Chan.String() + ": channel bound twice")
		}
		seenChan[tc] = true
	}
	return nil
}
