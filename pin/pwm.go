package pin

import (
	"avrhal-go/x/cyclex"
	"avrhal-go/x/mathx"
)

// PWMController hands out hardware PWM channels. The pin package only
// knows pins by ID; which timer and compare unit serve a pin, and
// whether the requested frequency can coexist with channels already
// running, is the controller's business.
type PWMController interface {
	// Attach claims the channel for id, programs it for hintHz and
	// starts it at the given duty. Typical failures: Unsupported (no
	// channel for this pin), PinInUse (already claimed), Conflict
	// (shared timer already running at an incompatible frequency),
	// InvalidParams (hint unachievable).
	Attach(id ID, hintHz uint32, duty uint16) (PWMChan, error)
}

// PWMChan is one attached compare channel.
type PWMChan interface {
	SetDuty(d uint16)
	Duty() uint16
	Top() uint16
	Hz() uint32
	Release()
}

// PWM is a pin whose level is driven by a timer compare unit.
type PWM struct {
	s   *State
	gen uint8
	ch  PWMChan
}

func (p PWM) ID() ID { return p.s.id }

// SetDuty sets the compare value. Values above Top clamp to Top
// (always on).
func (p PWM) SetDuty(d uint16) {
	p.s.use(ModePWM, p.gen)
	p.ch.SetDuty(d)
}

// SetDutyPercent sets the duty cycle as 0..100. Values above 100
// clamp.
func (p PWM) SetDutyPercent(pct uint8) {
	p.s.use(ModePWM, p.gen)
	p.ch.SetDuty(mathx.MapU16(uint16(pct), 0, 100, 0, p.ch.Top()))
}

func (p PWM) Duty() uint16 {
	p.s.use(ModePWM, p.gen)
	return p.ch.Duty()
}

func (p PWM) Top() uint16 {
	p.s.use(ModePWM, p.gen)
	return p.ch.Top()
}

// Hz reports the realized output frequency, which may differ from the
// hint passed to IntoPWM.
func (p PWM) Hz() uint32 {
	p.s.use(ModePWM, p.gen)
	return p.ch.Hz()
}

// PeriodNs reports the realized period in nanoseconds.
func (p PWM) PeriodNs() uint64 {
	p.s.use(ModePWM, p.gen)
	return cyclex.PeriodFromHz(p.ch.Hz())
}

// Release detaches the pin from its compare channel and returns it as
// a plain output. The driven level afterwards is whatever PORT held.
// The result is still PWM-capable: IntoPWM may be called again.
func (p PWM) Release() OutputPWM {
	p.s.use(ModePWM, p.gen)
	p.ch.Release()
	g := p.s.advance(ModePWM, p.gen, ModeOutput)
	return OutputPWM{Output{s: p.s, gen: g}}
}

// IntoPWM hands the pin to a compare channel. On error the handle
// stays valid: attachment failed before any pin state changed.
func (o OutputPWM) IntoPWM(ctl PWMController, hintHz uint32, duty uint16) (PWM, error) {
	o.s.use(ModeOutput, o.gen)
	ch, err := ctl.Attach(o.s.id, hintHz, duty)
	if err != nil {
		return PWM{}, err
	}
	g := o.s.advance(ModeOutput, o.gen, ModePWM)
	return PWM{s: o.s, gen: g, ch: ch}, nil
}

// IntoPWM configures the pin as an output and hands it to a compare
// channel. On error DDR is restored and the handle stays valid.
func (u UnconfiguredPWM) IntoPWM(ctl PWMController, hintHz uint32, duty uint16) (PWM, error) {
	u.s.use(ModeUnconfigured, u.gen)
	u.s.bus.SetBits(u.s.pr.DDR, u.s.id.Mask())
	ch, err := ctl.Attach(u.s.id, hintHz, duty)
	if err != nil {
		u.s.bus.ClearBits(u.s.pr.DDR, u.s.id.Mask())
		return PWM{}, err
	}
	g := u.s.advance(ModeUnconfigured, u.gen, ModePWM)
	return PWM{s: u.s, gen: g, ch: ch}, nil
}
