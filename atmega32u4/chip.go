package atmega32u4

import (
	"avrhal-go/delay"
	"avrhal-go/errcode"
	"avrhal-go/pwm"
	"avrhal-go/regs"
	"avrhal-go/x/global"
)

// Chip bundles one ATmega32U4 instance: its pins, its PWM engine and a
// delay source calibrated to its clock.
type Chip struct {
	Pins  Pins
	PWM   *pwm.Engine
	Delay delay.Delay

	bus     regs.Bus
	clockHz uint32
}

// New builds a chip over bus. Use it freely against simulators; for
// the live part go through Take.
func New(bus regs.Bus, clockHz uint32) *Chip {
	return &Chip{
		Pins:    newPins(bus),
		PWM:     pwm.New(bus, Layout(), clockHz),
		Delay:   delay.New(clockHz),
		bus:     bus,
		clockHz: clockHz,
	}
}

func (c *Chip) ClockHz() uint32 { return c.clockHz }
func (c *Chip) Bus() regs.Bus   { return c.bus }

var taken global.Cell[struct{}]

// TakeWith claims the process-wide chip singleton over bus. The second
// call returns Busy: two owners of one register file is always a bug.
// Simulator-backed code that wants several chips uses New.
func TakeWith(bus regs.Bus, clockHz uint32) (*Chip, error) {
	if !taken.TrySet(struct{}{}) {
		return nil, errcode.Busy
	}
	return New(bus, clockHz), nil
}
