// cmd/leonardo-blink/blink.go
//
// Demo sequence shared by the firmware and host builds: a few plain
// blinks on the D13 LED, then the pin moves to its timer compare
// channel and breathes.
package main

import (
	"time"

	"avrhal-go/atmega32u4"
	"avrhal-go/x/fmtx"
	"avrhal-go/x/ramp"
)

const (
	breatheHz    = 490 // lands on divisor 64 at 16 MHz
	breatheMs    = 900
	breatheSteps = 45
)

// breathe blinks, attaches the LED pin to PWM and ramps the duty up
// and down. cycles < 0 runs forever.
func breathe(c *atmega32u4.Chip, cycles int) error {
	led := c.Pins.PC7.IntoOutput() // D13 carries the user LED
	for i := 0; i < 3; i++ {
		led.SetHigh()
		c.Delay.Ms(120)
		led.SetLow()
		c.Delay.Ms(120)
	}

	pw, err := led.IntoPWM(c.PWM, breatheHz, 0)
	if err != nil {
		return err
	}
	fmtx.Printf("led pwm: %d Hz, top %d\n", pw.Hz(), pw.Top())

	tick := func(d time.Duration) bool {
		c.Delay.Us32(uint32(d / time.Microsecond))
		return true
	}
	set := func(level uint16) { pw.SetDuty(level) }
	top := pw.Top()
	for n := 0; cycles < 0 || n < cycles; n++ {
		ramp.StartLinear(0, top, top, breatheMs, breatheSteps, tick, set)
		ramp.StartLinear(top, 0, top, breatheMs, breatheSteps, tick, set)
	}

	out := pw.Release()
	out.SetLow()
	return nil
}
