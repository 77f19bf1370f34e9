// Package atmega32u4 wires the generic pin, pwm and delay machinery to
// the ATmega32U4: its register map, its 26 usable pins and its four
// PWM timers.
//
// New builds a chip over any register bus, which is how tests and host
// tools run it against a simulator. On AVR builds Take claims the one
// memory-mapped instance.
package atmega32u4

import (
	"strings"

	"avrhal-go/pwm"
	"avrhal-go/regs"
)

// Register identifiers, densely numbered so a simulator can back them
// with a small array. The data-space addresses live in addrs.
const (
	PINB regs.Reg = iota
	DDRB
	PORTB
	PINC
	DDRC
	PORTC
	PIND
	DDRD
	PORTD
	PINE
	DDRE
	PORTE
	PINF
	DDRF
	PORTF

	TCCR0A
	TCCR0B
	OCR0A
	OCR0B
	TCCR1A
	TCCR1B
	OCR1AL
	OCR1BL
	TCCR3A
	TCCR3B
	OCR3AL
	TCCR4A
	TCCR4B
	TCCR4C
	TCCR4D
	OCR4A
	OCR4D

	NumRegs
)

var names = [NumRegs]string{
	PINB: "PINB", DDRB: "DDRB", PORTB: "PORTB",
	PINC: "PINC", DDRC: "DDRC", PORTC: "PORTC",
	PIND: "PIND", DDRD: "DDRD", PORTD: "PORTD",
	PINE: "PINE", DDRE: "DDRE", PORTE: "PORTE",
	PINF: "PINF", DDRF: "DDRF", PORTF: "PORTF",

	TCCR0A: "TCCR0A", TCCR0B: "TCCR0B", OCR0A: "OCR0A", OCR0B: "OCR0B",
	TCCR1A: "TCCR1A", TCCR1B: "TCCR1B", OCR1AL: "OCR1AL", OCR1BL: "OCR1BL",
	TCCR3A: "TCCR3A", TCCR3B: "TCCR3B", OCR3AL: "OCR3AL",
	TCCR4A: "TCCR4A", TCCR4B: "TCCR4B", TCCR4C: "TCCR4C", TCCR4D: "TCCR4D",
	OCR4A: "OCR4A", OCR4D: "OCR4D",
}

// addrs maps register identifiers to data-space addresses.
var addrs = [NumRegs]uintptr{
	PINB: 0x23, DDRB: 0x24, PORTB: 0x25,
	PINC: 0x26, DDRC: 0x27, PORTC: 0x28,
	PIND: 0x29, DDRD: 0x2A, PORTD: 0x2B,
	PINE: 0x2C, DDRE: 0x2D, PORTE: 0x2E,
	PINF: 0x2F, DDRF: 0x30, PORTF: 0x31,

	TCCR0A: 0x44, TCCR0B: 0x45, OCR0A: 0x47, OCR0B: 0x48,
	TCCR1A: 0x80, TCCR1B: 0x81, OCR1AL: 0x88, OCR1BL: 0x8A,
	TCCR3A: 0x90, TCCR3B: 0x91, OCR3AL: 0x98,
	TCCR4A: 0xC0, TCCR4B: 0xC1, TCCR4C: 0xC2, TCCR4D: 0xC3,
	OCR4A: 0xCF, OCR4D: 0xD2,
}

// RegName returns the datasheet name of a register.
func RegName(r regs.Reg) string {
	if r >= NumRegs {
		return "?"
	}
	return names[r]
}

// RegByName resolves a datasheet register name, case-insensitively.
func RegByName(name string) (regs.Reg, bool) {
	for r := regs.Reg(0); r < NumRegs; r++ {
		if strings.EqualFold(names[r], name) {
			return r, true
		}
	}
	return 0, false
}

// Prescaler ladders. Timer 4 has a full power-of-two ladder; the
// others share the coarse five-step one.
var (
	cs16 = []pwm.CSOption{
		{Div: 1, Bits: 0x01}, {Div: 8, Bits: 0x02}, {Div: 64, Bits: 0x03},
		{Div: 256, Bits: 0x04}, {Div: 1024, Bits: 0x05},
	}
	cs4 = []pwm.CSOption{
		{Div: 1, Bits: 0x1}, {Div: 2, Bits: 0x2}, {Div: 4, Bits: 0x3},
		{Div: 8, Bits: 0x4}, {Div: 16, Bits: 0x5}, {Div: 32, Bits: 0x6},
		{Div: 64, Bits: 0x7}, {Div: 128, Bits: 0x8}, {Div: 256, Bits: 0x9},
		{Div: 512, Bits: 0xA}, {Div: 1024, Bits: 0xB}, {Div: 2048, Bits: 0xC},
		{Div: 4096, Bits: 0xD}, {Div: 8192, Bits: 0xE}, {Div: 16384, Bits: 0xF},
	}
)

// Layout returns the chip's compare-channel wiring.
//
// Timers 0, 1 and 3 run fast PWM with an 8-bit top (256 ticks per
// period); timer 4 runs phase-correct (510 ticks). Timer 1's third
// compare unit is left unbound. Timer 4 gates each channel behind a
// PWM enable bit next to its COM field.
func Layout() *pwm.Layout {
	return &pwm.Layout{
		Specs: []pwm.TimerSpec{
			{
				Timer:          pwm.Timer0,
				WGM:            []pwm.RegBits{{Reg: TCCR0A, Bits: 0x03}},
				CSReg:          TCCR0B,
				CSMask:         0x07,
				CS:             cs16,
				TicksPerPeriod: 256,
				Top:            255,
			},
			{
				Timer:          pwm.Timer1,
				WGM:            []pwm.RegBits{{Reg: TCCR1A, Bits: 0x01}, {Reg: TCCR1B, Bits: 0x08}},
				CSReg:          TCCR1B,
				CSMask:         0x07,
				CS:             cs16,
				TicksPerPeriod: 256,
				Top:            255,
			},
			{
				Timer:          pwm.Timer3,
				WGM:            []pwm.RegBits{{Reg: TCCR3A, Bits: 0x01}, {Reg: TCCR3B, Bits: 0x08}},
				CSReg:          TCCR3B,
				CSMask:         0x07,
				CS:             cs16,
				TicksPerPeriod: 256,
				Top:            255,
			},
			{
				Timer:          pwm.Timer4,
				WGM:            []pwm.RegBits{{Reg: TCCR4D, Bits: 0x01}},
				CSReg:          TCCR4B,
				CSMask:         0x0F,
				CS:             cs4,
				TicksPerPeriod: 510,
				Top:            255,
			},
		},
		Bindings: []pwm.Binding{
			{Pin: idPB7, Timer: pwm.Timer0, Chan: pwm.ChanA, OCR: OCR0A, COMReg: TCCR0A, COMMask: 0x80, EnableReg: regs.None},
			{Pin: idPD0, Timer: pwm.Timer0, Chan: pwm.ChanB, OCR: OCR0B, COMReg: TCCR0A, COMMask: 0x20, EnableReg: regs.None},
			{Pin: idPB5, Timer: pwm.Timer1, Chan: pwm.ChanA, OCR: OCR1AL, COMReg: TCCR1A, COMMask: 0x80, EnableReg: regs.None},
			{Pin: idPB6, Timer: pwm.Timer1, Chan: pwm.ChanB, OCR: OCR1BL, COMReg: TCCR1A, COMMask: 0x20, EnableReg: regs.None},
			{Pin: idPC6, Timer: pwm.Timer3, Chan: pwm.ChanA, OCR: OCR3AL, COMReg: TCCR3A, COMMask: 0x80, EnableReg: regs.None},
			{Pin: idPC7, Timer: pwm.Timer4, Chan: pwm.ChanA, OCR: OCR4A, COMReg: TCCR4A, COMMask: 0x80, EnableReg: TCCR4A, EnableMask: 0x02},
			{Pin: idPD7, Timer: pwm.Timer4, Chan: pwm.ChanD, OCR: OCR4D, COMReg: TCCR4C, COMMask: 0x08, EnableReg: TCCR4C, EnableMask: 0x01},
		},
	}
}
