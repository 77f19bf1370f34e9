package atmega32u4

import (
	"avrhal-go/pin"
	"avrhal-go/regs"
)

var (
	prB = pin.PortRegs{PIN: PINB, DDR: DDRB, PORT: PORTB}
	prC = pin.PortRegs{PIN: PINC, DDR: DDRC, PORT: PORTC}
	prD = pin.PortRegs{PIN: PIND, DDR: DDRD, PORT: PORTD}
	prE = pin.PortRegs{PIN: PINE, DDR: DDRE, PORT: PORTE}
	prF = pin.PortRegs{PIN: PINF, DDR: DDRF, PORT: PORTF}
)

// Identities of the compare-channel pins, shared with Layout.
var (
	idPB5 = pin.MakeID(pin.PortB, 5)
	idPB6 = pin.MakeID(pin.PortB, 6)
	idPB7 = pin.MakeID(pin.PortB, 7)
	idPC6 = pin.MakeID(pin.PortC, 6)
	idPC7 = pin.MakeID(pin.PortC, 7)
	idPD0 = pin.MakeID(pin.PortD, 0)
	idPD7 = pin.MakeID(pin.PortD, 7)
)

// Pins is the chip's full pin set, minted once per chip. Fields wired
// to a compare channel carry the PWM-capable handle type; the rest
// cannot be asked for PWM at all.
type Pins struct {
	PB0 pin.Unconfigured
	PB1 pin.Unconfigured
	PB2 pin.Unconfigured
	PB3 pin.Unconfigured
	PB4 pin.Unconfigured
	PB5 pin.UnconfiguredPWM
	PB6 pin.UnconfiguredPWM
	PB7 pin.UnconfiguredPWM

	PC6 pin.UnconfiguredPWM
	PC7 pin.UnconfiguredPWM

	PD0 pin.UnconfiguredPWM
	PD1 pin.Unconfigured
	PD2 pin.Unconfigured
	PD3 pin.Unconfigured
	PD4 pin.Unconfigured
	PD5 pin.Unconfigured
	PD6 pin.Unconfigured
	PD7 pin.UnconfiguredPWM

	PE2 pin.Unconfigured
	PE6 pin.Unconfigured

	PF0 pin.Unconfigured
	PF1 pin.Unconfigured
	PF4 pin.Unconfigured
	PF5 pin.Unconfigured
	PF6 pin.Unconfigured
	PF7 pin.Unconfigured
}

func newPins(bus regs.Bus) Pins {
	return Pins{
		PB0: pin.NewUnconfigured(bus, pin.MakeID(pin.PortB, 0), prB),
		PB1: pin.NewUnconfigured(bus, pin.MakeID(pin.PortB, 1), prB),
		PB2: pin.NewUnconfigured(bus, pin.MakeID(pin.PortB, 2), prB),
		PB3: pin.NewUnconfigured(bus, pin.MakeID(pin.PortB, 3), prB),
		PB4: pin.NewUnconfigured(bus, pin.MakeID(pin.PortB, 4), prB),
		PB5: pin.NewUnconfiguredPWM(bus, idPB5, prB),
		PB6: pin.NewUnconfiguredPWM(bus, idPB6, prB),
		PB7: pin.NewUnconfiguredPWM(bus, idPB7, prB),

		PC6: pin.NewUnconfiguredPWM(bus, idPC6, prC),
		PC7: pin.NewUnconfiguredPWM(bus, idPC7, prC),

		PD0: pin.NewUnconfiguredPWM(bus, idPD0, prD),
		PD1: pin.NewUnconfigured(bus, pin.MakeID(pin.PortD, 1), prD),
		PD2: pin.NewUnconfigured(bus, pin.MakeID(pin.PortD, 2), prD),
		PD3: pin.NewUnconfigured(bus, pin.MakeID(pin.PortD, 3), prD),
		PD4: pin.NewUnconfigured(bus, pin.MakeID(pin.PortD, 4), prD),
		PD5: pin.NewUnconfigured(bus, pin.MakeID(pin.PortD, 5), prD),
		PD6: pin.NewUnconfigured(bus, pin.MakeID(pin.PortD, 6), prD),
		PD7: pin.NewUnconfiguredPWM(bus, idPD7, prD),

		PE2: pin.NewUnconfigured(bus, pin.MakeID(pin.PortE, 2), prE),
		PE6: pin.NewUnconfigured(bus, pin.MakeID(pin.PortE, 6), prE),

		PF0: pin.NewUnconfigured(bus, pin.MakeID(pin.PortF, 0), prF),
		PF1: pin.NewUnconfigured(bus, pin.MakeID(pin.PortF, 1), prF),
		PF4: pin.NewUnconfigured(bus, pin.MakeID(pin.PortF, 4), prF),
		PF5: pin.NewUnconfigured(bus, pin.MakeID(pin.PortF, 5), prF),
		PF6: pin.NewUnconfigured(bus, pin.MakeID(pin.PortF, 6), prF),
		PF7: pin.NewUnconfigured(bus, pin.MakeID(pin.PortF, 7), prF),
	}
}
