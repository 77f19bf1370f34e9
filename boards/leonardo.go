package boards

import "avrhal-go/pin"

// Leonardo is the Arduino Leonardo: 16 MHz, LED on D13.
var Leonardo = &Board{
	Name:    "leonardo",
	ClockHz: 16_000_000,
	LED:     pin.MakeID(pin.PortC, 7),
	Pins: map[string]pin.ID{
		"D0":  pin.MakeID(pin.PortD, 2),
		"D1":  pin.MakeID(pin.PortD, 3),
		"D2":  pin.MakeID(pin.PortD, 1),
		"D3":  pin.MakeID(pin.PortD, 0),
		"D4":  pin.MakeID(pin.PortD, 4),
		"D5":  pin.MakeID(pin.PortC, 6),
		"D6":  pin.MakeID(pin.PortD, 7),
		"D7":  pin.MakeID(pin.PortE, 6),
		"D8":  pin.MakeID(pin.PortB, 4),
		"D9":  pin.MakeID(pin.PortB, 5),
		"D10": pin.MakeID(pin.PortB, 6),
		"D11": pin.MakeID(pin.PortB, 7),
		"D12": pin.MakeID(pin.PortD, 6),
		"D13": pin.MakeID(pin.PortC, 7),

		"A0": pin.MakeID(pin.PortF, 7),
		"A1": pin.MakeID(pin.PortF, 6),
		"A2": pin.MakeID(pin.PortF, 5),
		"A3": pin.MakeID(pin.PortF, 4),
		"A4": pin.MakeID(pin.PortF, 1),
		"A5": pin.MakeID(pin.PortF, 0),

		"MISO": pin.MakeID(pin.PortB, 3),
		"MOSI": pin.MakeID(pin.PortB, 2),
		"SCK":  pin.MakeID(pin.PortB, 1),

		"RXLED": pin.MakeID(pin.PortB, 0),
		"TXLED": pin.MakeID(pin.PortD, 5),
	},
}

func init() { Register(Leonardo) }
