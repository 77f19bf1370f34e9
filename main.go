// main.go
//
// Quick tour of the HAL against the register simulator. Walks a pin
// through its modes, batches a port write, provokes a shared-timer
// conflict and prints the register history at the end.
package main

import (
	"fmt"

	"avrhal-go/atmega32u4"
	"avrhal-go/boards"
	"avrhal-go/pin"
	"avrhal-go/regs/regsim"
	"avrhal-go/regs/trace"
)

func main() {
	sim := regsim.New(int(atmega32u4.NumRegs))
	hub := trace.NewHub(16)
	sim.AttachHub(hub)
	c := atmega32u4.New(sim, boards.Leonardo.ClockHz)
	fmt.Printf("%s at %d Hz (simulated)\n\n", boards.Leonardo.Name, c.ClockHz())

	// Digital output on the LED pin.
	led := c.Pins.PC7.IntoOutput()
	led.SetHigh()
	fmt.Printf("led high: PORTC=%#02x\n", sim.Peek(atmega32u4.PORTC))
	led.Toggle()
	fmt.Printf("led toggled: PORTC=%#02x\n", sim.Peek(atmega32u4.PORTC))

	// Four pins on port B written in one register access.
	group := []pin.PortPin{
		c.Pins.PB0.IntoOutput().DowngradePort(),
		c.Pins.PB1.IntoOutput().DowngradePort(),
		c.Pins.PB2.IntoOutput().DowngradePort(),
		c.Pins.PB3.IntoOutput().DowngradePort(),
	}
	before := sim.WriteCount(atmega32u4.PORTB)
	if err := pin.SetLevels(0b0101, group...); err != nil {
		fmt.Println("group write:", err)
	}
	fmt.Printf("group write: PORTB=%#02x in %d access\n",
		sim.Peek(atmega32u4.PORTB), sim.WriteCount(atmega32u4.PORTB)-before)

	// Pulled-up input with the line driven from outside.
	btn := c.Pins.PF4.IntoPullUpInput()
	sim.PokeBits(atmega32u4.PINF, btn.ID().Mask(), true)
	fmt.Printf("button idle: high=%t\n", btn.IsHigh())
	sim.PokeBits(atmega32u4.PINF, btn.ID().Mask(), false)
	fmt.Printf("button pressed: low=%t\n\n", btn.IsLow())

	// Two channels of Timer 1 must agree on the divisor.
	pb5, err := c.Pins.PB5.IntoOutput().IntoPWM(c.PWM, 62500, 128)
	if err != nil {
		fmt.Println("attach PB5:", err)
		return
	}
	fmt.Printf("PB5 attached: %d Hz\n", pb5.Hz())

	// A different rate on the same timer is refused; the handle stays
	// usable and a matching rate goes through.
	pb6out := c.Pins.PB6.IntoOutput()
	if _, err := pb6out.IntoPWM(c.PWM, 245, 64); err != nil {
		fmt.Println("attach PB6 at 245 Hz:", err)
	}
	pb6, err := pb6out.IntoPWM(c.PWM, 62500, 64)
	if err != nil {
		fmt.Println("attach PB6:", err)
		return
	}
	fmt.Printf("PB6 attached at the shared rate: %d Hz\n", pb6.Hz())
	if ev, ok := hub.Retained(atmega32u4.TCCR1B); ok {
		fmt.Printf("TCCR1B last write: %#02x -> %#02x\n", ev.Old, ev.New)
	}
	fmt.Println()

	fmt.Println("recent register writes:")
	for _, ev := range sim.History(8) {
		fmt.Printf("  %-7s %#02x -> %#02x\n", atmega32u4.RegName(ev.Reg), ev.Old, ev.New)
	}
}
