// cmd/leonardo-blink/main_host.go

//go:build !avr

package main

import (
	"os"

	"avrhal-go/atmega32u4"
	"avrhal-go/boards"
	"avrhal-go/regs"
	"avrhal-go/regs/regsim"
	"avrhal-go/x/fmtx"
)

// Host builds run the same sequence against the register simulator,
// then dump write counts so the timer traffic can be eyeballed.
func main() {
	sim := regsim.New(int(atmega32u4.NumRegs))
	c := atmega32u4.New(sim, boards.Default.ClockHz)

	fmtx.Printf("%s (simulated) at %d Hz\n", boards.Default.Name, c.ClockHz())
	if err := breathe(c, 1); err != nil {
		fmtx.Fprintf(os.Stderr, "pwm setup failed: %v\n", err)
		os.Exit(1)
	}

	fmtx.Print("register writes:\n")
	for r := regs.Reg(0); r < atmega32u4.NumRegs; r++ {
		if n := sim.WriteCount(r); n > 0 {
			fmtx.Printf("  %-7s %d\n", atmega32u4.RegName(r), n)
		}
	}
}
