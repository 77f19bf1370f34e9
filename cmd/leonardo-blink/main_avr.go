// cmd/leonardo-blink/main_avr.go

//go:build avr

package main

import (
	"avrhal-go/atmega32u4"
	"avrhal-go/boards"
	"avrhal-go/x/fmtx"
)

func main() {
	c, err := atmega32u4.Take(boards.Default.ClockHz)
	if err != nil {
		// Nothing sane to do without the chip.
		for {
		}
	}
	fmtx.Printf("%s up at %d Hz\n", boards.Default.Name, c.ClockHz())
	if err := breathe(c, -1); err != nil {
		fmtx.Printf("pwm setup failed: %v\n", err)
	}
	for {
	}
}
