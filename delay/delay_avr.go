//go:build avr

package delay

import "avrhal-go/x/cyclex"

func spinUs(clockHz uint32, us uint16) {
	if n, ok := loopsFor(clockHz, us); ok {
		spin(n)
		return
	}
	n := cyclex.LoopsForUs(us, clockHz, cyclesPerSpin)
	for n > 0xffff {
		spin(0xffff)
		n -= 0xffff
	}
	spin(uint16(n))
}

// spin must stay out of line so the tuned counts hold.
//
//go:noinline
func spin(n uint16) {
	for ; n > 0; n-- {
	}
}
