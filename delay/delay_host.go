//go:build !avr

package delay

import "time"

func spinUs(_ uint32, us uint16) {
	time.Sleep(time.Duration(us) * time.Microsecond)
}
