// Package cyclex holds small clock-domain conversions shared by the
// delay calibrations and the PWM period reporting.
package cyclex

// PeriodFromHz returns a nanosecond period for a requested frequency.
// freqHz==0 is coerced to 1 to avoid division by zero.
func PeriodFromHz(freqHz uint32) uint64 {
	if freqHz == 0 {
		freqHz = 1
	}
	return 1_000_000_000 / uint64(freqHz)
}

// CyclesPerUs returns CPU cycles per microsecond, at least 1.
func CyclesPerUs(clockHz uint32) uint32 {
	c := clockHz / 1_000_000
	if c == 0 {
		c = 1
	}
	return c
}

// LoopsForUs returns how many iterations of a busy loop costing
// cyclesPerLoop cycles approximate us microseconds at clockHz.
func LoopsForUs(us uint16, clockHz, cyclesPerLoop uint32) uint32 {
	if cyclesPerLoop == 0 {
		cyclesPerLoop = 1
	}
	return uint32(us) * CyclesPerUs(clockHz) / cyclesPerLoop
}
