// Package delay provides busy-wait delays calibrated per CPU clock.
//
// Loop counts are tuned for the 4-cycle spin on AVR builds; host
// builds sleep instead, so demos behave sensibly under an operating
// system.
package delay

// chunk keeps per-call loop counts inside the 16-bit spin counters.
const chunk = 0xfff

const cyclesPerSpin = 4

// Delay issues microsecond and millisecond busy-waits for one clock.
type Delay struct {
	clockHz uint32
}

func New(clockHz uint32) Delay { return Delay{clockHz: clockHz} }

func (d Delay) ClockHz() uint32 { return d.clockHz }

// Us waits for us microseconds.
func (d Delay) Us(us uint16) { d.Us32(uint32(us)) }

// Us32 waits for us microseconds, issued in chunks.
func (d Delay) Us32(us uint32) {
	for us > chunk {
		spinUs(d.clockHz, chunk)
		us -= chunk
	}
	if us > 0 {
		spinUs(d.clockHz, uint16(us))
	}
}

// Ms waits for ms milliseconds.
func (d Delay) Ms(ms uint16) { d.Us32(uint32(ms) * 1000) }

// loopsFor returns the tuned spin count for one chunk. The second
// result is false for clocks without a tuned entry; callers fall back
// to a generic estimate. Tuned counts subtract call overhead, so very
// short delays spin zero times.
func loopsFor(clockHz uint32, us uint16) (uint16, bool) {
	switch clockHz {
	case 24_000_000:
		if us == 0 {
			return 0, true
		}
		return us*6 - 5, true
	case 20_000_000:
		if us <= 1 {
			return 0, true
		}
		return us*5 - 7, true
	case 16_000_000:
		if us <= 1 {
			return 0, true
		}
		return us*4 - 5, true
	case 12_000_000:
		if us <= 1 {
			return 0, true
		}
		return us*3 - 5, true
	case 8_000_000:
		if us <= 2 {
			return 0, true
		}
		return us*2 - 4, true
	case 1_000_000:
		if us <= 25 {
			return 0, true
		}
		return (us - 22) >> 2, true
	}
	return 0, false
}
