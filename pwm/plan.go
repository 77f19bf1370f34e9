package pwm

import (
	"avrhal-go/errcode"
	"avrhal-go/x/mathx"
)

// Plan is a concrete clocking choice for one timer.
type Plan struct {
	Div        uint16
	CSBits     uint8
	RealizedHz uint32
}

// RealizedHz computes the output frequency of a timer clocked at
// clockHz through divisor div, rounded to the nearest integer.
func RealizedHz(clockHz uint32, div uint16, ticksPerPeriod uint32) uint32 {
	return mathx.RoundDiv(clockHz, uint32(div)*ticksPerPeriod)
}

// PlanFor picks the prescaler for a frequency hint: the largest
// divisor whose realized frequency still meets or exceeds hintHz.
// hintHz==0 asks for the slowest output the timer can produce. The
// realized frequency is usually not the hint; callers read it from
// the returned plan. Returns InvalidParams when even the smallest
// divisor falls short of the hint.
func PlanFor(spec *TimerSpec, clockHz, hintHz uint32) (Plan, error) {
	if clockHz == 0 {
		return Plan{}, errcode.InvalidParams
	}
	for i := len(spec.CS) - 1; i >= 0; i-- {
		opt := spec.CS[i]
		hz := RealizedHz(clockHz, opt.Div, spec.TicksPerPeriod)
		if hz == 0 {
			// Rounds to below half a hertz; not a usable output.
			continue
		}
		if hintHz == 0 || hz >= hintHz {
			return Plan{Div: opt.Div, CSBits: opt.Bits, RealizedHz: hz}, nil
		}
	}
	return Plan{}, errcode.InvalidParams
}
