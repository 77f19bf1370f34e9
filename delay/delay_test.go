package delay

import (
	"testing"
	"time"
)

func TestLoopsForTunedClocks(t *testing.T) {
	cases := []struct {
		name    string
		clockHz uint32
		us      uint16
		n       uint16
		tuned   bool
	}{
		{"16MHz typical", 16_000_000, 100, 395, true},
		{"16MHz too short", 16_000_000, 1, 0, true},
		{"24MHz minimum", 24_000_000, 1, 1, true},
		{"24MHz zero", 24_000_000, 0, 0, true},
		{"8MHz short", 8_000_000, 3, 2, true},
		{"1MHz first nonzero", 1_000_000, 26, 1, true},
		{"1MHz all overhead", 1_000_000, 25, 0, true},
		{"untuned clock", 2_000_000, 100, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n, tuned := loopsFor(tc.clockHz, tc.us)
			if n != tc.n || tuned != tc.tuned {
				t.Fatalf("loopsFor(%d, %d) = %d, %v, want %d, %v",
					tc.clockHz, tc.us, n, tuned, tc.n, tc.tuned)
			}
		})
	}
}

func TestUsSleepsAtLeast(t *testing.T) {
	d := New(16_000_000)
	start := time.Now()
	d.Us(500)
	if el := time.Since(start); el < 500*time.Microsecond {
		t.Fatalf("elapsed %v, want >= 500us", el)
	}
}

func TestMsConvertsToMicroseconds(t *testing.T) {
	d := New(16_000_000)
	start := time.Now()
	d.Ms(2)
	if el := time.Since(start); el < 2*time.Millisecond {
		t.Fatalf("elapsed %v, want >= 2ms", el)
	}
}

func TestZeroDelayReturns(t *testing.T) {
	d := New(16_000_000)
	d.Us(0)
	d.Us32(0)
	d.Ms(0)
}
