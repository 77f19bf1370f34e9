package mathx

import "testing"

func TestClamp(t *testing.T) {
	if Clamp(300, 0, 255) != 255 {
		t.Fatal("clamp high failed")
	}
	if Clamp(-3, 0, 255) != 0 {
		t.Fatal("clamp low failed")
	}
	if Clamp(128, 0, 255) != 128 {
		t.Fatal("clamp mid failed")
	}
	// Swapped bounds are tolerated.
	if Clamp(10, 255, 0) != 10 {
		t.Fatal("clamp swapped bounds failed")
	}
}

func TestBetween(t *testing.T) {
	if !Between(5, 0, 10) || Between(11, 0, 10) || !Between(5, 10, 0) {
		t.Fatal("Between failed")
	}
}

func TestIntDiv(t *testing.T) {
	if CeilDiv(uint32(10), 3) != 4 || CeilDiv(uint32(9), 3) != 3 {
		t.Fatal("CeilDiv failed")
	}
	if CeilDiv(uint32(1), 0) != 0 {
		t.Fatal("CeilDiv b==0 should be 0")
	}
	if RoundDiv(uint32(7), 2) != 4 || RoundDiv(uint32(5), 2) != 3 || RoundDiv(uint32(4), 3) != 1 {
		t.Fatal("RoundDiv failed")
	}
	// 16 MHz / (64 * 256) rounds to 977 Hz.
	if RoundDiv(uint32(16_000_000), 64*256) != 977 {
		t.Fatal("RoundDiv frequency case failed")
	}
}

func TestMapU16(t *testing.T) {
	if MapU16(50, 0, 100, 0, 255) != 127 {
		t.Fatalf("midpoint: %d", MapU16(50, 0, 100, 0, 255))
	}
	if MapU16(0, 0, 100, 0, 255) != 0 || MapU16(100, 0, 100, 0, 255) != 255 {
		t.Fatal("endpoints failed")
	}
	if MapU16(200, 0, 100, 0, 255) != 255 {
		t.Fatal("out-of-range input should clamp")
	}
	if MapU16(7, 3, 3, 9, 20) != 9 {
		t.Fatal("degenerate input range should yield outMin")
	}
}
