// Package pin models the chip's I/O pins as mode-tagged handles.
//
// Every physical pin is minted exactly once by the chip package, in
// unconfigured mode (electrically the reset state: floating input).
// Mode changes are consuming conversions: they return a handle of the
// new mode and invalidate the old value, so two live views of one
// pin's mode cannot exist. Using an invalidated handle is a programming
// error and panics. Pins wired to a timer compare channel are minted as
// the PWM-capable variants, which are the only types carrying IntoPWM;
// requesting PWM on any other pin does not compile.
//
// Downgrade and DowngradePort trade the static mode tag for a dynamic
// one so heterogeneous pins fit in one slice. Downgraded handles check
// modes at call time and can no longer change mode.
package pin

import "avrhal-go/regs"

// Port identifies one I/O port (8 data/direction/input register bits).
type Port uint8

const (
	PortB Port = iota
	PortC
	PortD
	PortE
	PortF

	numPorts
)

func (p Port) String() string {
	if p >= numPorts {
		return "?"
	}
	return string([]byte{p.letter()})
}

func (p Port) letter() byte {
	if p >= numPorts {
		return '?'
	}
	return 'B' + byte(p)
}

// ID is a packed pin identity: port in the high bits, bit index 0..7
// in the low three. IDs are stable, comparable map keys.
type ID uint8

// MakeID packs a port and bit index into an ID.
func MakeID(p Port, bit uint8) ID { return ID(uint8(p)<<3 | bit&7) }

func (id ID) Port() Port  { return Port(id >> 3) }
func (id ID) Bit() uint8  { return uint8(id) & 7 }
func (id ID) Mask() uint8 { return 1 << id.Bit() }

// String renders the conventional pin name, e.g. "PB7".
func (id ID) String() string {
	b := [3]byte{'P', id.Port().letter(), '0' + id.Bit()}
	return string(b[:])
}

// Mode is the dynamic shadow of a handle's static mode tag.
type Mode uint8

const (
	ModeUnconfigured Mode = iota
	ModeInput
	ModeOutput
	ModePWM
)

func (m Mode) String() string {
	switch m {
	case ModeUnconfigured:
		return "unconfigured"
	case ModeInput:
		return "input"
	case ModeOutput:
		return "output"
	case ModePWM:
		return "pwm"
	}
	return "?"
}

// Pull selects the input stage wiring. The chip has pull-ups only.
type Pull uint8

const (
	PullNone Pull = iota
	PullUp
)

// PortRegs names the three registers backing one port: the input
// register, the direction register and the data/output register.
type PortRegs struct {
	PIN  regs.Reg
	DDR  regs.Reg
	PORT regs.Reg
}

// State is the one runtime record per physical pin. Handles reference
// it; the generation counter is what invalidates consumed handles.
// Chip packages create States via the New* constructors; nothing else
// should.
type State struct {
	bus  regs.Bus
	id   ID
	pr   PortRegs
	mode Mode
	pull Pull
	gen  uint8
}

func (s *State) ID() ID     { return s.id }
func (s *State) Mode() Mode { return s.mode }

// use asserts that a handle with generation gen in mode m is still the
// live view of this pin.
func (s *State) use(m Mode, gen uint8) {
	if s.gen != gen || s.mode != m {
		panic("pin " + s.id.String() + ": stale handle")
	}
}

// advance consumes the current handle and moves the pin to mode 'to',
// returning the new generation for the replacement handle.
func (s *State) advance(from Mode, gen uint8, to Mode) uint8 {
	s.use(from, gen)
	s.gen++
	s.mode = to
	return s.gen
}

// NewUnconfigured mints the one handle for a plain pin.
func NewUnconfigured(bus regs.Bus, id ID, pr PortRegs) Unconfigured {
	return Unconfigured{s: &State{bus: bus, id: id, pr: pr}}
}

// NewUnconfiguredPWM mints the one handle for a pin wired to a timer
// compare channel.
func NewUnconfiguredPWM(bus regs.Bus, id ID, pr PortRegs) UnconfiguredPWM {
	return UnconfiguredPWM{NewUnconfigured(bus, id, pr)}
}
