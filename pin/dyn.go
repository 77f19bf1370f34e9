package pin

import "avrhal-go/errcode"

// Dyn is a fully erased pin handle: the mode tag is gone and every
// operation checks the dynamic mode instead, returning
// errcode.BadMode when it does not apply. The erasure is permanent; a
// Dyn cannot change mode again, so the backing state is frozen and no
// generation check is needed.
type Dyn struct {
	s *State
}

func (d Dyn) ID() ID     { return d.s.id }
func (d Dyn) Mode() Mode { return d.s.mode }

// IsHigh reads the line if the pin is an input.
func (d Dyn) IsHigh() (bool, error) {
	if d.s.mode != ModeInput {
		return false, errcode.BadMode
	}
	return d.s.bus.Read8(d.s.pr.PIN)&d.s.id.Mask() != 0, nil
}

// IsLow reads the line if the pin is an input.
func (d Dyn) IsLow() (bool, error) {
	h, err := d.IsHigh()
	return !h, err
}

// SetHigh drives the line if the pin is an output.
func (d Dyn) SetHigh() error {
	if d.s.mode != ModeOutput {
		return errcode.BadMode
	}
	d.s.bus.SetBits(d.s.pr.PORT, d.s.id.Mask())
	return nil
}

// SetLow drives the line if the pin is an output.
func (d Dyn) SetLow() error {
	if d.s.mode != ModeOutput {
		return errcode.BadMode
	}
	d.s.bus.ClearBits(d.s.pr.PORT, d.s.id.Mask())
	return nil
}

// Toggle flips the driven level if the pin is an output.
func (d Dyn) Toggle() error {
	if d.s.mode != ModeOutput {
		return errcode.BadMode
	}
	v := d.s.bus.Read8(d.s.pr.PORT)
	d.s.bus.Write8(d.s.pr.PORT, v^d.s.id.Mask())
	return nil
}

// PortPin is the narrower erasure: bit-index specialization dropped,
// port grouping kept, so same-port pins compose into bulk writes.
// Like Dyn it checks modes at call time and cannot change mode.
type PortPin struct {
	s *State
}

func (p PortPin) ID() ID      { return p.s.id }
func (p PortPin) Port() Port  { return p.s.id.Port() }
func (p PortPin) Bit() uint8  { return p.s.id.Bit() }
func (p PortPin) Mask() uint8 { return p.s.id.Mask() }
func (p PortPin) Mode() Mode  { return p.s.mode }

func (p PortPin) IsHigh() (bool, error) { return Dyn{s: p.s}.IsHigh() }
func (p PortPin) IsLow() (bool, error)  { return Dyn{s: p.s}.IsLow() }
func (p PortPin) SetHigh() error        { return Dyn{s: p.s}.SetHigh() }
func (p PortPin) SetLow() error         { return Dyn{s: p.s}.SetLow() }
func (p PortPin) Toggle() error         { return Dyn{s: p.s}.Toggle() }

// SetLevels drives several output pins of one port in a single
// read-modify-write. Bit i of levels is the level for the pin with bit
// index i; port bits not covered by the list are untouched. Errors:
// InvalidParams if the pins span ports, BadMode if any pin is not an
// output. Nothing is written on error.
func SetLevels(levels uint8, pins ...PortPin) error {
	if len(pins) == 0 {
		return nil
	}
	port := pins[0].Port()
	var mask uint8
	for _, p := range pins {
		if p.Port() != port {
			return errcode.InvalidParams
		}
		if p.Mode() != ModeOutput {
			return errcode.BadMode
		}
		mask |= p.Mask()
	}
	s := pins[0].s
	v := s.bus.Read8(s.pr.PORT)
	s.bus.Write8(s.pr.PORT, (v&^mask)|(levels&mask))
	return nil
}

// --- erasure constructors ---

func dynFrom(s *State, gen uint8, mode Mode) Dyn {
	s.advance(mode, gen, mode) // consume; mode unchanged
	return Dyn{s: s}
}

func portPinFrom(s *State, gen uint8, mode Mode) PortPin {
	s.advance(mode, gen, mode)
	return PortPin{s: s}
}
