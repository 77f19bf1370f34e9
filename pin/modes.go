package pin

// Unconfigured is a pin in its reset state: direction bit clear, output
// bit clear, electrically a floating input. It has no I/O operations;
// convert it first.
type Unconfigured struct {
	s   *State
	gen uint8
}

func (u Unconfigured) ID() ID { return u.s.id }

// IntoInput makes the pin a floating input.
func (u Unconfigured) IntoInput() Input { return u.IntoFloatingInput() }

// IntoFloatingInput clears the direction and output bits.
func (u Unconfigured) IntoFloatingInput() Input {
	return inputFrom(u.s, u.gen, ModeUnconfigured, PullNone)
}

// IntoPullUpInput clears the direction bit and sets the output bit,
// enabling the internal pull-up.
func (u Unconfigured) IntoPullUpInput() Input {
	return inputFrom(u.s, u.gen, ModeUnconfigured, PullUp)
}

// IntoOutput sets the direction bit. The driven level is whatever the
// output register already held; callers that care must set it
// explicitly afterwards.
func (u Unconfigured) IntoOutput() Output {
	return outputFrom(u.s, u.gen, ModeUnconfigured)
}

// Downgrade erases the static mode tag. See Dyn.
func (u Unconfigured) Downgrade() Dyn { return dynFrom(u.s, u.gen, ModeUnconfigured) }

// DowngradePort erases the bit-index specialization but keeps the port
// grouping. See PortPin.
func (u Unconfigured) DowngradePort() PortPin { return portPinFrom(u.s, u.gen, ModeUnconfigured) }

// Input is a pin configured as a digital input, floating or pulled up.
type Input struct {
	s   *State
	gen uint8
}

func (i Input) ID() ID { return i.s.id }

// Pull reports whether the internal pull-up is enabled.
func (i Input) Pull() Pull { return i.s.pull }

// IsHigh reads the input register bit. No side effects, no debouncing.
func (i Input) IsHigh() bool {
	i.s.use(ModeInput, i.gen)
	return i.s.bus.Read8(i.s.pr.PIN)&i.s.id.Mask() != 0
}

// IsLow reads the input register bit.
func (i Input) IsLow() bool { return !i.IsHigh() }

// IntoFloatingInput re-modes the input stage to floating.
func (i Input) IntoFloatingInput() Input {
	return inputFrom(i.s, i.gen, ModeInput, PullNone)
}

// IntoPullUpInput re-modes the input stage to pulled up.
func (i Input) IntoPullUpInput() Input {
	return inputFrom(i.s, i.gen, ModeInput, PullUp)
}

// IntoOutput sets the direction bit. A previous pull-up leaves the
// output register bit set, so the pin starts out driven high.
func (i Input) IntoOutput() Output {
	return outputFrom(i.s, i.gen, ModeInput)
}

func (i Input) Downgrade() Dyn { return dynFrom(i.s, i.gen, ModeInput) }

func (i Input) DowngradePort() PortPin { return portPinFrom(i.s, i.gen, ModeInput) }

// Output is a pin driving its line.
type Output struct {
	s   *State
	gen uint8
}

func (o Output) ID() ID { return o.s.id }

// SetHigh drives the line high. Takes effect synchronously.
func (o Output) SetHigh() {
	o.s.use(ModeOutput, o.gen)
	o.s.bus.SetBits(o.s.pr.PORT, o.s.id.Mask())
}

// SetLow drives the line low.
func (o Output) SetLow() {
	o.s.use(ModeOutput, o.gen)
	o.s.bus.ClearBits(o.s.pr.PORT, o.s.id.Mask())
}

// Toggle flips the driven level (read-modify-write on the output
// register).
func (o Output) Toggle() {
	o.s.use(ModeOutput, o.gen)
	v := o.s.bus.Read8(o.s.pr.PORT)
	o.s.bus.Write8(o.s.pr.PORT, v^o.s.id.Mask())
}

// IsSetHigh reads back the driven level from the output register (not
// the line itself).
func (o Output) IsSetHigh() bool {
	o.s.use(ModeOutput, o.gen)
	return o.s.bus.Read8(o.s.pr.PORT)&o.s.id.Mask() != 0
}

// IsSetLow reads back the driven level.
func (o Output) IsSetLow() bool { return !o.IsSetHigh() }

// IntoInput returns the pin to a floating input.
func (o Output) IntoInput() Input { return o.IntoFloatingInput() }

func (o Output) IntoFloatingInput() Input {
	return inputFrom(o.s, o.gen, ModeOutput, PullNone)
}

func (o Output) IntoPullUpInput() Input {
	return inputFrom(o.s, o.gen, ModeOutput, PullUp)
}

func (o Output) Downgrade() Dyn { return dynFrom(o.s, o.gen, ModeOutput) }

func (o Output) DowngradePort() PortPin { return portPinFrom(o.s, o.gen, ModeOutput) }

// UnconfiguredPWM is an unconfigured pin wired to a timer compare
// channel. Conversions preserve the capability.
type UnconfiguredPWM struct {
	Unconfigured
}

func (u UnconfiguredPWM) IntoInput() InputPWM { return u.IntoFloatingInput() }

func (u UnconfiguredPWM) IntoFloatingInput() InputPWM {
	return InputPWM{u.Unconfigured.IntoFloatingInput()}
}

func (u UnconfiguredPWM) IntoPullUpInput() InputPWM {
	return InputPWM{u.Unconfigured.IntoPullUpInput()}
}

func (u UnconfiguredPWM) IntoOutput() OutputPWM {
	return OutputPWM{u.Unconfigured.IntoOutput()}
}

// InputPWM is an input-mode pin that can still become a PWM output.
type InputPWM struct {
	Input
}

func (i InputPWM) IntoFloatingInput() InputPWM {
	return InputPWM{i.Input.IntoFloatingInput()}
}

func (i InputPWM) IntoPullUpInput() InputPWM {
	return InputPWM{i.Input.IntoPullUpInput()}
}

func (i InputPWM) IntoOutput() OutputPWM {
	return OutputPWM{i.Input.IntoOutput()}
}

// OutputPWM is an output-mode pin that can become a PWM output.
type OutputPWM struct {
	Output
}

func (o OutputPWM) IntoInput() InputPWM { return o.IntoFloatingInput() }

func (o OutputPWM) IntoFloatingInput() InputPWM {
	return InputPWM{o.Output.IntoFloatingInput()}
}

func (o OutputPWM) IntoPullUpInput() InputPWM {
	return InputPWM{o.Output.IntoPullUpInput()}
}

// --- shared transition plumbing ---

func inputFrom(s *State, gen uint8, from Mode, pull Pull) Input {
	g := s.advance(from, gen, ModeInput)
	s.pull = pull
	s.bus.ClearBits(s.pr.DDR, s.id.Mask())
	if pull == PullUp {
		s.bus.SetBits(s.pr.PORT, s.id.Mask())
	} else {
		s.bus.ClearBits(s.pr.PORT, s.id.Mask())
	}
	return Input{s: s, gen: g}
}

func outputFrom(s *State, gen uint8, from Mode) Output {
	g := s.advance(from, gen, ModeOutput)
	s.bus.SetBits(s.pr.DDR, s.id.Mask())
	return Output{s: s, gen: g}
}
