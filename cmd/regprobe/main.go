// cmd/regprobe/main.go
//
// Interactive probe over a simulated register file. Drives pins and
// PWM channels from a prompt and shows how the registers react, which
// makes it a convenient dry run before flashing real hardware.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/shlex"

	"avrhal-go/atmega32u4"
	"avrhal-go/boards"
	"avrhal-go/pin"
	"avrhal-go/pwm"
	"avrhal-go/regs"
	"avrhal-go/regs/regsim"
	"avrhal-go/regs/trace"
)

func main() {
	boardName := flag.String("board", boards.Default.Name, "board descriptor to probe")
	clockHz := flag.Uint("clock", 0, "override the CPU clock in Hz")
	flag.Parse()

	b, ok := boards.Lookup(*boardName)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown board %q (have: %s)\n", *boardName, strings.Join(boards.Names(), ", "))
		os.Exit(1)
	}
	clk := b.ClockHz
	if *clockHz != 0 {
		clk = uint32(*clockHz)
	}

	sim := regsim.New(int(atmega32u4.NumRegs))
	hub := trace.NewHub(64)
	sim.AttachHub(hub)
	chip := atmega32u4.New(sim, clk)

	p := &probe{
		board: b,
		sim:   sim,
		hub:   hub,
		chip:  chip,
		slots: newSlots(&chip.Pins),
	}
	fmt.Printf("%s at %d Hz, simulated register file. Type 'help'.\n", b.Name, clk)
	p.repl()
}

// ---------- probe state ----------

type probe struct {
	board *boards.Board
	sim   *regsim.Sim
	hub   *trace.Hub
	chip  *atmega32u4.Chip
	slots map[string]*slot
	watch *trace.Sub
}

func (p *probe) repl() {
	sc := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !sc.Scan() {
			fmt.Println()
			return
		}
		args, err := shlex.Split(sc.Text())
		if err != nil {
			fmt.Println("parse:", err)
			continue
		}
		if len(args) == 0 {
			continue
		}
		if !p.dispatch(args[0], args[1:]) {
			return
		}
	}
}

func (p *probe) dispatch(cmd string, args []string) bool {
	var err error
	switch strings.ToLower(cmd) {
	case "quit", "exit":
		return false
	case "help":
		printHelp()
	case "pins":
		p.cmdPins()
	case "regs":
		p.cmdRegs(len(args) > 0 && args[0] == "all")
	case "table":
		p.cmdTable()
	case "hist":
		err = p.cmdHist(args)
	case "stats":
		p.cmdStats()
	case "plan":
		err = p.cmdPlan(args)
	case "pwm":
		err = p.cmdPWM(args)
	case "duty":
		err = p.cmdDuty(args)
	case "release":
		err = p.withSlot(args, func(s *slot) error { return s.release() })
	case "out":
		err = p.withSlot(args, func(s *slot) error { return s.intoOutput() })
	case "in":
		pull := pin.PullNone
		if len(args) > 1 && strings.EqualFold(args[1], "pullup") {
			pull = pin.PullUp
		}
		err = p.withSlot(args, func(s *slot) error { return s.intoInput(pull) })
	case "hi":
		err = p.withSlot(args, func(s *slot) error { return s.setLevel(true) })
	case "lo":
		err = p.withSlot(args, func(s *slot) error { return s.setLevel(false) })
	case "toggle":
		err = p.withSlot(args, func(s *slot) error { return s.toggle() })
	case "read":
		err = p.cmdRead(args)
	case "drive":
		err = p.cmdDrive(args)
	case "get":
		err = p.cmdGet(args)
	case "set":
		err = p.cmdSet(args)
	case "watch":
		err = p.cmdWatch(args)
	case "unwatch":
		p.cmdUnwatch()
	default:
		fmt.Printf("unknown command %q, try 'help'\n", cmd)
	}
	if err != nil {
		fmt.Println("error:", err)
	}
	return true
}

func printHelp() {
	fmt.Print(`pins                     list pins with modes
regs [all]               dump the register file
table                    PWM channel table
hist [n]                 recent register writes
stats                    write counts per register
plan PIN HZ              dry-run a PWM frequency plan
pwm PIN HZ [DUTY]        attach a pin to its compare channel
duty PIN VAL|PCT%        change duty on an attached pin
release PIN              detach from PWM, back to plain output
out PIN                  make the pin an output
in PIN [pullup]          make the pin an input
hi|lo|toggle PIN         drive an output
read PIN                 read an input line
drive PIN hi|lo          drive the line from outside the chip
get REG / set REG VAL    raw register peek and poke
watch [REG...]           stream register writes (unwatch stops)
quit
`)
}

// ---------- commands ----------

func (p *probe) cmdPins() {
	for _, name := range p.board.PinNames() {
		id, _ := p.board.Pin(name)
		s := p.slots[id.String()]
		tag := "     "
		if s.pwmCapable() {
			tag = "pwm  "
		}
		led := ""
		if id == p.board.LED {
			led = "  (led)"
		}
		fmt.Printf("%-6s %-4s %s %s%s\n", name, id, tag, s.mode(), led)
	}
}

func (p *probe) cmdRegs(all bool) {
	shown := 0
	for r := regs.Reg(0); r < atmega32u4.NumRegs; r++ {
		v := p.sim.Peek(r)
		if v == 0 && !all {
			continue
		}
		fmt.Printf("%-7s %#02x\n", atmega32u4.RegName(r), v)
		shown++
	}
	if shown == 0 {
		fmt.Println("all registers zero; 'regs all' shows them anyway")
	}
}

func (p *probe) cmdTable() {
	for _, st := range p.chip.PWM.Status() {
		name := "-"
		if n, ok := p.board.NameOf(st.Pin); ok {
			name = n
		}
		state := "free"
		if st.Claimed {
			state = fmt.Sprintf("%d Hz, duty %d", st.Hz, st.Duty)
		}
		fmt.Printf("%-4s %-5s %s/%s  %s\n", st.Pin, name, st.Timer, st.Chan, state)
	}
}

func (p *probe) cmdHist(args []string) error {
	n := 16
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return err
		}
		n = v
	}
	evs := p.sim.History(n)
	if len(evs) == 0 {
		fmt.Println("no writes yet")
		return nil
	}
	for _, ev := range evs {
		fmt.Printf("%-7s %#02x -> %#02x\n", atmega32u4.RegName(ev.Reg), ev.Old, ev.New)
	}
	return nil
}

func (p *probe) cmdStats() {
	total := uint32(0)
	for r := regs.Reg(0); r < atmega32u4.NumRegs; r++ {
		n := p.sim.WriteCount(r)
		if n == 0 {
			continue
		}
		fmt.Printf("%-7s %d\n", atmega32u4.RegName(r), n)
		total += n
	}
	fmt.Printf("total   %d\n", total)
}

func (p *probe) cmdPlan(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: plan PIN HZ")
	}
	id, err := p.resolve(args[0])
	if err != nil {
		return err
	}
	hz, err := parseU32(args[1])
	if err != nil {
		return err
	}
	pl, err := p.chip.PWM.Plan(id, hz)
	if err != nil {
		return err
	}
	fmt.Printf("%s: /%d, realized %d Hz\n", id, pl.Div, pl.RealizedHz)
	return nil
}

func (p *probe) cmdPWM(args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return errors.New("usage: pwm PIN HZ [DUTY]")
	}
	s, err := p.slot(args[0])
	if err != nil {
		return err
	}
	hz, err := parseU32(args[1])
	if err != nil {
		return err
	}
	duty := uint16(0)
	if len(args) == 3 {
		v, err := strconv.ParseUint(args[2], 0, 16)
		if err != nil {
			return err
		}
		duty = uint16(v)
	}
	if err := s.attach(p.chip.PWM, hz, duty); err != nil {
		return err
	}
	fmt.Printf("attached, realized %d Hz\n", s.pw.Hz())
	return nil
}

func (p *probe) cmdDuty(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: duty PIN VAL|PCT%")
	}
	s, err := p.slot(args[0])
	if err != nil {
		return err
	}
	if s.pw == nil {
		return errors.New("pin is not attached to PWM")
	}
	if pct, ok := strings.CutSuffix(args[1], "%"); ok {
		v, err := strconv.ParseUint(pct, 10, 8)
		if err != nil {
			return err
		}
		s.pw.SetDutyPercent(uint8(v))
	} else {
		v, err := strconv.ParseUint(args[1], 0, 16)
		if err != nil {
			return err
		}
		s.pw.SetDuty(uint16(v))
	}
	fmt.Printf("duty %d/%d\n", s.pw.Duty(), s.pw.Top())
	return nil
}

func (p *probe) cmdRead(args []string) error {
	return p.withSlot(args, func(s *slot) error {
		high, err := s.readLine()
		if err != nil {
			return err
		}
		if high {
			fmt.Println("high")
		} else {
			fmt.Println("low")
		}
		return nil
	})
}

func (p *probe) cmdDrive(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: drive PIN hi|lo")
	}
	id, err := p.resolve(args[0])
	if err != nil {
		return err
	}
	on := strings.EqualFold(args[1], "hi")
	pr := portRegsOf(id.Port())
	p.sim.PokeBits(pr.PIN, id.Mask(), on)
	return nil
}

func (p *probe) cmdGet(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: get REG")
	}
	r, ok := atmega32u4.RegByName(args[0])
	if !ok {
		return fmt.Errorf("unknown register %q", args[0])
	}
	fmt.Printf("%s = %#02x\n", atmega32u4.RegName(r), p.sim.Peek(r))
	return nil
}

func (p *probe) cmdSet(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: set REG VAL")
	}
	r, ok := atmega32u4.RegByName(args[0])
	if !ok {
		return fmt.Errorf("unknown register %q", args[0])
	}
	v, err := strconv.ParseUint(args[1], 0, 8)
	if err != nil {
		return err
	}
	p.sim.Poke(r, uint8(v))
	return nil
}

func (p *probe) cmdWatch(args []string) error {
	if p.watch != nil {
		return errors.New("already watching; 'unwatch' first")
	}
	var rs []regs.Reg
	for _, a := range args {
		r, ok := atmega32u4.RegByName(a)
		if !ok {
			return fmt.Errorf("unknown register %q", a)
		}
		rs = append(rs, r)
	}
	sub := p.hub.Subscribe(rs...)
	p.watch = sub
	go func() {
		for ev := range sub.Channel() {
			fmt.Printf("[watch] %-7s %#02x -> %#02x\n", atmega32u4.RegName(ev.Reg), ev.Old, ev.New)
		}
	}()
	return nil
}

func (p *probe) cmdUnwatch() {
	if p.watch != nil {
		p.watch.Unsubscribe()
		p.watch = nil
	}
}

// ---------- pin slots ----------

// slot holds whichever handle a pin currently lives behind. The typed
// conversions consume handles, so there is exactly one per pin.
type slot struct {
	u   *pin.Unconfigured
	upw *pin.UnconfiguredPWM
	in  *pin.Input
	inw *pin.InputPWM
	out *pin.Output
	ow  *pin.OutputPWM
	pw  *pin.PWM
}

func newSlots(p *atmega32u4.Pins) map[string]*slot {
	m := make(map[string]*slot, 26)
	plain := func(u pin.Unconfigured) { m[u.ID().String()] = &slot{u: &u} }
	capab := func(u pin.UnconfiguredPWM) { m[u.ID().String()] = &slot{upw: &u} }

	plain(p.PB0)
	plain(p.PB1)
	plain(p.PB2)
	plain(p.PB3)
	plain(p.PB4)
	capab(p.PB5)
	capab(p.PB6)
	capab(p.PB7)
	capab(p.PC6)
	capab(p.PC7)
	capab(p.PD0)
	plain(p.PD1)
	plain(p.PD2)
	plain(p.PD3)
	plain(p.PD4)
	plain(p.PD5)
	plain(p.PD6)
	capab(p.PD7)
	plain(p.PE2)
	plain(p.PE6)
	plain(p.PF0)
	plain(p.PF1)
	plain(p.PF4)
	plain(p.PF5)
	plain(p.PF6)
	plain(p.PF7)
	return m
}

func (s *slot) mode() string {
	switch {
	case s.u != nil, s.upw != nil:
		return "unconfigured"
	case s.in != nil:
		return inputMode(s.in.Pull())
	case s.inw != nil:
		return inputMode(s.inw.Pull())
	case s.out != nil, s.ow != nil:
		return "output"
	case s.pw != nil:
		return fmt.Sprintf("pwm %d Hz", s.pw.Hz())
	}
	return "?"
}

func inputMode(pull pin.Pull) string {
	if pull == pin.PullUp {
		return "input pullup"
	}
	return "input"
}

func (s *slot) pwmCapable() bool {
	return s.upw != nil || s.inw != nil || s.ow != nil || s.pw != nil
}

func (s *slot) intoOutput() error {
	switch {
	case s.out != nil, s.ow != nil:
	case s.u != nil:
		o := s.u.IntoOutput()
		*s = slot{out: &o}
	case s.upw != nil:
		o := s.upw.IntoOutput()
		*s = slot{ow: &o}
	case s.in != nil:
		o := s.in.IntoOutput()
		*s = slot{out: &o}
	case s.inw != nil:
		o := s.inw.IntoOutput()
		*s = slot{ow: &o}
	default:
		return errors.New("pin is attached to PWM; release it first")
	}
	return nil
}

func (s *slot) intoInput(pull pin.Pull) error {
	up := pull == pin.PullUp
	switch {
	case s.u != nil:
		i := inputOf(s.u.IntoFloatingInput, s.u.IntoPullUpInput, up)
		*s = slot{in: &i}
	case s.in != nil:
		i := inputOf(s.in.IntoFloatingInput, s.in.IntoPullUpInput, up)
		*s = slot{in: &i}
	case s.out != nil:
		i := inputOf(s.out.IntoFloatingInput, s.out.IntoPullUpInput, up)
		*s = slot{in: &i}
	case s.upw != nil:
		i := inputPWMOf(s.upw.IntoFloatingInput, s.upw.IntoPullUpInput, up)
		*s = slot{inw: &i}
	case s.inw != nil:
		i := inputPWMOf(s.inw.IntoFloatingInput, s.inw.IntoPullUpInput, up)
		*s = slot{inw: &i}
	case s.ow != nil:
		i := inputPWMOf(s.ow.IntoFloatingInput, s.ow.IntoPullUpInput, up)
		*s = slot{inw: &i}
	default:
		return errors.New("pin is attached to PWM; release it first")
	}
	return nil
}

func inputOf(floating, pullup func() pin.Input, up bool) pin.Input {
	if up {
		return pullup()
	}
	return floating()
}

func inputPWMOf(floating, pullup func() pin.InputPWM, up bool) pin.InputPWM {
	if up {
		return pullup()
	}
	return floating()
}

func (s *slot) attach(e *pwm.Engine, hintHz uint32, duty uint16) error {
	switch {
	case s.pw != nil:
		return errors.New("already attached")
	case s.u != nil, s.in != nil, s.out != nil:
		return errors.New("no compare channel on this pin")
	case s.inw != nil:
		o := s.inw.IntoOutput()
		*s = slot{ow: &o}
	}
	if s.upw != nil {
		pw, err := s.upw.IntoPWM(e, hintHz, duty)
		if err != nil {
			return err
		}
		*s = slot{pw: &pw}
		return nil
	}
	pw, err := s.ow.IntoPWM(e, hintHz, duty)
	if err != nil {
		return err
	}
	*s = slot{pw: &pw}
	return nil
}

func (s *slot) release() error {
	if s.pw == nil {
		return errors.New("not attached")
	}
	o := s.pw.Release()
	*s = slot{ow: &o}
	return nil
}

func (s *slot) setLevel(high bool) error {
	var o *pin.Output
	switch {
	case s.out != nil:
		o = s.out
	case s.ow != nil:
		o = &s.ow.Output
	default:
		return errors.New("not an output; 'out PIN' first")
	}
	if high {
		o.SetHigh()
	} else {
		o.SetLow()
	}
	return nil
}

func (s *slot) toggle() error {
	switch {
	case s.out != nil:
		s.out.Toggle()
	case s.ow != nil:
		s.ow.Toggle()
	default:
		return errors.New("not an output; 'out PIN' first")
	}
	return nil
}

func (s *slot) readLine() (bool, error) {
	switch {
	case s.in != nil:
		return s.in.IsHigh(), nil
	case s.inw != nil:
		return s.inw.IsHigh(), nil
	}
	return false, errors.New("not an input; 'in PIN' first")
}

// ---------- lookup helpers ----------

// resolve accepts silkscreen names (D13, A0) and chip names (PC7).
func (p *probe) resolve(name string) (pin.ID, error) {
	if id, err := p.board.Pin(name); err == nil {
		return id, nil
	}
	if s, ok := p.slots[strings.ToUpper(name)]; ok {
		return s.id(), nil
	}
	return 0, fmt.Errorf("unknown pin %q", name)
}

func (p *probe) slot(name string) (*slot, error) {
	id, err := p.resolve(name)
	if err != nil {
		return nil, err
	}
	return p.slots[id.String()], nil
}

func (p *probe) withSlot(args []string, f func(*slot) error) error {
	if len(args) < 1 {
		return errors.New("missing pin name")
	}
	s, err := p.slot(args[0])
	if err != nil {
		return err
	}
	return f(s)
}

func (s *slot) id() pin.ID {
	switch {
	case s.u != nil:
		return s.u.ID()
	case s.upw != nil:
		return s.upw.ID()
	case s.in != nil:
		return s.in.ID()
	case s.inw != nil:
		return s.inw.ID()
	case s.out != nil:
		return s.out.ID()
	case s.ow != nil:
		return s.ow.ID()
	case s.pw != nil:
		return s.pw.ID()
	}
	return 0
}

func portRegsOf(port pin.Port) pin.PortRegs {
	switch port {
	case pin.PortB:
		return pin.PortRegs{PIN: atmega32u4.PINB, DDR: atmega32u4.DDRB, PORT: atmega32u4.PORTB}
	case pin.PortC:
		return pin.PortRegs{PIN: atmega32u4.PINC, DDR: atmega32u4.DDRC, PORT: atmega32u4.PORTC}
	case pin.PortD:
		return pin.PortRegs{PIN: atmega32u4.PIND, DDR: atmega32u4.DDRD, PORT: atmega32u4.PORTD}
	case pin.PortE:
		return pin.PortRegs{PIN: atmega32u4.PINE, DDR: atmega32u4.DDRE, PORT: atmega32u4.PORTE}
	}
	return pin.PortRegs{PIN: atmega32u4.PINF, DDR: atmega32u4.DDRF, PORT: atmega32u4.PORTF}
}

func parseU32(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	return uint32(v), err
}
