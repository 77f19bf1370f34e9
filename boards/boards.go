// Package boards maps silkscreen pin names to chip pins for the
// ATmega32U4 boards we care about. Descriptors are plain data;
// board files register themselves and a build tag picks the default.
package boards

import (
	"sort"
	"strings"

	"avrhal-go/errcode"
	"avrhal-go/pin"
)

// Board describes one physical board.
type Board struct {
	Name    string
	ClockHz uint32
	LED     pin.ID
	Pins    map[string]pin.ID
}

// Pin resolves a silkscreen name, case-insensitively.
func (b *Board) Pin(name string) (pin.ID, error) {
	if id, ok := b.Pins[strings.ToUpper(name)]; ok {
		return id, nil
	}
	return 0, errcode.UnknownPin
}

// NameOf reverse-resolves a chip pin. Aliased pins report the
// lexicographically smallest name.
func (b *Board) NameOf(id pin.ID) (string, bool) {
	best, found := "", false
	for name, pid := range b.Pins {
		if pid != id {
			continue
		}
		if !found || name < best {
			best, found = name, true
		}
	}
	return best, found
}

// PinNames lists the board's silkscreen names, sorted.
func (b *Board) PinNames() []string {
	out := make([]string, 0, len(b.Pins))
	for name := range b.Pins {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

var registry = map[string]*Board{}

// Register adds a board descriptor. A duplicate name is a wiring bug.
func Register(b *Board) {
	if b.Name == "" {
		panic("boards: empty name")
	}
	if _, dup := registry[b.Name]; dup {
		panic("boards: duplicate " + b.Name)
	}
	registry[b.Name] = b
}

// Lookup finds a registered board by name.
func Lookup(name string) (*Board, bool) {
	b, ok := registry[name]
	return b, ok
}

// MustLookup is Lookup for boards that are compiled in by
// construction.
func MustLookup(name string) *Board {
	b, ok := registry[name]
	if !ok {
		panic("boards: unknown " + name)
	}
	return b
}

// Names lists the registered boards, sorted.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
