// Package strconvx mirrors the strconv subset the HAL needs, with the
// same signatures on host and AVR builds. Host builds delegate to the
// standard library; AVR builds carry a small integer-only
// implementation, since software floats are dead weight on an 8-bit
// part and nothing here produces them.
package strconvx

// detectBase strips a 0b/0o/0x prefix and reports the base it names.
// A bare leading zero stays decimal; there is no legacy octal form.
func detectBase(ps *string) int {
	s := *ps
	if len(s) >= 2 && s[0] == '0' {
		switch s[1] {
		case 'x', 'X':
			*ps = s[2:]
			return 16
		case 'b', 'B':
			*ps = s[2:]
			return 2
		case 'o', 'O':
			*ps = s[2:]
			return 8
		}
	}
	return 10
}
