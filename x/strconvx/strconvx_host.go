//go:build !avr

package strconvx

import "strconv"

// Host builds delegate to strconv. Base 0 runs through the shared
// prefix detection first so "075" parses the same as on AVR: decimal,
// not legacy octal.

func Itoa(i int) string                    { return strconv.Itoa(i) }
func Atoi(s string) (int, error)           { return strconv.Atoi(s) }
func FormatInt(i int64, base int) string   { return strconv.FormatInt(i, base) }
func FormatUint(u uint64, base int) string { return strconv.FormatUint(u, base) }

func ParseInt(s string, base, bitSize int) (int64, error) {
	if base == 0 {
		rest, sign := s, ""
		if len(rest) > 0 && (rest[0] == '+' || rest[0] == '-') {
			sign, rest = rest[:1], rest[1:]
		}
		base = detectBase(&rest)
		s = sign + rest
	}
	return strconv.ParseInt(s, base, bitSize)
}

func ParseUint(s string, base, bitSize int) (uint64, error) {
	if base == 0 {
		base = detectBase(&s)
	}
	return strconv.ParseUint(s, base, bitSize)
}
