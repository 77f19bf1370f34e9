//go:build avr

package strconvx

// Allocation-shy integer conversions for firmware builds. Bases 2..36.
// Parse errors and range errors match strconv's behaviour; the error
// values themselves are plain strings to keep flash cost down.

type numError string

func (e numError) Error() string { return string(e) }

const (
	errSyntax = numError("invalid syntax")
	errRange  = numError("value out of range")
)

func Itoa(i int) string { return FormatInt(int64(i), 10) }

func Atoi(s string) (int, error) {
	v, err := ParseInt(s, 10, 0)
	return int(v), err
}

func FormatInt(i int64, base int) string {
	if i < 0 {
		// -i wraps for MinInt64; the uint64 conversion still yields
		// the right magnitude.
		return "-" + FormatUint(uint64(-i), base)
	}
	return FormatUint(uint64(i), base)
}

func FormatUint(u uint64, base int) string {
	if base < 2 || base > 36 {
		base = 10
	}
	if u == 0 {
		return "0"
	}
	const digits = "0123456789abcdefghijklmnopqrstuvwxyz"
	var buf [64]byte
	i := len(buf)
	for u > 0 {
		i--
		buf[i] = digits[u%uint64(base)]
		u /= uint64(base)
	}
	return string(buf[i:])
}

// bitSize follows strconv: 0, 8, 16, 32 or 64, with 0 meaning the
// full 64 bits here.
func ParseInt(s string, base, bitSize int) (int64, error) {
	neg := false
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	if base == 0 {
		base = detectBase(&s)
	}
	if bitSize == 0 {
		bitSize = 64
	}
	u, err := ParseUint(s, base, 64)
	if err != nil {
		return 0, err
	}
	cutoff := uint64(1) << uint(bitSize-1)
	if !neg && u >= cutoff {
		return 0, errRange
	}
	if neg && u > cutoff {
		return 0, errRange
	}
	if neg {
		// u == cutoff reinterprets to the exact minimum value.
		return -int64(u), nil
	}
	return int64(u), nil
}

func ParseUint(s string, base, bitSize int) (uint64, error) {
	if base == 0 {
		base = detectBase(&s)
	}
	if base < 2 || base > 36 || len(s) == 0 {
		return 0, errSyntax
	}
	max := ^uint64(0)
	if bitSize != 0 && bitSize != 64 {
		max = uint64(1)<<uint(bitSize) - 1
	}
	var v uint64
	for i := 0; i < len(s); i++ {
		d, ok := digitVal(s[i])
		if !ok || int(d) >= base {
			return 0, errSyntax
		}
		if v > (max-uint64(d))/uint64(base) {
			return 0, errRange
		}
		v = v*uint64(base) + uint64(d)
	}
	return v, nil
}

func digitVal(c byte) (uint8, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'z':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'Z':
		return c - 'A' + 10, true
	}
	return 0, false
}
