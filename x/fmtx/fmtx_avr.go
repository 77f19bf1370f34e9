//go:build avr

package fmtx

import (
	"io"
	"unicode/utf8"

	"avrhal-go/x/strconvx"
)

// AVR builds carry a small formatter instead of fmt: the reflection
// machinery behind fmt costs more flash than a 32u4 has. Supported
// verbs: %s %q %d %x %X %t %v and %%, with width and precision on %s.
// Floats are not handled; nothing in this module produces them.

// DefaultOutput is where Print and Printf write. Starts out
// discarding; the board bootstrap installs a UART writer.
var DefaultOutput io.Writer = discard{}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func Sprintf(format string, a ...any) string {
	var b builder
	b.format(format, a...)
	return string(b.buf)
}

func Printf(format string, a ...any) (int, error) {
	return io.WriteString(DefaultOutput, Sprintf(format, a...))
}

func Fprintf(w io.Writer, format string, a ...any) (int, error) {
	return io.WriteString(w, Sprintf(format, a...))
}

func Errorf(format string, a ...any) error {
	return &stringError{Sprintf(format, a...)}
}

func Sprint(a ...any) string {
	var b builder
	for i, v := range a {
		if i > 0 {
			b.byte(' ')
		}
		b.any(v)
	}
	return string(b.buf)
}

func Fprint(w io.Writer, a ...any) (int, error) { return io.WriteString(w, Sprint(a...)) }
func Print(a ...any) (int, error)               { return Fprint(DefaultOutput, a...) }

type stringError struct{ s string }

func (e *stringError) Error() string { return e.s }

// ---------- formatter ----------

type builder struct{ buf []byte }

func (b *builder) byte(c byte)  { b.buf = append(b.buf, c) }
func (b *builder) str(s string) { b.buf = append(b.buf, s...) }

func (b *builder) format(format string, args ...any) {
	ai := 0
	for i := 0; i < len(format); {
		if format[i] != '%' {
			b.byte(format[i])
			i++
			continue
		}
		if i+1 < len(format) && format[i+1] == '%' {
			b.byte('%')
			i += 2
			continue
		}
		i++
		width, prec, hasPrec := 0, 0, false
		i = scanNum(format, i, &width)
		if i < len(format) && format[i] == '.' {
			i++
			hasPrec = true
			i = scanNum(format, i, &prec)
		}
		if i >= len(format) || ai >= len(args) {
			return
		}
		verb := format[i]
		arg := args[ai]
		ai++
		i++
		b.verb(verb, arg, width, prec, hasPrec)
	}
}

func (b *builder) verb(verb byte, arg any, width, prec int, hasPrec bool) {
	switch verb {
	case 's', 'q':
		s, ok := stringArg(arg)
		if !ok {
			b.any(arg)
			return
		}
		if verb == 'q' {
			s = quote(s)
		}
		if hasPrec && prec < len(s) {
			s = s[:prec]
		}
		for pad := width - utf8.RuneCountInString(s); pad > 0; pad-- {
			b.byte(' ')
		}
		b.str(s)
	case 'd':
		b.str(strconvx.FormatInt(toI64(arg), 10))
	case 'x':
		b.str(strconvx.FormatUint(uint64(toI64(arg)), 16))
	case 'X':
		b.str(upperHex(strconvx.FormatUint(uint64(toI64(arg)), 16)))
	case 't':
		v, _ := arg.(bool)
		b.bool(v)
	case 'v':
		b.any(arg)
	default:
		// Unknown verb: emit it literally so the bug is visible.
		b.byte('%')
		b.byte(verb)
	}
}

// any renders v the way %v would.
func (b *builder) any(v any) {
	switch x := v.(type) {
	case string:
		b.str(x)
	case []byte:
		b.buf = append(b.buf, x...)
	case bool:
		b.bool(x)
	case int:
		b.str(strconvx.FormatInt(int64(x), 10))
	case int8:
		b.str(strconvx.FormatInt(int64(x), 10))
	case int16:
		b.str(strconvx.FormatInt(int64(x), 10))
	case int32:
		b.str(strconvx.FormatInt(int64(x), 10))
	case int64:
		b.str(strconvx.FormatInt(x, 10))
	case uint:
		b.str(strconvx.FormatUint(uint64(x), 10))
	case uint8:
		b.str(strconvx.FormatUint(uint64(x), 10))
	case uint16:
		b.str(strconvx.FormatUint(uint64(x), 10))
	case uint32:
		b.str(strconvx.FormatUint(uint64(x), 10))
	case uint64:
		b.str(strconvx.FormatUint(x, 10))
	case error:
		b.str(x.Error())
	case interface{ String() string }:
		b.str(x.String())
	default:
		b.str("<unk>")
	}
}

func (b *builder) bool(v bool) {
	if v {
		b.str("true")
	} else {
		b.str("false")
	}
}

func stringArg(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case []byte:
		return string(x), true
	case error:
		return x.Error(), true
	case interface{ String() string }:
		return x.String(), true
	}
	return "", false
}

func toI64(v any) int64 {
	switch t := v.(type) {
	case int:
		return int64(t)
	case int8:
		return int64(t)
	case int16:
		return int64(t)
	case int32:
		return int64(t)
	case int64:
		return t
	case uint:
		return int64(t)
	case uint8:
		return int64(t)
	case uint16:
		return int64(t)
	case uint32:
		return int64(t)
	case uint64:
		return int64(t)
	}
	return 0
}

func scanNum(s string, i int, out *int) int {
	n, start := 0, i
	for i < len(s) && '0' <= s[i] && s[i] <= '9' {
		n = n*10 + int(s[i]-'0')
		i++
	}
	if i > start {
		*out = n
	}
	return i
}

func upperHex(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'a' <= c && c <= 'f' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}

func quote(s string) string {
	out := append(make([]byte, 0, len(s)+2), '"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\', '"':
			out = append(out, '\\', c)
		case '\n':
			out = append(out, '\\', 'n')
		case '\r':
			out = append(out, '\\', 'r')
		case '\t':
			out = append(out, '\\', 't')
		default:
			out = append(out, c)
		}
	}
	return string(append(out, '"'))
}
