//go:build !avr

package fmtx

import (
	"fmt"
	"io"
	"os"
)

// DefaultOutput is where Print and Printf write. Host builds default
// to stdout; AVR builds start out discarding until the board
// bootstrap installs a real sink.
var DefaultOutput io.Writer = os.Stdout

func Sprintf(format string, a ...any) string                    { return fmt.Sprintf(format, a...) }
func Fprintf(w io.Writer, format string, a ...any) (int, error) { return fmt.Fprintf(w, format, a...) }
func Errorf(format string, a ...any) error                      { return fmt.Errorf(format, a...) }

func Printf(format string, a ...any) (int, error) {
	return fmt.Fprintf(DefaultOutput, format, a...)
}

// Sprint joins every operand with a single space. fmt.Sprint only
// spaces non-string neighbours, which reads badly on log lines, so
// both builds use the plain joined form.
func Sprint(a ...any) string {
	s := fmt.Sprintln(a...)
	return s[:len(s)-1]
}

func Fprint(w io.Writer, a ...any) (int, error) { return io.WriteString(w, Sprint(a...)) }
func Print(a ...any) (int, error)               { return Fprint(DefaultOutput, a...) }
