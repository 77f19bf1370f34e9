package errcode

import (
	"errors"
	"testing"
)

func TestCodeStrings(t *testing.T) {
	for want, c := range map[string]Code{
		"ok":             OK,
		"busy":           Busy,
		"unsupported":    Unsupported,
		"invalid_params": InvalidParams,
		"conflict":       Conflict,
		"unknown_pin":    UnknownPin,
		"pin_in_use":     PinInUse,
		"bad_mode":       BadMode,
		"error":          Error,
	} {
		if c.Error() != want {
			t.Fatalf("code %q: got %q", want, c.Error())
		}
	}
}

func TestOf(t *testing.T) {
	if Of(nil) != OK {
		t.Fatal("Of(nil) should be OK")
	}
	if Of(Conflict) != Conflict {
		t.Fatal("Of should pass bare codes through")
	}
	e := &E{C: PinInUse, Op: "claim", Msg: "PB5"}
	if Of(e) != PinInUse {
		t.Fatal("Of should unwrap E")
	}
	if Of(errors.New("boom")) != Error {
		t.Fatal("Of should default to Error")
	}
}

func TestEMessage(t *testing.T) {
	e := &E{C: Conflict, Msg: "timer1 at 490Hz"}
	if e.Error() != "conflict: timer1 at 490Hz" {
		t.Fatalf("unexpected message: %q", e.Error())
	}
	bare := &E{C: Busy}
	if bare.Error() != "busy" {
		t.Fatalf("unexpected bare message: %q", bare.Error())
	}
	cause := errors.New("root")
	wrapped := &E{C: Error, Err: cause}
	if !errors.Is(wrapped, cause) {
		t.Fatal("Unwrap chain broken")
	}
}
