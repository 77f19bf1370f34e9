package global

import "testing"

func TestWithBeforeSet(t *testing.T) {
	var c Cell[int]
	if c.IsSet() {
		t.Fatal("fresh cell should be empty")
	}
	if c.With(func(*int) {}) {
		t.Fatal("With on empty cell must report false")
	}
}

func TestSetAndMutate(t *testing.T) {
	var c Cell[int]
	c.Set(41)
	ok := c.With(func(v *int) { *v++ })
	if !ok {
		t.Fatal("With after Set must run")
	}
	var got int
	c.With(func(v *int) { got = *v })
	if got != 42 {
		t.Fatalf("got %d", got)
	}
}

func TestTrySetOnce(t *testing.T) {
	var c Cell[string]
	if !c.TrySet("first") {
		t.Fatal("first TrySet must win")
	}
	if c.TrySet("second") {
		t.Fatal("second TrySet must lose")
	}
	var got string
	c.With(func(v *string) { got = *v })
	if got != "first" {
		t.Fatalf("got %q", got)
	}
}
