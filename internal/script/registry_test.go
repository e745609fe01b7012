package script

import (
	"context"
	"slices"
	"testing"
)

func TestRegisterAndReset(t *testing.T) {
	t.Cleanup(Reset)

	called := 0
	err := Register(Command{Name: "ping", Args: 1, Usage: "ping N", Run: func(e *Env, a []int) error {
		called += a[0]
		e.Printf("pong")
		return nil
	}})
	if err != nil {
		t.Fatal(err)
	}
	h, _ := newHandle(t)
	res, err := Run(context.Background(), h, "ping 3")
	if err != nil {
		t.Fatal(err)
	}
	if called != 3 || len(res.Output) != 1 {
		t.Errorf("called = %d, output = %q", called, res.Output)
	}

	Reset()
	if _, ok := Lookup("ping"); ok {
		t.Error("ping survived Reset")
	}
	if _, ok := Lookup("set_char"); !ok {
		t.Error("builtins missing after Reset")
	}
}

func TestRegisterIncomplete(t *testing.T) {
	t.Cleanup(Reset)
	if err := Register(Command{Name: "nothing"}); err == nil {
		t.Error("want error for command without Run")
	}
}

func TestNames(t *testing.T) {
	t.Cleanup(Reset)
	names := Names()
	for _, want := range []string{"bg", "fg", "fill", "get_char", "layer", "redo", "set_char", "undo", "x", "y"} {
		if !slices.Contains(names, want) {
			t.Errorf("missing %q", want)
		}
	}
	if !slices.IsSorted(names) {
		t.Error("names not sorted")
	}
}
