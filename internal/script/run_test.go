package script

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/multierr"

	"ansiedit/internal/edit"
	"ansiedit/internal/model"
)

func newHandle(t *testing.T) (*edit.Handle, *edit.State) {
	t.Helper()
	s := edit.NewState(model.New(4, 4))
	return edit.NewHandle(s), s
}

func cellAt(h *edit.Handle, x, y int) model.Cell {
	var c model.Cell
	h.View(func(cv *model.Canvas) {
		l, _ := cv.LayerAt(0)
		c = l.Get(model.Position{X: x, Y: y})
	})
	return c
}

func TestRunSingleTransaction(t *testing.T) {
	h, s := newHandle(t)
	src := `# draw two letters
fg 4
set_char 0 0 65
set_char 1 0 66

get_char 0 0
`
	res, err := Run(context.Background(), h, src)
	if err != nil {
		t.Fatal(err)
	}
	if res.Executed != 4 || res.Failed != 0 {
		t.Errorf("executed %d failed %d", res.Executed, res.Failed)
	}
	if len(res.Output) != 1 || res.Output[0] != "65 4 0" {
		t.Errorf("output = %q", res.Output)
	}
	if n := s.UndoLog().UndoLen(); n != 1 {
		t.Fatalf("undo len = %d, want 1", n)
	}
	if got := s.UndoLog().UndoDescription(); got != "Script" {
		t.Errorf("description = %q", got)
	}

	if err := h.Do((*edit.State).Undo); err != nil {
		t.Fatal(err)
	}
	if cellAt(h, 0, 0).Ch != ' ' || cellAt(h, 1, 0).Ch != ' ' {
		t.Error("undo left script edits behind")
	}
}

func TestRunParseErrors(t *testing.T) {
	h, s := newHandle(t)
	_, err := Run(context.Background(), h, "bogus 1\nset_char 0\nset_char 0 0 65\nfg x")
	errs := multierr.Errors(err)
	if len(errs) != 3 {
		t.Fatalf("got %d errors, want 3: %v", len(errs), err)
	}
	if !errors.Is(errs[0], ErrUnknownCommand) {
		t.Errorf("errs[0] = %v", errs[0])
	}
	if !errors.Is(errs[1], ErrArguments) {
		t.Errorf("errs[1] = %v", errs[1])
	}
	if cellAt(h, 0, 0).Ch != ' ' {
		t.Error("script with parse errors ran")
	}
	if s.UndoLog().UndoLen() != 0 {
		t.Error("script with parse errors touched the undo log")
	}
}

func TestRunBoundsChecks(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"position", "set_char 9 9 65", model.ErrInvalidPosition},
		{"negative position", "get_char -1 0", model.ErrInvalidPosition},
		{"layer", "layer 3", model.ErrIndexOutOfRange},
		{"layer position", "set_layer_position 2 0 0", model.ErrIndexOutOfRange},
		{"visible flag", "set_layer_visible 0 2", model.ErrIndexOutOfRange},
		{"palette", "fg 16", model.ErrIndexOutOfRange},
		{"rgb", "bg_rgb 0 0 256", model.ErrIndexOutOfRange},
		{"char code", "set_char 0 0 -5", model.ErrIndexOutOfRange},
		{"caret", "x 4", model.ErrInvalidPosition},
		{"fill", "fill 0 7 35", model.ErrInvalidPosition},
		{"undo", "undo", model.ErrNothingToUndo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, s := newHandle(t)
			res, err := Run(context.Background(), h, tt.src)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
			if res.Failed != 1 {
				t.Errorf("failed = %d", res.Failed)
			}
			if s.UndoLog().UndoLen() != 0 {
				t.Error("failed command left an undo step")
			}
		})
	}
}

func TestRunKeepsGoingAfterFailure(t *testing.T) {
	h, s := newHandle(t)
	res, err := Run(context.Background(), h, "set_char 9 9 65\nset_char 0 0 65\nlayer 3")
	if len(multierr.Errors(err)) != 2 {
		t.Errorf("err = %v", err)
	}
	if !errors.Is(err, model.ErrInvalidPosition) {
		t.Errorf("err = %v, want ErrInvalidPosition in chain", err)
	}
	if res.Executed != 3 || res.Failed != 2 {
		t.Errorf("executed %d failed %d", res.Executed, res.Failed)
	}
	if cellAt(h, 0, 0).Ch != 65 {
		t.Error("valid command did not run")
	}
	if s.UndoLog().UndoLen() != 1 {
		t.Error("want one undo step")
	}
}

func TestRunColorCommands(t *testing.T) {
	h, s := newHandle(t)
	if _, err := Run(context.Background(), h, "fg_rgb 1 2 3\nbg_rgb 0 0 170"); err != nil {
		t.Fatal(err)
	}
	if n := s.Canvas().Palette.Len(); n != 17 {
		t.Errorf("palette len = %d, want 17", n)
	}
	attr := s.Caret().Attr
	if attr.Foreground != 16 || attr.Background != 1 {
		t.Errorf("caret = %d/%d, want 16/1", attr.Foreground, attr.Background)
	}
}

func TestRunFillAndLayers(t *testing.T) {
	h, s := newHandle(t)
	src := "fill 0 0 35\nset_layer_position 0 1 2\nset_layer_visible 0 0"
	if _, err := Run(context.Background(), h, src); err != nil {
		t.Fatal(err)
	}
	l, _ := s.Canvas().LayerAt(0)
	if l.Offset != (model.Position{X: 1, Y: 2}) || l.IsVisible {
		t.Errorf("layer = offset %v visible %v", l.Offset, l.IsVisible)
	}
	if cellAt(h, 3, 3).Ch != 35 {
		t.Error("fill did not reach the far corner")
	}
	if s.UndoLog().UndoLen() != 1 {
		t.Errorf("undo len = %d", s.UndoLog().UndoLen())
	}
}

func TestRunHistoryCommands(t *testing.T) {
	h, s := newHandle(t)
	if _, err := Run(context.Background(), h, "set_char 0 0 65\nundo\nset_char 1 0 66"); err != nil {
		t.Fatal(err)
	}
	if cellAt(h, 0, 0).Ch != ' ' || cellAt(h, 1, 0).Ch != 66 {
		t.Error("undo inside script did not revert the earlier edit")
	}
	if s.UndoLog().UndoLen() != 1 || s.UndoLog().RedoLen() != 0 {
		t.Errorf("undo %d redo %d", s.UndoLog().UndoLen(), s.UndoLog().RedoLen())
	}
}
