package undo

import (
	"errors"
	"testing"

	"ansiedit/internal/model"
)

type testTarget struct {
	canvas *model.Canvas
	layer  int
}

func (t *testTarget) Canvas() *model.Canvas { return t.canvas }
func (t *testTarget) SetLayerIndex(i int)   { t.layer = i }

func newTarget() *testTarget {
	return &testTarget{canvas: model.New(4, 4)}
}

// set applies a cell change to layer 0 and returns the matching record.
func set(t *testTarget, x, y int, ch rune) SetCharData {
	l, _ := t.canvas.LayerAt(0)
	p := model.Position{X: x, Y: y}
	d := SetCharData{Layer: 0, Pos: p, Old: l.Get(p), New: model.NewCell(ch, model.DefaultAttribute)}
	l.Set(p, d.New)
	return d
}

func TestEmptyLog(t *testing.T) {
	l := NewLog()
	tg := newTarget()
	if _, err := l.Undo(tg); !errors.Is(err, model.ErrNothingToUndo) {
		t.Errorf("Undo err = %v", err)
	}
	if _, err := l.Redo(tg); !errors.Is(err, model.ErrNothingToRedo) {
		t.Errorf("Redo err = %v", err)
	}
}

func TestNestedBeginFlattens(t *testing.T) {
	l := NewLog()
	tg := newTarget()

	l.Begin("outer")
	l.Push("a", set(tg, 0, 0, 'a'))
	l.Begin("inner")
	l.Push("b", set(tg, 1, 0, 'b'))
	if l.End() {
		t.Error("inner End must not commit")
	}
	l.Push("c", set(tg, 2, 0, 'c'))
	if !l.End() {
		t.Fatal("outer End did not commit")
	}

	if l.UndoLen() != 1 {
		t.Fatalf("UndoLen = %d, want 1", l.UndoLen())
	}
	if got := l.UndoDescription(); got != "outer" {
		t.Errorf("description = %q, want outer", got)
	}

	tr, err := l.Undo(tg)
	if err != nil {
		t.Fatal(err)
	}
	if tr.Len() != 3 {
		t.Errorf("transaction holds %d ops, want 3", tr.Len())
	}
	bg, _ := tg.canvas.LayerAt(0)
	for x := 0; x < 3; x++ {
		if got := bg.Get(model.Position{X: x}); got != model.Blank {
			t.Errorf("cell %d not restored: %+v", x, got)
		}
	}
}

func TestEmptyTransactionIsDropped(t *testing.T) {
	l := NewLog()
	l.Begin("nothing")
	if l.End() {
		t.Error("empty transaction committed")
	}
	if l.UndoLen() != 0 {
		t.Errorf("UndoLen = %d", l.UndoLen())
	}
}

func TestPushOutsideTransaction(t *testing.T) {
	l := NewLog()
	tg := newTarget()
	l.Push("one", set(tg, 0, 0, 'x'))
	l.Push("two", set(tg, 0, 0, 'y'))
	if l.UndoLen() != 2 {
		t.Errorf("UndoLen = %d, want 2", l.UndoLen())
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	l := NewLog()
	tg := newTarget()
	before := tg.canvas.Clone()

	l.Push("a", set(tg, 0, 0, 'a'))
	l.Begin("layer")
	extra := model.NewLayer("extra", 2, 2)
	_ = tg.canvas.InsertLayer(1, extra)
	l.Push("", AddLayerData{Index: 1, Layer: extra})
	l.Push("", CurrentLayerData{Old: 0, New: 1})
	tg.layer = 1
	l.End()
	old := tg.canvas.Palette
	tg.canvas.Palette = model.C64Palette()
	l.Push("palette", SwitchPaletteData{Old: old, New: tg.canvas.Palette})
	after := tg.canvas.Clone()

	for i := 0; i < 3; i++ {
		if _, err := l.Undo(tg); err != nil {
			t.Fatal(err)
		}
	}
	if !tg.canvas.Equal(before) {
		t.Error("undo all did not restore the initial canvas")
	}
	if tg.layer != 0 {
		t.Errorf("current layer = %d after undo", tg.layer)
	}

	for i := 0; i < 3; i++ {
		if _, err := l.Redo(tg); err != nil {
			t.Fatal(err)
		}
	}
	if !tg.canvas.Equal(after) {
		t.Error("redo all did not restore the final canvas")
	}
	if tg.layer != 1 {
		t.Errorf("current layer = %d after redo", tg.layer)
	}
}

func TestNewEditDropsRedo(t *testing.T) {
	l := NewLog()
	tg := newTarget()
	l.Push("a", set(tg, 0, 0, 'a'))
	if _, err := l.Undo(tg); err != nil {
		t.Fatal(err)
	}
	if l.RedoLen() != 1 {
		t.Fatalf("RedoLen = %d", l.RedoLen())
	}
	l.Push("b", set(tg, 0, 0, 'b'))
	if l.RedoLen() != 0 {
		t.Error("redo stack survived a new edit")
	}
}

func TestUndoWhileOpen(t *testing.T) {
	l := NewLog()
	tg := newTarget()
	l.Push("a", set(tg, 0, 0, 'a'))
	l.Begin("open")
	if _, err := l.Undo(tg); !errors.Is(err, ErrTransactionOpen) {
		t.Errorf("err = %v", err)
	}
	l.End()
}

func TestRollbackRevertsOpenTransaction(t *testing.T) {
	l := NewLog()
	tg := newTarget()
	l.Push("a", set(tg, 0, 0, 'a'))
	layer, _ := tg.canvas.LayerAt(0)
	before := layer.Get(model.Position{X: 1, Y: 0})

	l.Begin("move")
	l.Push("b", set(tg, 1, 0, 'b'))
	l.Push("c", set(tg, 1, 0, 'c'))
	if err := l.Rollback(tg); err != nil {
		t.Fatalf("Rollback: %v", err)
	}

	if got := layer.Get(model.Position{X: 1, Y: 0}); !got.Equal(before) {
		t.Errorf("cell = %v, want %v", got, before)
	}
	if l.InTransaction() {
		t.Error("transaction still open after Rollback")
	}
	if l.UndoLen() != 1 || l.RedoLen() != 0 {
		t.Errorf("undo/redo = %d/%d, want 1/0", l.UndoLen(), l.RedoLen())
	}
	if l.UndoDescription() != "a" {
		t.Errorf("UndoDescription = %q", l.UndoDescription())
	}
}

func TestRollbackNested(t *testing.T) {
	l := NewLog()
	tg := newTarget()
	l.Begin("outer")
	l.Begin("inner")
	if err := l.Rollback(tg); !errors.Is(err, ErrTransactionOpen) {
		t.Errorf("err = %v", err)
	}
	l.End()
	if err := l.Rollback(tg); err != nil {
		t.Errorf("outer Rollback: %v", err)
	}
	if err := l.Rollback(tg); err != nil {
		t.Errorf("Rollback with nothing open: %v", err)
	}
}

func TestResizeLayerRestoresCutCells(t *testing.T) {
	tg := newTarget()
	l, _ := tg.canvas.LayerAt(0)
	c := model.NewCell('q', model.DefaultAttribute)
	l.Set(model.Position{X: 3, Y: 3}, c)

	d := ResizeLayerData{Layer: 0, Old: l.Size(), New: model.Size{Width: 2, Height: 2}, Snapshot: l.Clone()}
	if err := d.Redo(tg); err != nil {
		t.Fatal(err)
	}
	if err := d.Undo(tg); err != nil {
		t.Fatal(err)
	}
	if got := l.Get(model.Position{X: 3, Y: 3}); got != c {
		t.Errorf("cut cell not restored: %+v", got)
	}
}
