package model

import (
	"errors"
	"testing"
)

func TestCanvasIndexChecks(t *testing.T) {
	c := New(4, 4)

	if _, err := c.LayerAt(1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("LayerAt(1) err = %v", err)
	}
	if err := c.InsertLayer(2, NewLayer("x", 1, 1)); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("InsertLayer(2) err = %v", err)
	}
	if _, err := c.RemoveLayer(-1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("RemoveLayer(-1) err = %v", err)
	}
	if err := c.Swap(0, 3); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Swap(0,3) err = %v", err)
	}
	if c.LayerCount() != 1 {
		t.Errorf("LayerCount = %d after failed calls", c.LayerCount())
	}
}

func TestCanvasInsertRemoveSwap(t *testing.T) {
	c := New(4, 4)
	a := NewLayer("a", 4, 4)
	b := NewLayer("b", 4, 4)
	if err := c.InsertLayer(1, a); err != nil {
		t.Fatal(err)
	}
	if err := c.InsertLayer(1, b); err != nil {
		t.Fatal(err)
	}
	// background, b, a
	if err := c.Swap(1, 2); err != nil {
		t.Fatal(err)
	}
	if l, _ := c.LayerAt(2); l != b {
		t.Errorf("top layer = %q, want b", l.Title)
	}
	removed, err := c.RemoveLayer(1)
	if err != nil {
		t.Fatal(err)
	}
	if removed != a || c.LayerCount() != 2 {
		t.Errorf("removed %q, count %d", removed.Title, c.LayerCount())
	}
}

func TestCompositeCell(t *testing.T) {
	c := New(5, 5)
	top := NewLayer("top", 2, 2)
	top.Offset = Position{3, 3}
	x := NewCell('x', DefaultAttribute)
	top.Set(Position{0, 0}, x)
	if err := c.InsertLayer(1, top); err != nil {
		t.Fatal(err)
	}

	if got := c.CompositeCell(Position{3, 3}); got != x {
		t.Errorf("composite = %+v, want top cell", got)
	}
	if got := c.CompositeCell(Position{4, 4}); got != Blank {
		t.Errorf("transparent cell did not fall through: %+v", got)
	}

	top.IsVisible = false
	if got := c.CompositeCell(Position{3, 3}); got != Blank {
		t.Errorf("invisible layer contributed: %+v", got)
	}
	top.IsVisible = true

	forced := NewAttribute(12, 1)
	top.ForcedAttr = &forced
	if got := c.CompositeCell(Position{3, 3}); got.Attr != forced {
		t.Errorf("forced attribute ignored: %+v", got.Attr)
	}

	ov := c.EnsureOverlay()
	o := NewCell('o', DefaultAttribute)
	ov.Set(Position{3, 3}, o)
	if got := c.CompositeCell(Position{3, 3}); got != o {
		t.Errorf("overlay not on top: %+v", got)
	}
	c.RemoveOverlay()
	if c.Overlay() != nil {
		t.Error("overlay not removed")
	}
}

func TestBackgroundRoleStaysBelow(t *testing.T) {
	c := NewEmpty(2, 2)
	normal := NewLayer("n", 2, 2)
	n := NewCell('n', DefaultAttribute)
	normal.Set(Position{0, 0}, n)
	if err := c.InsertLayer(0, normal); err != nil {
		t.Fatal(err)
	}
	if err := c.InsertLayer(1, NewBackgroundLayer(2, 2)); err != nil {
		t.Fatal(err)
	}
	if got := c.CompositeCell(Position{0, 0}); got != n {
		t.Errorf("background layer painted over a normal layer: %+v", got)
	}
	vis := c.VisibleLayers()
	if len(vis) != 2 || vis[0].Role != RoleBackground {
		t.Errorf("VisibleLayers order wrong")
	}
}

func TestSelection(t *testing.T) {
	r := NewRectSelection(RectFromPoints(Position{3, 3}, Position{1, 1}))
	if !r.Contains(Position{2, 2}) || r.Contains(Position{0, 0}) {
		t.Error("rect selection containment wrong")
	}
	m := NewMaskSelection([]Position{{5, 1}, {2, 4}})
	if !m.Contains(Position{5, 1}) || m.Contains(Position{3, 3}) {
		t.Error("mask selection containment wrong")
	}
	if got := m.Bounds(); got != RectFromPoints(Position{2, 1}, Position{5, 4}) {
		t.Errorf("Bounds = %+v", got)
	}
}
