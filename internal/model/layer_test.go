package model

import (
	"errors"
	"testing"
)

func TestLayerGetOutOfBounds(t *testing.T) {
	l := NewLayer("l", 3, 2)
	for _, p := range []Position{{-1, 0}, {0, -1}, {3, 0}, {0, 2}} {
		if got := l.Get(p); got != Transparent {
			t.Errorf("Get(%v) = %+v, want Transparent", p, got)
		}
	}
}

func TestLayerSet(t *testing.T) {
	l := NewLayer("l", 3, 3)
	c := NewCell('x', DefaultAttribute)

	l.Set(Position{1, 1}, c)
	if got := l.Get(Position{1, 1}); got != c {
		t.Errorf("Get = %+v, want %+v", got, c)
	}

	// clipped silently
	l.Set(Position{5, 5}, c)

	l.IsLocked = true
	l.Set(Position{0, 0}, c)
	if got := l.Get(Position{0, 0}); got != Transparent {
		t.Error("locked layer accepted a write")
	}

	l.Restore(Position{0, 0}, c)
	if got := l.Get(Position{0, 0}); got != c {
		t.Error("Restore must bypass the lock")
	}
}

func TestLayerMoveBy(t *testing.T) {
	l := NewLayer("l", 2, 2)
	if err := l.MoveBy(Position{-3, 4}); err != nil {
		t.Fatal(err)
	}
	if l.Offset != (Position{-3, 4}) {
		t.Errorf("Offset = %v", l.Offset)
	}

	l.IsPositionLocked = true
	if err := l.MoveBy(Position{1, 1}); !errors.Is(err, ErrLayerLocked) {
		t.Errorf("err = %v, want ErrLayerLocked", err)
	}
	if l.Offset != (Position{-3, 4}) {
		t.Error("offset changed on a position locked layer")
	}
}

func TestLayerResize(t *testing.T) {
	l := NewBackgroundLayer(2, 2)
	c := NewCell('z', DefaultAttribute)
	l.Set(Position{1, 1}, c)

	l.Resize(Size{Width: 4, Height: 3})
	if got := l.Get(Position{1, 1}); got != c {
		t.Errorf("content lost on grow: %+v", got)
	}
	if got := l.Get(Position{3, 2}); got != Blank {
		t.Errorf("new area = %+v, want Blank", got)
	}

	l.Resize(Size{Width: 1, Height: 1})
	if l.Size() != (Size{1, 1}) {
		t.Errorf("Size = %v", l.Size())
	}
	if got := l.Get(Position{1, 1}); got != Transparent {
		t.Error("cell outside the shrunk layer still readable")
	}
}

func TestLayerCloneIsDeep(t *testing.T) {
	l := NewLayer("l", 2, 2)
	n := l.Clone()
	n.Set(Position{0, 0}, Blank)
	if l.Get(Position{0, 0}) != Transparent {
		t.Error("clone shares cells with the original")
	}
	if l.Equal(n) {
		t.Error("Equal ignores cell content")
	}
}
