package edit

import (
	"errors"
	"testing"

	"ansiedit/internal/model"
	"ansiedit/internal/raster"
)

func TestFilledRectangleDrag(t *testing.T) {
	s := newState(t, 6, 6, 1)
	b := Brush{Shape: raster.ShapeRectangle, Filled: true, Mode: DrawChar, Char: '*'}

	if err := s.BeginDrag(model.Position{X: 1, Y: 1}, b); err != nil {
		t.Fatal(err)
	}
	if err := s.UpdateDrag(model.Position{X: 3, Y: 3}); err != nil {
		t.Fatal(err)
	}
	committed, err := s.EndDrag()
	if err != nil {
		t.Fatal(err)
	}
	if !committed {
		t.Fatal("drag not committed")
	}
	if s.UndoLog().UndoLen() != 1 {
		t.Errorf("UndoLen = %d, want 1", s.UndoLog().UndoLen())
	}
	if s.Canvas().Overlay() != nil {
		t.Error("overlay kept after drag end")
	}

	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			got, _ := s.GetChar(model.Position{X: x, Y: y})
			inside := x >= 1 && x <= 3 && y >= 1 && y <= 3
			if inside && got.Ch != '*' {
				t.Errorf("(%d,%d) = %q, want '*'", x, y, got.Ch)
			}
			if !inside && got != model.Blank {
				t.Errorf("(%d,%d) painted outside the rectangle", x, y)
			}
		}
	}
}

func TestDegenerateDragCommitsNothing(t *testing.T) {
	s := newState(t, 5, 5, 1)
	before := s.Canvas().Clone()
	b := Brush{Shape: raster.ShapeEllipse, Filled: true, Mode: DrawSolid}

	if err := s.BeginDrag(model.Position{X: 2, Y: 2}, b); err != nil {
		t.Fatal(err)
	}
	if s.Canvas().Overlay() == nil {
		t.Fatal("no preview painted on press")
	}
	_ = s.UpdateDrag(model.Position{X: 4, Y: 4})
	_ = s.UpdateDrag(model.Position{X: 2, Y: 2})
	committed, err := s.EndDrag()
	if err != nil {
		t.Fatal(err)
	}
	if committed || s.UndoLog().UndoLen() != 0 {
		t.Error("degenerate drag committed")
	}
	if !s.Canvas().Equal(before) {
		t.Error("degenerate drag mutated the layer")
	}
	if s.DragPhase() != DragIdle {
		t.Error("still dragging")
	}
}

func TestOverlayRepaintedFromScratch(t *testing.T) {
	s := newState(t, 10, 10, 1)
	b := Brush{Shape: raster.ShapeRectangle, Filled: true, Mode: DrawSolid}
	_ = s.BeginDrag(model.Position{}, b)
	_ = s.UpdateDrag(model.Position{X: 8, Y: 8})
	_ = s.UpdateDrag(model.Position{X: 2, Y: 2})

	ov := s.Canvas().Overlay()
	if got := ov.Get(model.Position{X: 7, Y: 7}); !got.IsTransparent() {
		t.Error("stale cell from the larger extent")
	}
	if got := s.Canvas().CompositeCell(model.Position{X: 1, Y: 1}); got.Ch != FullBlock {
		t.Errorf("preview not visible through composite: %+v", got)
	}
	// the live layer is untouched while dragging
	if got, _ := s.GetChar(model.Position{X: 1, Y: 1}); got != model.Blank {
		t.Error("live layer changed during drag")
	}
	s.CancelDrag()
	if s.Canvas().Overlay() != nil || s.DragPhase() != DragIdle {
		t.Error("cancel did not discard the overlay")
	}
}

func TestDragUndoesAsOne(t *testing.T) {
	s := newState(t, 10, 10, 1)
	before := s.Canvas().Clone()
	b := Brush{Shape: raster.ShapeLine, Mode: DrawChar, Char: '-'}
	_ = s.BeginDrag(model.Position{X: 0, Y: 5}, b)
	_ = s.UpdateDrag(model.Position{X: 9, Y: 5})
	if _, err := s.EndDrag(); err != nil {
		t.Fatal(err)
	}
	if got := countChar(t, s, '-'); got != 10 {
		t.Errorf("line cells = %d", got)
	}
	if err := s.Undo(); err != nil {
		t.Fatal(err)
	}
	if !s.Canvas().Equal(before) {
		t.Error("undo did not remove the whole line")
	}
}

func TestBrushUseForeBack(t *testing.T) {
	s := newState(t, 4, 1, 1)
	l, _ := s.Layer()
	l.Set(model.Position{X: 0}, model.NewCell('k', model.NewAttribute(2, 3)))
	s.SetCaretAttribute(model.NewAttribute(14, 1))

	tests := []struct {
		name string
		b    Brush
		want model.Cell
	}{
		{"colorize fg", Brush{Mode: DrawColorize, UseFore: true}, model.NewCell('k', model.NewAttribute(14, 3))},
		{"colorize bg", Brush{Mode: DrawColorize, UseBack: true}, model.NewCell('k', model.NewAttribute(2, 1))},
		{"char both", Brush{Mode: DrawChar, Char: 'q', UseFore: true, UseBack: true}, model.NewCell('q', model.NewAttribute(14, 1))},
		{"solid keeps colours", Brush{Mode: DrawSolid}, model.NewCell(FullBlock, model.NewAttribute(2, 3))},
		{"shade steps ramp", Brush{Mode: DrawShade}, model.NewCell(ShadeRamp[0], model.NewAttribute(2, 3))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ov := model.NewLayer("ov", 4, 1)
			s.plotPoint(ov, l, tt.b, model.Position{X: 0})
			if got := ov.Get(model.Position{X: 0}); got != tt.want {
				t.Errorf("plotted %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNextShade(t *testing.T) {
	tests := []struct {
		in, want rune
	}{
		{' ', 176},
		{176, 177},
		{177, 178},
		{178, 219},
		{219, 219},
	}
	for _, tt := range tests {
		if got := nextShade(tt.in); got != tt.want {
			t.Errorf("nextShade(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestBeginDragLockedLayer(t *testing.T) {
	s := newState(t, 4, 4, 1)
	_ = s.SetLayerLocked(0, true)
	err := s.BeginDrag(model.Position{}, Brush{Shape: raster.ShapeLine})
	if !errors.Is(err, model.ErrLayerLocked) {
		t.Errorf("err = %v", err)
	}
	if s.DragPhase() != DragIdle {
		t.Error("drag started on a locked layer")
	}
}

func TestDragMergeSkipsTransparent(t *testing.T) {
	s := newState(t, 8, 8, 2)
	b := Brush{Shape: raster.ShapeEllipse, Mode: DrawChar, Char: 'o'}
	_ = s.BeginDrag(model.Position{X: 0, Y: 0}, b)
	_ = s.UpdateDrag(model.Position{X: 7, Y: 7})
	if _, err := s.EndDrag(); err != nil {
		t.Fatal(err)
	}
	l, _ := s.Layer()
	if got := l.Get(model.Position{X: 4, Y: 4}); !got.IsTransparent() {
		t.Errorf("outline ellipse stamped its interior: %+v", got)
	}
	if got := l.Get(model.Position{X: 0, Y: 4}); got.Ch != 'o' {
		t.Errorf("boundary cell = %+v", got)
	}
}

func TestPlotShadeSteps(t *testing.T) {
	s := newState(t, 3, 1, 1)
	b := Brush{Mode: DrawShade, UseFore: true}
	s.SetCaretAttribute(model.NewAttribute(12, 0))
	p := model.Position{X: 1, Y: 0}

	s.BeginAtomicUndo("Pencil")
	for i := 0; i < 5; i++ {
		if err := s.Plot(p, b); err != nil {
			t.Fatal(err)
		}
	}
	s.EndAtomicUndo()

	got, _ := s.GetChar(p)
	if got.Ch != FullBlock || got.Attr.Foreground != 12 {
		t.Errorf("cell = %q fg %d, want full block fg 12", got.Ch, got.Attr.Foreground)
	}
	if s.UndoLog().UndoLen() != 1 {
		t.Errorf("UndoLen = %d, want 1", s.UndoLog().UndoLen())
	}
	if err := s.Plot(model.Position{X: 5, Y: 0}, b); !errors.Is(err, model.ErrInvalidPosition) {
		t.Errorf("err = %v, want ErrInvalidPosition", err)
	}
}
