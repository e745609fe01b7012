package edit

import (
	"fmt"

	"go.uber.org/zap"

	"ansiedit/internal/model"
	"ansiedit/internal/raster"
)

// DragPhase is the state of the shape tool gesture.
type DragPhase int

const (
	DragIdle DragPhase = iota
	Dragging
)

type drag struct {
	phase DragPhase
	start model.Position
	cur   model.Position
	brush Brush
}

func (s *State) DragPhase() DragPhase {
	return s.drag.phase
}

// DragPoints returns the start and current positions of the gesture.
func (s *State) DragPoints() (model.Position, model.Position) {
	return s.drag.start, s.drag.cur
}

// BeginDrag starts a shape gesture at p and paints its first preview.
func (s *State) BeginDrag(p model.Position, b Brush) error {
	if _, err := s.writableLayer(); err != nil {
		return err
	}
	s.drag = drag{phase: Dragging, start: p, cur: p, brush: b}
	return s.repaintOverlay()
}

// UpdateDrag moves the gesture end to p and repaints the overlay from
// scratch.
func (s *State) UpdateDrag(p model.Position) error {
	if s.drag.phase != Dragging {
		return nil
	}
	s.drag.cur = p
	return s.repaintOverlay()
}

func (s *State) repaintOverlay() error {
	l, err := s.Layer()
	if err != nil {
		s.CancelDrag()
		return err
	}
	overlay := s.canvas.EnsureOverlay()
	overlay.Clear()

	lines := raster.New()
	lines.AddShape(s.drag.brush.Shape, s.drag.brush.Filled, s.drag.start, s.drag.cur)
	lines.Fill(func(p model.Position) {
		s.plotPoint(overlay, l, s.drag.brush, p)
	})
	return nil
}

// EndDrag finishes the gesture. A drag that never left its start cell is
// discarded; otherwise the overlay is merged into the current layer as one
// transaction. It reports whether anything was committed.
func (s *State) EndDrag() (bool, error) {
	if s.drag.phase != Dragging {
		return false, nil
	}
	d := s.drag
	defer s.CancelDrag()

	if d.start == d.cur {
		return false, nil
	}
	l, err := s.writableLayer()
	if err != nil {
		return false, err
	}
	overlay := s.canvas.Overlay()
	if overlay == nil {
		return false, nil
	}

	before := s.log.UndoLen()
	s.BeginAtomicUndo(fmt.Sprintf("Draw %s", d.brush.Shape))
	size := overlay.Size()
	for y := 0; y < size.Height; y++ {
		for x := 0; x < size.Width; x++ {
			p := model.Position{X: x, Y: y}
			c := overlay.Get(p)
			if c.IsTransparent() || !l.Size().Contains(p.Sub(l.Offset)) {
				continue
			}
			if err := s.setChar(l, p, c); err != nil {
				s.EndAtomicUndo()
				return false, err
			}
		}
	}
	s.EndAtomicUndo()
	committed := s.log.UndoLen() > before
	s.logger.Debug("drag end",
		zap.Stringer("shape", d.brush.Shape),
		zap.Stringer("start", d.start),
		zap.Stringer("end", d.cur),
		zap.Bool("committed", committed))
	return committed, nil
}

// CancelDrag drops the gesture and its overlay without touching the layer.
func (s *State) CancelDrag() {
	s.drag = drag{}
	s.canvas.RemoveOverlay()
}
