package main

import (
	"errors"

	"ansiedit/internal/edit"
	doc "ansiedit/internal/model"
	"ansiedit/internal/raster"
)

func (t Tool) String() string {
	switch t {
	case ToolPencil:
		return "pencil"
	case ToolFill:
		return "fill"
	case ToolPipette:
		return "pipette"
	case ToolLine:
		return "line"
	case ToolRectangle:
		return "rectangle"
	case ToolEllipse:
		return "ellipse"
	case ToolSelect:
		return "select"
	default:
		return "unknown"
	}
}

func (t Tool) isShape() bool {
	return t == ToolLine || t == ToolRectangle || t == ToolEllipse
}

// isGesture reports whether the tool works from press to release.
func (t Tool) isGesture() bool {
	return t.isShape() || t == ToolSelect
}

func (m *model) currentBrush() edit.Brush {
	b := m.brush
	switch m.tool {
	case ToolLine:
		b.Shape = raster.ShapeLine
	case ToolRectangle:
		b.Shape = raster.ShapeRectangle
	case ToolEllipse:
		b.Shape = raster.ShapeEllipse
	}
	return b
}

func (m *model) fillTarget() doc.Cell {
	ch := m.brush.Char
	if m.brush.Mode == edit.DrawSolid {
		ch = edit.FullBlock
	}
	var cell doc.Cell
	m.do(func(s *edit.State) error {
		cell = doc.NewCell(ch, s.Caret().Attr)
		return nil
	})
	return cell
}

// toolPress starts the current tool at p. The gesture keeps that tool
// until it is released or cancelled.
func (m *model) toolPress(p doc.Position) {
	m.errorMessage = ""
	switch m.tool {
	case ToolPencil:
		brush := m.currentBrush()
		if !m.do(func(s *edit.State) error {
			s.BeginAtomicUndo("Pencil")
			if err := s.Plot(p, brush); err != nil {
				s.EndAtomicUndo()
				return err
			}
			return nil
		}) {
			return
		}
		m.lastPlot = p
	case ToolFill:
		target := m.fillTarget()
		if m.do(func(s *edit.State) error { return s.Fill(p, m.matcher, target) }) {
			m.succeed("Filled at %v", p)
		}
		return
	case ToolPipette:
		var attr doc.Attribute
		if m.do(func(s *edit.State) error {
			if err := s.PickAttribute(p); err != nil {
				return err
			}
			attr = s.Caret().Attr
			return nil
		}) {
			m.succeed("Picked fg %d bg %d", attr.Foreground, attr.Background)
		}
		return
	case ToolSelect:
		start := p
		m.selectStart = &start
		m.do(func(s *edit.State) error {
			s.SetSelection(doc.NewRectSelection(doc.RectFromPoints(p, p)))
			return nil
		})
	default:
		brush := m.currentBrush()
		if !m.do(func(s *edit.State) error { return s.BeginDrag(p, brush) }) {
			return
		}
	}
	m.gestureTool = m.tool
	m.mouseDown = true
}

// toolMotion follows the gesture to p.
func (m *model) toolMotion(p doc.Position) {
	if !m.mouseDown {
		return
	}
	switch m.gestureTool {
	case ToolPencil:
		// A shade plot steps the cell again, so each cell is plotted once per visit.
		if p == m.lastPlot {
			return
		}
		m.lastPlot = p
		brush := m.currentBrush()
		m.do(func(s *edit.State) error {
			if err := s.Plot(p, brush); !errors.Is(err, doc.ErrInvalidPosition) {
				return err
			}
			return nil
		})
	case ToolSelect:
		if m.selectStart == nil {
			return
		}
		r := doc.RectFromPoints(*m.selectStart, p)
		m.do(func(s *edit.State) error {
			s.SetSelection(doc.NewRectSelection(r))
			return nil
		})
	default:
		if m.gestureTool.isShape() {
			m.do(func(s *edit.State) error { return s.UpdateDrag(p) })
		}
	}
}

// toolRelease ends the gesture at p.
func (m *model) toolRelease(p doc.Position) {
	if !m.mouseDown {
		return
	}
	m.toolMotion(p)
	m.mouseDown = false
	switch m.gestureTool {
	case ToolPencil:
		m.do(func(s *edit.State) error {
			s.EndAtomicUndo()
			return nil
		})
	case ToolSelect:
		m.selectStart = nil
	default:
		if !m.gestureTool.isShape() {
			return
		}
		var committed bool
		if m.do(func(s *edit.State) (err error) {
			committed, err = s.EndDrag()
			return err
		}) && committed {
			m.succeed("Drew %s", m.gestureTool)
		}
	}
}

// toolCancel drops a gesture in progress. Pencil strokes already plotted
// are kept as one step; a shape preview is discarded.
func (m *model) toolCancel() {
	if !m.mouseDown {
		return
	}
	m.mouseDown = false
	m.selectStart = nil
	m.do(func(s *edit.State) error {
		if s.DragPhase() == edit.Dragging {
			s.CancelDrag()
		}
		if m.gestureTool == ToolPencil {
			s.EndAtomicUndo()
		}
		return nil
	})
}
