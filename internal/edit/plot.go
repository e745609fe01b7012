package edit

import (
	"ansiedit/internal/model"
	"ansiedit/internal/raster"
)

// DrawMode is how a brush styles each plotted cell.
type DrawMode int

const (
	// DrawSolid paints full blocks.
	DrawSolid DrawMode = iota
	// DrawChar paints the brush character.
	DrawChar
	// DrawShade steps the existing cell up the shade ramp.
	DrawShade
	// DrawColorize keeps the character and only recolours it.
	DrawColorize
)

func (m DrawMode) String() string {
	switch m {
	case DrawChar:
		return "char"
	case DrawShade:
		return "shade"
	case DrawColorize:
		return "colorize"
	default:
		return "solid"
	}
}

// CP437 block glyphs.
const (
	FullBlock rune = 219
)

// ShadeRamp is light, medium, dark shade, then full block.
var ShadeRamp = []rune{176, 177, 178, 219}

// Brush describes a shape tool: what to rasterize and how to paint it.
type Brush struct {
	Shape  raster.Shape
	Filled bool
	Mode   DrawMode
	Char   rune
	// UseFore and UseBack select which caret colours are applied.
	UseFore bool
	UseBack bool
}

// nextShade returns the ramp step after ch.
func nextShade(ch rune) rune {
	last := ShadeRamp[len(ShadeRamp)-1]
	if ch == last {
		return last
	}
	for i := 0; i < len(ShadeRamp)-1; i++ {
		if ch == ShadeRamp[i] {
			return ShadeRamp[i+1]
		}
	}
	return ShadeRamp[0]
}

// brushCell is what b paints over cur.
func (s *State) brushCell(cur model.Cell, b Brush) model.Cell {
	attr := cur.Attr
	if cur.IsTransparent() {
		attr = model.DefaultAttribute
	}
	if b.UseFore {
		attr.Foreground = s.caret.Attr.Foreground
	}
	if b.UseBack {
		attr.Background = s.caret.Attr.Background
	}

	var ch rune
	switch b.Mode {
	case DrawSolid:
		ch = FullBlock
	case DrawChar:
		ch = b.Char
	case DrawShade:
		ch = nextShade(cur.Ch)
	case DrawColorize:
		ch = cur.Ch
	}
	return model.NewCell(ch, attr)
}

// plotPoint paints one cell of the brush onto the overlay, based on what
// the current layer holds at p.
func (s *State) plotPoint(overlay, l *model.Layer, b Brush, p model.Position) {
	overlay.Set(p, s.brushCell(l.Get(p.Sub(l.Offset)), b))
}

// Plot paints one brush cell straight into the current layer.
func (s *State) Plot(p model.Position, b Brush) error {
	l, err := s.writableLayer()
	if err != nil {
		return err
	}
	return s.setChar(l, p, s.brushCell(l.Get(p.Sub(l.Offset)), b))
}
