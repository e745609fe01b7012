package model

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is an RGB palette entry.
type Color struct {
	R, G, B uint8
}

// ParseColor accepts "#rrggbb" or "rrggbb".
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Palette is the ordered colour table cells index into. A Palette is
// treated as immutable once attached to a canvas; edits produce a new one so
// that palette switches can be journaled wholesale.
type Palette struct {
	Title  string
	colors []Color
}

func NewPalette(title string, colors ...Color) *Palette {
	return &Palette{Title: title, colors: append([]Color(nil), colors...)}
}

func (p *Palette) Len() int {
	return len(p.colors)
}

func (p *Palette) Color(i int) (Color, error) {
	if i < 0 || i >= len(p.colors) {
		return Color{}, fmt.Errorf("palette colour %d of %d: %w", i, len(p.colors), ErrIndexOutOfRange)
	}
	return p.colors[i], nil
}

// Colors returns a copy of the colour table.
func (p *Palette) Colors() []Color {
	return append([]Color(nil), p.colors...)
}

func (p *Palette) Clone() *Palette {
	return NewPalette(p.Title, p.colors...)
}

// IndexOf returns the index of an identical colour, or -1.
func (p *Palette) IndexOf(c Color) int {
	for i, pc := range p.colors {
		if pc == c {
			return i
		}
	}
	return -1
}

// WithColor returns the index of c and the palette holding it: p itself if
// c is already present, otherwise a copy with c appended.
func (p *Palette) WithColor(c Color) (int, *Palette) {
	if i := p.IndexOf(c); i >= 0 {
		return i, p
	}
	n := p.Clone()
	n.colors = append(n.colors, c)
	return len(n.colors) - 1, n
}

// Nearest returns the index of the perceptually closest colour.
func (p *Palette) Nearest(c Color) int {
	best, bestDist := -1, 0.0
	target := c.colorful()
	for i, pc := range p.colors {
		d := target.DistanceLab(pc.colorful())
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// ColorsEqual reports whether both palettes hold the same colour table.
func (p *Palette) ColorsEqual(o *Palette) bool {
	if len(p.colors) != len(o.colors) {
		return false
	}
	for i := range p.colors {
		if p.colors[i] != o.colors[i] {
			return false
		}
	}
	return true
}

func hexColors(values ...uint32) []Color {
	colors := make([]Color, len(values))
	for i, v := range values {
		colors[i] = Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
	}
	return colors
}

func DOSPalette() *Palette {
	return NewPalette("DOS", hexColors(
		0x000000, 0x0000aa, 0x00aa00, 0x00aaaa, 0xaa0000, 0xaa00aa, 0xaa5500, 0xaaaaaa,
		0x555555, 0x5555ff, 0x55ff55, 0x55ffff, 0xff5555, 0xff55ff, 0xffff55, 0xffffff,
	)...)
}

func C64Palette() *Palette {
	return NewPalette("C64", hexColors(
		0x000000, 0xffffff, 0x68372b, 0x70a4b2, 0x6f3d86, 0x588d43, 0x352879, 0xb8c76f,
		0x6f4f25, 0x433900, 0x9a6759, 0x444444, 0x6c6c6c, 0x9ad284, 0x6c5eb5, 0x959595,
	)...)
}

// EGAPalette is the 64 colour rgbRGB table.
func EGAPalette() *Palette {
	colors := make([]Color, 64)
	for i := range colors {
		ch := func(primary, secondary int) uint8 {
			v := 0
			if i&(1<<primary) != 0 {
				v += 0xaa
			}
			if i&(1<<secondary) != 0 {
				v += 0x55
			}
			return uint8(v)
		}
		colors[i] = Color{R: ch(2, 5), G: ch(1, 4), B: ch(0, 3)}
	}
	return NewPalette("EGA", colors...)
}

func ViewdataPalette() *Palette {
	return NewPalette("Viewdata", hexColors(
		0x000000, 0xff0000, 0x00ff00, 0xffff00, 0x0000ff, 0xff00ff, 0x00ffff, 0xffffff,
	)...)
}

// XtermPalette is the 256 colour xterm table as tcell knows it.
func XtermPalette() *Palette {
	colors := make([]Color, 256)
	for i := range colors {
		colors[i] = hexColors(uint32(tcell.PaletteColor(i).Hex()))[0]
	}
	return NewPalette("xterm", colors...)
}

// BuiltinPalette looks up a built-in palette by name.
func BuiltinPalette(name string) (*Palette, error) {
	switch strings.ToLower(name) {
	case "", "dos", "default":
		return DOSPalette(), nil
	case "ega":
		return EGAPalette(), nil
	case "c64":
		return C64Palette(), nil
	case "xterm":
		return XtermPalette(), nil
	case "viewdata":
		return ViewdataPalette(), nil
	}
	return nil, fmt.Errorf("unknown palette %q", name)
}

// BuiltinPaletteNames lists the names BuiltinPalette accepts, in cycle order.
var BuiltinPaletteNames = []string{"dos", "ega", "c64", "xterm", "viewdata"}
