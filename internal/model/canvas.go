package model

import "fmt"

// Canvas is the whole document: the layer stack, the palette and the
// selection. Layer index 0 is the bottom of the stack.
//
// Canvas methods are primitives. Outside of bulk loading, mutations go
// through edit.State so that they are journaled.
type Canvas struct {
	Palette   *Palette
	Selection *Selection

	size    Size
	layers  []*Layer
	overlay *Layer
}

// New returns a canvas holding a single opaque background layer.
func New(width, height int) *Canvas {
	return &Canvas{
		Palette: DOSPalette(),
		size:    Size{Width: width, Height: height},
		layers:  []*Layer{NewBackgroundLayer(width, height)},
	}
}

// NewEmpty returns a canvas without layers, for loaders that build the
// stack themselves.
func NewEmpty(width, height int) *Canvas {
	return &Canvas{Palette: DOSPalette(), size: Size{Width: width, Height: height}}
}

func (c *Canvas) Size() Size {
	return c.size
}

func (c *Canvas) Width() int  { return c.size.Width }
func (c *Canvas) Height() int { return c.size.Height }

func (c *Canvas) SetSize(s Size) {
	c.size = s
}

// IsValid reports whether p is inside the document.
func (c *Canvas) IsValid(p Position) bool {
	return c.size.Contains(p)
}

func (c *Canvas) LayerCount() int {
	return len(c.layers)
}

// Layers returns the stack bottom to top. The slice is a copy; the layers
// are not.
func (c *Canvas) Layers() []*Layer {
	return append([]*Layer(nil), c.layers...)
}

func (c *Canvas) checkIndex(i, n int) error {
	if i < 0 || i >= n {
		return fmt.Errorf("layer %d of %d: %w", i, n, ErrIndexOutOfRange)
	}
	return nil
}

func (c *Canvas) LayerAt(i int) (*Layer, error) {
	if err := c.checkIndex(i, len(c.layers)); err != nil {
		return nil, err
	}
	return c.layers[i], nil
}

// InsertLayer places l at index i; i may equal LayerCount to append.
func (c *Canvas) InsertLayer(i int, l *Layer) error {
	if err := c.checkIndex(i, len(c.layers)+1); err != nil {
		return err
	}
	c.layers = append(c.layers, nil)
	copy(c.layers[i+1:], c.layers[i:])
	c.layers[i] = l
	return nil
}

func (c *Canvas) RemoveLayer(i int) (*Layer, error) {
	if err := c.checkIndex(i, len(c.layers)); err != nil {
		return nil, err
	}
	l := c.layers[i]
	c.layers = append(c.layers[:i], c.layers[i+1:]...)
	return l, nil
}

func (c *Canvas) Swap(i, j int) error {
	if err := c.checkIndex(i, len(c.layers)); err != nil {
		return err
	}
	if err := c.checkIndex(j, len(c.layers)); err != nil {
		return err
	}
	c.layers[i], c.layers[j] = c.layers[j], c.layers[i]
	return nil
}

// Overlay returns the scratch overlay layer, or nil.
func (c *Canvas) Overlay() *Layer {
	return c.overlay
}

// EnsureOverlay returns the overlay layer, creating a canvas sized one.
func (c *Canvas) EnsureOverlay() *Layer {
	if c.overlay == nil || c.overlay.Size() != c.size {
		c.overlay = NewLayer("Overlay", c.size.Width, c.size.Height)
		c.overlay.Role = RoleOverlay
	}
	return c.overlay
}

func (c *Canvas) RemoveOverlay() {
	c.overlay = nil
}

func layerCell(l *Layer, p Position) (Cell, bool) {
	if !l.IsVisible {
		return Cell{}, false
	}
	cell := l.Get(p.Sub(l.Offset))
	if cell.IsTransparent() {
		return Cell{}, false
	}
	if l.ForcedAttr != nil {
		cell.Attr = *l.ForcedAttr
	}
	return cell, true
}

// CompositeCell resolves p through the visible layers top to bottom. The
// overlay is on top, background role layers below every other layer.
func (c *Canvas) CompositeCell(p Position) Cell {
	if c.overlay != nil {
		if cell, ok := layerCell(c.overlay, p); ok {
			return cell
		}
	}
	for i := len(c.layers) - 1; i >= 0; i-- {
		l := c.layers[i]
		if l.Role == RoleBackground {
			continue
		}
		if cell, ok := layerCell(l, p); ok {
			return cell
		}
	}
	for i := len(c.layers) - 1; i >= 0; i-- {
		l := c.layers[i]
		if l.Role != RoleBackground {
			continue
		}
		if cell, ok := layerCell(l, p); ok {
			return cell
		}
	}
	return Blank
}

// VisibleLayers returns the visible layers in paint order, bottom first.
func (c *Canvas) VisibleLayers() []*Layer {
	var res []*Layer
	for _, l := range c.layers {
		if l.IsVisible && l.Role == RoleBackground {
			res = append(res, l)
		}
	}
	for _, l := range c.layers {
		if l.IsVisible && l.Role != RoleBackground {
			res = append(res, l)
		}
	}
	if c.overlay != nil && c.overlay.IsVisible {
		res = append(res, c.overlay)
	}
	return res
}

// Clone deep copies the canvas. The palette is shared since palettes are
// replaced, never edited in place.
func (c *Canvas) Clone() *Canvas {
	n := &Canvas{Palette: c.Palette, Selection: c.Selection, size: c.size}
	for _, l := range c.layers {
		n.layers = append(n.layers, l.Clone())
	}
	if c.overlay != nil {
		n.overlay = c.overlay.Clone()
	}
	return n
}

// Equal compares size, palette colours and every layer.
func (c *Canvas) Equal(o *Canvas) bool {
	if c.size != o.size || len(c.layers) != len(o.layers) {
		return false
	}
	if !c.Palette.ColorsEqual(o.Palette) {
		return false
	}
	for i := range c.layers {
		if !c.layers[i].Equal(o.layers[i]) {
			return false
		}
	}
	return true
}
